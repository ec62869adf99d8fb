package workspaces

import (
	"context"
	"log/slog"
	"net/http"

	"insightflow/internal/http/views"
	utils "insightflow/internal/utils/http_errors"
)

const msgDeleteFailed = "failed to delete workspace"

func DeleteConfirm(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, workspaceID string, rd Renderer) {
	_ = rd.Render(w, http.StatusOK, views.PageConfirm, deletePage(ctx, workspaceID))
}

func Delete(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, workspaceID string, wd WorkspaceDeleter, rd Renderer) {
	op := pkg + "Delete"

	log = log.With(slog.String("op", op), slog.String("workspace_id", workspaceID))

	env, err := wd.Delete(ctx, workspaceID)
	if err != nil {
		log.Warn("failed to delete workspace", slog.String("error", err.Error()))
		page := deletePage(ctx, workspaceID)
		page.Error = utils.UserMessage(err, msgDeleteFailed)
		_ = rd.Render(w, utils.Status(err), views.PageConfirm, page)
		return
	}

	if !env.IsSuccess {
		page := deletePage(ctx, workspaceID)
		page.Error = envelopeMessage(env, msgDeleteFailed)
		_ = rd.Render(w, http.StatusBadRequest, views.PageConfirm, page)
		return
	}

	log.Info("workspace deleted")

	utils.SeeOther(w, r, listPath)
}

func deletePage(ctx context.Context, workspaceID string) views.ConfirmPage {
	return views.ConfirmPage{
		Base:     views.NewBase(ctx, "Delete workspace"),
		Question: "Delete this workspace?",
		Action:   workspacePath(workspaceID) + "/delete",
		Cancel:   workspacePath(workspaceID),
	}
}
