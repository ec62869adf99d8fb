package workspaces

import (
	"context"
	"log/slog"
	"net/http"

	"insightflow/internal/http/views"
	"insightflow/internal/models"
	"insightflow/internal/session"
	utils "insightflow/internal/utils/http_errors"
)

const (
	listPath = "/workspace"

	msgListFailed = "failed to load workspaces"
)

// List shows the session user's active workspaces. A failure envelope or a
// payload that is not a list shows an empty list.
func List(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, wl WorkspaceLister, rd Renderer) {
	op := pkg + "List"

	log = log.With(slog.String("op", op))

	page := views.WorkspacesPage{Base: views.NewBase(ctx, "Workspaces")}

	env, err := wl.ListByOwner(ctx, session.UserIDFromContext(ctx))
	if err != nil {
		log.Warn("failed to list workspaces", slog.String("error", err.Error()))
		page.Error = msgListFailed
		_ = rd.Render(w, utils.Status(err), views.PageWorkspaces, page)
		return
	}

	if env.IsSuccess && env.Data != nil {
		page.Workspaces = models.ActiveWorkspaces(*env.Data)
	} else {
		log.Debug("no workspace list", slog.Bool("is_success", env.IsSuccess), slog.String("message", env.Message))
	}

	_ = rd.Render(w, http.StatusOK, views.PageWorkspaces, page)
}

// GetByID shows one workspace. Without data the user goes back to the list.
func GetByID(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, workspaceID string, wp WorkspaceProvider, rd Renderer) {
	op := pkg + "GetByID"

	log = log.With(slog.String("op", op), slog.String("workspace_id", workspaceID))

	ws, ok := load(ctx, log, workspaceID, wp)
	if !ok {
		utils.SeeOther(w, r, listPath)
		return
	}

	_ = rd.Render(w, http.StatusOK, views.PageWorkspace, views.WorkspacePage{
		Base:      views.NewBase(ctx, ws.Name),
		Workspace: *ws,
	})
}

func load(ctx context.Context, log *slog.Logger, workspaceID string, wp WorkspaceProvider) (*models.Workspace, bool) {
	env, err := wp.ByID(ctx, workspaceID)
	if err != nil {
		log.Warn("failed to load workspace", slog.String("error", err.Error()))
		return nil, false
	}

	if env.Data == nil {
		log.Warn("workspace envelope without data", slog.String("message", env.Message))
		return nil, false
	}

	ws := *env.Data
	if ws.Members == nil {
		ws.Members = []string{}
	}

	return &ws, true
}
