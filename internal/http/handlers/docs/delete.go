package docs

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"insightflow/internal/http/views"
	utils "insightflow/internal/utils/http_errors"
)

const msgDeleteFailed = "failed to delete document"

func DeleteConfirm(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, rd Renderer) {
	_ = rd.Render(w, http.StatusOK, views.PageConfirm, deletePage(ctx, docID))
}

func Delete(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, dd DocumentDeleter, rd Renderer) {
	op := pkg + "Delete"

	log = log.With(slog.String("op", op), slog.String("doc_id", docID))

	if _, err := dd.Delete(ctx, docID); err != nil {
		log.Warn("failed to delete document", slog.String("error", err.Error()))
		page := deletePage(ctx, docID)
		page.Error = msgDeleteFailed
		_ = rd.Render(w, utils.Status(err), views.PageConfirm, page)
		return
	}

	log.Info("document deleted")

	utils.SeeOther(w, r, listPath)
}

func deletePage(ctx context.Context, docID string) views.ConfirmPage {
	docPath := listPath + "/" + url.PathEscape(docID)
	return views.ConfirmPage{
		Base:     views.NewBase(ctx, "Delete document"),
		Question: "Delete this document?",
		Action:   docPath + "/delete",
		Cancel:   docPath,
	}
}
