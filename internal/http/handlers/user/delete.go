package user

import (
	"context"
	"log/slog"
	"net/http"

	"insightflow/internal/http/views"
	"insightflow/internal/session"
	utils "insightflow/internal/utils/http_errors"
)

const (
	msgDeleteFailed  = "failed to delete account"
	deleteQuestion   = "Delete your account? This cannot be undone."
	deleteActionPath = "/user/delete"
)

func DeleteConfirm(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, rd Renderer) {
	_ = rd.Render(w, http.StatusOK, views.PageConfirm, confirmPage(ctx))
}

// Delete removes the account and ends the session.
func Delete(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, ud UserDeleter, rd Renderer) {
	op := pkg + "Delete"

	log = log.With(slog.String("op", op))

	store, ok := session.FromContext(ctx)
	if !ok {
		utils.SeeOther(w, r, "/login")
		return
	}

	if err := ud.Delete(ctx, store.UserID()); err != nil {
		log.Warn("failed to delete user", slog.String("error", err.Error()))
		page := confirmPage(ctx)
		page.Error = utils.UserMessage(err, msgDeleteFailed)
		_ = rd.Render(w, utils.Status(err), views.PageConfirm, page)
		return
	}

	if err := store.Logout(ctx); err != nil {
		log.Error("failed to clear session after delete", slog.String("error", err.Error()))
	}

	utils.SeeOther(w, r, "/login")
}

func confirmPage(ctx context.Context) views.ConfirmPage {
	return views.ConfirmPage{
		Base:     views.NewBase(ctx, "Delete account"),
		Question: deleteQuestion,
		Action:   deleteActionPath,
		Cancel:   "/user",
	}
}
