package auth

import (
	"context"
	"log/slog"
	"net/http"

	"insightflow/internal/session"
	utils "insightflow/internal/utils/http_errors"
)

func Logout(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request) {
	op := pkg + "Logout"

	log = log.With(slog.String("op", op))

	if store, ok := session.FromContext(ctx); ok {
		if err := store.Logout(ctx); err != nil {
			log.Error("failed to clear session", slog.String("error", err.Error()))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.SeeOther(w, r, loginPath)
}
