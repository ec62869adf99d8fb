package middleware

import (
	"log/slog"
	"net/http"

	"insightflow/internal/session"
)

const loginPath = "/login"

// Auth guards pages that need a logged in user. Anyone else is sent to the
// login page.
func Auth(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			op := pkg + "Auth"

			log := log.With(slog.String("op", op))

			store, ok := session.FromContext(r.Context())
			if !ok || !store.IsAuthenticated() {
				log.Debug("unauthenticated request redirected", slog.String("path", r.URL.Path))
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
