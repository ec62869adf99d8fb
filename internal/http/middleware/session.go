package middleware

import (
	"log/slog"
	"net/http"

	"insightflow/internal/session"

	uuid "github.com/satori/go.uuid"
)

type SessionConfig struct {
	CookieName string
	Secure     bool
}

// Session opens the browser's session store for the lifetime of the request
// and puts it into the request context. A browser without a valid session
// cookie gets a new random id.
func Session(log *slog.Logger, slots SlotRepository, cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			op := pkg + "Session"

			log := log.With(slog.String("op", op))

			sid := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				if id, err := uuid.FromString(cookie.Value); err == nil {
					sid = id.String()
				}
			}

			if sid == "" {
				sid = uuid.NewV4().String()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			store, err := session.Open(r.Context(), log, slots, sid)
			if err != nil {
				log.Error("failed to open session", slog.String("error", err.Error()))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			defer store.Close()

			next.ServeHTTP(w, r.WithContext(session.WithStore(r.Context(), store)))
		})
	}
}
