package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"insightflow/internal/http/views"
	"insightflow/internal/models"
	"insightflow/internal/session"
	utils "insightflow/internal/utils/http_errors"
)

const (
	homePath  = "/user"
	loginPath = "/login"

	msgLoginFailed   = "login failed"
	msgSessionFailed = "could not start the session"
)

func LoginForm(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, rd Renderer) {
	if session.UserIDFromContext(ctx) != "" {
		utils.SeeOther(w, r, homePath)
		return
	}

	_ = rd.Render(w, http.StatusOK, views.PageLogin, views.LoginPage{Base: views.NewBase(ctx, "Log in")})
}

// Login checks the credentials with the users service and keeps only the
// returned id in the session.
func Login(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, a Authenticator, rd Renderer) {
	op := pkg + "Login"

	log = log.With(slog.String("op", op))

	page := views.LoginPage{
		Base:  views.NewBase(ctx, "Log in"),
		Email: strings.TrimSpace(r.PostFormValue("email")),
	}
	password := r.PostFormValue("password")

	if page.Email == "" || password == "" {
		page.Error = "email and password are required"
		_ = rd.Render(w, http.StatusBadRequest, views.PageLogin, page)
		return
	}

	identity, err := a.Login(ctx, models.LoginRequest{Email: page.Email, Password: password})
	if err != nil {
		log.Info("login failed", slog.String("error", err.Error()))
		page.Error = utils.UserMessage(err, msgLoginFailed)
		_ = rd.Render(w, utils.Status(err), views.PageLogin, page)
		return
	}

	if err := startSession(ctx, identity.ID); err != nil {
		log.Error("failed to persist session", slog.String("error", err.Error()))
		page.Error = msgSessionFailed
		_ = rd.Render(w, http.StatusInternalServerError, views.PageLogin, page)
		return
	}

	utils.SeeOther(w, r, homePath)
}

func startSession(ctx context.Context, userID string) error {
	store, ok := session.FromContext(ctx)
	if !ok {
		return models.ErrInternal
	}
	return store.Login(ctx, userID)
}
