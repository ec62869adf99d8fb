package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"insightflow/internal/http/views"
	"insightflow/internal/models"
	utils "insightflow/internal/utils/http_errors"
)

const msgRegisterFailed = "registration failed"

func RegisterForm(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, rd Renderer) {
	_ = rd.Render(w, http.StatusOK, views.PageRegister, views.RegisterPage{Base: views.NewBase(ctx, "Register")})
}

// Register creates the account, then logs in with the same credentials.
func Register(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, rg Registrar, rd Renderer) {
	op := pkg + "Register"

	log = log.With(slog.String("op", op))

	form := models.CreateUserRequest{
		Username:    strings.TrimSpace(r.PostFormValue("username")),
		FirstName:   strings.TrimSpace(r.PostFormValue("firstName")),
		LastName:    strings.TrimSpace(r.PostFormValue("lastName")),
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		Password:    r.PostFormValue("password"),
		DateOfBirth: r.PostFormValue("dateOfBirth"),
		Address:     strings.TrimSpace(r.PostFormValue("address")),
		PhoneNumber: strings.TrimSpace(r.PostFormValue("phoneNumber")),
	}

	page := views.RegisterPage{Base: views.NewBase(ctx, "Register"), Form: form}
	page.Form.Password = ""

	if form.Username == "" || form.Email == "" || form.Password == "" {
		page.Error = "username, email and password are required"
		_ = rd.Render(w, http.StatusBadRequest, views.PageRegister, page)
		return
	}

	if _, err := rg.Register(ctx, form); err != nil {
		log.Info("register failed", slog.String("error", err.Error()))
		page.Error = utils.UserMessage(err, msgRegisterFailed)
		_ = rd.Render(w, utils.Status(err), views.PageRegister, page)
		return
	}

	identity, err := rg.Login(ctx, models.LoginRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		log.Warn("login after register failed", slog.String("error", err.Error()))
		page.Error = utils.UserMessage(err, msgLoginFailed)
		_ = rd.Render(w, utils.Status(err), views.PageRegister, page)
		return
	}

	if err := startSession(ctx, identity.ID); err != nil {
		log.Error("failed to persist session", slog.String("error", err.Error()))
		page.Error = msgSessionFailed
		_ = rd.Render(w, http.StatusInternalServerError, views.PageRegister, page)
		return
	}

	log.Info("user registered", slog.String("user_id", identity.ID))

	utils.SeeOther(w, r, homePath)
}
