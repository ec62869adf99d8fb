package user

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
	msgUpdateFailed = "failed to update profile"
	msgUpdated      = "profile updated"
)

// Update sends the filled in fields, then shows the profile as the service
// now has it.
func Update(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, uu UserUpdater, rd Renderer) {
	op := pkg + "Update"

	log = log.With(slog.String("op", op))

	userID := session.UserIDFromContext(ctx)

	form := models.UpdateUserRequest{
		FirstName:   strings.TrimSpace(r.PostFormValue("firstName")),
		LastName:    strings.TrimSpace(r.PostFormValue("lastName")),
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		Username:    strings.TrimSpace(r.PostFormValue("username")),
		Password:    r.PostFormValue("password"),
		DateOfBirth: r.PostFormValue("dateOfBirth"),
		Address:     strings.TrimSpace(r.PostFormValue("address")),
		PhoneNumber: strings.TrimSpace(r.PostFormValue("phoneNumber")),
	}

	if _, err := uu.Update(ctx, userID, form); err != nil {
		log.Warn("failed to update user", slog.String("error", err.Error()))
		page := views.ProfileEditPage{Base: views.NewBase(ctx, editTitle), Form: form}
		page.Form.Password = ""
		page.Error = utils.UserMessage(err, msgUpdateFailed)
		_ = rd.Render(w, utils.Status(err), views.PageProfileEdit, page)
		return
	}

	page := views.ProfilePage{Base: views.NewBase(ctx, profileTitle)}

	user, err := uu.UserByID(ctx, userID)
	if err != nil {
		log.Warn("failed to reload profile", slog.String("error", err.Error()))
		page.Error = msgLoadFailed
		_ = rd.Render(w, utils.Status(err), views.PageProfile, page)
		return
	}

	page.User = user
	page.Notice = msgUpdated

	_ = rd.Render(w, http.StatusOK, views.PageProfile, page)
}
