package user

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
	msgLoadFailed  = "failed to load profile"
	msgListFailed  = "failed to load users"
	profileTitle   = "My profile"
	editTitle      = "Edit profile"
	usersPageTitle = "Users"
)

func Profile(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, up UserProvider, rd Renderer) {
	op := pkg + "Profile"

	log = log.With(slog.String("op", op))

	page := views.ProfilePage{Base: views.NewBase(ctx, profileTitle)}

	user, err := up.UserByID(ctx, session.UserIDFromContext(ctx))
	if err != nil {
		log.Warn("failed to load profile", slog.String("error", err.Error()))
		page.Error = msgLoadFailed
		_ = rd.Render(w, utils.Status(err), views.PageProfile, page)
		return
	}

	page.User = user

	_ = rd.Render(w, http.StatusOK, views.PageProfile, page)
}

func EditForm(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, up UserProvider, rd Renderer) {
	op := pkg + "EditForm"

	log = log.With(slog.String("op", op))

	user, err := up.UserByID(ctx, session.UserIDFromContext(ctx))
	if err != nil {
		log.Warn("failed to load profile", slog.String("error", err.Error()))
		page := views.ProfilePage{Base: views.NewBase(ctx, profileTitle)}
		page.Error = msgLoadFailed
		_ = rd.Render(w, utils.Status(err), views.PageProfile, page)
		return
	}

	_ = rd.Render(w, http.StatusOK, views.PageProfileEdit, views.ProfileEditPage{
		Base: views.NewBase(ctx, editTitle),
		Form: formFromUser(user),
	})
}

// List shows every user. The session user is sent as the acting user.
func List(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, ul UserLister, rd Renderer) {
	op := pkg + "List"

	log = log.With(slog.String("op", op))

	page := views.UsersPage{Base: views.NewBase(ctx, usersPageTitle)}

	users, err := ul.ListAll(ctx, session.UserIDFromContext(ctx))
	if err != nil {
		log.Warn("failed to list users", slog.String("error", err.Error()))
		page.Error = utils.UserMessage(err, msgListFailed)
		_ = rd.Render(w, utils.Status(err), views.PageUsers, page)
		return
	}

	page.Users = users

	_ = rd.Render(w, http.StatusOK, views.PageUsers, page)
}

func formFromUser(u *models.User) models.UpdateUserRequest {
	return models.UpdateUserRequest{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Username:    u.Username,
		DateOfBirth: u.DateOfBirth,
		Address:     u.Address,
		PhoneNumber: u.PhoneNumber,
	}
}
