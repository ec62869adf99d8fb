// Package user is the resource client of the users service.
package user

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"insightflow/internal/clients/headers"
	"insightflow/internal/clients/rest"
	"insightflow/internal/models"
	"insightflow/internal/session"
)

const pkg = "userClient/"

const (
	msgRegisterFailed = "registration failed on the server"
	msgLoginFailed    = "login failed on the server"
	msgGetFailed      = "communication error while fetching the user"
	msgUpdateFailed   = "failed to update the user"
	msgDeleteFailed   = "failed to delete the user"
	msgListFailed     = "server error while fetching the users"
)

// requestUserParam carries the acting user's id. The service trusts it as is.
const requestUserParam = "requestUserId"

type Client struct {
	log  *slog.Logger
	rest *rest.Client
}

func New(log *slog.Logger, rc *rest.Client) *Client {
	return &Client{
		log:  log,
		rest: rc,
	}
}

func (c *Client) Register(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	op := pkg + "Register"

	log := c.log.With(slog.String("op", op))

	log.Debug("attempting to register user", slog.String("username", req.Username))

	body, err := rest.JSONBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.rest.Do(ctx, http.MethodPost, c.rest.URL("/user", nil), headers.JSON(ctx), body, msgRegisterFailed)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !rest.IsSuccess(resp) {
		err := rest.MessageError(resp, msgRegisterFailed)
		log.Warn("register rejected", slog.Int("status", resp.StatusCode), slog.String("error", err.Error()))
		return nil, err
	}

	var user models.User
	if err := rest.DecodeJSON(resp, &user, msgRegisterFailed); err != nil {
		return nil, err
	}

	log.Debug("user registered", slog.String("user_id", user.ID))

	return &user, nil
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	op := pkg + "Login"

	log := c.log.With(slog.String("op", op))

	body, err := rest.JSONBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.rest.Do(ctx, http.MethodPost, c.rest.URL("/user/login", nil), headers.JSON(ctx), body, msgLoginFailed)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !rest.IsSuccess(resp) {
		err := rest.MessageError(resp, msgLoginFailed)
		log.Info("login rejected", slog.Int("status", resp.StatusCode), slog.String("error", err.Error()))
		return nil, err
	}

	var identity models.LoginResponse
	if err := rest.DecodeJSON(resp, &identity, msgLoginFailed); err != nil {
		return nil, err
	}

	return &identity, nil
}

func (c *Client) UserByID(ctx context.Context, id string) (*models.User, error) {
	resp, err := c.rest.Do(ctx, http.MethodGet, c.rest.URL("/user/"+url.PathEscape(id), nil), headers.JSON(ctx), nil, msgGetFailed)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !rest.IsSuccess(resp) {
		return nil, rest.StatusError(resp, msgGetFailed)
	}

	var user models.User
	if err := rest.DecodeJSON(resp, &user, msgGetFailed); err != nil {
		return nil, err
	}

	return &user, nil
}

// Update applies a partial update. The acting user is the session's user.
func (c *Client) Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error) {
	op := pkg + "Update"

	log := c.log.With(slog.String("op", op))

	body, err := rest.JSONBody(req)
	if err != nil {
		return nil, err
	}

	u := c.rest.URL("/user/"+url.PathEscape(id), actingUser(ctx))

	resp, err := c.rest.Do(ctx, http.MethodPatch, u, headers.JSON(ctx), body, msgUpdateFailed)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !rest.IsSuccess(resp) {
		err := rest.ValidationError(resp, msgUpdateFailed)
		log.Warn("update rejected", slog.Int("status", resp.StatusCode), slog.String("error", err.Error()))
		return nil, err
	}

	var user models.User
	if err := rest.DecodeJSON(resp, &user, msgUpdateFailed); err != nil {
		return nil, err
	}

	return &user, nil
}

// Delete removes the account. The acting user is the session's user.
func (c *Client) Delete(ctx context.Context, id string) error {
	op := pkg + "Delete"

	log := c.log.With(slog.String("op", op))

	u := c.rest.URL("/user/"+url.PathEscape(id), actingUser(ctx))

	resp, err := c.rest.Do(ctx, http.MethodDelete, u, headers.JSON(ctx), nil, msgDeleteFailed)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !rest.IsSuccess(resp) {
		err := rest.ValidationError(resp, msgDeleteFailed)
		log.Warn("delete rejected", slog.Int("status", resp.StatusCode), slog.String("error", err.Error()))
		return err
	}

	log.Debug("user deleted", slog.String("user_id", id))

	return nil
}

func (c *Client) ListAll(ctx context.Context, requestUserID string) ([]models.User, error) {
	u := c.rest.URL("/user", url.Values{requestUserParam: []string{requestUserID}})

	resp, err := c.rest.Do(ctx, http.MethodGet, u, headers.JSON(ctx), nil, msgListFailed)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !rest.IsSuccess(resp) {
		return nil, rest.StatusError(resp, msgListFailed)
	}

	var users []models.User
	if err := rest.DecodeJSON(resp, &users, msgListFailed); err != nil {
		return nil, err
	}

	return users, nil
}

func actingUser(ctx context.Context) url.Values {
	return url.Values{requestUserParam: []string{session.UserIDFromContext(ctx)}}
}
