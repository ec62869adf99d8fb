package auth

import (
	"context"
	"net/http"

	"insightflow/internal/models"
)

const pkg = "authHandler/"

type Authenticator interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

type Registrar interface {
	Register(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

type Renderer interface {
	Render(w http.ResponseWriter, status int, page string, data any) error
}
