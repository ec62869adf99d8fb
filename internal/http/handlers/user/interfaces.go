package user

import (
	"context"
	"net/http"

	"insightflow/internal/models"
)

const pkg = "userHandler/"

type UserProvider interface {
	UserByID(ctx context.Context, id string) (*models.User, error)
}

type UserUpdater interface {
	UserProvider
	Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error)
}

type UserDeleter interface {
	Delete(ctx context.Context, id string) error
}

type UserLister interface {
	ListAll(ctx context.Context, requestUserID string) ([]models.User, error)
}

type Renderer interface {
	Render(w http.ResponseWriter, status int, page string, data any) error
}
