package server

import (
	"context"
	"net/http"

	"insightflow/internal/models"
)

type UserClient interface {
	Register(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context, requestUserID string) ([]models.User, error)
}

type DocumentClient interface {
	List(ctx context.Context) ([]models.Document, error)
	ByID(ctx context.Context, id string) (*models.Document, error)
	Create(ctx context.Context, title string, workspaceID string, icon string) (*models.Document, error)
	Update(ctx context.Context, id string, req models.UpdateDocumentRequest) (*models.Document, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type WorkspaceClient interface {
	ListByOwner(ctx context.Context, ownerID string) (*models.Envelope[[]models.Workspace], error)
	ByID(ctx context.Context, id string) (*models.Envelope[models.Workspace], error)
	Create(ctx context.Context, req models.CreateWorkspaceRequest) (*models.Envelope[models.Workspace], error)
	Edit(ctx context.Context, id string, req models.EditWorkspaceRequest) (*models.Envelope[models.Workspace], error)
	Delete(ctx context.Context, id string) (*models.Envelope[models.Workspace], error)
}

type SlotRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Del(ctx context.Context, keys ...string) error
}

type Renderer interface {
	Render(w http.ResponseWriter, status int, page string, data any) error
}
