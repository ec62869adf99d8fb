package workspaces

import (
	"context"
	"net/http"

	"insightflow/internal/models"
)

const pkg = "workspacesHandler/"

type WorkspaceLister interface {
	ListByOwner(ctx context.Context, ownerID string) (*models.Envelope[[]models.Workspace], error)
}

type WorkspaceProvider interface {
	ByID(ctx context.Context, id string) (*models.Envelope[models.Workspace], error)
}

type WorkspaceCreator interface {
	Create(ctx context.Context, req models.CreateWorkspaceRequest) (*models.Envelope[models.Workspace], error)
}

type WorkspaceEditor interface {
	WorkspaceProvider
	Edit(ctx context.Context, id string, req models.EditWorkspaceRequest) (*models.Envelope[models.Workspace], error)
}

type WorkspaceDeleter interface {
	Delete(ctx context.Context, id string) (*models.Envelope[models.Workspace], error)
}

type Renderer interface {
	Render(w http.ResponseWriter, status int, page string, data any) error
}
