package docs

import (
	"context"
	"net/http"

	"insightflow/internal/models"
)

const pkg = "docsHandler/"

type DocumentProvider interface {
	List(ctx context.Context) ([]models.Document, error)
	ByID(ctx context.Context, id string) (*models.Document, error)
}

type DocumentCreator interface {
	Create(ctx context.Context, title string, workspaceID string, icon string) (*models.Document, error)
}

type DocumentUpdater interface {
	Update(ctx context.Context, id string, req models.UpdateDocumentRequest) (*models.Document, error)
}

type DocumentDeleter interface {
	Delete(ctx context.Context, id string) (bool, error)
}

type WorkspaceLister interface {
	ListByOwner(ctx context.Context, ownerID string) (*models.Envelope[[]models.Workspace], error)
}

type Renderer interface {
	Render(w http.ResponseWriter, status int, page string, data any) error
}
