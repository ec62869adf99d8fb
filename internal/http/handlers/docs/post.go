package docs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"insightflow/internal/http/views"
	"insightflow/internal/models"
	"insightflow/internal/session"
	utils "insightflow/internal/utils/http_errors"
)

const (
	// DefaultIcon is offered for new documents.
	DefaultIcon = "📄"
	// PlaceholderWorkspaceID is prefilled when the user has no workspace to
	// pick from.
	PlaceholderWorkspaceID = "3fa85f64-5717-4562-b3fc-2c963f66afa6"

	msgCreateFailed  = "failed to create document"
	msgSaveFailed    = "failed to save document"
	msgInvalidJSON   = "content is not valid JSON"
	msgSaved         = "saved"
	newDocumentTitle = "New document"
)

// NewForm offers the defaults and the user's workspaces. A failed workspace
// lookup only leaves the choices empty.
func NewForm(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, wl WorkspaceLister, rd Renderer) {
	op := pkg + "NewForm"

	log = log.With(slog.String("op", op))

	page := views.DocumentNewPage{
		Base:        views.NewBase(ctx, newDocumentTitle),
		Icon:        DefaultIcon,
		WorkspaceID: PlaceholderWorkspaceID,
	}

	env, err := wl.ListByOwner(ctx, session.UserIDFromContext(ctx))
	if err != nil {
		log.Warn("failed to list workspaces", slog.String("error", err.Error()))
	} else if env.Data != nil {
		page.Workspaces = models.ActiveWorkspaces(*env.Data)
		if len(page.Workspaces) > 0 {
			page.WorkspaceID = page.Workspaces[0].ID
		}
	}

	_ = rd.Render(w, http.StatusOK, views.PageDocumentNew, page)
}

// Create creates the document and opens it.
func Create(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, dc DocumentCreator, rd Renderer) {
	op := pkg + "Create"

	log = log.With(slog.String("op", op))

	page := views.DocumentNewPage{
		Base:        views.NewBase(ctx, newDocumentTitle),
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Icon:        strings.TrimSpace(r.PostFormValue("icon")),
		WorkspaceID: strings.TrimSpace(r.PostFormValue("workspaceId")),
	}

	if page.Title == "" || page.WorkspaceID == "" {
		page.Error = "title and workspace are required"
		_ = rd.Render(w, http.StatusBadRequest, views.PageDocumentNew, page)
		return
	}

	doc, err := dc.Create(ctx, page.Title, page.WorkspaceID, page.Icon)
	if err != nil {
		log.Warn("failed to create document", slog.String("error", err.Error()))
		page.Error = utils.UserMessage(err, msgCreateFailed)
		_ = rd.Render(w, utils.Status(err), views.PageDocumentNew, page)
		return
	}

	log.Info("document created", slog.String("doc_id", doc.ID))

	utils.SeeOther(w, r, listPath+"/"+doc.ID)
}

// Save writes title, icon and content. Content that is not a JSON array is
// rejected before any call is made.
func Save(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, du DocumentUpdater, rd Renderer) {
	op := pkg + "Save"

	log = log.With(slog.String("op", op), slog.String("doc_id", docID))

	title := r.PostFormValue("title")
	icon := r.PostFormValue("icon")
	rawContent := r.PostFormValue("content")

	page := views.DocumentPage{
		Base:    views.NewBase(ctx, title),
		ID:      docID,
		Title:   title,
		Icon:    icon,
		Content: rawContent,
	}

	blocks, err := parseContent(rawContent)
	if err != nil {
		log.Info("rejected content", slog.String("error", err.Error()))
		page.Error = msgInvalidJSON
		_ = rd.Render(w, http.StatusBadRequest, views.PageDocument, page)
		return
	}

	doc, err := du.Update(ctx, docID, models.UpdateDocumentRequest{
		Title:   &title,
		Icon:    &icon,
		Content: &blocks,
	})
	if err != nil {
		log.Warn("failed to save document", slog.String("error", err.Error()))
		page.Error = msgSaveFailed
		_ = rd.Render(w, utils.Status(err), views.PageDocument, page)
		return
	}

	if content, err := indentContent(doc.Content); err == nil {
		page.Content = content
	}
	page.Title = doc.Title
	page.Icon = doc.Icon
	page.Base = views.NewBase(ctx, doc.Title)
	page.Notice = msgSaved

	_ = rd.Render(w, http.StatusOK, views.PageDocument, page)
}

func parseContent(raw string) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, models.ErrInvalidContent
	}

	var blocks []json.RawMessage
	if err := json.Unmarshal(trimmed, &blocks); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidContent, err.Error())
	}

	if blocks == nil {
		blocks = []json.RawMessage{}
	}

	return blocks, nil
}
