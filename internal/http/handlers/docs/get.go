package docs

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"insightflow/internal/http/views"
	"insightflow/internal/models"
	utils "insightflow/internal/utils/http_errors"
)

const (
	listPath = "/documents"

	msgListFailed = "failed to load documents"
)

// List shows the documents that are not soft deleted.
func List(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, dp DocumentProvider, rd Renderer) {
	op := pkg + "List"

	log = log.With(slog.String("op", op))

	page := views.DocumentsPage{Base: views.NewBase(ctx, "Documents")}

	docs, err := dp.List(ctx)
	if err != nil {
		log.Warn("failed to list documents", slog.String("error", err.Error()))
		page.Error = utils.UserMessage(err, msgListFailed)
		_ = rd.Render(w, utils.Status(err), views.PageDocuments, page)
		return
	}

	page.Documents = models.ActiveDocuments(docs)

	_ = rd.Render(w, http.StatusOK, views.PageDocuments, page)
}

// GetByID shows one document with its content as indented JSON. A document
// that cannot be loaded sends the user back to the list.
func GetByID(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, dp DocumentProvider, rd Renderer) {
	op := pkg + "GetByID"

	log = log.With(slog.String("op", op), slog.String("doc_id", docID))

	doc, err := dp.ByID(ctx, docID)
	if err != nil {
		log.Warn("failed to load document", slog.String("error", err.Error()))
		utils.SeeOther(w, r, listPath)
		return
	}

	content, err := indentContent(doc.Content)
	if err != nil {
		log.Error("failed to format content", slog.String("error", err.Error()))
		utils.SeeOther(w, r, listPath)
		return
	}

	_ = rd.Render(w, http.StatusOK, views.PageDocument, views.DocumentPage{
		Base:    views.NewBase(ctx, doc.Title),
		ID:      doc.ID,
		Title:   doc.Title,
		Icon:    doc.Icon,
		Content: content,
	})
}

// indentContent formats blocks for editing. No blocks is shown as one empty
// block.
func indentContent(blocks []json.RawMessage) (string, error) {
	if len(blocks) == 0 {
		blocks = []json.RawMessage{json.RawMessage(`{}`)}
	}

	data, err := json.MarshalIndent(blocks, "", "  ")
	if err != nil {
		return "", err
	}

	return string(data), nil
}
