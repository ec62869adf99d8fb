// Package document is the resource client of the documents service.
package document

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"insightflow/internal/clients/headers"
	"insightflow/internal/clients/rest"
	"insightflow/internal/models"
)

const pkg = "documentClient/"

const (
	msgListFailed   = "failed to fetch documents"
	msgNotFound     = "document not found"
	msgCreateFailed = "failed to create document"
	msgUpdateFailed = "failed to update document"
	msgDeleteFailed = "failed to delete document"
)

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

// List returns every document, soft deleted ones included.
func (c *Client) List(ctx context.Context) ([]models.Document, error) {
	resp, err := c.rest.Do(ctx, http.MethodGet, c.rest.URL("/documents", nil), headers.JSON(ctx), nil, msgListFailed)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !rest.IsSuccess(resp) {
		return nil, rest.StatusError(resp, msgListFailed)
	}

	var docs []models.Document
	if err := rest.DecodeJSON(resp, &docs, msgListFailed); err != nil {
		return nil, err
	}

	return docs, nil
}

func (c *Client) ByID(ctx context.Context, id string) (*models.Document, error) {
	resp, err := c.rest.Do(ctx, http.MethodGet, c.documentURL(id), headers.JSON(ctx), nil, msgNotFound)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !rest.IsSuccess(resp) {
		return nil, rest.StatusError(resp, msgNotFound)
	}

	var doc models.Document
	if err := rest.DecodeJSON(resp, &doc, msgNotFound); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Create creates a document in workspaceID. An empty icon is left to the
// service's default.
func (c *Client) Create(ctx context.Context, title string, workspaceID string, icon string) (*models.Document, error) {
	op := pkg + "Create"

	log := c.log.With(slog.String("op", op))

	log.Debug("attempting to create document", slog.String("workspace_id", workspaceID))

	body, err := rest.JSONBody(models.CreateDocumentRequest{
		Title:       title,
		WorkspaceID: workspaceID,
		Icon:        icon,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.rest.Do(ctx, http.MethodPost, c.rest.URL("/documents", nil), headers.JSON(ctx), body, msgCreateFailed)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !rest.IsSuccess(resp) {
		err := rest.MessageError(resp, msgCreateFailed)
		log.Warn("create rejected", slog.Int("status", resp.StatusCode), slog.String("error", err.Error()))
		return nil, err
	}

	var doc models.Document
	if err := rest.DecodeJSON(resp, &doc, msgCreateFailed); err != nil {
		return nil, err
	}

	log.Debug("document created", slog.String("doc_id", doc.ID))

	return &doc, nil
}

func (c *Client) Update(ctx context.Context, id string, req models.UpdateDocumentRequest) (*models.Document, error) {
	op := pkg + "Update"

	log := c.log.With(slog.String("op", op))

	body, err := rest.JSONBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.rest.Do(ctx, http.MethodPatch, c.documentURL(id), headers.JSON(ctx), body, msgUpdateFailed)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !rest.IsSuccess(resp) {
		err := rest.MessageError(resp, msgUpdateFailed)
		log.Warn("update rejected", slog.Int("status", resp.StatusCode), slog.String("error", err.Error()))
		return nil, err
	}

	var doc models.Document
	if err := rest.DecodeJSON(resp, &doc, msgUpdateFailed); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Delete reports true on success. It never returns false without an error.
func (c *Client) Delete(ctx context.Context, id string) (bool, error) {
	resp, err := c.rest.Do(ctx, http.MethodDelete, c.documentURL(id), headers.JSON(ctx), nil, msgDeleteFailed)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if !rest.IsSuccess(resp) {
		return false, rest.StatusError(resp, msgDeleteFailed)
	}

	return true, nil
}

func (c *Client) documentURL(id string) string {
	return c.rest.URL("/documents/"+url.PathEscape(id), nil)
}
