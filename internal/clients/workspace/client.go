// Package workspace is the resource client of the workspaces service.
// Every response is an envelope. ListByOwner never looks at the HTTP status
// and ByID only checks it before decoding, so a failure envelope can come
// back without an error.
package workspace

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"insightflow/internal/clients/headers"
	"insightflow/internal/clients/rest"
	"insightflow/internal/models"
)

const pkg = "workspaceClient/"

const (
	msgListFailed   = "failed to fetch workspaces"
	msgNotFound     = "workspace not found"
	msgCreateFailed = "failed to create workspace"
	msgEditFailed   = "failed to update workspace"
	msgDeleteFailed = "failed to delete workspace"
)

const iconField = "iconURL"

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

// ListByOwner returns the owner's envelope as the service sent it. Data is
// nil when the payload is missing or is not a list.
func (c *Client) ListByOwner(ctx context.Context, ownerID string) (*models.Envelope[[]models.Workspace], error) {
	op := pkg + "ListByOwner"

	log := c.log.With(slog.String("op", op))

	u := c.rest.URL("/workspaces", url.Values{"ownerId": []string{ownerID}})

	resp, err := c.rest.Do(ctx, http.MethodGet, u, headers.JSON(ctx), nil, msgListFailed)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var raw models.Envelope[json.RawMessage]
	if err := rest.DecodeJSON(resp, &raw, msgListFailed); err != nil {
		return nil, err
	}

	env := &models.Envelope[[]models.Workspace]{
		IsSuccess:  raw.IsSuccess,
		StatusCode: raw.StatusCode,
		Message:    raw.Message,
	}

	if raw.Data != nil {
		var list []models.Workspace
		if err := json.Unmarshal(*raw.Data, &list); err != nil {
			log.Warn("workspace list payload is not a list", slog.String("error", err.Error()))
		} else if list != nil {
			env.Data = &list
		}
	}

	return env, nil
}

func (c *Client) ByID(ctx context.Context, id string) (*models.Envelope[models.Workspace], error) {
	resp, err := c.rest.Do(ctx, http.MethodGet, c.workspaceURL(id), headers.JSON(ctx), nil, msgNotFound)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !rest.IsSuccess(resp) {
		return nil, rest.StatusError(resp, msgNotFound)
	}

	var env models.Envelope[models.Workspace]
	if err := rest.DecodeJSON(resp, &env, msgNotFound); err != nil {
		return nil, err
	}

	return &env, nil
}

func (c *Client) Create(ctx context.Context, req models.CreateWorkspaceRequest) (*models.Envelope[models.Workspace], error) {
	op := pkg + "Create"

	log := c.log.With(slog.String("op", op))

	if req.Icon == nil {
		return nil, &models.APIError{Kind: models.KindFallback, Message: msgCreateFailed, Err: models.ErrMissingFields}
	}

	parts := []rest.Part{
		{Name: "name", Value: req.Name},
		{Name: "description", Value: req.Description},
		{Name: "thematicArea", Value: req.ThematicArea},
		{Name: iconField, File: req.Icon},
		{Name: "ownerId", Value: req.OwnerID},
	}

	env, err := c.submit(ctx, http.MethodPost, c.rest.URL("/workspaces", nil), parts, msgCreateFailed)
	if err != nil {
		log.Warn("failed to create workspace", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("workspace created", slog.Bool("is_success", env.IsSuccess))

	return env, nil
}

// Edit sends only the fields that are set. Without a new icon the file part
// is left out entirely.
func (c *Client) Edit(ctx context.Context, id string, req models.EditWorkspaceRequest) (*models.Envelope[models.Workspace], error) {
	op := pkg + "Edit"

	log := c.log.With(slog.String("op", op))

	parts := make([]rest.Part, 0, 4)
	if req.Name != nil && *req.Name != "" {
		parts = append(parts, rest.Part{Name: "name", Value: *req.Name})
	}
	if req.Description != nil && *req.Description != "" {
		parts = append(parts, rest.Part{Name: "description", Value: *req.Description})
	}
	if req.ThematicArea != nil && *req.ThematicArea != "" {
		parts = append(parts, rest.Part{Name: "thematicArea", Value: *req.ThematicArea})
	}
	if req.Icon != nil {
		parts = append(parts, rest.Part{Name: iconField, File: req.Icon})
	}

	env, err := c.submit(ctx, http.MethodPatch, c.workspaceURL(id), parts, msgEditFailed)
	if err != nil {
		log.Warn("failed to edit workspace", slog.String("workspace_id", id), slog.String("error", err.Error()))
		return nil, err
	}

	return env, nil
}

func (c *Client) Delete(ctx context.Context, id string) (*models.Envelope[models.Workspace], error) {
	resp, err := c.rest.Do(ctx, http.MethodDelete, c.workspaceURL(id), headers.JSON(ctx), nil, msgDeleteFailed)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !rest.IsSuccess(resp) {
		return nil, rest.MessageError(resp, msgDeleteFailed)
	}

	var env models.Envelope[models.Workspace]
	if err := rest.DecodeJSON(resp, &env, msgDeleteFailed); err != nil {
		return nil, err
	}

	return &env, nil
}

func (c *Client) submit(ctx context.Context, method string, rawURL string, parts []rest.Part, fallback string) (*models.Envelope[models.Workspace], error) {
	body, contentType, err := rest.MultipartBody(parts)
	if err != nil {
		return nil, &models.APIError{Kind: models.KindFallback, Message: fallback, Err: err}
	}

	h := headers.Multipart(ctx)
	h.Set("Content-Type", contentType)

	resp, err := c.rest.Do(ctx, method, rawURL, h, body, fallback)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !rest.IsSuccess(resp) {
		return nil, rest.MessageError(resp, fallback)
	}

	var env models.Envelope[models.Workspace]
	if err := rest.DecodeJSON(resp, &env, fallback); err != nil {
		return nil, err
	}

	return &env, nil
}

func (c *Client) workspaceURL(id string) string {
	return c.rest.URL("/workspaces/"+url.PathEscape(id), nil)
}
