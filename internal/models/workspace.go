package models

import "io"

type Workspace struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	ThematicArea string   `json:"thematicArea"`
	IconURL      string   `json:"iconURL"`
	CreatedAt    string   `json:"createdAt"`
	OwnerID      string   `json:"ownerId"`
	Members      []string `json:"members"`
	IsActive     bool     `json:"isActive"`
}

// Upload is an opaque file handle sent as a multipart file part.
type Upload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

type CreateWorkspaceRequest struct {
	Name         string
	Description  string
	ThematicArea string
	Icon         *Upload
	OwnerID      string
}

// Validate reports ErrMissingFields unless every user supplied field is set.
func (r CreateWorkspaceRequest) Validate() error {
	if r.Name == "" || r.Description == "" || r.ThematicArea == "" || r.Icon == nil {
		return ErrMissingFields
	}
	return nil
}

// EditWorkspaceRequest is a partial edit. Nil fields are omitted from the form.
type EditWorkspaceRequest struct {
	Name         *string
	Description  *string
	ThematicArea *string
	Icon         *Upload
}

func (r EditWorkspaceRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.ThematicArea == nil && r.Icon == nil
}

// Envelope wraps every workspace service response. A failed envelope is a
// value the caller inspects, not an error.
type Envelope[T any] struct {
	IsSuccess  bool   `json:"isSuccess"`
	StatusCode int    `json:"statusCode,omitempty"`
	Message    string `json:"message,omitempty"`
	Data       *T     `json:"data,omitempty"`
}

// ActiveWorkspaces keeps the workspaces flagged as active.
func ActiveWorkspaces(list []Workspace) []Workspace {
	active := make([]Workspace, 0, len(list))
	for _, ws := range list {
		if ws.IsActive {
			active = append(active, ws)
		}
	}
	return active
}
