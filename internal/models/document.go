package models

import "encoding/json"

type Document struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Icon        string            `json:"icon"`
	Content     []json.RawMessage `json:"content"`
	SoftDeleted bool              `json:"soft_deleted"`
}

type CreateDocumentRequest struct {
	Title       string `json:"title"`
	WorkspaceID string `json:"workspace_id"`
	Icon        string `json:"icon,omitempty"`
}

// UpdateDocumentRequest sends only the non-nil fields.
type UpdateDocumentRequest struct {
	Title   *string            `json:"title,omitempty"`
	Icon    *string            `json:"icon,omitempty"`
	Content *[]json.RawMessage `json:"content,omitempty"`
}

// ActiveDocuments drops the documents the server marked as soft deleted.
func ActiveDocuments(docs []Document) []Document {
	active := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if doc.SoftDeleted {
			continue
		}
		active = append(active, doc)
	}
	return active
}
