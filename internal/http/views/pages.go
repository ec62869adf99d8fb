package views

import (
	"context"

	"insightflow/internal/models"
	"insightflow/internal/session"
)

// Base carries what the layout needs on every page.
type Base struct {
	Title         string
	Authenticated bool
	Notice        string
	Error         string
}

func NewBase(ctx context.Context, title string) Base {
	s, ok := session.FromContext(ctx)
	return Base{
		Title:         title,
		Authenticated: ok && s.IsAuthenticated(),
	}
}

type LoginPage struct {
	Base
	Email string
}

type RegisterPage struct {
	Base
	Form models.CreateUserRequest
}

type ProfilePage struct {
	Base
	User *models.User
}

type ProfileEditPage struct {
	Base
	Form models.UpdateUserRequest
}

type UsersPage struct {
	Base
	Users []models.User
}

// ConfirmPage asks before a destructive action. Submitting posts to Action,
// declining goes back to Cancel.
type ConfirmPage struct {
	Base
	Question string
	Action   string
	Cancel   string
}

type DocumentsPage struct {
	Base
	Documents []models.Document
}

type DocumentNewPage struct {
	Base
	Title       string
	Icon        string
	WorkspaceID string
	Workspaces  []models.Workspace
}

type DocumentPage struct {
	Base
	ID      string
	Title   string
	Icon    string
	Content string
}

type WorkspacesPage struct {
	Base
	Workspaces []models.Workspace
}

// WorkspaceFormPage serves both creation and edition. Action is the form
// target; Current is set when editing.
type WorkspaceFormPage struct {
	Base
	Action       string
	Current      *models.Workspace
	Name         string
	Description  string
	ThematicArea string
}

type WorkspacePage struct {
	Base
	Workspace models.Workspace
}
