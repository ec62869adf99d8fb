// Package views renders the server-side HTML pages.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
)

const pkg = "views/"

const (
	PageLogin         = "login"
	PageRegister      = "register"
	PageProfile       = "profile"
	PageProfileEdit   = "profile_edit"
	PageUsers         = "users"
	PageConfirm       = "confirm"
	PageDocuments     = "documents"
	PageDocumentNew   = "document_new"
	PageDocument      = "document"
	PageWorkspaces    = "workspaces"
	PageWorkspaceForm = "workspace_form"
	PageWorkspace     = "workspace"
)

var pages = []string{
	PageLogin,
	PageRegister,
	PageProfile,
	PageProfileEdit,
	PageUsers,
	PageConfirm,
	PageDocuments,
	PageDocumentNew,
	PageDocument,
	PageWorkspaces,
	PageWorkspaceForm,
	PageWorkspace,
}

//go:embed templates/*.html
var templatesFS embed.FS

type Templates struct {
	log   *slog.Logger
	pages map[string]*template.Template
}

// New parses every page together with the shared layout.
func New(log *slog.Logger) (*Templates, error) {
	op := pkg + "New"

	t := &Templates{
		log:   log,
		pages: make(map[string]*template.Template, len(pages)),
	}

	for _, page := range pages {
		tmpl, err := template.New("layout.html").ParseFS(templatesFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("%s: parse %s: %w", op, page, err)
		}
		t.pages[page] = tmpl
	}

	return t, nil
}

// Render executes page into a buffer first so a template failure never
// leaves a half-written response.
func (t *Templates) Render(w http.ResponseWriter, status int, page string, data any) error {
	op := pkg + "Render"

	log := t.log.With(slog.String("op", op), slog.String("page", page))

	tmpl, ok := t.pages[page]
	if !ok {
		log.Error("unknown page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return fmt.Errorf("%s: unknown page %q", op, page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Error("failed to render page", slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return fmt.Errorf("%s: %w", op, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
