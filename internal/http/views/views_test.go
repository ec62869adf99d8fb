package views

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"insightflow/internal/models"
	memoryslotrepo "insightflow/internal/repositories/memory/slot"
	"insightflow/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTemplates(t *testing.T) *Templates {
	t.Helper()

	tmpl, err := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return tmpl
}

func TestNew_ParsesEveryPage(t *testing.T) {
	tmpl := newTestTemplates(t)

	for _, page := range pages {
		assert.Contains(t, tmpl.pages, page)
	}
}

func TestRender_EscapesAndSetsStatus(t *testing.T) {
	tmpl := newTestTemplates(t)

	w := httptest.NewRecorder()
	err := tmpl.Render(w, http.StatusBadRequest, PageLogin, LoginPage{
		Base:  Base{Title: "Log in", Error: "<b>bad</b> credentials"},
		Email: "ana@x.io",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "&lt;b&gt;bad&lt;/b&gt; credentials")
	assert.Contains(t, body, `value="ana@x.io"`)
	assert.NotContains(t, body, `action="/logout"`)
}

func TestRender_DocumentContent(t *testing.T) {
	tmpl := newTestTemplates(t)

	w := httptest.NewRecorder()
	err := tmpl.Render(w, http.StatusOK, PageDocument, DocumentPage{
		Base:    Base{Title: "Notes", Authenticated: true},
		ID:      "d-1",
		Content: "[\n  {}\n]",
	})
	require.NoError(t, err)

	body := w.Body.String()
	assert.Contains(t, body, "[\n  {}\n]")
	assert.Contains(t, body, `action="/documents/d-1"`)
	assert.Contains(t, body, `action="/logout"`)
}

func TestRender_WorkspaceWithoutMembers(t *testing.T) {
	tmpl := newTestTemplates(t)

	w := httptest.NewRecorder()
	err := tmpl.Render(w, http.StatusOK, PageWorkspace, WorkspacePage{
		Base:      Base{Title: "Research"},
		Workspace: models.Workspace{ID: "w-1", Name: "Research", Members: []string{}},
	})
	require.NoError(t, err)
	assert.Contains(t, w.Body.String(), "No members.")
}

func TestRender_UnknownPage(t *testing.T) {
	tmpl := newTestTemplates(t)

	w := httptest.NewRecorder()
	err := tmpl.Render(w, http.StatusOK, "missing", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestNewBase(t *testing.T) {
	ctx := context.Background()
	assert.False(t, NewBase(ctx, "Home").Authenticated)

	slots := memoryslotrepo.New()
	require.NoError(t, slots.Set(ctx, session.Key("sid", session.SlotUserID), "u-1"))
	s, err := session.Open(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)), slots, "sid")
	require.NoError(t, err)

	base := NewBase(session.WithStore(ctx, s), "Home")
	assert.True(t, base.Authenticated)
	assert.Equal(t, "Home", base.Title)
}
