package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"insightflow/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(backend string) *config.Config {
	return &config.Config{
		Env: "local",
		Services: config.Services{
			UserURL:      "http://users.local",
			DocumentURL:  "http://documents.local",
			WorkspaceURL: "http://workspaces.local",
		},
		Session: config.Session{
			Backend:    backend,
			CookieName: "sid",
		},
	}
}

func TestNewApp_LocalBackends(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, backend := range []string{config.BackendMemory, config.BackendFile} {
		cfg := testConfig(backend)
		cfg.Session.FilePath = filepath.Join(t.TempDir(), "session.json")

		a, err := NewApp(context.Background(), log, cfg)
		require.NoError(t, err, backend)

		assert.NotNil(t, a.Deps.Slots)
		assert.NotNil(t, a.Deps.Users)
		assert.NotNil(t, a.Deps.Documents)
		assert.NotNil(t, a.Deps.Workspaces)
		assert.NotNil(t, a.Deps.Renderer)
		assert.Equal(t, "sid", a.Deps.Session.CookieName)
		assert.NoError(t, a.Close())
	}
}

func TestNewApp_UnknownBackend(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewApp(context.Background(), log, testConfig("etcd"))
	require.Error(t, err)
}
