package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"insightflow/internal/cache/redis"
	documentclient "insightflow/internal/clients/document"
	"insightflow/internal/clients/rest"
	userclient "insightflow/internal/clients/user"
	workspaceclient "insightflow/internal/clients/workspace"
	"insightflow/internal/config"
	"insightflow/internal/dbs/postgres"
	"insightflow/internal/http/middleware"
	"insightflow/internal/http/server"
	"insightflow/internal/http/views"
	cacheslotrepo "insightflow/internal/repositories/cache/slot"
	slotrepo "insightflow/internal/repositories/db/slot"
	fileslotrepo "insightflow/internal/repositories/file/slot"
	memoryslotrepo "insightflow/internal/repositories/memory/slot"
)

type App struct {
	Deps server.Deps

	closers []io.Closer
}

func NewApp(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	a := &App{}

	slots, err := a.slotRepository(ctx, log, cfg)
	if err != nil {
		return nil, err
	}

	renderer, err := views.New(log)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	timeout := cfg.Services.Timeout

	a.Deps = server.Deps{
		Slots: slots,
		Session: middleware.SessionConfig{
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Session.CookieSecure,
		},
		Users:      userclient.New(log, rest.New(cfg.Services.UserURL, timeout, log)),
		Documents:  documentclient.New(log, rest.New(cfg.Services.DocumentURL, timeout, log)),
		Workspaces: workspaceclient.New(log, rest.New(cfg.Services.WorkspaceURL, timeout, log)),
		Renderer:   renderer,
	}

	return a, nil
}

func (a *App) slotRepository(ctx context.Context, log *slog.Logger, cfg *config.Config) (server.SlotRepository, error) {
	log = log.With(slog.String("session_backend", cfg.Session.Backend))

	switch cfg.Session.Backend {
	case config.BackendMemory:
		log.Info("session slots kept in memory")
		return memoryslotrepo.New(), nil

	case config.BackendFile:
		repo, err := fileslotrepo.New(cfg.Session.FilePath)
		if err != nil {
			log.Error("failed to prepare session file", "err", err)
			return nil, fmt.Errorf("failed to prepare session file: %w", err)
		}
		return repo, nil

	case config.BackendRedis:
		cache, err := redis.New(ctx, redis.Config{Addr: cfg.Cache.Addr, Password: cfg.Cache.Password, DB: cfg.Cache.DB})
		if err != nil {
			log.Error("failed connect to cache", "err", err)
			return nil, fmt.Errorf("failed connect to cache: %w", err)
		}
		a.closers = append(a.closers, cache)
		return cacheslotrepo.New(cache, cfg.Cache.SessionTTL), nil

	case config.BackendPostgres:
		db, err := postgres.New(ctx, postgres.Config{
			Addr:     cfg.DB.Addr,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			DB:       cfg.DB.DB,
			SSLMode:  cfg.DB.SSLMode,
		})
		if err != nil {
			log.Error("failed connect to db", "err", err)
			return nil, fmt.Errorf("failed connect to db: %w", err)
		}
		a.closers = append(a.closers, db)
		return slotrepo.NewRepository(db), nil
	}

	return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
}

// Close releases the connections opened for the session backend.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
