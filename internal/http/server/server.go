package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"insightflow/internal/config"
	"insightflow/internal/http/handlers/auth"
	"insightflow/internal/http/handlers/docs"
	"insightflow/internal/http/handlers/user"
	"insightflow/internal/http/handlers/workspaces"
	"insightflow/internal/http/middleware"
	"insightflow/internal/models"

	"github.com/gorilla/mux"
)

// Deps are the collaborators the pages are served with.
type Deps struct {
	Slots      SlotRepository
	Session    middleware.SessionConfig
	Users      UserClient
	Documents  DocumentClient
	Workspaces WorkspaceClient
	Renderer   Renderer
}

func StartServer(ctx context.Context, cfg *config.HTTPServer, log *slog.Logger, deps Deps) error {
	srv := &http.Server{
		Addr:         cfg.Address,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
		Handler:      NewRouter(log, deps),
	}

	errChan := make(chan error, 1)

	go func() {
		log.Info("server started", slog.String("address", cfg.Address))
		if err := srv.ListenAndServe(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info("server closed gracefully")
			} else {
				log.Error("could not start server:", "error", err)
				errChan <- err
			}
		}
	}()
	select {
	case <-ctx.Done():
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("error shutting down server", "error", err)
			return err
		}
		log.Info("server exited gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

func NewRouter(log *slog.Logger, deps Deps) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.Logger(log))
	r.Use(middleware.Session(log, deps.Slots, deps.Session))

	setupRoutes(r, log, deps)

	return r
}

func setupRoutes(r *mux.Router, log *slog.Logger, deps Deps) {
	rd := deps.Renderer

	// GET login
	r.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		auth.LoginForm(r.Context(), log, w, r, rd)
	}).Methods(http.MethodGet)

	// POST login
	r.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		auth.Login(r.Context(), log, w, r, deps.Users, rd)
	}).Methods(http.MethodPost)

	// GET register
	r.HandleFunc("/register", func(w http.ResponseWriter, r *http.Request) {
		auth.RegisterForm(r.Context(), log, w, r, rd)
	}).Methods(http.MethodGet)

	// POST register
	r.HandleFunc("/register", func(w http.ResponseWriter, r *http.Request) {
		auth.Register(r.Context(), log, w, r, deps.Users, rd)
	}).Methods(http.MethodPost)

	// POST logout
	r.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		auth.Logout(r.Context(), log, w, r)
	}).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()

	protected.Use(middleware.Auth(log))

	protected.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/user", http.StatusSeeOther)
	}).Methods(http.MethodGet)

	setupUserRoutes(protected, log, deps)
	setupDocumentRoutes(protected, log, deps)
	setupWorkspaceRoutes(protected, log, deps)

	// Not allowed
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, models.ErrMethodNotAllowed.Error(), http.StatusMethodNotAllowed)
	})
}

func setupUserRoutes(r *mux.Router, log *slog.Logger, deps Deps) {
	rd := deps.Renderer

	// GET profile
	r.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		user.Profile(r.Context(), log, w, r, deps.Users, rd)
	}).Methods(http.MethodGet)

	// POST profile
	r.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		user.Update(r.Context(), log, w, r, deps.Users, rd)
	}).Methods(http.MethodPost)

	// GET profile edit form
	r.HandleFunc("/user/edit", func(w http.ResponseWriter, r *http.Request) {
		user.EditForm(r.Context(), log, w, r, deps.Users, rd)
	}).Methods(http.MethodGet)

	// GET account delete confirmation
	r.HandleFunc("/user/delete", func(w http.ResponseWriter, r *http.Request) {
		user.DeleteConfirm(r.Context(), log, w, r, rd)
	}).Methods(http.MethodGet)

	// POST account delete
	r.HandleFunc("/user/delete", func(w http.ResponseWriter, r *http.Request) {
		user.Delete(r.Context(), log, w, r, deps.Users, rd)
	}).Methods(http.MethodPost)

	// GET users
	r.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		user.List(r.Context(), log, w, r, deps.Users, rd)
	}).Methods(http.MethodGet)
}

func setupDocumentRoutes(r *mux.Router, log *slog.Logger, deps Deps) {
	rd := deps.Renderer

	// GET docs
	r.HandleFunc("/documents", func(w http.ResponseWriter, r *http.Request) {
		docs.List(r.Context(), log, w, r, deps.Documents, rd)
	}).Methods(http.MethodGet)

	// POST doc
	r.HandleFunc("/documents", func(w http.ResponseWriter, r *http.Request) {
		docs.Create(r.Context(), log, w, r, deps.Documents, rd)
	}).Methods(http.MethodPost)

	// GET new doc form, registered before {id}
	r.HandleFunc("/documents/new", func(w http.ResponseWriter, r *http.Request) {
		docs.NewForm(r.Context(), log, w, r, deps.Workspaces, rd)
	}).Methods(http.MethodGet)

	// GET doc by id
	r.HandleFunc("/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		docs.GetByID(r.Context(), log, w, r, mux.Vars(r)["id"], deps.Documents, rd)
	}).Methods(http.MethodGet)

	// POST doc by id
	r.HandleFunc("/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		docs.Save(r.Context(), log, w, r, mux.Vars(r)["id"], deps.Documents, rd)
	}).Methods(http.MethodPost)

	// GET doc delete confirmation
	r.HandleFunc("/documents/{id}/delete", func(w http.ResponseWriter, r *http.Request) {
		docs.DeleteConfirm(r.Context(), log, w, r, mux.Vars(r)["id"], rd)
	}).Methods(http.MethodGet)

	// POST doc delete
	r.HandleFunc("/documents/{id}/delete", func(w http.ResponseWriter, r *http.Request) {
		docs.Delete(r.Context(), log, w, r, mux.Vars(r)["id"], deps.Documents, rd)
	}).Methods(http.MethodPost)
}

func setupWorkspaceRoutes(r *mux.Router, log *slog.Logger, deps Deps) {
	rd := deps.Renderer

	// GET workspaces
	r.HandleFunc("/workspace", func(w http.ResponseWriter, r *http.Request) {
		workspaces.List(r.Context(), log, w, r, deps.Workspaces, rd)
	}).Methods(http.MethodGet)

	// POST workspace
	r.HandleFunc("/workspace", func(w http.ResponseWriter, r *http.Request) {
		workspaces.Create(r.Context(), log, w, r, deps.Workspaces, rd)
	}).Methods(http.MethodPost)

	// GET new workspace form, registered before {id}
	r.HandleFunc("/workspace/new", func(w http.ResponseWriter, r *http.Request) {
		workspaces.NewForm(r.Context(), log, w, r, rd)
	}).Methods(http.MethodGet)

	// GET workspace by id
	r.HandleFunc("/workspace/{id}", func(w http.ResponseWriter, r *http.Request) {
		workspaces.GetByID(r.Context(), log, w, r, mux.Vars(r)["id"], deps.Workspaces, rd)
	}).Methods(http.MethodGet)

	// POST workspace by id
	r.HandleFunc("/workspace/{id}", func(w http.ResponseWriter, r *http.Request) {
		workspaces.Edit(r.Context(), log, w, r, mux.Vars(r)["id"], deps.Workspaces, rd)
	}).Methods(http.MethodPost)

	// GET workspace edit form
	r.HandleFunc("/workspace/{id}/edit", func(w http.ResponseWriter, r *http.Request) {
		workspaces.EditForm(r.Context(), log, w, r, mux.Vars(r)["id"], deps.Workspaces, rd)
	}).Methods(http.MethodGet)

	// GET workspace delete confirmation
	r.HandleFunc("/workspace/{id}/delete", func(w http.ResponseWriter, r *http.Request) {
		workspaces.DeleteConfirm(r.Context(), log, w, r, mux.Vars(r)["id"], rd)
	}).Methods(http.MethodGet)

	// POST workspace delete
	r.HandleFunc("/workspace/{id}/delete", func(w http.ResponseWriter, r *http.Request) {
		workspaces.Delete(r.Context(), log, w, r, mux.Vars(r)["id"], deps.Workspaces, rd)
	}).Methods(http.MethodPost)
}
