package workspaces

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"insightflow/internal/http/views"
	"insightflow/internal/models"
	"insightflow/internal/session"
	utils "insightflow/internal/utils/http_errors"
)

const (
	maxFormMemory = 10 << 20
	iconField     = "icon"

	msgMissingFields = "name, description, thematic area and icon are required"
	msgCreateFailed  = "failed to create workspace"
	msgEditFailed    = "failed to update workspace"
	msgBadForm       = "could not read the form"
)

func NewForm(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, rd Renderer) {
	_ = rd.Render(w, http.StatusOK, views.PageWorkspaceForm, views.WorkspaceFormPage{
		Base:   views.NewBase(ctx, "New workspace"),
		Action: listPath,
	})
}

// Create validates the form before calling the service. The owner is the
// session user.
func Create(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, wc WorkspaceCreator, rd Renderer) {
	op := pkg + "Create"

	log = log.With(slog.String("op", op))

	page := views.WorkspaceFormPage{
		Base:   views.NewBase(ctx, "New workspace"),
		Action: listPath,
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		log.Warn("failed to parse multipart form", slog.String("error", err.Error()))
		page.Error = msgBadForm
		_ = rd.Render(w, http.StatusBadRequest, views.PageWorkspaceForm, page)
		return
	}

	page.Name = strings.TrimSpace(r.FormValue("name"))
	page.Description = strings.TrimSpace(r.FormValue("description"))
	page.ThematicArea = strings.TrimSpace(r.FormValue("thematicArea"))

	icon, closeIcon, err := formIcon(r)
	if err != nil {
		log.Warn("failed to read icon", slog.String("error", err.Error()))
		page.Error = msgBadForm
		_ = rd.Render(w, http.StatusBadRequest, views.PageWorkspaceForm, page)
		return
	}
	defer closeIcon()

	req := models.CreateWorkspaceRequest{
		Name:         page.Name,
		Description:  page.Description,
		ThematicArea: page.ThematicArea,
		Icon:         icon,
		OwnerID:      session.UserIDFromContext(ctx),
	}

	if err := req.Validate(); err != nil {
		page.Error = msgMissingFields
		_ = rd.Render(w, http.StatusBadRequest, views.PageWorkspaceForm, page)
		return
	}

	env, err := wc.Create(ctx, req)
	if err != nil {
		log.Warn("failed to create workspace", slog.String("error", err.Error()))
		page.Error = utils.UserMessage(err, msgCreateFailed)
		_ = rd.Render(w, utils.Status(err), views.PageWorkspaceForm, page)
		return
	}

	if !env.IsSuccess {
		page.Error = envelopeMessage(env, msgCreateFailed)
		_ = rd.Render(w, http.StatusBadRequest, views.PageWorkspaceForm, page)
		return
	}

	if env.Data != nil && env.Data.ID != "" {
		utils.SeeOther(w, r, workspacePath(env.Data.ID))
		return
	}

	utils.SeeOther(w, r, listPath)
}

func EditForm(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, workspaceID string, wp WorkspaceProvider, rd Renderer) {
	op := pkg + "EditForm"

	log = log.With(slog.String("op", op), slog.String("workspace_id", workspaceID))

	ws, ok := load(ctx, log, workspaceID, wp)
	if !ok {
		utils.SeeOther(w, r, listPath)
		return
	}

	_ = rd.Render(w, http.StatusOK, views.PageWorkspaceForm, editPage(ctx, ws))
}

// Edit sends only the text fields that differ from the stored workspace and
// the icon when a new one was chosen.
func Edit(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, workspaceID string, we WorkspaceEditor, rd Renderer) {
	op := pkg + "Edit"

	log = log.With(slog.String("op", op), slog.String("workspace_id", workspaceID))

	current, ok := load(ctx, log, workspaceID, we)
	if !ok {
		utils.SeeOther(w, r, listPath)
		return
	}

	page := editPage(ctx, current)

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		log.Warn("failed to parse multipart form", slog.String("error", err.Error()))
		page.Error = msgBadForm
		_ = rd.Render(w, http.StatusBadRequest, views.PageWorkspaceForm, page)
		return
	}

	page.Name = r.FormValue("name")
	page.Description = r.FormValue("description")
	page.ThematicArea = r.FormValue("thematicArea")

	icon, closeIcon, err := formIcon(r)
	if err != nil {
		log.Warn("failed to read icon", slog.String("error", err.Error()))
		page.Error = msgBadForm
		_ = rd.Render(w, http.StatusBadRequest, views.PageWorkspaceForm, page)
		return
	}
	defer closeIcon()

	req := models.EditWorkspaceRequest{
		Name:         changed(page.Name, current.Name),
		Description:  changed(page.Description, current.Description),
		ThematicArea: changed(page.ThematicArea, current.ThematicArea),
		Icon:         icon,
	}

	if req.IsEmpty() {
		utils.SeeOther(w, r, workspacePath(workspaceID))
		return
	}

	env, err := we.Edit(ctx, workspaceID, req)
	if err != nil {
		log.Warn("failed to edit workspace", slog.String("error", err.Error()))
		page.Error = utils.UserMessage(err, msgEditFailed)
		_ = rd.Render(w, utils.Status(err), views.PageWorkspaceForm, page)
		return
	}

	if !env.IsSuccess {
		page.Error = envelopeMessage(env, msgEditFailed)
		_ = rd.Render(w, http.StatusBadRequest, views.PageWorkspaceForm, page)
		return
	}

	utils.SeeOther(w, r, workspacePath(workspaceID))
}

// formIcon returns the uploaded icon, or nil when none was chosen. The
// returned func releases the upload.
func formIcon(r *http.Request) (*models.Upload, func(), error) {
	file, header, err := r.FormFile(iconField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}

	if header.Size == 0 && header.Filename == "" {
		file.Close()
		return nil, func() {}, nil
	}

	return uploadFrom(file, header), func() { file.Close() }, nil
}

func uploadFrom(file multipart.File, header *multipart.FileHeader) *models.Upload {
	return &models.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      file,
	}
}

func changed(value, current string) *string {
	if value == current {
		return nil
	}
	return &value
}

func envelopeMessage[T any](env *models.Envelope[T], fallback string) string {
	if env.Message != "" {
		return env.Message
	}
	return fallback
}

func editPage(ctx context.Context, ws *models.Workspace) views.WorkspaceFormPage {
	return views.WorkspaceFormPage{
		Base:         views.NewBase(ctx, "Edit workspace"),
		Action:       workspacePath(ws.ID),
		Current:      ws,
		Name:         ws.Name,
		Description:  ws.Description,
		ThematicArea: ws.ThematicArea,
	}
}

func workspacePath(id string) string {
	return listPath + "/" + url.PathEscape(id)
}
