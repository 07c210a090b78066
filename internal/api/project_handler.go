package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/copyforge-api/internal/api/shared"
	"github.com/phrazzld/copyforge-api/internal/domain"
	"github.com/phrazzld/copyforge-api/internal/service"
)

// CreateProjectRequest represents the request body for creating a new project
type CreateProjectRequest struct {
	Title    string `json:"title"    validate:"required,max=200"`
	Platform string `json:"platform" validate:"required"`
	Tone     string `json:"tone"     validate:"required"`
	Generate bool   `json:"generate"`
}

// UpdateProjectRequest represents the request body for PATCH /api/projects/{id}.
// Absent fields are left unchanged.
type UpdateProjectRequest struct {
	Title   *string `json:"title,omitempty"   validate:"omitempty,min=1,max=200"`
	Content *string `json:"content,omitempty"`
	Status  *string `json:"status,omitempty"  validate:"omitempty,oneof=Draft 'In Progress' Completed"`
}

// ProjectResponse represents the response data for a project
type ProjectResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Platform  string    `json:"platform"`
	Tone      string    `json:"tone"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	Words     int       `json:"words"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectListResponse wraps a page of projects.
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// ProjectHandler handles project-related HTTP requests
type ProjectHandler struct {
	projectService service.ProjectService
	validator      *validator.Validate
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		validator:      validator.New(),
	}
}

// CreateProject handles POST /api/projects requests
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := handleUserID(w, r)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), userID, service.CreateProjectInput{
		Title:    req.Title,
		Platform: req.Platform,
		Tone:     req.Tone,
		Generate: req.Generate,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create project")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, projectToResponse(project))
}

// ListProjects handles GET /api/projects requests
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := handleUserID(w, r)
	if !ok {
		return
	}

	limit, offset := parsePagination(r)
	projects, err := h.projectService.ListProjects(r.Context(), userID, limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list projects")
		return
	}

	resp := ProjectListResponse{
		Projects: make([]ProjectResponse, 0, len(projects)),
		Limit:    limit,
		Offset:   offset,
	}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, projectToResponse(p))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetProject handles GET /api/projects/{id} requests
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	userID, projectID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(r.Context(), userID, projectID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get project")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, projectToResponse(project))
}

// UpdateProject handles PATCH /api/projects/{id} requests
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	userID, projectID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	project, err := h.projectService.UpdateProject(r.Context(), userID, projectID, service.UpdateProjectInput{
		Title:   req.Title,
		Content: req.Content,
		Status:  req.Status,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update project")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, projectToResponse(project))
}

// DeleteProject handles DELETE /api/projects/{id} requests
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, projectID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(r.Context(), userID, projectID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete project")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetUsage handles GET /api/usage requests
func (h *ProjectHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	userID, ok := handleUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.projectService.UsageLastDays(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load usage")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// projectToResponse converts a domain.Project to a ProjectResponse
func projectToResponse(project *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:        project.ID.String(),
		UserID:    project.UserID.String(),
		Title:     project.Title,
		Platform:  project.Platform,
		Tone:      project.Tone,
		Content:   project.Content,
		Status:    string(project.Status),
		Words:     project.Words,
		CreatedAt: project.CreatedAt,
		UpdatedAt: project.UpdatedAt,
	}
}
