package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundhive/fundhive/internal/auth"
	"github.com/fundhive/fundhive/internal/handler/dto"
	"github.com/fundhive/fundhive/internal/service"
)

// ProjectHandler handles HTTP requests for project and backing operations.
type ProjectHandler struct {
	projects *service.ProjectService
	ledger   *service.LedgerService
	logger   *slog.Logger
	clock    clock
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects *service.ProjectService, ledger *service.LedgerService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		ledger:   ledger,
		logger:   logger,
	}
}

// List handles GET /api/projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result, err := h.projects.List(r.Context(), service.ListProjectsInput{
		Category: query.Get("category"),
		Search:   query.Get("search"),
		Sort:     query.Get("sort"),
		Page:     queryInt(r, "page"),
		PageSize: pageSize(r),
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectListResponse(result.Items, result.Total, result.Page, result.Pages, h.clock.now()))
}

// ByCategory handles GET /api/projects/category/{category}.
func (h *ProjectHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	result, err := h.projects.ByCategory(r.Context(), chi.URLParam(r, "category"), queryInt(r, "page"), pageSize(r))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectListResponse(result.Items, result.Total, result.Page, result.Pages, h.clock.now()))
}

// Trending handles GET /api/projects/trending.
func (h *ProjectHandler) Trending(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.Trending(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectResponses(projects, h.clock.now()))
}

// Get handles GET /api/projects/{id}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectResponse(project, h.clock.now()))
}

// Create handles POST /api/projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	goal, err := dto.WholeNumber(req.Goal)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "goal "+err.Error())
		return
	}

	project, err := h.projects.Create(r.Context(), service.CreateProjectInput{
		CreatorID:   auth.UserIDFromContext(r.Context()),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Goal:        goal,
		Deadline:    req.Deadline,
		ImageURL:    req.ImageURL,
		Risks:       req.Risks,
		FAQs:        req.FAQs,
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToProjectResponse(project, h.clock.now()))
}

// Update handles PUT /api/projects/{id}.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	patch, err := req.Patch()
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "goal "+err.Error())
		return
	}

	project, err := h.projects.Update(r.Context(), service.UpdateProjectInput{
		ID:          chi.URLParam(r, "id"),
		RequesterID: auth.UserIDFromContext(r.Context()),
		Patch:       patch,
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectResponse(project, h.clock.now()))
}

// Delete handles DELETE /api/projects/{id}.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.Delete(r.Context(), chi.URLParam(r, "id"), auth.UserIDFromContext(r.Context())); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Project removed"})
}

// Back handles POST /api/projects/{id}/back.
func (h *ProjectHandler) Back(w http.ResponseWriter, r *http.Request) {
	var req dto.BackProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	amount, err := dto.WholeNumber(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "amount "+err.Error())
		return
	}

	project, err := h.ledger.Back(r.Context(), service.BackInput{
		ProjectID: chi.URLParam(r, "id"),
		BackerID:  auth.UserIDFromContext(r.Context()),
		Amount:    amount,
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectResponse(project, h.clock.now()))
}

// Backers handles GET /api/projects/{id}/backers.
func (h *ProjectHandler) Backers(w http.ResponseWriter, r *http.Request) {
	backers, err := h.projects.Backers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BackersResponse{Items: backers, Total: int64(len(backers))})
}

// Save handles POST /api/projects/{id}/save.
func (h *ProjectHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.Save(r.Context(), chi.URLParam(r, "id"), auth.UserIDFromContext(r.Context())); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Project saved"})
}

// Unsave handles DELETE /api/projects/{id}/save.
func (h *ProjectHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.Unsave(r.Context(), chi.URLParam(r, "id"), auth.UserIDFromContext(r.Context())); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Project unsaved"})
}

// PostUpdate handles POST /api/projects/{id}/updates.
func (h *ProjectHandler) PostUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.PostUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	project, err := h.projects.PostUpdate(r.Context(), service.PostUpdateInput{
		ProjectID:   chi.URLParam(r, "id"),
		RequesterID: auth.UserIDFromContext(r.Context()),
		Title:       req.Title,
		Content:     req.Content,
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToProjectResponse(project, h.clock.now()))
}

