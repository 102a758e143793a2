package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundhive/fundhive/internal/auth"
	"github.com/fundhive/fundhive/internal/handler/dto"
	"github.com/fundhive/fundhive/internal/service"
)

// AdminHandler provides the administrator dashboard and project moderation.
// Routes are mounted behind middleware.RequireAdmin.
type AdminHandler struct {
	svc    *service.AdminService
	logger *slog.Logger
	clock  clock
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc *service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, logger: logger}
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	counts := dto.StatsCounts{
		Projects:       stats.Counts.Projects,
		Users:          stats.Counts.Users,
		Events:         stats.Counts.Events,
		Collaborations: stats.Counts.Collaborations,
		Funding:        stats.Counts.Funding,
	}
	writeJSON(w, http.StatusOK, dto.ToStatsResponse(counts, stats.RecentProjects, stats.RecentUsers, h.clock.now()))
}

// Projects handles GET /api/admin/projects.
func (h *AdminHandler) Projects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.ListProjects(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectResponses(projects, h.clock.now()))
}

// UpdateProject handles PUT /api/admin/projects/{id}. Status may be set here.
func (h *AdminHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	patch, err := req.Patch()
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "goal "+err.Error())
		return
	}

	project, err := h.svc.UpdateProject(r.Context(), chi.URLParam(r, "id"), auth.UserIDFromContext(r.Context()), patch)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectResponse(project, h.clock.now()))
}

// DeleteProject handles DELETE /api/admin/projects/{id}.
func (h *AdminHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProject(r.Context(), chi.URLParam(r, "id"), auth.UserIDFromContext(r.Context())); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Project removed"})
}
