package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundhive/fundhive/internal/auth"
	"github.com/fundhive/fundhive/internal/handler/dto"
	"github.com/fundhive/fundhive/internal/service"
)

// CollaborationHandler handles HTTP requests for collaborations.
type CollaborationHandler struct {
	svc    *service.CollaborationService
	logger *slog.Logger
}

// NewCollaborationHandler creates a new CollaborationHandler.
func NewCollaborationHandler(svc *service.CollaborationService, logger *slog.Logger) *CollaborationHandler {
	return &CollaborationHandler{svc: svc, logger: logger}
}

// List handles GET /api/collaborations.
func (h *CollaborationHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.List(r.Context(), service.ListCollaborationsInput{
		Status:   r.URL.Query().Get("status"),
		Page:     queryInt(r, "page"),
		PageSize: pageSize(r),
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToCollaborationListResponse(result.Items, result.Total, result.Page, result.Pages))
}

// Active handles GET /api/collaborations/active.
func (h *CollaborationHandler) Active(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Active(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/collaborations/{id}.
func (h *CollaborationHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// ListAll handles GET /api/admin/collaborations.
func (h *CollaborationHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Create handles POST /api/admin/collaborations.
func (h *CollaborationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CollaborationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.svc.Create(r.Context(), service.CreateCollaborationInput{
		CreatedBy:   auth.UserIDFromContext(r.Context()),
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		ImageURL:    req.ImageURL,
		Partners:    req.Partners,
		Projects:    req.Projects,
		Status:      req.Status,
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// Update handles PUT /api/admin/collaborations/{id}.
func (h *CollaborationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateCollaborationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req.Patch())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// Delete handles DELETE /api/admin/collaborations/{id}.
func (h *CollaborationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Collaboration removed"})
}
