package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundhive/fundhive/internal/auth"
	"github.com/fundhive/fundhive/internal/handler/dto"
	"github.com/fundhive/fundhive/internal/service"
)

// EventHandler handles HTTP requests for events.
type EventHandler struct {
	svc    *service.EventService
	logger *slog.Logger
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc *service.EventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{svc: svc, logger: logger}
}

// List handles GET /api/events.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result, err := h.svc.List(r.Context(), service.ListEventsInput{
		Category: query.Get("category"),
		Status:   query.Get("status"),
		Page:     queryInt(r, "page"),
		PageSize: pageSize(r),
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToEventListResponse(result.Items, result.Total, result.Page, result.Pages))
}

// Upcoming handles GET /api/events/upcoming.
func (h *EventHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.Upcoming(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// Get handles GET /api/events/{id}.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// Register handles POST /api/events/{id}/register.
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.Register(r.Context(), chi.URLParam(r, "id"), auth.UserIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// ListAll handles GET /api/admin/events.
func (h *EventHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// Create handles POST /api/admin/events.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.EventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := h.svc.Create(r.Context(), service.CreateEventInput{
		OrganizerID:      auth.UserIDFromContext(r.Context()),
		Title:            req.Title,
		Description:      req.Description,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Location:         req.Location,
		ImageURL:         req.ImageURL,
		Category:         req.Category,
		IsVirtual:        req.IsVirtual,
		RegistrationLink: req.RegistrationLink,
		RelatedProjects:  req.RelatedProjects,
		Status:           req.Status,
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// Update handles PUT /api/admin/events/{id}.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req.Patch())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// Delete handles DELETE /api/admin/events/{id}.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Event removed"})
}
