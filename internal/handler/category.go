package handler

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/fundhive/fundhive/internal/handler/dto"
	"github.com/fundhive/fundhive/internal/service"
)

// CategoryHandler serves category aggregates.
type CategoryHandler struct {
	svc    *service.CategoryService
	logger *slog.Logger
	clock  clock
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(svc *service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, logger: logger}
}

// Counts handles GET /api/categories.
func (h *CategoryHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.Counts(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, counts)
}

// Featured handles GET /api/categories/featured.
func (h *CategoryHandler) Featured(w http.ResponseWriter, r *http.Request) {
	featured, err := h.svc.Featured(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	names := make([]string, 0, len(featured))
	for name := range featured {
		names = append(names, name)
	}
	slices.Sort(names)

	now := h.clock.now()
	response := make([]dto.CategoryFeatured, 0, len(names))
	for _, name := range names {
		response = append(response, dto.CategoryFeatured{
			Category: name,
			Projects: dto.ToProjectResponses(featured[name], now),
		})
	}

	writeJSON(w, http.StatusOK, response)
}
