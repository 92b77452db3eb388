package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProgressRecomputer recomputes stored course progress
type ProgressRecomputer interface {
	// RecomputeAll recomputes the course progress of every enrollment
	//
	// "ctx" is the context for the request.
	// "courseID" optionally restricts the recompute to one course.
	// "userID" optionally restricts the recompute to one user.
	//
	// Returns the number of recomputed enrollments and an error if any.
	RecomputeAll(ctx context.Context, courseID, userID *int) (int, error)
}

// RecomputeResponse reports the outcome of a progress recompute
type RecomputeResponse struct {
	Recomputed int `json:"recomputed"`
}

// MaintenanceHandler handles service-to-service maintenance requests
type MaintenanceHandler struct {
	BaseHandler
	recomputer ProgressRecomputer
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(recomputer ProgressRecomputer, logger *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		BaseHandler: BaseHandler{Logger: logger},
		recomputer:  recomputer,
	}
}

// RegisterRoutes registers all maintenance routes behind the API key middleware
func (h *MaintenanceHandler) RegisterRoutes(r chi.Router, apiKeyMiddleware func(http.Handler) http.Handler) {
	r.Route("/internal", func(r chi.Router) {
		r.Use(apiKeyMiddleware)
		r.Post("/progress/recompute", h.RecomputeProgress)
	})
}

// RecomputeProgress handles POST /api/v1/internal/progress/recompute
// @Summary Recompute course progress
// @Description Recompute the stored course progress of every enrollment, optionally filtered by course and user
// @Tags internal
// @Produce json
// @Security ServiceKeyAuth
// @Param course_id query int false "Course ID"
// @Param user_id query int false "User ID"
// @Success 200 {object} RecomputeResponse "Number of recomputed enrollments"
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Invalid API key"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/internal/progress/recompute [post]
func (h *MaintenanceHandler) RecomputeProgress(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.optionalQueryID(w, r, "course_id")
	if !ok {
		return
	}
	userID, ok := h.optionalQueryID(w, r, "user_id")
	if !ok {
		return
	}

	count, err := h.recomputer.RecomputeAll(r.Context(), courseID, userID)
	if err != nil {
		h.HandleServiceError(w, r, err, "recompute progress")
		return
	}

	h.RespondJSON(w, http.StatusOK, RecomputeResponse{Recomputed: count})
}

func (h *MaintenanceHandler) optionalQueryID(w http.ResponseWriter, r *http.Request, name string) (*int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid "+name)
		return nil, false
	}
	return &id, true
}
