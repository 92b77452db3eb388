package handlers

import (
	"context"
	"net/http"

	"github.com/edupath/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LessonService is the interface that wraps methods for serving lesson content
type LessonService interface {
	// GetLessonContent retrieves a lesson with the caller's progress for it
	//
	// "ctx" is the context for the request.
	// "caller" is the authenticated user.
	// "lessonID" is the ID of the lesson.
	//
	// Returns the lesson content and an error if any.
	GetLessonContent(ctx context.Context, caller models.Caller, lessonID int) (*models.LessonContentResponse, error)
}

// LessonHandler handles HTTP requests for lessons
type LessonHandler struct {
	BaseHandler
	service         LessonService
	progressService ProgressService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(svc LessonService, progressService ProgressService, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		BaseHandler:     BaseHandler{Logger: logger},
		service:         svc,
		progressService: progressService,
	}
}

// RegisterRoutes registers all lesson handler routes
func (h *LessonHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/lessons", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/{lesson_id}", h.GetLesson)
		r.Post("/{lesson_id}/complete", h.CompleteLesson)
	})
}

// GetLesson handles GET /api/v1/lessons/{lesson_id}
// @Summary Get lesson content
// @Description Get a lesson with the caller's progress. Students must be enrolled and the lesson must be unlocked.
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Param lesson_id path int true "Lesson ID"
// @Success 200 {object} models.LessonContentResponse "Lesson content"
// @Failure 400 {object} map[string]string "Invalid lesson ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled or lesson locked"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/lessons/{lesson_id} [get]
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.Caller(w, r)
	if !ok {
		return
	}

	lessonID, ok := h.PathID(w, r, "lesson_id")
	if !ok {
		return
	}

	lesson, err := h.service.GetLessonContent(r.Context(), caller, lessonID)
	if err != nil {
		h.HandleServiceError(w, r, err, "get lesson")
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// CompleteLesson handles POST /api/v1/lessons/{lesson_id}/complete
// @Summary Complete lesson
// @Description Mark a lesson as completed and recompute the course progress
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Param lesson_id path int true "Lesson ID"
// @Success 200 {object} models.ProgressUpdateResponse "Updated progress"
// @Failure 400 {object} map[string]string "Invalid lesson ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/lessons/{lesson_id}/complete [post]
func (h *LessonHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.Caller(w, r)
	if !ok {
		return
	}

	lessonID, ok := h.PathID(w, r, "lesson_id")
	if !ok {
		return
	}

	resp, err := h.progressService.RecordLessonCompletion(r.Context(), caller, lessonID)
	if err != nil {
		h.HandleServiceError(w, r, err, "complete lesson")
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}
