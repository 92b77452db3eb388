package handlers

import (
	"context"
	"net/http"

	"github.com/edupath/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProgressService is the interface that wraps methods for progress tracking
type ProgressService interface {
	// RecordLessonCompletion marks a lesson as completed for the caller
	//
	// "ctx" is the context for the request.
	// "caller" is the authenticated user.
	// "lessonID" is the ID of the lesson.
	//
	// Returns the updated lesson progress with the course progress and an error if any.
	RecordLessonCompletion(ctx context.Context, caller models.Caller, lessonID int) (*models.ProgressUpdateResponse, error)
	// UpdateLessonProgress applies a partial progress update to a lesson of a course
	//
	// "ctx" is the context for the request.
	// "caller" is the authenticated user.
	// "courseID" is the ID of the course.
	// "lessonID" is the ID of the lesson.
	// "req" is the progress update.
	//
	// Returns the updated lesson progress with the course progress and an error if any.
	UpdateLessonProgress(ctx context.Context, caller models.Caller, courseID, lessonID int, req *models.ProgressUpdateRequest) (*models.ProgressUpdateResponse, error)
	// GetCourseProgressDetail retrieves the caller's progress for a course with module and lesson detail
	//
	// "ctx" is the context for the request.
	// "caller" is the authenticated user.
	// "courseID" is the ID of the course.
	//
	// Returns the progress detail and an error if any.
	GetCourseProgressDetail(ctx context.Context, caller models.Caller, courseID int) (*models.CourseProgressDetail, error)
	// GetMyProgress retrieves a progress summary for every course the caller is enrolled in
	//
	// "ctx" is the context for the request.
	// "caller" is the authenticated user.
	//
	// Returns a list of summaries and an error if any.
	GetMyProgress(ctx context.Context, caller models.Caller) ([]models.CourseProgressSummary, error)
}

// ProgressHandler handles HTTP requests for progress tracking
type ProgressHandler struct {
	BaseHandler
	service ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(svc ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all progress handler routes
func (h *ProgressHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/progress", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/my-progress", h.GetMyProgress)
		r.Get("/courses/{course_id}/progress", h.GetCourseProgress)
		r.Put("/courses/{course_id}/lessons/{lesson_id}/progress", h.UpdateLessonProgress)
	})
}

// UpdateLessonProgress handles PUT /api/v1/progress/courses/{course_id}/lessons/{lesson_id}/progress
// @Summary Update lesson progress
// @Description Update completion state and percentage of a lesson and recompute the course progress. The caller must be enrolled in the course.
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path int true "Course ID"
// @Param lesson_id path int true "Lesson ID"
// @Param request body models.ProgressUpdateRequest true "Progress update"
// @Success 200 {object} models.ProgressUpdateResponse "Updated progress"
// @Failure 400 {object} ValidationErrorResponse "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled"
// @Failure 404 {object} map[string]string "Course or lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/progress/courses/{course_id}/lessons/{lesson_id}/progress [put]
func (h *ProgressHandler) UpdateLessonProgress(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.Caller(w, r)
	if !ok {
		return
	}

	courseID, ok := h.PathID(w, r, "course_id")
	if !ok {
		return
	}
	lessonID, ok := h.PathID(w, r, "lesson_id")
	if !ok {
		return
	}

	var req models.ProgressUpdateRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.UpdateLessonProgress(r.Context(), caller, courseID, lessonID, &req)
	if err != nil {
		h.HandleServiceError(w, r, err, "update lesson progress")
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// GetCourseProgress handles GET /api/v1/progress/courses/{course_id}/progress
// @Summary Get course progress
// @Description Get the caller's progress for a course with per-module and per-lesson detail
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path int true "Course ID"
// @Success 200 {object} models.CourseProgressDetail "Course progress"
// @Failure 400 {object} map[string]string "Invalid course ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/progress/courses/{course_id}/progress [get]
func (h *ProgressHandler) GetCourseProgress(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.Caller(w, r)
	if !ok {
		return
	}

	courseID, ok := h.PathID(w, r, "course_id")
	if !ok {
		return
	}

	detail, err := h.service.GetCourseProgressDetail(r.Context(), caller, courseID)
	if err != nil {
		h.HandleServiceError(w, r, err, "get course progress")
		return
	}

	h.RespondJSON(w, http.StatusOK, detail)
}

// GetMyProgress handles GET /api/v1/progress/my-progress
// @Summary Get my progress
// @Description Get a progress summary for every course the caller is enrolled in
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.CourseProgressSummary "Progress summaries"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/progress/my-progress [get]
func (h *ProgressHandler) GetMyProgress(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.Caller(w, r)
	if !ok {
		return
	}

	summaries, err := h.service.GetMyProgress(r.Context(), caller)
	if err != nil {
		h.HandleServiceError(w, r, err, "get progress summary")
		return
	}
	if summaries == nil {
		summaries = []models.CourseProgressSummary{}
	}

	h.RespondJSON(w, http.StatusOK, summaries)
}
