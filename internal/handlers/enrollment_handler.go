package handlers

import (
	"context"
	"net/http"

	"github.com/edupath/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EnrollmentService is the interface that wraps methods for course enrollment
type EnrollmentService interface {
	// Enroll enrolls the caller in a course
	//
	// "ctx" is the context for the request.
	// "caller" is the authenticated user.
	// "courseID" is the ID of the course.
	//
	// Returns the enrollment confirmation and an error if any.
	Enroll(ctx context.Context, caller models.Caller, courseID int) (*models.EnrollmentResponse, error)
	// ListMyCourses retrieves the courses the caller is enrolled in
	//
	// "ctx" is the context for the request.
	// "caller" is the authenticated user.
	//
	// Returns a list of enrolled courses and an error if any.
	ListMyCourses(ctx context.Context, caller models.Caller) ([]models.EnrolledCourse, error)
}

// EnrollmentHandler handles HTTP requests for enrollments
type EnrollmentHandler struct {
	BaseHandler
	service EnrollmentService
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(svc EnrollmentService, logger *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all enrollment handler routes
func (h *EnrollmentHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/enrollments", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListMyCourses)
		r.Post("/courses/{course_id}", h.Enroll)
	})
}

// Enroll handles POST /api/v1/enrollments/courses/{course_id}
// @Summary Enroll in course
// @Description Enroll the authenticated student in a course
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path int true "Course ID"
// @Success 201 {object} models.EnrollmentResponse "Enrollment created"
// @Failure 400 {object} map[string]string "Invalid course ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Only students can enroll"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 409 {object} map[string]string "Already enrolled"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/enrollments/courses/{course_id} [post]
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.Caller(w, r)
	if !ok {
		return
	}

	courseID, ok := h.PathID(w, r, "course_id")
	if !ok {
		return
	}

	resp, err := h.service.Enroll(r.Context(), caller, courseID)
	if err != nil {
		h.HandleServiceError(w, r, err, "enroll")
		return
	}

	h.RespondJSON(w, http.StatusCreated, resp)
}

// ListMyCourses handles GET /api/v1/enrollments
// @Summary List my courses
// @Description List the courses the caller is enrolled in
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.EnrolledCourse "Enrolled courses"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/enrollments [get]
func (h *EnrollmentHandler) ListMyCourses(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.Caller(w, r)
	if !ok {
		return
	}

	courses, err := h.service.ListMyCourses(r.Context(), caller)
	if err != nil {
		h.HandleServiceError(w, r, err, "list enrollments")
		return
	}
	if courses == nil {
		courses = []models.EnrolledCourse{}
	}

	h.RespondJSON(w, http.StatusOK, courses)
}
