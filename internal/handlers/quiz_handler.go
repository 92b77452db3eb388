package handlers

import (
	"context"
	"net/http"

	"github.com/edupath/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// QuizService is the interface that wraps methods for grading quiz submissions
type QuizService interface {
	// SubmitQuiz grades the caller's first submission to a quiz
	//
	// "ctx" is the context for the request.
	// "caller" is the authenticated user.
	// "quizID" is the ID of the quiz.
	// "submission" holds the submitted answers.
	//
	// Returns the graded result and an error if any.
	SubmitQuiz(ctx context.Context, caller models.Caller, quizID int, submission *models.QuizSubmission) (*models.QuizSubmissionResult, error)
	// RetakeQuiz replaces the caller's previous result with a newly graded submission
	//
	// "ctx" is the context for the request.
	// "caller" is the authenticated user.
	// "quizID" is the ID of the quiz.
	// "submission" holds the submitted answers.
	//
	// Returns the graded result and an error if any.
	RetakeQuiz(ctx context.Context, caller models.Caller, quizID int, submission *models.QuizSubmission) (*models.QuizSubmissionResult, error)
}

// QuizAdminService is the interface that wraps methods for quiz authoring and results
type QuizAdminService interface {
	// CreateQuiz creates a quiz with its questions and options
	//
	// "ctx" is the context for the request.
	// "caller" is the authenticated user.
	// "req" is the quiz to create.
	//
	// Returns the created quiz with its answer key and an error if any.
	CreateQuiz(ctx context.Context, caller models.Caller, req *models.CreateQuizRequest) (*models.QuizView, error)
	// GetQuiz retrieves a quiz with its questions
	//
	// "ctx" is the context for the request.
	// "caller" is the authenticated user.
	// "quizID" is the ID of the quiz.
	//
	// Returns the quiz and an error if any.
	GetQuiz(ctx context.Context, caller models.Caller, quizID int) (*models.QuizView, error)
	// SetQuizActive publishes or unpublishes a quiz
	//
	// "ctx" is the context for the request.
	// "caller" is the authenticated user.
	// "quizID" is the ID of the quiz.
	// "active" is the new availability.
	//
	// Returns the updated quiz and an error if any.
	SetQuizActive(ctx context.Context, caller models.Caller, quizID int, active bool) (*models.QuizView, error)
	// ListQuizResults retrieves all results of a quiz
	//
	// "ctx" is the context for the request.
	// "caller" is the authenticated user.
	// "quizID" is the ID of the quiz.
	//
	// Returns a list of results and an error if any.
	ListQuizResults(ctx context.Context, caller models.Caller, quizID int) ([]models.QuizResultListItem, error)
	// ListMyResults retrieves the caller's quiz results
	//
	// "ctx" is the context for the request.
	// "caller" is the authenticated user.
	//
	// Returns a list of results and an error if any.
	ListMyResults(ctx context.Context, caller models.Caller) ([]models.QuizResultListItem, error)
}

// QuizHandler handles HTTP requests for quizzes
type QuizHandler struct {
	BaseHandler
	service      QuizService
	adminService QuizAdminService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(svc QuizService, adminService QuizAdminService, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		service:      svc,
		adminService: adminService,
	}
}

// RegisterRoutes registers all quiz handler routes
func (h *QuizHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/quizzes", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.CreateQuiz)
		r.Get("/results/me", h.ListMyResults)
		r.Get("/{quiz_id}", h.GetQuiz)
		r.Post("/{quiz_id}/submit", h.SubmitQuiz)
		r.Post("/{quiz_id}/retake", h.RetakeQuiz)
		r.Patch("/{quiz_id}/publish", h.PublishQuiz)
		r.Get("/{quiz_id}/results", h.ListQuizResults)
	})
}

// SubmitQuiz handles POST /api/v1/quizzes/{quiz_id}/submit
// @Summary Submit quiz
// @Description Grade the caller's answers to a quiz. Only the first submission is accepted; use the retake endpoint to replace it.
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quiz_id path int true "Quiz ID"
// @Param submission body models.QuizSubmission true "Answers"
// @Success 200 {object} models.QuizSubmissionResult "Graded submission"
// @Failure 400 {object} ValidationErrorResponse "Invalid submission"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Only students can submit quizzes"
// @Failure 404 {object} map[string]string "Quiz not found"
// @Failure 409 {object} map[string]string "Quiz already submitted"
// @Failure 422 {object} map[string]string "Quiz is not active or has no questions"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/quizzes/{quiz_id}/submit [post]
func (h *QuizHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	h.grade(w, r, h.service.SubmitQuiz, "submit quiz")
}

// RetakeQuiz handles POST /api/v1/quizzes/{quiz_id}/retake
// @Summary Retake quiz
// @Description Replace the caller's previous result for a quiz with a newly graded submission
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quiz_id path int true "Quiz ID"
// @Param submission body models.QuizSubmission true "Answers"
// @Success 200 {object} models.QuizSubmissionResult "Graded submission"
// @Failure 400 {object} ValidationErrorResponse "Invalid submission"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Only students can submit quizzes"
// @Failure 404 {object} map[string]string "Quiz not found"
// @Failure 422 {object} map[string]string "Quiz is not active or has no questions"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/quizzes/{quiz_id}/retake [post]
func (h *QuizHandler) RetakeQuiz(w http.ResponseWriter, r *http.Request) {
	h.grade(w, r, h.service.RetakeQuiz, "retake quiz")
}

type gradeFunc func(ctx context.Context, caller models.Caller, quizID int, submission *models.QuizSubmission) (*models.QuizSubmissionResult, error)

func (h *QuizHandler) grade(w http.ResponseWriter, r *http.Request, fn gradeFunc, action string) {
	caller, ok := h.Caller(w, r)
	if !ok {
		return
	}

	quizID, ok := h.PathID(w, r, "quiz_id")
	if !ok {
		return
	}

	var submission models.QuizSubmission
	if !h.DecodeAndValidate(w, r, &submission) {
		return
	}

	result, err := fn(r.Context(), caller, quizID, &submission)
	if err != nil {
		h.HandleServiceError(w, r, err, action)
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// CreateQuiz handles POST /api/v1/quizzes
// @Summary Create quiz
// @Description Create a quiz with questions and options for a lesson of a course the caller teaches
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quiz body models.CreateQuizRequest true "Quiz"
// @Success 201 {object} models.QuizView "Created quiz"
// @Failure 400 {object} ValidationErrorResponse "Invalid quiz"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not allowed to manage quizzes for this course"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/quizzes [post]
func (h *QuizHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.Caller(w, r)
	if !ok {
		return
	}

	var req models.CreateQuizRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	quiz, err := h.adminService.CreateQuiz(r.Context(), caller, &req)
	if err != nil {
		h.HandleServiceError(w, r, err, "create quiz")
		return
	}

	h.RespondJSON(w, http.StatusCreated, quiz)
}

// GetQuiz handles GET /api/v1/quizzes/{quiz_id}
// @Summary Get quiz
// @Description Get a quiz with its questions. The answer key is only included for teachers and admins.
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} models.QuizView "Quiz"
// @Failure 400 {object} map[string]string "Invalid quiz ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Quiz not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/quizzes/{quiz_id} [get]
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.Caller(w, r)
	if !ok {
		return
	}

	quizID, ok := h.PathID(w, r, "quiz_id")
	if !ok {
		return
	}

	quiz, err := h.adminService.GetQuiz(r.Context(), caller, quizID)
	if err != nil {
		h.HandleServiceError(w, r, err, "get quiz")
		return
	}

	h.RespondJSON(w, http.StatusOK, quiz)
}

// PublishQuiz handles PATCH /api/v1/quizzes/{quiz_id}/publish
// @Summary Publish or unpublish quiz
// @Description Toggle whether students can see and submit a quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quiz_id path int true "Quiz ID"
// @Param request body models.PublishQuizRequest true "Publication state"
// @Success 200 {object} models.QuizView "Updated quiz"
// @Failure 400 {object} ValidationErrorResponse "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Quiz not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/quizzes/{quiz_id}/publish [patch]
func (h *QuizHandler) PublishQuiz(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.Caller(w, r)
	if !ok {
		return
	}

	quizID, ok := h.PathID(w, r, "quiz_id")
	if !ok {
		return
	}

	var req models.PublishQuizRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	quiz, err := h.adminService.SetQuizActive(r.Context(), caller, quizID, *req.IsPublished)
	if err != nil {
		h.HandleServiceError(w, r, err, "publish quiz")
		return
	}

	h.RespondJSON(w, http.StatusOK, quiz)
}

// ListQuizResults handles GET /api/v1/quizzes/{quiz_id}/results
// @Summary List quiz results
// @Description List all results of a quiz for its teacher or an admin
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {array} models.QuizResultListItem "Results"
// @Failure 400 {object} map[string]string "Invalid quiz ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Quiz not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/quizzes/{quiz_id}/results [get]
func (h *QuizHandler) ListQuizResults(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.Caller(w, r)
	if !ok {
		return
	}

	quizID, ok := h.PathID(w, r, "quiz_id")
	if !ok {
		return
	}

	results, err := h.adminService.ListQuizResults(r.Context(), caller, quizID)
	if err != nil {
		h.HandleServiceError(w, r, err, "list quiz results")
		return
	}
	if results == nil {
		results = []models.QuizResultListItem{}
	}

	h.RespondJSON(w, http.StatusOK, results)
}

// ListMyResults handles GET /api/v1/quizzes/results/me
// @Summary List my quiz results
// @Description List the caller's quiz results
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.QuizResultListItem "Results"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/quizzes/results/me [get]
func (h *QuizHandler) ListMyResults(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.Caller(w, r)
	if !ok {
		return
	}

	results, err := h.adminService.ListMyResults(r.Context(), caller)
	if err != nil {
		h.HandleServiceError(w, r, err, "list my quiz results")
		return
	}
	if results == nil {
		results = []models.QuizResultListItem{}
	}

	h.RespondJSON(w, http.StatusOK, results)
}
