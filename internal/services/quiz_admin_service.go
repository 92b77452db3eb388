package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edupath/backend/internal/auth/policy"
	"github.com/edupath/backend/internal/middlewares"
	"github.com/edupath/backend/internal/models"
	"github.com/edupath/backend/internal/validation"
	"go.uber.org/zap"
)

const (
	defaultPassingScore   = 70
	defaultQuestionPoints = 1
)

type quizAdminService struct {
	txManager  TxManager
	courseRepo CourseRepository
	lessonRepo LessonRepository
	quizRepo   QuizRepository
	resultRepo QuizResultRepository
	logger     *zap.Logger
}

// NewQuizAdminService creates a new quiz authoring service
func NewQuizAdminService(
	txManager TxManager,
	courseRepo CourseRepository,
	lessonRepo LessonRepository,
	quizRepo QuizRepository,
	resultRepo QuizResultRepository,
	logger *zap.Logger,
) *quizAdminService {
	return &quizAdminService{
		txManager:  txManager,
		courseRepo: courseRepo,
		lessonRepo: lessonRepo,
		quizRepo:   quizRepo,
		resultRepo: resultRepo,
		logger:     logger,
	}
}

// CreateQuiz creates a quiz with its questions and options for a lesson of a course the caller teaches
func (s *quizAdminService) CreateQuiz(ctx context.Context, caller models.Caller, req *models.CreateQuizRequest) (*models.QuizView, error) {
	if err := policy.Require(caller.Role, policy.ManageQuiz); err != nil {
		return nil, err
	}

	if err := validateQuestions(req.Questions); err != nil {
		return nil, err
	}

	lesson, err := s.lessonRepo.GetByID(ctx, req.LessonID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnership(ctx, caller, lesson.CourseID); err != nil {
		return nil, err
	}

	quiz := &models.Quiz{
		LessonID:     lesson.ID,
		Title:        req.Title,
		Description:  req.Description,
		IsActive:     true,
		PassingScore: defaultPassingScore,
		TimeLimit:    req.TimeLimit,
	}
	if req.PassingScore != nil {
		quiz.PassingScore = *req.PassingScore
	}
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}

	questions := make([]models.QuizQuestion, len(req.Questions))
	for i, q := range req.Questions {
		question := models.QuizQuestion{
			Text:     q.Text,
			Type:     q.Type,
			Points:   q.Points,
			Position: i + 1,
		}
		if question.Points == 0 {
			question.Points = defaultQuestionPoints
		}
		if q.Type == models.QuestionTypeText {
			answer := strings.TrimSpace(q.CorrectAnswer)
			question.CorrectAnswerText = &answer
		}
		for _, o := range q.Options {
			question.Options = append(question.Options, models.QuizOption{Text: o.Text, IsCorrect: o.IsCorrect})
		}
		questions[i] = question
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.quizRepo.Create(ctx, quiz); err != nil {
			return err
		}
		for i := range questions {
			questions[i].QuizID = quiz.ID
			if err := s.quizRepo.CreateQuestion(ctx, &questions[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create quiz",
			middlewares.RequestIDField(ctx),
			zap.Int("user_id", caller.ID),
			zap.Int("lesson_id", req.LessonID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("quiz created",
		zap.Int("quiz_id", quiz.ID),
		zap.Int("lesson_id", quiz.LessonID),
		zap.Int("questions", len(questions)),
	)

	return quizView(quiz, questions, true), nil
}

// validateQuestions checks the answer key of every question
func validateQuestions(questions []models.CreateQuestionRequest) error {
	var fields []validation.FieldError
	for i, q := range questions {
		field := fmt.Sprintf("questions[%d]", i)

		correct := 0
		for _, o := range q.Options {
			if o.IsCorrect {
				correct++
			}
		}

		switch q.Type {
		case models.QuestionTypeSingle:
			if correct != 1 {
				fields = append(fields, validation.FieldError{Field: field + ".options", Error: "single choice questions need exactly one correct option"})
			}
		case models.QuestionTypeMultiple:
			if correct == 0 {
				fields = append(fields, validation.FieldError{Field: field + ".options", Error: "multiple choice questions need at least one correct option"})
			}
		case models.QuestionTypeText:
			if len(q.Options) > 0 {
				fields = append(fields, validation.FieldError{Field: field + ".options", Error: "text questions cannot have options"})
			}
			if strings.TrimSpace(q.CorrectAnswer) == "" {
				fields = append(fields, validation.FieldError{Field: field + ".correctAnswer", Error: "text questions need a correct answer"})
			}
		}
	}

	if len(fields) > 0 {
		return validation.NewValidationError("invalid questions", fields...)
	}
	return nil
}

// GetQuiz returns a quiz with its questions.
// Students only see active quizzes and never the answer key.
func (s *quizAdminService) GetQuiz(ctx context.Context, caller models.Caller, quizID int) (*models.QuizView, error) {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	withKey := policy.Allows(caller.Role, policy.ViewAnswerKey)
	if withKey {
		if err := s.requireQuizOwnership(ctx, caller, quiz); err != nil {
			return nil, err
		}
	} else if !quiz.IsActive {
		return nil, fmt.Errorf("quiz %w", models.ErrNotFound)
	}

	questions, err := s.quizRepo.GetQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}

	return quizView(quiz, questions, withKey), nil
}

// SetQuizActive publishes or unpublishes a quiz
func (s *quizAdminService) SetQuizActive(ctx context.Context, caller models.Caller, quizID int, active bool) (*models.QuizView, error) {
	if err := policy.Require(caller.Role, policy.ManageQuiz); err != nil {
		return nil, err
	}

	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if err := s.requireQuizOwnership(ctx, caller, quiz); err != nil {
		return nil, err
	}

	if err := s.quizRepo.SetActive(ctx, quizID, active); err != nil {
		return nil, err
	}
	quiz.IsActive = active

	s.logger.Info("quiz availability changed",
		zap.Int("quiz_id", quizID),
		zap.Bool("active", active),
	)

	questions, err := s.quizRepo.GetQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}

	return quizView(quiz, questions, true), nil
}

// ListQuizResults returns all results of a quiz
func (s *quizAdminService) ListQuizResults(ctx context.Context, caller models.Caller, quizID int) ([]models.QuizResultListItem, error) {
	if err := policy.Require(caller.Role, policy.ViewResults); err != nil {
		return nil, err
	}

	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if err := s.requireQuizOwnership(ctx, caller, quiz); err != nil {
		return nil, err
	}

	return s.resultRepo.ListByQuiz(ctx, quizID)
}

// ListMyResults returns the caller's quiz result history
func (s *quizAdminService) ListMyResults(ctx context.Context, caller models.Caller) ([]models.QuizResultListItem, error) {
	return s.resultRepo.ListByUser(ctx, caller.ID)
}

func (s *quizAdminService) requireQuizOwnership(ctx context.Context, caller models.Caller, quiz *models.Quiz) error {
	if caller.Role == models.RoleAdmin {
		return nil
	}

	lesson, err := s.lessonRepo.GetByID(ctx, quiz.LessonID)
	if err != nil {
		return err
	}
	return s.requireOwnership(ctx, caller, lesson.CourseID)
}

// requireOwnership returns models.ErrAccessDenied unless the caller teaches the course or is an admin
func (s *quizAdminService) requireOwnership(ctx context.Context, caller models.Caller, courseID int) error {
	if caller.Role == models.RoleAdmin {
		return nil
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if course.InstructorID != caller.ID {
		return fmt.Errorf("you do not teach this course: %w", models.ErrAccessDenied)
	}
	return nil
}

func quizView(quiz *models.Quiz, questions []models.QuizQuestion, withKey bool) *models.QuizView {
	view := &models.QuizView{
		ID:           quiz.ID,
		LessonID:     quiz.LessonID,
		Title:        quiz.Title,
		Description:  quiz.Description,
		IsActive:     quiz.IsActive,
		PassingScore: quiz.PassingScore,
		TimeLimit:    quiz.TimeLimit,
		Questions:    make([]models.QuestionView, 0, len(questions)),
	}

	for _, question := range questions {
		qv := models.QuestionView{
			ID:      question.ID,
			Text:    question.Text,
			Type:    question.Type,
			Points:  question.Points,
			Options: make([]models.OptionView, 0, len(question.Options)),
		}
		if withKey {
			qv.CorrectAnswer = question.CorrectAnswerText
		}
		for _, option := range question.Options {
			ov := models.OptionView{ID: option.ID, Text: option.Text}
			if withKey {
				isCorrect := option.IsCorrect
				ov.IsCorrect = &isCorrect
			}
			qv.Options = append(qv.Options, ov)
		}
		view.Questions = append(view.Questions, qv)
	}

	return view
}
