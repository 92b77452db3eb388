package services

import (
	"context"
	"fmt"
	"time"

	"github.com/edupath/backend/internal/auth/policy"
	"github.com/edupath/backend/internal/middlewares"
	"github.com/edupath/backend/internal/models"
	"github.com/edupath/backend/internal/validation"
	"go.uber.org/zap"
)

// QuizRepository defines methods for quiz data access
type QuizRepository interface {
	// GetByID retrieves a quiz by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the quiz.
	//
	// Returns the quiz and an error if any.
	GetByID(ctx context.Context, id int) (*models.Quiz, error)
	// GetQuestions retrieves the questions of a quiz with their options, ordered by position
	//
	// "ctx" is the context for the request.
	// "quizID" is the ID of the quiz.
	//
	// Returns a list of questions and an error if any.
	GetQuestions(ctx context.Context, quizID int) ([]models.QuizQuestion, error)
	// Create creates a new quiz
	//
	// "ctx" is the context for the request.
	// "quiz" is the quiz to create; its ID is set on success.
	//
	// Returns an error if any.
	Create(ctx context.Context, quiz *models.Quiz) error
	// CreateQuestion creates a question with its options
	//
	// "ctx" is the context for the request.
	// "question" is the question to create; question and option IDs are set on success.
	//
	// Returns an error if any.
	CreateQuestion(ctx context.Context, question *models.QuizQuestion) error
	// SetActive updates the availability of a quiz
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the quiz.
	// "active" is the new availability.
	//
	// Returns an error if any.
	SetActive(ctx context.Context, id int, active bool) error
}

// QuizResultRepository defines methods for quiz result data access
type QuizResultRepository interface {
	// Exists checks if a user already has a result for a quiz
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "quizID" is the ID of the quiz.
	//
	// Returns a boolean and an error if any.
	Exists(ctx context.Context, userID, quizID int) (bool, error)
	// Create creates a new result; a duplicate (user, quiz) result yields models.ErrConflict
	//
	// "ctx" is the context for the request.
	// "result" is the result to create; its ID is set on success.
	//
	// Returns an error if any.
	Create(ctx context.Context, result *models.QuizResult) error
	// CreateAnswers creates the answers of a result
	//
	// "ctx" is the context for the request.
	// "answers" is the list of answers to create.
	//
	// Returns an error if any.
	CreateAnswers(ctx context.Context, answers []models.QuizAnswer) error
	// DeleteByUserAndQuiz deletes the result of a user for a quiz together with its answers
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "quizID" is the ID of the quiz.
	//
	// Returns whether a result existed and an error if any.
	DeleteByUserAndQuiz(ctx context.Context, userID, quizID int) (bool, error)
	// ListByQuiz retrieves all results of a quiz
	//
	// "ctx" is the context for the request.
	// "quizID" is the ID of the quiz.
	//
	// Returns a list of results and an error if any.
	ListByQuiz(ctx context.Context, quizID int) ([]models.QuizResultListItem, error)
	// ListByUser retrieves all results of a user
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	//
	// Returns a list of results and an error if any.
	ListByUser(ctx context.Context, userID int) ([]models.QuizResultListItem, error)
}

type quizService struct {
	txManager  TxManager
	quizRepo   QuizRepository
	resultRepo QuizResultRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewQuizService creates a new quiz grading service
func NewQuizService(txManager TxManager, quizRepo QuizRepository, resultRepo QuizResultRepository, logger *zap.Logger) *quizService {
	return &quizService{
		txManager:  txManager,
		quizRepo:   quizRepo,
		resultRepo: resultRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// SubmitQuiz grades the caller's first submission to a quiz and stores it.
// A second submission fails with models.ErrConflict.
func (s *quizService) SubmitQuiz(ctx context.Context, caller models.Caller, quizID int, submission *models.QuizSubmission) (*models.QuizSubmissionResult, error) {
	return s.grade(ctx, caller, quizID, submission, false)
}

// RetakeQuiz replaces the caller's previous result for a quiz with a newly graded submission
func (s *quizService) RetakeQuiz(ctx context.Context, caller models.Caller, quizID int, submission *models.QuizSubmission) (*models.QuizSubmissionResult, error) {
	return s.grade(ctx, caller, quizID, submission, true)
}

func (s *quizService) grade(ctx context.Context, caller models.Caller, quizID int, submission *models.QuizSubmission, retake bool) (*models.QuizSubmissionResult, error) {
	if err := policy.Require(caller.Role, policy.SubmitQuiz); err != nil {
		return nil, err
	}

	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsActive {
		return nil, fmt.Errorf("quiz is not active: %w", models.ErrInvalidState)
	}

	if !retake {
		exists, err := s.resultRepo.Exists(ctx, caller.ID, quizID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("quiz already submitted: %w", models.ErrConflict)
		}
	}

	questions, err := s.quizRepo.GetQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("quiz has no questions: %w", models.ErrInvalidState)
	}

	submitted, err := indexAnswers(questions, submission.Answers)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := &models.QuizResult{
		UserID:      caller.ID,
		QuizID:      quizID,
		CompletedAt: now,
	}
	if submission.TimeSpent != nil {
		result.TimeSpent = *submission.TimeSpent
	}

	response := &models.QuizSubmissionResult{
		QuizID:          quizID,
		StudentID:       caller.ID,
		SubmittedAt:     now,
		TimeSpent:       result.TimeSpent,
		TotalQuestions:  len(questions),
		DetailedResults: make([]models.QuestionResult, 0, len(questions)),
	}

	answers := make([]models.QuizAnswer, 0, len(questions))
	for _, question := range questions {
		graded := GradeQuestion(question, submitted[question.ID])

		response.PointsTotal += question.Points
		if graded.IsCorrect {
			response.CorrectAnswers++
			response.PointsEarned += question.Points
		}

		answers = append(answers, models.QuizAnswer{
			UserID:     caller.ID,
			QuizID:     quizID,
			QuestionID: question.ID,
			OptionID:   graded.OptionID,
			AnswerText: graded.AnswerText,
			IsCorrect:  graded.IsCorrect,
		})
		response.DetailedResults = append(response.DetailedResults, models.QuestionResult{
			QuestionID:    question.ID,
			QuestionText:  question.Text,
			QuestionType:  question.Type,
			StudentAnswer: graded.StudentAnswer,
			CorrectAnswer: graded.CorrectAnswer,
			IsCorrect:     graded.IsCorrect,
		})
	}

	result.Score = ComputeScore(response.CorrectAnswers, len(questions))
	result.Passed = IsPassed(result.Score, quiz.PassingScore)

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if retake {
			if _, err := s.resultRepo.DeleteByUserAndQuiz(ctx, caller.ID, quizID); err != nil {
				return err
			}
		}
		if err := s.resultRepo.Create(ctx, result); err != nil {
			return err
		}
		for i := range answers {
			answers[i].ResultID = result.ID
		}
		return s.resultRepo.CreateAnswers(ctx, answers)
	})
	if err != nil {
		s.logger.Error("failed to store quiz result",
			middlewares.RequestIDField(ctx),
			zap.Int("user_id", caller.ID),
			zap.Int("quiz_id", quizID),
			zap.Bool("retake", retake),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("quiz graded",
		zap.Int("user_id", caller.ID),
		zap.Int("quiz_id", quizID),
		zap.Float64("score", result.Score),
		zap.Bool("passed", result.Passed),
	)

	response.ID = result.ID
	response.Score = result.Score
	response.IsPassed = result.Passed
	response.Feedback = Feedback(result.Passed)

	return response, nil
}

// indexAnswers maps submitted answers by question ID, rejecting unknown and repeated questions
func indexAnswers(questions []models.QuizQuestion, answers []models.SubmittedAnswer) (map[int]models.AnswerValue, error) {
	known := make(map[int]struct{}, len(questions))
	for _, question := range questions {
		known[question.ID] = struct{}{}
	}

	submitted := make(map[int]models.AnswerValue, len(answers))
	var fields []validation.FieldError
	for i, answer := range answers {
		id := int(answer.QuestionID)
		field := fmt.Sprintf("answers[%d].questionId", i)
		if _, ok := known[id]; !ok {
			fields = append(fields, validation.FieldError{Field: field, Error: fmt.Sprintf("question %d does not belong to this quiz", id)})
			continue
		}
		if _, ok := submitted[id]; ok {
			fields = append(fields, validation.FieldError{Field: field, Error: fmt.Sprintf("question %d is answered more than once", id)})
			continue
		}
		submitted[id] = answer.Answer
	}

	if len(fields) > 0 {
		return nil, validation.NewValidationError("invalid answers", fields...)
	}

	return submitted, nil
}
