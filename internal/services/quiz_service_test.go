package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edupath/backend/internal/middlewares"
	"github.com/edupath/backend/internal/models"
	"github.com/edupath/backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fourQuestionQuiz returns an active quiz with one question of every type plus a second single-choice question
func fourQuestionQuiz() *mockQuizRepository {
	return &mockQuizRepository{
		quiz: &models.Quiz{ID: 5, LessonID: 2, Title: "Go basics", IsActive: true, PassingScore: 70},
		questions: []models.QuizQuestion{
			{ID: 1, Text: "2+2?", Type: models.QuestionTypeSingle, Points: 1, Options: []models.QuizOption{
				{ID: 11, Text: "3"}, {ID: 12, Text: "4", IsCorrect: true},
			}},
			{ID: 2, Text: "Pick even numbers", Type: models.QuestionTypeMultiple, Points: 2, Options: []models.QuizOption{
				{ID: 21, Text: "2", IsCorrect: true}, {ID: 22, Text: "3"}, {ID: 23, Text: "4", IsCorrect: true},
			}},
			{ID: 3, Text: "Keyword for concurrency?", Type: models.QuestionTypeText, Points: 3, CorrectAnswerText: strPtr("go")},
			{ID: 4, Text: "Zero value of int?", Type: models.QuestionTypeSingle, Points: 1, Options: []models.QuizOption{
				{ID: 41, Text: "0", IsCorrect: true}, {ID: 42, Text: "nil"},
			}},
		},
	}
}

func answer(questionID int, value models.AnswerValue) models.SubmittedAnswer {
	return models.SubmittedAnswer{QuestionID: models.FlexibleID(questionID), Answer: value}
}

func newTestQuizService(quizRepo *mockQuizRepository, resultRepo *mockQuizResultRepository) (*quizService, *mockTxManager) {
	tx := &mockTxManager{}
	svc := NewQuizService(tx, quizRepo, resultRepo, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc, tx
}

func TestNewQuizService(t *testing.T) {
	tx := &mockTxManager{}
	quizRepo := &mockQuizRepository{}
	resultRepo := &mockQuizResultRepository{}
	logger := zap.NewNop()

	svc := NewQuizService(tx, quizRepo, resultRepo, logger)

	assert.NotNil(t, svc)
	assert.Equal(t, tx, svc.txManager)
	assert.Equal(t, quizRepo, svc.quizRepo)
	assert.Equal(t, resultRepo, svc.resultRepo)
	assert.Equal(t, logger, svc.logger)
}

func TestQuizService_SubmitQuiz(t *testing.T) {
	timeSpent := 95

	tests := []struct {
		name            string
		answers         []models.SubmittedAnswer
		passingScore    int
		expectedScore   float64
		expectedPassed  bool
		expectedCorrect int
		expectedPoints  int
	}{
		{
			name: "three of four correct",
			answers: []models.SubmittedAnswer{
				answer(1, single("12")),
				answer(2, list("21", "23")),
				answer(3, single("GO")),
				answer(4, single("42")),
			},
			passingScore:    70,
			expectedScore:   75.0,
			expectedPassed:  true,
			expectedCorrect: 3,
			expectedPoints:  6,
		},
		{
			name: "three of four below threshold",
			answers: []models.SubmittedAnswer{
				answer(1, single("12")),
				answer(2, list("21", "23")),
				answer(3, single("go")),
			},
			passingScore:    80,
			expectedScore:   75.0,
			expectedCorrect: 3,
			expectedPoints:  6,
		},
		{
			name: "score equal to threshold passes",
			answers: []models.SubmittedAnswer{
				answer(1, single("12")),
				answer(4, single("41")),
			},
			passingScore:    50,
			expectedScore:   50.0,
			expectedPassed:  true,
			expectedCorrect: 2,
			expectedPoints:  2,
		},
		{
			name: "multiple choice subset is incorrect",
			answers: []models.SubmittedAnswer{
				answer(2, list("21")),
			},
			passingScore: 70,
		},
		{
			name:         "no answers",
			passingScore: 70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quizRepo := fourQuestionQuiz()
			quizRepo.quiz.PassingScore = tt.passingScore
			resultRepo := &mockQuizResultRepository{}
			svc, tx := newTestQuizService(quizRepo, resultRepo)

			result, err := svc.SubmitQuiz(context.Background(), student, 5, &models.QuizSubmission{
				Answers:   tt.answers,
				TimeSpent: &timeSpent,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.expectedScore, result.Score)
			assert.Equal(t, tt.expectedPassed, result.IsPassed)
			assert.Equal(t, tt.expectedCorrect, result.CorrectAnswers)
			assert.Equal(t, 4, result.TotalQuestions)
			assert.Equal(t, tt.expectedPoints, result.PointsEarned)
			assert.Equal(t, 7, result.PointsTotal)
			assert.Equal(t, 95, result.TimeSpent)
			assert.Equal(t, student.ID, result.StudentID)
			assert.Equal(t, 1, result.ID)
			assert.Equal(t, Feedback(tt.expectedPassed), result.Feedback)
			assert.Len(t, result.DetailedResults, 4)
			assert.Equal(t, 1, tx.called)

			require.Len(t, resultRepo.results, 1)
			assert.Equal(t, tt.expectedScore, resultRepo.results[0].Score)
			require.Len(t, resultRepo.answers, 4)
			for _, a := range resultRepo.answers {
				assert.Equal(t, 1, a.ResultID)
				assert.Equal(t, student.ID, a.UserID)
			}
		})
	}
}

func TestQuizService_SubmitQuiz_DetailedResults(t *testing.T) {
	svc, _ := newTestQuizService(fourQuestionQuiz(), &mockQuizResultRepository{})

	result, err := svc.SubmitQuiz(context.Background(), student, 5, &models.QuizSubmission{
		Answers: []models.SubmittedAnswer{
			answer(1, single("11")),
			answer(2, list("23", "21")),
			answer(3, single("Go")),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.QuestionResult{
		QuestionID: 1, QuestionText: "2+2?", QuestionType: models.QuestionTypeSingle,
		StudentAnswer: 11, CorrectAnswer: 12, IsCorrect: false,
	}, result.DetailedResults[0])
	assert.Equal(t, []int{21, 23}, result.DetailedResults[1].StudentAnswer)
	assert.True(t, result.DetailedResults[1].IsCorrect)
	assert.Equal(t, "Go", result.DetailedResults[2].StudentAnswer)
	assert.Equal(t, "go", result.DetailedResults[2].CorrectAnswer)
	assert.Nil(t, result.DetailedResults[3].StudentAnswer)
	assert.False(t, result.DetailedResults[3].IsCorrect)
	assert.Equal(t, 0, result.TimeSpent)
}

func TestQuizService_SubmitQuiz_Errors(t *testing.T) {
	tests := []struct {
		name        string
		caller      models.Caller
		quizID      int
		setup       func(q *mockQuizRepository, r *mockQuizResultRepository)
		answers     []models.SubmittedAnswer
		expectedErr error

		// the mock transaction does not roll back the result row written before a failing answers insert
		resultWritten bool
	}{
		{
			name:        "teacher cannot submit",
			caller:      teacher,
			quizID:      5,
			expectedErr: models.ErrAccessDenied,
		},
		{
			name:        "quiz not found",
			caller:      student,
			quizID:      99,
			expectedErr: models.ErrNotFound,
		},
		{
			name:   "inactive quiz",
			caller: student,
			quizID: 5,
			setup: func(q *mockQuizRepository, r *mockQuizResultRepository) {
				q.quiz.IsActive = false
			},
			expectedErr: models.ErrInvalidState,
		},
		{
			name:   "zero questions",
			caller: student,
			quizID: 5,
			setup: func(q *mockQuizRepository, r *mockQuizResultRepository) {
				q.questions = nil
			},
			expectedErr: models.ErrInvalidState,
		},
		{
			name:        "question from another quiz",
			caller:      student,
			quizID:      5,
			answers:     []models.SubmittedAnswer{answer(77, single("1"))},
			expectedErr: models.ErrValidation,
		},
		{
			name:        "question answered twice",
			caller:      student,
			quizID:      5,
			answers:     []models.SubmittedAnswer{answer(1, single("12")), answer(1, single("11"))},
			expectedErr: models.ErrValidation,
		},
		{
			name:   "answers insert fails",
			caller: student,
			quizID: 5,
			setup: func(q *mockQuizRepository, r *mockQuizResultRepository) {
				r.answersErr = errors.New("db down")
			},
			resultWritten: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quizRepo := fourQuestionQuiz()
			resultRepo := &mockQuizResultRepository{}
			if tt.setup != nil {
				tt.setup(quizRepo, resultRepo)
			}
			svc, _ := newTestQuizService(quizRepo, resultRepo)

			result, err := svc.SubmitQuiz(context.Background(), tt.caller, tt.quizID, &models.QuizSubmission{Answers: tt.answers})
			assert.Error(t, err)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			}
			assert.Nil(t, result)
			assert.Empty(t, resultRepo.answers)
			if !tt.resultWritten {
				assert.Empty(t, resultRepo.results)
			}
		})
	}
}

func TestQuizService_SubmitQuiz_LogsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	resultRepo := &mockQuizResultRepository{answersErr: errors.New("db down")}
	svc := NewQuizService(&mockTxManager{}, fourQuestionQuiz(), resultRepo, zap.New(core))

	ctx := middlewares.WithRequestID(context.Background(), "req-42")
	_, err := svc.SubmitQuiz(ctx, student, 5, &models.QuizSubmission{})
	require.Error(t, err)

	entries := logs.FilterMessage("failed to store quiz result").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
}

func TestQuizService_SubmitQuiz_ValidationFields(t *testing.T) {
	svc, _ := newTestQuizService(fourQuestionQuiz(), &mockQuizResultRepository{})

	_, err := svc.SubmitQuiz(context.Background(), student, 5, &models.QuizSubmission{
		Answers: []models.SubmittedAnswer{answer(1, single("12")), answer(77, single("1"))},
	})

	var vErr *validation.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.FieldMap(), "answers[1].questionId")
}

func TestQuizService_SubmitQuiz_Duplicate(t *testing.T) {
	resultRepo := &mockQuizResultRepository{}
	svc, _ := newTestQuizService(fourQuestionQuiz(), resultRepo)
	submission := &models.QuizSubmission{Answers: []models.SubmittedAnswer{answer(1, single("12"))}}

	_, err := svc.SubmitQuiz(context.Background(), student, 5, submission)
	require.NoError(t, err)

	result, err := svc.SubmitQuiz(context.Background(), student, 5, submission)
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Nil(t, result)
	assert.Len(t, resultRepo.results, 1)
	assert.Len(t, resultRepo.answers, 4)
}

func TestQuizService_SubmitQuiz_ConcurrentDuplicate(t *testing.T) {
	resultRepo := &mockQuizResultRepository{
		skipPreCheck: true,
		results:      []models.QuizResult{{ID: 1, UserID: student.ID, QuizID: 5}},
		nextID:       1,
	}
	svc, _ := newTestQuizService(fourQuestionQuiz(), resultRepo)

	result, err := svc.SubmitQuiz(context.Background(), student, 5, &models.QuizSubmission{})
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Nil(t, result)
	assert.Len(t, resultRepo.results, 1)
	assert.Empty(t, resultRepo.answers)
}

func TestQuizService_RetakeQuiz(t *testing.T) {
	resultRepo := &mockQuizResultRepository{}
	svc, tx := newTestQuizService(fourQuestionQuiz(), resultRepo)

	first, err := svc.SubmitQuiz(context.Background(), student, 5, &models.QuizSubmission{
		Answers: []models.SubmittedAnswer{answer(1, single("11"))},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, first.Score)

	retake, err := svc.RetakeQuiz(context.Background(), student, 5, &models.QuizSubmission{
		Answers: []models.SubmittedAnswer{
			answer(1, single("12")),
			answer(2, list("21", "23")),
			answer(3, single("go")),
			answer(4, single("41")),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, retake.Score)
	assert.True(t, retake.IsPassed)
	assert.True(t, resultRepo.deleteCalled)
	assert.Equal(t, 2, tx.called)
	require.Len(t, resultRepo.results, 1)
	assert.Equal(t, retake.ID, resultRepo.results[0].ID)
	assert.Len(t, resultRepo.answers, 4)
	for _, a := range resultRepo.answers {
		assert.Equal(t, retake.ID, a.ResultID)
	}
}

func TestQuizService_RetakeQuiz_WithoutPreviousResult(t *testing.T) {
	resultRepo := &mockQuizResultRepository{}
	svc, _ := newTestQuizService(fourQuestionQuiz(), resultRepo)

	result, err := svc.RetakeQuiz(context.Background(), student, 5, &models.QuizSubmission{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Score)
	assert.Len(t, resultRepo.results, 1)
}
