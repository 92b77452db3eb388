package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/edupath/backend/internal/models"
)

type quizResultRepository struct {
	db *sql.DB
}

// NewQuizResultRepository creates a new quiz result repository
func NewQuizResultRepository(db *sql.DB) *quizResultRepository {
	return &quizResultRepository{
		db: db,
	}
}

// Exists checks if the user already has a result for the quiz
func (r *quizResultRepository) Exists(ctx context.Context, userID, quizID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM quiz_results WHERE user_id = ? AND quiz_id = ?)`

	var exists bool
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, userID, quizID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check quiz result existence: %w", err)
	}

	return exists, nil
}

// Create inserts a result and sets its ID; an existing (user, quiz) result yields models.ErrConflict
func (r *quizResultRepository) Create(ctx context.Context, result *models.QuizResult) error {
	query := `
		INSERT INTO quiz_results (user_id, quiz_id, score, passed, completed_at, time_spent)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	res, err := conn(ctx, r.db).ExecContext(ctx, query,
		result.UserID,
		result.QuizID,
		result.Score,
		result.Passed,
		result.CompletedAt,
		result.TimeSpent,
	)
	if isDuplicateKey(err) {
		return fmt.Errorf("quiz already submitted: %w", models.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create quiz result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	result.ID = int(id)
	return nil
}

// CreateAnswers inserts the answers of a result in a single statement
func (r *quizResultRepository) CreateAnswers(ctx context.Context, answers []models.QuizAnswer) error {
	if len(answers) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(answers))
	args := make([]any, 0, len(answers)*7)
	for _, answer := range answers {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			answer.ResultID,
			answer.UserID,
			answer.QuizID,
			answer.QuestionID,
			answer.OptionID,
			answer.AnswerText,
			answer.IsCorrect,
		)
	}

	query := `
		INSERT INTO quiz_answers (result_id, user_id, quiz_id, question_id, option_id, answer_text, is_correct)
		VALUES ` + strings.Join(placeholders, ", ")

	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create quiz answers: %w", err)
	}

	return nil
}

// DeleteByUserAndQuiz removes a user's result and answers for a quiz.
// Returns whether a result existed.
func (r *quizResultRepository) DeleteByUserAndQuiz(ctx context.Context, userID, quizID int) (bool, error) {
	db := conn(ctx, r.db)

	if _, err := db.ExecContext(ctx, `DELETE FROM quiz_answers WHERE user_id = ? AND quiz_id = ?`, userID, quizID); err != nil {
		return false, fmt.Errorf("failed to delete quiz answers: %w", err)
	}

	result, err := db.ExecContext(ctx, `DELETE FROM quiz_results WHERE user_id = ? AND quiz_id = ?`, userID, quizID)
	if err != nil {
		return false, fmt.Errorf("failed to delete quiz result: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

const resultListQuery = `
	SELECT
		r.id, r.quiz_id, q.title, r.user_id, r.score, r.passed, r.completed_at, r.time_spent,
		l.id, l.title, c.id, c.title
	FROM quiz_results r
	JOIN quizzes q ON q.id = r.quiz_id
	JOIN lessons l ON l.id = q.lesson_id
	JOIN courses c ON c.id = l.course_id
`

// ListByQuiz retrieves all results of a quiz, best scores first
func (r *quizResultRepository) ListByQuiz(ctx context.Context, quizID int) ([]models.QuizResultListItem, error) {
	query := resultListQuery + `WHERE r.quiz_id = ? ORDER BY r.score DESC, r.completed_at`
	return r.list(ctx, query, quizID)
}

// ListByUser retrieves all results of a user, most recent first
func (r *quizResultRepository) ListByUser(ctx context.Context, userID int) ([]models.QuizResultListItem, error) {
	query := resultListQuery + `WHERE r.user_id = ? ORDER BY r.completed_at DESC, r.id DESC`
	return r.list(ctx, query, userID)
}

func (r *quizResultRepository) list(ctx context.Context, query string, arg int) ([]models.QuizResultListItem, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz results: %w", err)
	}
	defer rows.Close()

	items := make([]models.QuizResultListItem, 0)
	for rows.Next() {
		var item models.QuizResultListItem
		err := rows.Scan(
			&item.ID,
			&item.QuizID,
			&item.QuizTitle,
			&item.UserID,
			&item.Score,
			&item.Passed,
			&item.CompletedAt,
			&item.TimeSpent,
			&item.LessonID,
			&item.LessonTitle,
			&item.CourseID,
			&item.CourseTitle,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz result: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}
