package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/edupath/backend/internal/models"
)

type quizRepository struct {
	db *sql.DB
}

// NewQuizRepository creates a new quiz repository
func NewQuizRepository(db *sql.DB) *quizRepository {
	return &quizRepository{
		db: db,
	}
}

// GetByID retrieves a quiz by its ID
func (r *quizRepository) GetByID(ctx context.Context, id int) (*models.Quiz, error) {
	query := `
		SELECT id, lesson_id, title, COALESCE(description, ''), is_active, passing_score, time_limit, created_at
		FROM quizzes
		WHERE id = ?
		LIMIT 1
	`

	var (
		quiz      models.Quiz
		timeLimit sql.NullInt64
	)
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&quiz.ID,
		&quiz.LessonID,
		&quiz.Title,
		&quiz.Description,
		&quiz.IsActive,
		&quiz.PassingScore,
		&timeLimit,
		&quiz.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("quiz %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz by id: %w", err)
	}

	if timeLimit.Valid {
		limit := int(timeLimit.Int64)
		quiz.TimeLimit = &limit
	}

	return &quiz, nil
}

// GetQuestions retrieves the questions of a quiz with their options, ordered by position
func (r *quizRepository) GetQuestions(ctx context.Context, quizID int) ([]models.QuizQuestion, error) {
	db := conn(ctx, r.db)

	query := `
		SELECT id, quiz_id, question_text, question_type, points, correct_answer_text, position
		FROM quiz_questions
		WHERE quiz_id = ?
		ORDER BY position, id
	`

	rows, err := db.QueryContext(ctx, query, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []models.QuizQuestion
	index := make(map[int]int)
	for rows.Next() {
		var (
			question      models.QuizQuestion
			correctAnswer sql.NullString
		)
		err := rows.Scan(
			&question.ID,
			&question.QuizID,
			&question.Text,
			&question.Type,
			&question.Points,
			&correctAnswer,
			&question.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if correctAnswer.Valid {
			question.CorrectAnswerText = &correctAnswer.String
		}
		index[question.ID] = len(questions)
		questions = append(questions, question)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	if len(questions) == 0 {
		return questions, nil
	}

	optionsQuery := `
		SELECT o.id, o.question_id, o.option_text, o.is_correct
		FROM quiz_options o
		JOIN quiz_questions q ON q.id = o.question_id
		WHERE q.quiz_id = ?
		ORDER BY o.id
	`

	optionRows, err := db.QueryContext(ctx, optionsQuery, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer optionRows.Close()

	for optionRows.Next() {
		var option models.QuizOption
		if err := optionRows.Scan(&option.ID, &option.QuestionID, &option.Text, &option.IsCorrect); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		if i, ok := index[option.QuestionID]; ok {
			questions[i].Options = append(questions[i].Options, option)
		}
	}

	if err := optionRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return questions, nil
}

// Create inserts a quiz and sets its ID
func (r *quizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	query := `
		INSERT INTO quizzes (lesson_id, title, description, is_active, passing_score, time_limit)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := conn(ctx, r.db).ExecContext(ctx, query,
		quiz.LessonID,
		quiz.Title,
		quiz.Description,
		quiz.IsActive,
		quiz.PassingScore,
		quiz.TimeLimit,
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	quiz.ID = int(id)
	return nil
}

// CreateQuestion inserts a question with its options and sets their IDs
func (r *quizRepository) CreateQuestion(ctx context.Context, question *models.QuizQuestion) error {
	db := conn(ctx, r.db)

	query := `
		INSERT INTO quiz_questions (quiz_id, question_text, question_type, points, correct_answer_text, position)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := db.ExecContext(ctx, query,
		question.QuizID,
		question.Text,
		question.Type,
		question.Points,
		question.CorrectAnswerText,
		question.Position,
	)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	question.ID = int(id)

	optionQuery := `
		INSERT INTO quiz_options (question_id, option_text, is_correct)
		VALUES (?, ?, ?)
	`
	for i := range question.Options {
		option := &question.Options[i]
		option.QuestionID = question.ID

		result, err := db.ExecContext(ctx, optionQuery, option.QuestionID, option.Text, option.IsCorrect)
		if err != nil {
			return fmt.Errorf("failed to create option: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		option.ID = int(id)
	}

	return nil
}

// SetActive updates the availability of a quiz
func (r *quizRepository) SetActive(ctx context.Context, id int, active bool) error {
	query := `UPDATE quizzes SET is_active = ? WHERE id = ?`

	if _, err := conn(ctx, r.db).ExecContext(ctx, query, active, id); err != nil {
		return fmt.Errorf("failed to update quiz status: %w", err)
	}

	return nil
}
