package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/edupath/backend/internal/models"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// GetByID retrieves a lesson with its content by ID
func (r *lessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	query := `
		SELECT id, module_id, course_id, title, COALESCE(content, ''), order_index, is_free
		FROM lessons
		WHERE id = ?
		LIMIT 1
	`

	var lesson models.Lesson
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.ModuleID,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.Content,
		&lesson.OrderIndex,
		&lesson.IsFree,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lesson %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	return &lesson, nil
}

// GetPrevious retrieves the lesson immediately preceding the given order index in a module.
// Returns nil when there is no such lesson.
func (r *lessonRepository) GetPrevious(ctx context.Context, moduleID, orderIndex int) (*models.Lesson, error) {
	query := `
		SELECT id, module_id, course_id, title, order_index, is_free
		FROM lessons
		WHERE module_id = ? AND order_index = ?
		ORDER BY id
		LIMIT 1
	`

	var lesson models.Lesson
	err := conn(ctx, r.db).QueryRowContext(ctx, query, moduleID, orderIndex-1).Scan(
		&lesson.ID,
		&lesson.ModuleID,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.OrderIndex,
		&lesson.IsFree,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get previous lesson: %w", err)
	}

	return &lesson, nil
}

// CountByCourse counts all lessons of a course across its modules
func (r *lessonRepository) CountByCourse(ctx context.Context, courseID int) (int, error) {
	query := `SELECT COUNT(*) FROM lessons WHERE course_id = ?`

	var count int
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}

	return count, nil
}

// GetModulesByCourse retrieves the modules of a course ordered by order index
func (r *lessonRepository) GetModulesByCourse(ctx context.Context, courseID int) ([]models.Module, error) {
	query := `
		SELECT id, course_id, title, order_index
		FROM modules
		WHERE course_id = ?
		ORDER BY order_index, id
	`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query modules: %w", err)
	}
	defer rows.Close()

	var modules []models.Module
	for rows.Next() {
		var module models.Module
		if err := rows.Scan(&module.ID, &module.CourseID, &module.Title, &module.OrderIndex); err != nil {
			return nil, fmt.Errorf("failed to scan module: %w", err)
		}
		modules = append(modules, module)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return modules, nil
}

// GetByCourse retrieves all lessons of a course without content, ordered by module and lesson order index
func (r *lessonRepository) GetByCourse(ctx context.Context, courseID int) ([]models.Lesson, error) {
	query := `
		SELECT l.id, l.module_id, l.course_id, l.title, l.order_index, l.is_free
		FROM lessons l
		JOIN modules m ON m.id = l.module_id
		WHERE l.course_id = ?
		ORDER BY m.order_index, m.id, l.order_index, l.id
	`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var lesson models.Lesson
		err := rows.Scan(
			&lesson.ID,
			&lesson.ModuleID,
			&lesson.CourseID,
			&lesson.Title,
			&lesson.OrderIndex,
			&lesson.IsFree,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}
