package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/edupath/backend/internal/models"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	query := `
		SELECT id, slug, title, instructor_id, created_at
		FROM courses
		WHERE id = ?
		LIMIT 1
	`

	var course models.Course
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.Slug,
		&course.Title,
		&course.InstructorID,
		&course.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("course %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return &course, nil
}
