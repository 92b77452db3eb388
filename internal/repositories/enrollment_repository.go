package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/edupath/backend/internal/models"
)

type enrollmentRepository struct {
	db *sql.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *sql.DB) *enrollmentRepository {
	return &enrollmentRepository{
		db: db,
	}
}

// Exists checks if the user is enrolled in the course
func (r *enrollmentRepository) Exists(ctx context.Context, userID, courseID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM enrollments WHERE user_id = ? AND course_id = ?)`

	var exists bool
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, userID, courseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check enrollment existence: %w", err)
	}

	return exists, nil
}

// Create creates a new enrollment; an existing (user, course) pair yields models.ErrConflict
func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (user_id, course_id, enrolled_at)
		VALUES (?, ?, ?)
	`

	result, err := conn(ctx, r.db).ExecContext(ctx, query,
		enrollment.UserID,
		enrollment.CourseID,
		enrollment.EnrolledAt,
	)
	if isDuplicateKey(err) {
		return fmt.Errorf("already enrolled in this course: %w", models.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create enrollment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	enrollment.ID = int(id)
	return nil
}

// ListByUser retrieves the courses the user is enrolled in, most recent first
func (r *enrollmentRepository) ListByUser(ctx context.Context, userID int) ([]models.EnrolledCourse, error) {
	query := `
		SELECT c.id, c.title, e.enrolled_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = ?
		ORDER BY e.enrolled_at DESC, e.id DESC
	`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	courses := make([]models.EnrolledCourse, 0)
	for rows.Next() {
		var course models.EnrolledCourse
		if err := rows.Scan(&course.CourseID, &course.CourseTitle, &course.EnrolledAt); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// ListPairs retrieves (user, course) enrollment pairs, optionally restricted to one course or one user
func (r *enrollmentRepository) ListPairs(ctx context.Context, courseID, userID *int) ([]models.EnrollmentPair, error) {
	var (
		conditions []string
		args       []any
	)
	if courseID != nil {
		conditions = append(conditions, "course_id = ?")
		args = append(args, *courseID)
	}
	if userID != nil {
		conditions = append(conditions, "user_id = ?")
		args = append(args, *userID)
	}

	query := `SELECT user_id, course_id FROM enrollments`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY course_id, user_id`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollment pairs: %w", err)
	}
	defer rows.Close()

	var pairs []models.EnrollmentPair
	for rows.Next() {
		var pair models.EnrollmentPair
		if err := rows.Scan(&pair.UserID, &pair.CourseID); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment pair: %w", err)
		}
		pairs = append(pairs, pair)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return pairs, nil
}
