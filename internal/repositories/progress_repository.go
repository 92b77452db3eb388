package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/edupath/backend/internal/models"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *sql.DB) *progressRepository {
	return &progressRepository{
		db: db,
	}
}

// UpsertLesson inserts or updates the lesson-level record for (user, course, lesson).
// The record ID is set on success.
func (r *progressRepository) UpsertLesson(ctx context.Context, record *models.ProgressRecord) error {
	if record.LessonID == nil {
		return fmt.Errorf("lesson progress requires a lesson id")
	}

	query := `
		INSERT INTO user_progress (user_id, course_id, lesson_id, is_completed, completion_percentage, last_accessed)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			id = LAST_INSERT_ID(id),
			is_completed = VALUES(is_completed),
			completion_percentage = VALUES(completion_percentage),
			last_accessed = VALUES(last_accessed)
	`

	result, err := conn(ctx, r.db).ExecContext(ctx, query,
		record.UserID,
		record.CourseID,
		*record.LessonID,
		record.IsCompleted,
		record.CompletionPercentage,
		record.LastAccessed,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert lesson progress: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	record.ID = int(id)
	return nil
}

// TouchLesson records an access to a lesson, creating a not-started record on first access.
// Completion state of an existing record is left unchanged.
func (r *progressRepository) TouchLesson(ctx context.Context, userID, courseID, lessonID int, at time.Time) error {
	query := `
		INSERT INTO user_progress (user_id, course_id, lesson_id, is_completed, completion_percentage, last_accessed)
		VALUES (?, ?, ?, FALSE, 0, ?)
		ON DUPLICATE KEY UPDATE last_accessed = VALUES(last_accessed)
	`

	if _, err := conn(ctx, r.db).ExecContext(ctx, query, userID, courseID, lessonID, at); err != nil {
		return fmt.Errorf("failed to touch lesson progress: %w", err)
	}

	return nil
}

// GetLesson retrieves the lesson-level record of a user. Returns nil when none exists.
func (r *progressRepository) GetLesson(ctx context.Context, userID, lessonID int) (*models.ProgressRecord, error) {
	query := `
		SELECT id, user_id, course_id, lesson_id, is_completed, completion_percentage, last_accessed
		FROM user_progress
		WHERE user_id = ? AND lesson_id = ?
		LIMIT 1
	`

	record, err := scanProgress(conn(ctx, r.db).QueryRowContext(ctx, query, userID, lessonID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson progress: %w", err)
	}

	return record, nil
}

// CountCompletedLessons counts the lessons of a course the user has completed
func (r *progressRepository) CountCompletedLessons(ctx context.Context, userID, courseID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM user_progress up
		JOIN lessons l ON l.id = up.lesson_id
		WHERE up.user_id = ? AND l.course_id = ? AND up.is_completed = TRUE
	`

	var count int
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, userID, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count completed lessons: %w", err)
	}

	return count, nil
}

// UpsertCourse inserts or updates the aggregate record (lesson = NULL) for (user, course)
func (r *progressRepository) UpsertCourse(ctx context.Context, userID, courseID int, percentage float64, completed bool, at time.Time) error {
	query := `
		INSERT INTO user_progress (user_id, course_id, lesson_id, is_completed, completion_percentage, last_accessed)
		VALUES (?, ?, NULL, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			is_completed = VALUES(is_completed),
			completion_percentage = VALUES(completion_percentage),
			last_accessed = VALUES(last_accessed)
	`

	if _, err := conn(ctx, r.db).ExecContext(ctx, query, userID, courseID, completed, percentage, at); err != nil {
		return fmt.Errorf("failed to upsert course progress: %w", err)
	}

	return nil
}

// ListLessonRecords retrieves all lesson-level records of a user for a course
func (r *progressRepository) ListLessonRecords(ctx context.Context, userID, courseID int) ([]models.ProgressRecord, error) {
	query := `
		SELECT id, user_id, course_id, lesson_id, is_completed, completion_percentage, last_accessed
		FROM user_progress
		WHERE user_id = ? AND course_id = ? AND lesson_id IS NOT NULL
	`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lesson progress: %w", err)
	}
	defer rows.Close()

	var records []models.ProgressRecord
	for rows.Next() {
		record, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson progress: %w", err)
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

// ListCourseSummaries retrieves lesson counts and last access for every course the user is enrolled in
func (r *progressRepository) ListCourseSummaries(ctx context.Context, userID int) ([]models.CourseProgressSummary, error) {
	query := `
		SELECT
			c.id,
			c.title,
			(SELECT COUNT(*) FROM lessons l WHERE l.course_id = c.id) AS total_lessons,
			(SELECT COUNT(*)
				FROM user_progress up
				JOIN lessons l ON l.id = up.lesson_id
				WHERE up.user_id = e.user_id AND l.course_id = c.id AND up.is_completed = TRUE) AS completed_lessons,
			(SELECT MAX(up.last_accessed)
				FROM user_progress up
				WHERE up.user_id = e.user_id AND up.course_id = c.id) AS last_accessed
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = ?
		ORDER BY e.enrolled_at DESC, e.id DESC
	`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query course summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]models.CourseProgressSummary, 0)
	for rows.Next() {
		var (
			summary      models.CourseProgressSummary
			lastAccessed sql.NullTime
		)
		err := rows.Scan(
			&summary.CourseID,
			&summary.CourseTitle,
			&summary.TotalLessons,
			&summary.CompletedLessons,
			&lastAccessed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course summary: %w", err)
		}
		if lastAccessed.Valid {
			summary.LastAccessed = &lastAccessed.Time
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return summaries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgress(row rowScanner) (*models.ProgressRecord, error) {
	var (
		record       models.ProgressRecord
		lessonID     sql.NullInt64
		lastAccessed sql.NullTime
	)
	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.CourseID,
		&lessonID,
		&record.IsCompleted,
		&record.CompletionPercentage,
		&lastAccessed,
	)
	if err != nil {
		return nil, err
	}

	if lessonID.Valid {
		id := int(lessonID.Int64)
		record.LessonID = &id
	}
	if lastAccessed.Valid {
		record.LastAccessed = &lastAccessed.Time
	}

	return &record, nil
}
