package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/edupath/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var progressColumns = []string{"id", "user_id", "course_id", "lesson_id", "is_completed", "completion_percentage", "last_accessed"}

// setupProgressTestRepository creates a progress repository with a mock database
func setupProgressTestRepository(t *testing.T) (*progressRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewProgressRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestProgressRepository_UpsertLesson(t *testing.T) {
	lessonID := 5
	now := time.Now()

	tests := []struct {
		name          string
		record        *models.ProgressRecord
		setupMock     func(sqlmock.Sqlmock)
		expectedID    int
		errorContains string
	}{
		{
			name:   "insert or update",
			record: &models.ProgressRecord{UserID: 7, CourseID: 1, LessonID: &lessonID, IsCompleted: true, CompletionPercentage: 100, LastAccessed: &now},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_progress .* ON DUPLICATE KEY UPDATE\s+id = LAST_INSERT_ID\(id\)`).
					WithArgs(7, 1, 5, true, 100.0, sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(42, 2))
			},
			expectedID: 42,
		},
		{
			name:          "missing lesson id",
			record:        &models.ProgressRecord{UserID: 7, CourseID: 1},
			setupMock:     func(mock sqlmock.Sqlmock) {},
			errorContains: "requires a lesson id",
		},
		{
			name:   "database error",
			record: &models.ProgressRecord{UserID: 7, CourseID: 1, LessonID: &lessonID},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_progress`).WillReturnError(errors.New("database error"))
			},
			errorContains: "failed to upsert lesson progress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.UpsertLesson(context.Background(), tt.record)

			if tt.errorContains != "" {
				assert.ErrorContains(t, err, tt.errorContains)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.record.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProgressRepository_TouchLesson(t *testing.T) {
	repo, mock, cleanup := setupProgressTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`INSERT INTO user_progress .* VALUES \(\?, \?, \?, FALSE, 0, \?\)\s+ON DUPLICATE KEY UPDATE last_accessed = VALUES\(last_accessed\)`).
		WithArgs(7, 1, 5, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.TouchLesson(context.Background(), 7, 1, 5, time.Now())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepository_GetLesson(t *testing.T) {
	accessed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mock, cleanup := setupProgressTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT .* FROM user_progress\s+WHERE user_id = \? AND lesson_id = \?`).
			WithArgs(7, 5).
			WillReturnRows(sqlmock.NewRows(progressColumns).AddRow(3, 7, 1, 5, true, 100.0, accessed))

		record, err := repo.GetLesson(context.Background(), 7, 5)
		require.NoError(t, err)
		require.NotNil(t, record)
		require.NotNil(t, record.LessonID)
		assert.Equal(t, 5, *record.LessonID)
		assert.True(t, record.IsCompleted)
		assert.Equal(t, accessed, *record.LastAccessed)
		assert.False(t, record.IsAggregate())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock, cleanup := setupProgressTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT .* FROM user_progress`).WithArgs(7, 5).WillReturnError(sql.ErrNoRows)

		record, err := repo.GetLesson(context.Background(), 7, 5)
		assert.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupProgressTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT .* FROM user_progress`).WithArgs(7, 5).WillReturnError(errors.New("database error"))

		_, err := repo.GetLesson(context.Background(), 7, 5)
		assert.ErrorContains(t, err, "failed to get lesson progress")
	})
}

func TestProgressRepository_CountCompletedLessons(t *testing.T) {
	repo, mock, cleanup := setupProgressTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM user_progress up\s+JOIN lessons l ON l.id = up.lesson_id\s+WHERE up.user_id = \? AND l.course_id = \? AND up.is_completed = TRUE`).
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountCompletedLessons(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepository_UpsertCourse(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_progress .* VALUES \(\?, \?, NULL, \?, \?, \?\)\s+ON DUPLICATE KEY UPDATE`).
					WithArgs(7, 1, false, 37.5, sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_progress`).WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.UpsertCourse(context.Background(), 7, 1, 37.5, false, time.Now())

			if tt.expectedError {
				assert.ErrorContains(t, err, "failed to upsert course progress")
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProgressRepository_ListLessonRecords(t *testing.T) {
	repo, mock, cleanup := setupProgressTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows(progressColumns).
		AddRow(1, 7, 1, 5, true, 100.0, time.Now()).
		AddRow(2, 7, 1, 6, false, 40.0, nil)
	mock.ExpectQuery(`SELECT .* FROM user_progress\s+WHERE user_id = \? AND course_id = \? AND lesson_id IS NOT NULL`).
		WithArgs(7, 1).
		WillReturnRows(rows)

	records, err := repo.ListLessonRecords(context.Background(), 7, 1)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 6, *records[1].LessonID)
	assert.Equal(t, 40.0, records[1].CompletionPercentage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepository_ListCourseSummaries(t *testing.T) {
	repo, mock, cleanup := setupProgressTestRepository(t)
	defer cleanup()

	accessed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "title", "total_lessons", "completed_lessons", "last_accessed"}).
		AddRow(1, "Go Basics", 4, 2, accessed).
		AddRow(2, "Empty", 0, 0, nil)
	mock.ExpectQuery(`FROM enrollments e\s+JOIN courses c ON c.id = e.course_id\s+WHERE e.user_id = \?`).
		WithArgs(7).
		WillReturnRows(rows)

	summaries, err := repo.ListCourseSummaries(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, 4, summaries[0].TotalLessons)
	assert.Equal(t, 2, summaries[0].CompletedLessons)
	assert.Equal(t, accessed, *summaries[0].LastAccessed)
	assert.Nil(t, summaries[1].LastAccessed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
