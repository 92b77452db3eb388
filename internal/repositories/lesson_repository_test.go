package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/edupath/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupLessonTestRepository creates a lesson repository with a mock database
func setupLessonTestRepository(t *testing.T) (*lessonRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewLessonRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewLessonRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewLessonRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestLessonRepository_GetByID(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		errorContains string
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "module_id", "course_id", "title", "content", "order_index", "is_free"}).
					AddRow(5, 2, 1, "Variables", "Body", 2, false)
				mock.ExpectQuery(`SELECT .* FROM lessons\s+WHERE id = \?`).
					WithArgs(5).
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM lessons`).WithArgs(5).WillReturnError(sql.ErrNoRows)
			},
			expectedError: models.ErrNotFound,
			errorContains: "lesson not found",
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM lessons`).WithArgs(5).WillReturnError(errors.New("database error"))
			},
			errorContains: "failed to get lesson by id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLessonTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			lesson, err := repo.GetByID(context.Background(), 5)

			if tt.errorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				if tt.expectedError != nil {
					assert.ErrorIs(t, err, tt.expectedError)
				}
				assert.Nil(t, lesson)
			} else {
				require.NoError(t, err)
				assert.Equal(t, &models.Lesson{ID: 5, ModuleID: 2, CourseID: 1, Title: "Variables", Content: "Body", OrderIndex: 2}, lesson)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonRepository_GetPrevious(t *testing.T) {
	t.Run("previous lesson exists", func(t *testing.T) {
		repo, mock, cleanup := setupLessonTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "module_id", "course_id", "title", "order_index", "is_free"}).
			AddRow(4, 2, 1, "Intro", 1, true)
		mock.ExpectQuery(`SELECT .* FROM lessons\s+WHERE module_id = \? AND order_index = \?`).
			WithArgs(2, 1).
			WillReturnRows(rows)

		lesson, err := repo.GetPrevious(context.Background(), 2, 2)
		require.NoError(t, err)
		require.NotNil(t, lesson)
		assert.Equal(t, 4, lesson.ID)
		assert.True(t, lesson.IsFree)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no previous lesson", func(t *testing.T) {
		repo, mock, cleanup := setupLessonTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT .* FROM lessons`).WithArgs(2, 4).WillReturnError(sql.ErrNoRows)

		lesson, err := repo.GetPrevious(context.Background(), 2, 5)
		assert.NoError(t, err)
		assert.Nil(t, lesson)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupLessonTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT .* FROM lessons`).WithArgs(2, 1).WillReturnError(errors.New("database error"))

		_, err := repo.GetPrevious(context.Background(), 2, 2)
		assert.ErrorContains(t, err, "failed to get previous lesson")
	})
}

func TestLessonRepository_CountByCourse(t *testing.T) {
	repo, mock, cleanup := setupLessonTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM lessons WHERE course_id = \?`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))

	count, err := repo.CountByCourse(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 8, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonRepository_GetModulesByCourse(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedCount int
		expectedError bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "course_id", "title", "order_index"}).
					AddRow(1, 1, "Basics", 1).
					AddRow(2, 1, "Advanced", 2)
				mock.ExpectQuery(`SELECT .* FROM modules\s+WHERE course_id = \?\s+ORDER BY order_index`).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectedCount: 2,
		},
		{
			name: "scan error",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "course_id", "title", "order_index"}).
					AddRow("bad", 1, "Basics", 1)
				mock.ExpectQuery(`SELECT .* FROM modules`).WithArgs(1).WillReturnRows(rows)
			},
			expectedError: true,
		},
		{
			name: "query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM modules`).WithArgs(1).WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLessonTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			modules, err := repo.GetModulesByCourse(context.Background(), 1)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, modules, tt.expectedCount)
				assert.Equal(t, "Basics", modules[0].Title)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonRepository_GetByCourse(t *testing.T) {
	repo, mock, cleanup := setupLessonTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "module_id", "course_id", "title", "order_index", "is_free"}).
		AddRow(1, 1, 1, "One", 1, true).
		AddRow(2, 1, 1, "Two", 2, false).
		AddRow(3, 2, 1, "Three", 1, false)
	mock.ExpectQuery(`SELECT .* FROM lessons l\s+JOIN modules m ON m.id = l.module_id\s+WHERE l.course_id = \?`).
		WithArgs(1).
		WillReturnRows(rows)

	lessons, err := repo.GetByCourse(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, lessons, 3)
	assert.Equal(t, 2, lessons[2].ModuleID)
	assert.True(t, lessons[0].IsFree)
	assert.NoError(t, mock.ExpectationsWereMet())
}
