package services

import (
	"context"
	"fmt"
	"time"

	"github.com/edupath/backend/internal/auth/policy"
	"github.com/edupath/backend/internal/middlewares"
	"github.com/edupath/backend/internal/models"
	"go.uber.org/zap"
)

type lessonService struct {
	lessonRepo     LessonRepository
	enrollmentRepo EnrollmentRepository
	progressRepo   ProgressRepository
	logger         *zap.Logger
	now            func() time.Time
}

// NewLessonService creates a new lesson service
func NewLessonService(
	lessonRepo LessonRepository,
	enrollmentRepo EnrollmentRepository,
	progressRepo ProgressRepository,
	logger *zap.Logger,
) *lessonService {
	return &lessonService{
		lessonRepo:     lessonRepo,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// GetLessonContent returns a lesson with the caller's progress for it.
// Students must be enrolled and the lesson must be unlocked; the access is recorded.
// Staff read any lesson without tracking.
func (s *lessonService) GetLessonContent(ctx context.Context, caller models.Caller, lessonID int) (*models.LessonContentResponse, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	response := &models.LessonContentResponse{
		ID:         lesson.ID,
		CourseID:   lesson.CourseID,
		ModuleID:   lesson.ModuleID,
		Title:      lesson.Title,
		Content:    lesson.Content,
		OrderIndex: lesson.OrderIndex,
		IsFree:     lesson.IsFree,
	}

	if policy.IsStaff(caller.Role) {
		return response, nil
	}

	if err := requireEnrollment(ctx, s.enrollmentRepo, caller.ID, lesson.CourseID); err != nil {
		return nil, err
	}

	locked, err := s.isLocked(ctx, caller.ID, lesson)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, fmt.Errorf("complete the previous lesson first: %w", models.ErrAccessDenied)
	}

	now := s.now()
	if err := s.progressRepo.TouchLesson(ctx, caller.ID, lesson.CourseID, lesson.ID, now); err != nil {
		s.logger.Error("failed to record lesson access",
			middlewares.RequestIDField(ctx),
			zap.Int("user_id", caller.ID),
			zap.Int("lesson_id", lesson.ID),
			zap.Error(err),
		)
		return nil, err
	}

	record, err := s.progressRepo.GetLesson(ctx, caller.ID, lesson.ID)
	if err != nil {
		return nil, err
	}
	if record != nil {
		response.Completed = record.IsCompleted
		response.Progress = record.CompletionPercentage
		response.LastAccess = record.LastAccessed
	} else {
		response.LastAccess = &now
	}

	return response, nil
}

func (s *lessonService) isLocked(ctx context.Context, userID int, lesson *models.Lesson) (bool, error) {
	if lesson.OrderIndex <= 1 {
		return false, nil
	}

	previous, err := s.lessonRepo.GetPrevious(ctx, lesson.ModuleID, lesson.OrderIndex)
	if err != nil {
		return false, err
	}
	if previous == nil || previous.IsFree {
		return IsLessonLocked(*lesson, previous, false), nil
	}

	record, err := s.progressRepo.GetLesson(ctx, userID, previous.ID)
	if err != nil {
		return false, err
	}

	return IsLessonLocked(*lesson, previous, record != nil && record.IsCompleted), nil
}
