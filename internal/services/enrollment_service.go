package services

import (
	"context"
	"fmt"
	"time"

	"github.com/edupath/backend/internal/auth/policy"
	"github.com/edupath/backend/internal/models"
	"go.uber.org/zap"
)

type enrollmentService struct {
	courseRepo     CourseRepository
	enrollmentRepo EnrollmentRepository
	logger         *zap.Logger
	now            func() time.Time
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(courseRepo CourseRepository, enrollmentRepo EnrollmentRepository, logger *zap.Logger) *enrollmentService {
	return &enrollmentService{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// Enroll enrolls the caller in a course
func (s *enrollmentService) Enroll(ctx context.Context, caller models.Caller, courseID int) (*models.EnrollmentResponse, error) {
	if err := policy.Require(caller.Role, policy.Enroll); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.enrollmentRepo.Exists(ctx, caller.ID, courseID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, fmt.Errorf("already enrolled in this course: %w", models.ErrConflict)
	}

	enrollment := &models.Enrollment{
		UserID:     caller.ID,
		CourseID:   courseID,
		EnrolledAt: s.now(),
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	s.logger.Info("user enrolled",
		zap.Int("user_id", caller.ID),
		zap.Int("course_id", courseID),
	)

	return &models.EnrollmentResponse{
		CourseID:    course.ID,
		CourseTitle: course.Title,
		Message:     "Successfully enrolled in course",
	}, nil
}

// ListMyCourses returns the courses the caller is enrolled in
func (s *enrollmentService) ListMyCourses(ctx context.Context, caller models.Caller) ([]models.EnrolledCourse, error) {
	return s.enrollmentRepo.ListByUser(ctx, caller.ID)
}
