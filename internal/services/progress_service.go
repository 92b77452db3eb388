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

// TxManager runs a function inside a database transaction
type TxManager interface {
	// WithinTx runs fn in a transaction carried by the context passed to fn
	//
	// "ctx" is the context for the request.
	// "fn" is the function to run; returning an error rolls the transaction back.
	//
	// Returns the error returned by fn or by the transaction itself.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// CourseRepository defines methods for course data access
type CourseRepository interface {
	// GetByID retrieves a course by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns the course and an error if any.
	GetByID(ctx context.Context, id int) (*models.Course, error)
}

// LessonRepository defines methods for lesson and module data access
type LessonRepository interface {
	// GetByID retrieves a lesson with its content by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns the lesson and an error if any.
	GetByID(ctx context.Context, id int) (*models.Lesson, error)
	// GetPrevious retrieves the lesson immediately preceding an order index in a module
	//
	// "ctx" is the context for the request.
	// "moduleID" is the ID of the module.
	// "orderIndex" is the order index of the current lesson.
	//
	// Returns the previous lesson, or nil if there is none, and an error if any.
	GetPrevious(ctx context.Context, moduleID, orderIndex int) (*models.Lesson, error)
	// CountByCourse counts the lessons of a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns the number of lessons and an error if any.
	CountByCourse(ctx context.Context, courseID int) (int, error)
	// GetModulesByCourse retrieves the modules of a course ordered by order index
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns a list of modules and an error if any.
	GetModulesByCourse(ctx context.Context, courseID int) ([]models.Module, error)
	// GetByCourse retrieves the lessons of a course ordered by module and lesson order index
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns a list of lessons and an error if any.
	GetByCourse(ctx context.Context, courseID int) ([]models.Lesson, error)
}

// EnrollmentRepository defines methods for enrollment data access
type EnrollmentRepository interface {
	// Exists checks if a user is enrolled in a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns a boolean and an error if any.
	Exists(ctx context.Context, userID, courseID int) (bool, error)
	// Create creates a new enrollment
	//
	// "ctx" is the context for the request.
	// "enrollment" is the enrollment to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, enrollment *models.Enrollment) error
	// ListByUser retrieves the courses a user is enrolled in
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	//
	// Returns a list of enrolled courses and an error if any.
	ListByUser(ctx context.Context, userID int) ([]models.EnrolledCourse, error)
	// ListPairs retrieves (user, course) enrollment pairs
	//
	// "ctx" is the context for the request.
	// "courseID" optionally restricts the pairs to one course.
	// "userID" optionally restricts the pairs to one user.
	//
	// Returns a list of enrollment pairs and an error if any.
	ListPairs(ctx context.Context, courseID, userID *int) ([]models.EnrollmentPair, error)
}

// ProgressRepository defines methods for progress data access
type ProgressRepository interface {
	// UpsertLesson inserts or updates a lesson-level progress record
	//
	// "ctx" is the context for the request.
	// "record" is the record to store; its ID is set on success.
	//
	// Returns an error if any.
	UpsertLesson(ctx context.Context, record *models.ProgressRecord) error
	// TouchLesson records an access to a lesson without changing its completion state
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	// "lessonID" is the ID of the lesson.
	// "at" is the access time.
	//
	// Returns an error if any.
	TouchLesson(ctx context.Context, userID, courseID, lessonID int, at time.Time) error
	// GetLesson retrieves a lesson-level progress record
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "lessonID" is the ID of the lesson.
	//
	// Returns the record, or nil if there is none, and an error if any.
	GetLesson(ctx context.Context, userID, lessonID int) (*models.ProgressRecord, error)
	// CountCompletedLessons counts the completed lessons of a course for a user
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns the number of completed lessons and an error if any.
	CountCompletedLessons(ctx context.Context, userID, courseID int) (int, error)
	// UpsertCourse inserts or updates the course-level aggregate record
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	// "percentage" is the course completion percentage.
	// "completed" is the course completion flag.
	// "at" is the update time.
	//
	// Returns an error if any.
	UpsertCourse(ctx context.Context, userID, courseID int, percentage float64, completed bool, at time.Time) error
	// ListLessonRecords retrieves all lesson-level records of a user for a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns a list of progress records and an error if any.
	ListLessonRecords(ctx context.Context, userID, courseID int) ([]models.ProgressRecord, error)
	// ListCourseSummaries retrieves lesson counts for every course a user is enrolled in
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	//
	// Returns a list of summaries without percentages and an error if any.
	ListCourseSummaries(ctx context.Context, userID int) ([]models.CourseProgressSummary, error)
}

type progressService struct {
	txManager      TxManager
	courseRepo     CourseRepository
	lessonRepo     LessonRepository
	enrollmentRepo EnrollmentRepository
	progressRepo   ProgressRepository
	logger         *zap.Logger
	now            func() time.Time
}

// NewProgressService creates a new progress service
func NewProgressService(
	txManager TxManager,
	courseRepo CourseRepository,
	lessonRepo LessonRepository,
	enrollmentRepo EnrollmentRepository,
	progressRepo ProgressRepository,
	logger *zap.Logger,
) *progressService {
	return &progressService{
		txManager:      txManager,
		courseRepo:     courseRepo,
		lessonRepo:     lessonRepo,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// CoursePercentage returns completed/total*100, or 0 for a course without lessons
func CoursePercentage(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// courseCompleted reports whether every lesson of a non-empty course is completed
func courseCompleted(completed, total int) bool {
	return total > 0 && completed >= total
}

// requireEnrollment returns models.ErrAccessDenied when the user is not enrolled in the course
func requireEnrollment(ctx context.Context, repo EnrollmentRepository, userID, courseID int) error {
	enrolled, err := repo.Exists(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return fmt.Errorf("you must be enrolled in this course: %w", models.ErrAccessDenied)
	}
	return nil
}

// RecordLessonCompletion marks a lesson as completed for the caller and recomputes the course progress
func (s *progressService) RecordLessonCompletion(ctx context.Context, caller models.Caller, lessonID int) (*models.ProgressUpdateResponse, error) {
	if err := policy.Require(caller.Role, policy.TrackProgress); err != nil {
		return nil, err
	}

	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	if err := requireEnrollment(ctx, s.enrollmentRepo, caller.ID, lesson.CourseID); err != nil {
		return nil, err
	}

	now := s.now()
	record := &models.ProgressRecord{
		UserID:               caller.ID,
		CourseID:             lesson.CourseID,
		LessonID:             &lesson.ID,
		IsCompleted:          true,
		CompletionPercentage: 100,
		LastAccessed:         &now,
	}

	var course *models.ProgressRecord
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.progressRepo.UpsertLesson(ctx, record); err != nil {
			return err
		}
		course, err = s.recompute(ctx, caller.ID, lesson.CourseID, now)
		return err
	})
	if err != nil {
		s.logger.Error("failed to record lesson completion",
			middlewares.RequestIDField(ctx),
			zap.Int("user_id", caller.ID),
			zap.Int("lesson_id", lessonID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to record lesson completion: %w", err)
	}

	return &models.ProgressUpdateResponse{
		Message:        "Lesson marked as completed",
		Progress:       record,
		CourseProgress: course.CompletionPercentage,
		CourseComplete: course.IsCompleted,
	}, nil
}

// UpdateLessonProgress applies a partial progress update to a lesson of a course and recomputes the course progress
//
// When only isCompleted=true is given the percentage becomes 100.
// When only a percentage is given the completion flag becomes percentage >= 100.
func (s *progressService) UpdateLessonProgress(ctx context.Context, caller models.Caller, courseID, lessonID int, req *models.ProgressUpdateRequest) (*models.ProgressUpdateResponse, error) {
	if err := policy.Require(caller.Role, policy.TrackProgress); err != nil {
		return nil, err
	}

	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.CourseID != courseID {
		return nil, fmt.Errorf("lesson %w in this course", models.ErrNotFound)
	}

	if err := requireEnrollment(ctx, s.enrollmentRepo, caller.ID, courseID); err != nil {
		return nil, err
	}

	now := s.now()
	var (
		record *models.ProgressRecord
		course *models.ProgressRecord
	)
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.progressRepo.GetLesson(ctx, caller.ID, lessonID)
		if err != nil {
			return err
		}

		record = applyProgressUpdate(existing, req)
		record.UserID = caller.ID
		record.CourseID = courseID
		record.LessonID = &lesson.ID
		record.LastAccessed = &now

		if err := s.progressRepo.UpsertLesson(ctx, record); err != nil {
			return err
		}
		course, err = s.recompute(ctx, caller.ID, courseID, now)
		return err
	})
	if err != nil {
		s.logger.Error("failed to update lesson progress",
			middlewares.RequestIDField(ctx),
			zap.Int("user_id", caller.ID),
			zap.Int("course_id", courseID),
			zap.Int("lesson_id", lessonID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to update lesson progress: %w", err)
	}

	return &models.ProgressUpdateResponse{
		Message:        "Progress updated",
		Progress:       record,
		CourseProgress: course.CompletionPercentage,
		CourseComplete: course.IsCompleted,
	}, nil
}

// applyProgressUpdate merges a partial update into an existing record, or into a not-started record
func applyProgressUpdate(existing *models.ProgressRecord, req *models.ProgressUpdateRequest) *models.ProgressRecord {
	record := &models.ProgressRecord{}
	if existing != nil {
		*record = *existing
	}

	switch {
	case req.IsCompleted != nil && req.CompletionPercentage != nil:
		record.IsCompleted = *req.IsCompleted
		record.CompletionPercentage = *req.CompletionPercentage
	case req.IsCompleted != nil:
		record.IsCompleted = *req.IsCompleted
		if record.IsCompleted {
			record.CompletionPercentage = 100
		}
	case req.CompletionPercentage != nil:
		record.CompletionPercentage = *req.CompletionPercentage
		record.IsCompleted = record.CompletionPercentage >= 100
	}

	return record
}

// RecomputeCourseProgress recounts the completed lessons of a course and stores the course aggregate
func (s *progressService) RecomputeCourseProgress(ctx context.Context, userID, courseID int) (*models.ProgressRecord, error) {
	var course *models.ProgressRecord
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		course, err = s.recompute(ctx, userID, courseID, s.now())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to recompute course progress: %w", err)
	}

	return course, nil
}

func (s *progressService) recompute(ctx context.Context, userID, courseID int, at time.Time) (*models.ProgressRecord, error) {
	total, err := s.lessonRepo.CountByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	completed, err := s.progressRepo.CountCompletedLessons(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	percentage := CoursePercentage(completed, total)
	done := courseCompleted(completed, total)

	if err := s.progressRepo.UpsertCourse(ctx, userID, courseID, percentage, done, at); err != nil {
		return nil, err
	}

	return &models.ProgressRecord{
		UserID:               userID,
		CourseID:             courseID,
		IsCompleted:          done,
		CompletionPercentage: percentage,
		LastAccessed:         &at,
	}, nil
}

// RecomputeAll recomputes the course aggregate of every enrollment, optionally restricted to a course or a user
//
// Returns the number of recomputed enrollments.
func (s *progressService) RecomputeAll(ctx context.Context, courseID, userID *int) (int, error) {
	pairs, err := s.enrollmentRepo.ListPairs(ctx, courseID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list enrollments: %w", err)
	}

	for i, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if _, err := s.RecomputeCourseProgress(ctx, pair.UserID, pair.CourseID); err != nil {
			s.logger.Error("failed to recompute progress",
				middlewares.RequestIDField(ctx),
				zap.Int("user_id", pair.UserID),
				zap.Int("course_id", pair.CourseID),
				zap.Error(err),
			)
			return i, err
		}
	}

	s.logger.Info("recomputed course progress", zap.Int("enrollments", len(pairs)))
	return len(pairs), nil
}

// GetCourseProgressDetail returns the caller's progress for a course with per-module and per-lesson detail
func (s *progressService) GetCourseProgressDetail(ctx context.Context, caller models.Caller, courseID int) (*models.CourseProgressDetail, error) {
	if err := policy.Require(caller.Role, policy.TrackProgress); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if err := requireEnrollment(ctx, s.enrollmentRepo, caller.ID, courseID); err != nil {
		return nil, err
	}

	modules, err := s.lessonRepo.GetModulesByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	lessons, err := s.lessonRepo.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	records, err := s.progressRepo.ListLessonRecords(ctx, caller.ID, courseID)
	if err != nil {
		return nil, err
	}

	progressByLesson := make(map[int]models.ProgressRecord, len(records))
	for _, record := range records {
		progressByLesson[*record.LessonID] = record
	}

	lessonsByModule := make(map[int][]models.Lesson)
	for _, lesson := range lessons {
		lessonsByModule[lesson.ModuleID] = append(lessonsByModule[lesson.ModuleID], lesson)
	}

	locks := newLockIndex(lessons, func(lessonID int) bool {
		return progressByLesson[lessonID].IsCompleted
	})

	detail := &models.CourseProgressDetail{
		CourseID:    course.ID,
		CourseTitle: course.Title,
		Modules:     make([]models.ModuleProgress, 0, len(modules)),
	}

	completedTotal := 0
	for _, module := range modules {
		moduleLessons := lessonsByModule[module.ID]
		mp := models.ModuleProgress{
			ModuleID:     module.ID,
			ModuleTitle:  module.Title,
			OrderIndex:   module.OrderIndex,
			Lessons:      make([]models.LessonProgress, 0, len(moduleLessons)),
			TotalLessons: len(moduleLessons),
		}

		for _, lesson := range moduleLessons {
			lp := models.LessonProgress{
				LessonID:    lesson.ID,
				LessonTitle: lesson.Title,
				OrderIndex:  lesson.OrderIndex,
				IsFree:      lesson.IsFree,
				IsLocked:    locks.isLocked(lesson),
			}
			if record, ok := progressByLesson[lesson.ID]; ok {
				lp.IsCompleted = record.IsCompleted
				lp.CompletionPercentage = record.CompletionPercentage
				lp.LastAccessed = record.LastAccessed
			}
			if lp.IsCompleted {
				mp.CompletedLessons++
			}
			mp.Lessons = append(mp.Lessons, lp)
		}

		completedTotal += mp.CompletedLessons
		detail.Modules = append(detail.Modules, mp)
	}

	detail.ProgressPercentage = CoursePercentage(completedTotal, len(lessons))
	detail.IsCompleted = courseCompleted(completedTotal, len(lessons))

	return detail, nil
}

// GetMyProgress returns a progress summary for every course the caller is enrolled in
func (s *progressService) GetMyProgress(ctx context.Context, caller models.Caller) ([]models.CourseProgressSummary, error) {
	if err := policy.Require(caller.Role, policy.TrackProgress); err != nil {
		return nil, err
	}

	summaries, err := s.progressRepo.ListCourseSummaries(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	for i := range summaries {
		summaries[i].ProgressPercentage = CoursePercentage(summaries[i].CompletedLessons, summaries[i].TotalLessons)
		summaries[i].IsCompleted = courseCompleted(summaries[i].CompletedLessons, summaries[i].TotalLessons)
	}

	return summaries, nil
}
