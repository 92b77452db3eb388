package models

import "time"

// ProgressRecord represents a user's progress for a lesson or, when LessonID is nil,
// the aggregate progress for the whole course
type ProgressRecord struct {
	ID                   int        `json:"id"`
	UserID               int        `json:"userId"`
	CourseID             int        `json:"courseId"`
	LessonID             *int       `json:"lessonId"`
	IsCompleted          bool       `json:"isCompleted"`
	CompletionPercentage float64    `json:"completionPercentage"`
	LastAccessed         *time.Time `json:"lastAccessed"`
}

// IsAggregate reports whether the record summarises the whole course
func (p *ProgressRecord) IsAggregate() bool {
	return p.LessonID == nil
}

// ProgressUpdateRequest represents a partial lesson progress update
type ProgressUpdateRequest struct {
	IsCompleted          *bool    `json:"is_completed,omitempty"`
	CompletionPercentage *float64 `json:"completion_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// ProgressUpdateResponse is returned after a lesson progress change
type ProgressUpdateResponse struct {
	Message        string          `json:"message"`
	Progress       *ProgressRecord `json:"progress"`
	CourseProgress float64         `json:"courseProgress"`
	CourseComplete bool            `json:"courseCompleted"`
}

// LessonProgress represents the progress of a single lesson inside a course detail
type LessonProgress struct {
	LessonID             int        `json:"lesson_id"`
	LessonTitle          string     `json:"lesson_title"`
	OrderIndex           int        `json:"order_index"`
	IsFree               bool       `json:"is_free"`
	IsCompleted          bool       `json:"is_completed"`
	IsLocked             bool       `json:"is_locked"`
	CompletionPercentage float64    `json:"completion_percentage"`
	LastAccessed         *time.Time `json:"last_accessed"`
}

// ModuleProgress represents the progress of a module inside a course detail
type ModuleProgress struct {
	ModuleID         int              `json:"module_id"`
	ModuleTitle      string           `json:"module_title"`
	OrderIndex       int              `json:"order_index"`
	Lessons          []LessonProgress `json:"lessons"`
	CompletedLessons int              `json:"completed_lessons"`
	TotalLessons     int              `json:"total_lessons"`
}

// CourseProgressDetail represents a user's progress for a course with per-module and per-lesson detail
type CourseProgressDetail struct {
	CourseID           int              `json:"course_id"`
	CourseTitle        string           `json:"course_title"`
	ProgressPercentage float64          `json:"progress_percentage"`
	IsCompleted        bool             `json:"is_completed"`
	Modules            []ModuleProgress `json:"modules"`
}

// CourseProgressSummary represents one course in the "my progress" overview
type CourseProgressSummary struct {
	CourseID           int        `json:"course_id"`
	CourseTitle        string     `json:"course_title"`
	ProgressPercentage float64    `json:"progress_percentage"`
	IsCompleted        bool       `json:"is_completed"`
	CompletedLessons   int        `json:"completed_lessons"`
	TotalLessons       int        `json:"total_lessons"`
	LastAccessed       *time.Time `json:"last_accessed"`
}
