package models

import "time"

// Course represents a course in the learning system
type Course struct {
	ID           int       `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	InstructorID int       `json:"instructorId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Module represents an ordered section of a course
type Module struct {
	ID         int    `json:"id"`
	CourseID   int    `json:"courseId"`
	Title      string `json:"title"`
	OrderIndex int    `json:"orderIndex"`
}

// Lesson represents a lesson inside a module
type Lesson struct {
	ID         int    `json:"id"`
	ModuleID   int    `json:"moduleId"`
	CourseID   int    `json:"courseId"`
	Title      string `json:"title"`
	Content    string `json:"content,omitempty"`
	OrderIndex int    `json:"orderIndex"`
	IsFree     bool   `json:"isFree"`
}

// LessonContentResponse represents a lesson served to an enrolled user
type LessonContentResponse struct {
	ID         int        `json:"id"`
	CourseID   int        `json:"courseId"`
	ModuleID   int        `json:"moduleId"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	OrderIndex int        `json:"orderIndex"`
	IsFree     bool       `json:"isFree"`
	Completed  bool       `json:"completed"`
	Progress   float64    `json:"progress"`
	LastAccess *time.Time `json:"lastAccessed,omitempty"`
}
