package models

import "time"

// Enrollment links a user to a course
type Enrollment struct {
	ID         int       `json:"id"`
	UserID     int       `json:"userId"`
	CourseID   int       `json:"courseId"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

// EnrolledCourse represents a course in the caller's enrollment list
type EnrolledCourse struct {
	CourseID    int       `json:"courseId"`
	CourseTitle string    `json:"courseTitle"`
	EnrolledAt  time.Time `json:"enrolledAt"`
}

// EnrollmentResponse is returned after a successful enrollment
type EnrollmentResponse struct {
	CourseID    int    `json:"courseId"`
	CourseTitle string `json:"courseTitle"`
	Message     string `json:"message"`
}

// EnrollmentPair identifies one (user, course) enrollment for progress backfills
type EnrollmentPair struct {
	UserID   int
	CourseID int
}
