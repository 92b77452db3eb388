package models

// Role is the role carried by an access token
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// Caller identifies the authenticated user of a request
type Caller struct {
	ID   int
	Role Role
}
