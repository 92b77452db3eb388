// Package policy maps roles to the capabilities they grant
package policy

import (
	"fmt"

	"github.com/edupath/backend/internal/models"
)

// Capability names an action guarded by role
type Capability string

const (
	TrackProgress Capability = "track-progress"
	Enroll        Capability = "enroll"
	SubmitQuiz    Capability = "submit-quiz"
	ManageQuiz    Capability = "manage-quiz"
	ViewResults   Capability = "view-results"
	ViewAnswerKey Capability = "view-answer-key"
)

var grants = map[models.Role]map[Capability]bool{
	models.RoleStudent: {
		TrackProgress: true,
		Enroll:        true,
		SubmitQuiz:    true,
	},
	models.RoleTeacher: {
		ManageQuiz:    true,
		ViewResults:   true,
		ViewAnswerKey: true,
	},
	models.RoleAdmin: {
		ManageQuiz:    true,
		ViewResults:   true,
		ViewAnswerKey: true,
	},
}

// Allows reports whether the role grants the capability
func Allows(role models.Role, capability Capability) bool {
	return grants[role][capability]
}

// Require returns models.ErrAccessDenied when the role does not grant the capability
func Require(role models.Role, capability Capability) error {
	if !Allows(role, capability) {
		return fmt.Errorf("role %q cannot %s: %w", role, capability, models.ErrAccessDenied)
	}
	return nil
}

// IsStaff reports whether the role can manage course content
func IsStaff(role models.Role) bool {
	return Allows(role, ManageQuiz)
}
