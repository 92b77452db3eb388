package policy

import (
	"testing"

	"github.com/edupath/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRequire(t *testing.T) {
	tests := []struct {
		name       string
		role       models.Role
		capability Capability
		allowed    bool
	}{
		{name: "student tracks progress", role: models.RoleStudent, capability: TrackProgress, allowed: true},
		{name: "teacher does not track progress", role: models.RoleTeacher, capability: TrackProgress, allowed: false},
		{name: "admin does not track progress", role: models.RoleAdmin, capability: TrackProgress, allowed: false},
		{name: "student enrolls", role: models.RoleStudent, capability: Enroll, allowed: true},
		{name: "teacher cannot enroll", role: models.RoleTeacher, capability: Enroll, allowed: false},
		{name: "student submits quiz", role: models.RoleStudent, capability: SubmitQuiz, allowed: true},
		{name: "teacher cannot submit quiz", role: models.RoleTeacher, capability: SubmitQuiz, allowed: false},
		{name: "admin cannot submit quiz", role: models.RoleAdmin, capability: SubmitQuiz, allowed: false},
		{name: "student cannot manage quiz", role: models.RoleStudent, capability: ManageQuiz, allowed: false},
		{name: "teacher manages quiz", role: models.RoleTeacher, capability: ManageQuiz, allowed: true},
		{name: "admin views results", role: models.RoleAdmin, capability: ViewResults, allowed: true},
		{name: "student cannot view answer key", role: models.RoleStudent, capability: ViewAnswerKey, allowed: false},
		{name: "unknown role", role: models.Role("guest"), capability: TrackProgress, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Require(tt.role, tt.capability)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, models.ErrAccessDenied)
			}
			assert.Equal(t, tt.allowed, Allows(tt.role, tt.capability))
		})
	}
}

func TestIsStaff(t *testing.T) {
	assert.False(t, IsStaff(models.RoleStudent))
	assert.True(t, IsStaff(models.RoleTeacher))
	assert.True(t, IsStaff(models.RoleAdmin))
}
