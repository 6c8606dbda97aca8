package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleCasing(t *testing.T) {
	assert.Equal(t, RoleStudent, NormalizeRole("student"))
	assert.Equal(t, RoleFaculty, NormalizeRole(" Faculty "))

	// Tokens carry "student" while rows store "STUDENT"; both must match.
	assert.True(t, Role("student").Is(RoleStudent))
	assert.True(t, RoleStudent.Is(Role("Student")))
	assert.False(t, Role("faculty").Is(RoleStudent))
}
