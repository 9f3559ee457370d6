package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureDefaultsIsIdempotent(t *testing.T) {
	s := &State{}
	s.EnsureDefaults()

	assert.NotEmpty(t, s.ID)
	assert.NotNil(t, s.Messages)
	assert.False(t, s.CreatedAt.IsZero())

	id := s.ID
	created := s.CreatedAt
	s.EnsureDefaults()
	assert.Equal(t, id, s.ID)
	assert.Equal(t, created, s.CreatedAt)
}

func TestAppendMessage(t *testing.T) {
	s := NewState()
	s.AppendMessage(RoleUser, "hi")
	s.AppendMessage(RoleAssistant, "hello")

	assert.Len(t, s.Messages, 2)
	assert.Equal(t, RoleUser, s.Messages[0].Role)
	assert.Equal(t, RoleAssistant, s.Messages[1].Role)
	assert.False(t, s.UpdatedAt.IsZero())
}

func TestHasAge(t *testing.T) {
	s := NewState()
	assert.False(t, s.HasAge())
	s.StudentAge = 12
	assert.True(t, s.HasAge())
}
