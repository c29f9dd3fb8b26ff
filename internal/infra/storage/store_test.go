package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/testportal/internal/domain/model"
)

var student = model.User{ID: "s1", Name: "John Doe", Email: "student@example.com", Role: model.RoleStudent}

func exercise(t *testing.T, s Store) {
	_, ok := s.Get("user")
	assert.False(t, ok)

	require.NoError(t, s.Set("user", student))
	got, ok := s.Get("user")
	require.True(t, ok)
	assert.Equal(t, student, got)

	require.NoError(t, s.Delete("user"))
	_, ok = s.Get("user")
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	exercise(t, NewMemoryStore())
}

func TestJSONStore(t *testing.T) {
	s, err := NewJSONStore(filepath.Join(t.TempDir(), "sessions.json"))
	require.NoError(t, err)
	exercise(t, s)
}

func TestJSONStoreSurvivesReopen(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sessions.json")
	first, err := NewStore("json", file)
	require.NoError(t, err)
	require.NoError(t, first.Set("user", student))

	second, err := NewStore("json", file)
	require.NoError(t, err)
	got, ok := second.Get("user")
	require.True(t, ok)
	assert.Equal(t, student.Email, got.Email)
}

func TestNewStoreDefaultsToMemory(t *testing.T) {
	s, err := NewStore("", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
}
