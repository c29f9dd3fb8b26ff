package identity

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/IT-Nick/testportal/internal/domain/model"
	"github.com/IT-Nick/testportal/internal/infra/storage"
)

func newProvider(t *testing.T, store storage.Store, latency time.Duration) *MockProvider {
	t.Helper()
	dir, err := DefaultDirectory(bcrypt.MinCost)
	require.NoError(t, err)
	p := NewMockProvider(dir, store, "", latency, nil)
	require.NoError(t, p.Init(context.Background()))
	return p
}

func TestLoginSuccess(t *testing.T) {
	p := newProvider(t, storage.NewMemoryStore(), 0)
	assert.Nil(t, p.CurrentUser())

	ok, err := p.Login(context.Background(), "teacher@example.com", "password", model.RoleTeacher)
	require.NoError(t, err)
	require.True(t, ok)

	user := p.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "t1", user.ID)
	assert.Equal(t, "Professor Smith", user.Name)
}

func TestLoginFailureKeepsState(t *testing.T) {
	p := newProvider(t, storage.NewMemoryStore(), 0)
	ok, err := p.Login(context.Background(), "student@example.com", "password", model.RoleStudent)
	require.NoError(t, err)
	require.True(t, ok)

	cases := []struct {
		email, password string
		role            model.Role
	}{
		{"student@example.com", "wrong", model.RoleStudent},
		{"student@example.com", "password", model.RoleTeacher},
		{"nobody@example.com", "password", model.RoleStudent},
	}
	for _, c := range cases {
		ok, err := p.Login(context.Background(), c.email, c.password, c.role)
		require.NoError(t, err)
		assert.False(t, ok)
		require.NotNil(t, p.CurrentUser())
		assert.Equal(t, "s1", p.CurrentUser().ID)
	}
}

func TestLogout(t *testing.T) {
	store := storage.NewMemoryStore()
	p := newProvider(t, store, 0)
	_, err := p.Login(context.Background(), "student@example.com", "password", model.RoleStudent)
	require.NoError(t, err)

	require.NoError(t, p.Logout(context.Background()))
	assert.Nil(t, p.CurrentUser())
	_, ok := store.Get(DefaultKey)
	assert.False(t, ok)
}

func TestCurrentUserSurvivesRestart(t *testing.T) {
	file := filepath.Join(t.TempDir(), "session.json")
	store, err := storage.NewJSONStore(file)
	require.NoError(t, err)

	p := newProvider(t, store, 0)
	_, err = p.Login(context.Background(), "TEACHER@example.com ", "password", model.RoleTeacher)
	require.NoError(t, err)
	require.NoError(t, p.Teardown(context.Background()))

	reopened, err := storage.NewJSONStore(file)
	require.NoError(t, err)
	restarted := newProvider(t, reopened, 0)
	require.NotNil(t, restarted.CurrentUser())
	assert.Equal(t, "t1", restarted.CurrentUser().ID)
}

func TestLoginHonorsContext(t *testing.T) {
	p := newProvider(t, storage.NewMemoryStore(), time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := p.Login(ctx, "student@example.com", "password", model.RoleStudent)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRequireRole(t *testing.T) {
	p := newProvider(t, storage.NewMemoryStore(), 0)
	_, err := RequireRole(p, model.RoleStudent)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = p.Login(context.Background(), "student@example.com", "password", model.RoleStudent)
	require.NoError(t, err)

	user, err := RequireRole(p, model.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, "s1", user.ID)

	_, err = RequireRole(p, model.RoleTeacher)
	assert.ErrorIs(t, err, ErrForbidden)
}
