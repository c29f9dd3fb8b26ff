package identity

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/IT-Nick/testportal/internal/domain/model"
	"github.com/IT-Nick/testportal/internal/infra/storage"
)

// DefaultKey ключ, под которым хранится текущий пользователь веб-интерфейса
const DefaultKey = "user"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("forbidden for current role")
	// ErrInvalidCredentials используется HTTP и ботом, Login возвращает false
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Provider источник текущего пользователя.
// Передается в сценарии явно, Init/Teardown вызывает владелец.
type Provider interface {
	Init(ctx context.Context) error
	Login(ctx context.Context, email, password string, role model.Role) (bool, error)
	Logout(ctx context.Context) error
	CurrentUser() *model.User
	Teardown(ctx context.Context) error
}

// MockProvider провайдер над справочником с имитацией задержки сети
type MockProvider struct {
	dir     *Directory
	store   storage.Store
	key     string
	latency time.Duration
	log     logrus.FieldLogger

	mu      sync.RWMutex
	current *model.User
}

// NewMockProvider создает провайдер, текущий пользователь хранится в store под key
func NewMockProvider(dir *Directory, store storage.Store, key string, latency time.Duration, log logrus.FieldLogger) *MockProvider {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &MockProvider{dir: dir, store: store, key: key, latency: latency, log: log}
}

// Init восстанавливает пользователя из хранилища
func (p *MockProvider) Init(_ context.Context) error {
	user, ok := p.store.Get(p.key)
	p.mu.Lock()
	defer p.mu.Unlock()
	if ok {
		p.current = &user
		p.log.WithField("user_id", user.ID).Debug("restored current user")
	} else {
		p.current = nil
	}
	return nil
}

// Login проверяет учетные данные. Неверные данные дают false без ошибки
// и не меняют текущего пользователя.
func (p *MockProvider) Login(ctx context.Context, email, password string, role model.Role) (bool, error) {
	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-timer.C:
		}
	}

	user, ok := p.dir.Authenticate(email, password, role)
	if !ok {
		p.log.WithField("email", email).Info("login rejected")
		return false, nil
	}
	if err := p.store.Set(p.key, user); err != nil {
		return false, errors.Wrap(err, "failed to persist current user")
	}

	p.mu.Lock()
	p.current = &user
	p.mu.Unlock()
	p.log.WithField("user_id", user.ID).Info("logged in")
	return true, nil
}

// Logout сбрасывает текущего пользователя
func (p *MockProvider) Logout(_ context.Context) error {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()
	if err := p.store.Delete(p.key); err != nil {
		return errors.Wrap(err, "failed to clear current user")
	}
	return nil
}

// CurrentUser копия текущего пользователя или nil
func (p *MockProvider) CurrentUser() *model.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return nil
	}
	u := *p.current
	return &u
}

// Teardown отпускает провайдер, сохраненный пользователь остается в хранилище
func (p *MockProvider) Teardown(_ context.Context) error {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()
	return nil
}

// RequireRole возвращает текущего пользователя, если у него нужная роль
func RequireRole(p Provider, role model.Role) (model.User, error) {
	user := p.CurrentUser()
	if user == nil {
		return model.User{}, ErrNotAuthenticated
	}
	if user.Role != role {
		return model.User{}, errors.Wrapf(ErrForbidden, "need role %s", role)
	}
	return *user, nil
}
