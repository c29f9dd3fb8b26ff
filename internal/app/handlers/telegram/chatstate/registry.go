package chatstate

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/IT-Nick/testportal/internal/domain/identity"
	"github.com/IT-Nick/testportal/internal/domain/taking"
)

// ProviderFactory создает провайдер для чата
type ProviderFactory func(chatID int64) identity.Provider

type chat struct {
	provider  identity.Provider
	session   *taking.Session
	stopTimer context.CancelFunc
}

// Registry состояние чатов: провайдер пользователя и активная сессия
type Registry struct {
	mu      sync.Mutex
	chats   map[int64]*chat
	factory ProviderFactory
}

// NewRegistry создает пустой реестр
func NewRegistry(factory ProviderFactory) *Registry {
	return &Registry{chats: make(map[int64]*chat), factory: factory}
}

// Provider возвращает провайдер чата, при первом обращении создает и инициализирует его
func (r *Registry) Provider(ctx context.Context, chatID int64) (identity.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.chats[chatID]; ok {
		return c.provider, nil
	}
	p := r.factory(chatID)
	if err := p.Init(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to init provider for chat %d", chatID)
	}
	r.chats[chatID] = &chat{provider: p}
	return p, nil
}

// Session активная сессия чата или nil
func (r *Registry) Session(chatID int64) *taking.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.chats[chatID]; ok {
		return c.session
	}
	return nil
}

// Attach делает сессию активной. Прежняя сессия чата бросается.
func (r *Registry) Attach(chatID int64, s *taking.Session, stopTimer context.CancelFunc) {
	r.mu.Lock()
	c, ok := r.chats[chatID]
	if !ok {
		c = &chat{}
		r.chats[chatID] = c
	}
	prev, prevStop := c.session, c.stopTimer
	c.session, c.stopTimer = s, stopTimer
	r.mu.Unlock()

	release(prev, prevStop)
}

// Finish убирает завершенную сессию. Таймер сам остановится после финального сообщения.
func (r *Registry) Finish(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok || c.session == nil {
		return
	}
	if c.session.Snapshot().State == taking.StateSubmitted {
		c.session, c.stopTimer = nil, nil
	}
}

// Abandon бросает активную сессию без отправки
func (r *Registry) Abandon(chatID int64) {
	r.mu.Lock()
	c, ok := r.chats[chatID]
	if !ok {
		r.mu.Unlock()
		return
	}
	s, stop := c.session, c.stopTimer
	c.session, c.stopTimer = nil, nil
	r.mu.Unlock()

	release(s, stop)
}

// Close бросает все сессии и освобождает провайдеры
func (r *Registry) Close(ctx context.Context) error {
	r.mu.Lock()
	chats := r.chats
	r.chats = make(map[int64]*chat)
	r.mu.Unlock()

	var result *multierror.Error
	for id, c := range chats {
		release(c.session, c.stopTimer)
		if c.provider == nil {
			continue
		}
		if err := c.provider.Teardown(ctx); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "chat %d", id))
		}
	}
	return result.ErrorOrNil()
}

func release(s *taking.Session, stop context.CancelFunc) {
	if stop != nil {
		stop()
	}
	if s != nil {
		s.Close()
	}
}
