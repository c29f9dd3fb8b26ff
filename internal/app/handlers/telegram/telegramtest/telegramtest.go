// Package telegramtest помогает тестировать обработчики бота без сети:
// бот работает в offline-режиме и шлет запросы в локальный fake Bot API.
package telegramtest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/testportal/internal/app/handlers/telegram/chatstate"
	"github.com/IT-Nick/testportal/internal/domain/identity"
	"github.com/IT-Nick/testportal/internal/domain/model"
	"github.com/IT-Nick/testportal/internal/domain/taking"
	"github.com/IT-Nick/testportal/internal/domain/tests/definition"
	"github.com/IT-Nick/testportal/internal/infra/storage"
)

// Call один запрос к Bot API
type Call struct {
	Method string
	Params map[string]interface{}
}

// Param строковое значение параметра запроса
func (c Call) Param(name string) string {
	if v, ok := c.Params[name].(string); ok {
		return v
	}
	return ""
}

// API записывает запросы бота и отвечает успехом
type API struct {
	mu     sync.Mutex
	calls  []Call
	nextID int
}

// NewBot offline-бот, подключенный к локальному API
func NewBot(t *testing.T) (*telebot.Bot, *API) {
	t.Helper()
	api := &API{}
	server := httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(server.Close)

	bot, err := telebot.NewBot(telebot.Settings{Token: "test", URL: server.URL, Offline: true})
	require.NoError(t, err)
	return bot, api
}

func (a *API) serve(w http.ResponseWriter, r *http.Request) {
	params := make(map[string]interface{})
	_ = json.NewDecoder(r.Body).Decode(&params)

	a.mu.Lock()
	a.nextID++
	id := a.nextID
	a.calls = append(a.calls, Call{Method: path.Base(r.URL.Path), Params: params})
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprintf(w, `{"ok":true,"result":{"message_id":%d,"date":0,"chat":{"id":0}}}`, id)
}

// Calls все запросы с заданным методом
func (a *API) Calls(method string) []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []Call
	for _, c := range a.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Last последний запрос с заданным методом
func (a *API) Last(t *testing.T, method string) Call {
	t.Helper()
	calls := a.Calls(method)
	require.NotEmpty(t, calls, "no %s calls", method)
	return calls[len(calls)-1]
}

// Reset забывает записанные запросы
func (a *API) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = nil
}

// Message входящее сообщение. Для команд payload это текст после команды.
func Message(chatID int64, text string) telebot.Update {
	msg := &telebot.Message{ID: 1, Chat: &telebot.Chat{ID: chatID}, Text: text}
	if strings.HasPrefix(text, "/") {
		if i := strings.IndexByte(text, ' '); i >= 0 {
			msg.Payload = strings.TrimSpace(text[i+1:])
		}
	}
	return telebot.Update{ID: 1, Message: msg}
}

// Callback нажатие inline-кнопки под сообщением бота
func Callback(chatID int64, data string) telebot.Update {
	return telebot.Update{ID: 2, Callback: &telebot.Callback{
		ID:      "cb",
		Data:    data,
		Message: &telebot.Message{ID: 10, Chat: &telebot.Chat{ID: chatID}},
	}}
}

// NewRegistry реестр чатов с демонстрационными пользователями в памяти
func NewRegistry(t *testing.T) *chatstate.Registry {
	t.Helper()
	dir, err := identity.DefaultDirectory(bcrypt.MinCost)
	require.NoError(t, err)
	store := storage.NewMemoryStore()
	return chatstate.NewRegistry(func(chatID int64) identity.Provider {
		return identity.NewMockProvider(dir, store, fmt.Sprintf("tg:%d", chatID), 0, nil)
	})
}

// Login входит в чат демонстрационным пользователем
func Login(t *testing.T, registry *chatstate.Registry, chatID int64, email string, role model.Role) {
	t.Helper()
	ctx := context.Background()
	p, err := registry.Provider(ctx, chatID)
	require.NoError(t, err)
	ok, err := p.Login(ctx, email, identity.MockPassword, role)
	require.NoError(t, err)
	require.True(t, ok)
}

// Attach прикрепляет к чату сессию по тесту по физике
func Attach(t *testing.T, registry *chatstate.Registry, chatID int64, recorder taking.Recorder) *taking.Session {
	t.Helper()
	session, err := taking.New(definition.Sample().Sheet(), taking.Config{StudentID: "s1", Recorder: recorder})
	require.NoError(t, err)
	registry.Attach(chatID, session, nil)
	return session
}

// Recorder запоминает отправленные попытки
type Recorder struct {
	mu   sync.Mutex
	subs []model.Submission
}

// Record реализует taking.Recorder
func (r *Recorder) Record(_ context.Context, sub model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, sub)
	return nil
}

// Submissions копия принятых попыток
func (r *Recorder) Submissions() []model.Submission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Submission(nil), r.subs...)
}
