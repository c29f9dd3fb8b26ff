package login_handler

import (
	"context"
	"fmt"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/testportal/internal/app/handlers/telegram/chatstate"
	"github.com/IT-Nick/testportal/internal/domain/model"
)

// LoginHandler обрабатывает /login <email> <password> [role] и /logout
type LoginHandler struct {
	registry *chatstate.Registry
}

// NewLoginHandler возвращает структуру обработчика
func NewLoginHandler(registry *chatstate.Registry) *LoginHandler {
	return &LoginHandler{registry: registry}
}

// Handle выполняет вход. По умолчанию роль student.
func (h *LoginHandler) Handle(c telebot.Context) error {
	args := c.Args()
	if len(args) < 2 {
		return c.Send("Usage: /login <email> <password> [student|teacher]")
	}
	role := model.RoleStudent
	if len(args) > 2 {
		role = model.Role(args[2])
		if !role.Valid() {
			return c.Send("Unknown role, use student or teacher.")
		}
	}

	ctx := context.Background()
	provider, err := h.registry.Provider(ctx, c.Chat().ID)
	if err != nil {
		return c.Send(chatstate.ErrorText(err))
	}

	prev := provider.CurrentUser()
	ok, err := provider.Login(ctx, args[0], args[1], role)
	if err != nil {
		return c.Send(chatstate.ErrorText(err))
	}
	if !ok {
		return c.Send("❌ Invalid email, password or role.")
	}
	// тест предыдущего пользователя не должен уйти под новым
	if prev != nil && prev.ID != provider.CurrentUser().ID {
		h.registry.Abandon(c.Chat().ID)
	}
	return c.Send(fmt.Sprintf("✅ Logged in as %s. Send /start to see the tests.", provider.CurrentUser().Name))
}

// HandleLogout выходит и бросает незавершенный тест
func (h *LoginHandler) HandleLogout(c telebot.Context) error {
	ctx := context.Background()
	provider, err := h.registry.Provider(ctx, c.Chat().ID)
	if err != nil {
		return c.Send(chatstate.ErrorText(err))
	}
	h.registry.Abandon(c.Chat().ID)
	if err := provider.Logout(ctx); err != nil {
		return c.Send(chatstate.ErrorText(err))
	}
	return c.Send("👋 Logged out.")
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *LoginHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}

// GetLogoutHandlerFunc возвращает обработчик /logout
func (h *LoginHandler) GetLogoutHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.HandleLogout(c)
	}
}
