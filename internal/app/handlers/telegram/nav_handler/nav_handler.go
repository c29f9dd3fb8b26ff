package nav_handler

import (
	"strconv"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/testportal/internal/app/handlers/telegram/chatstate"
	"github.com/IT-Nick/testportal/internal/domain/model"
)

// NavHandler переходы между вопросами: prev, next или номер вопроса
type NavHandler struct {
	registry *chatstate.Registry
}

// NewNavHandler возвращает новый экземпляр обработчика
func NewNavHandler(registry *chatstate.Registry) *NavHandler {
	return &NavHandler{registry: registry}
}

// Handle обрабатывает кнопки навигации
func (h *NavHandler) Handle(c telebot.Context) error {
	session := h.registry.Session(c.Chat().ID)
	if session == nil {
		return chatstate.Reply(c, chatstate.NoSessionText)
	}

	var err error
	switch data := c.Callback().Data; data {
	case model.NavPrev:
		err = session.Prev()
	case model.NavNext:
		err = session.Next()
	default:
		index, convErr := strconv.Atoi(data)
		if convErr != nil {
			return c.Respond()
		}
		err = session.JumpTo(index)
	}
	if err != nil {
		return chatstate.Reply(c, chatstate.ErrorText(err))
	}
	if err := c.Respond(); err != nil {
		return err
	}
	return chatstate.Show(c, session.Snapshot())
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *NavHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
