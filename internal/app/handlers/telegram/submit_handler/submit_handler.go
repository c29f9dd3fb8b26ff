package submit_handler

import (
	"context"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/testportal/internal/app/handlers/telegram/chatstate"
	"github.com/IT-Nick/testportal/internal/domain/taking"
)

// SubmitHandler завершение теста с подтверждением при неотвеченных вопросах
type SubmitHandler struct {
	registry *chatstate.Registry
}

// NewSubmitHandler возвращает новый экземпляр обработчика
func NewSubmitHandler(registry *chatstate.Registry) *SubmitHandler {
	return &SubmitHandler{registry: registry}
}

func (h *SubmitHandler) run(c telebot.Context, action func(s *taking.Session) error) error {
	session := h.registry.Session(c.Chat().ID)
	if session == nil {
		return chatstate.Reply(c, chatstate.NoSessionText)
	}
	if err := action(session); err != nil {
		return chatstate.Reply(c, chatstate.ErrorText(err))
	}
	if err := c.Respond(); err != nil {
		return err
	}
	return chatstate.Show(c, session.Snapshot())
}

// HandleSubmit кнопка "Submit"
func (h *SubmitHandler) HandleSubmit(c telebot.Context) error {
	return h.run(c, func(s *taking.Session) error {
		_, err := s.RequestSubmit(context.Background())
		return err
	})
}

// HandleConfirm кнопка "Submit anyway"
func (h *SubmitHandler) HandleConfirm(c telebot.Context) error {
	return h.run(c, func(s *taking.Session) error {
		_, err := s.ConfirmSubmit(context.Background())
		return err
	})
}

// HandleCancel кнопка "Continue test"
func (h *SubmitHandler) HandleCancel(c telebot.Context) error {
	return h.run(c, func(s *taking.Session) error {
		return s.CancelSubmit()
	})
}
