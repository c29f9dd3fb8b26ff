package answer_handler

import (
	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/testportal/internal/app/handlers/telegram/chatstate"
	"github.com/IT-Nick/testportal/internal/domain/model"
)

// AnswerHandler принимает ответы: кнопки вариантов и текст для свободного ответа
type AnswerHandler struct {
	registry *chatstate.Registry
}

// NewAnswerHandler возвращает новый экземпляр обработчика
func NewAnswerHandler(registry *chatstate.Registry) *AnswerHandler {
	return &AnswerHandler{registry: registry}
}

// Handle обрабатывает нажатие на вариант, в данных id варианта
func (h *AnswerHandler) Handle(c telebot.Context) error {
	session := h.registry.Session(c.Chat().ID)
	if session == nil {
		return chatstate.Reply(c, chatstate.NoSessionText)
	}
	if err := session.AnswerCurrent(c.Callback().Data); err != nil {
		return chatstate.Reply(c, chatstate.ErrorText(err))
	}
	if err := c.Respond(); err != nil {
		return err
	}
	return chatstate.Show(c, session.Snapshot())
}

// HandleText принимает текст как ответ на текущий вопрос со свободным ответом
func (h *AnswerHandler) HandleText(c telebot.Context) error {
	session := h.registry.Session(c.Chat().ID)
	if session == nil {
		return c.Send(chatstate.NoSessionText)
	}
	if session.Snapshot().Current.Kind != model.KindFreeText {
		return c.Send("Pick one of the options above.")
	}
	if err := session.AnswerCurrent(c.Text()); err != nil {
		return c.Send(chatstate.ErrorText(err))
	}
	return chatstate.Show(c, session.Snapshot())
}

// GetHandlerFunc возвращает обработчик кнопок вариантов
func (h *AnswerHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}

// GetTextHandlerFunc возвращает обработчик текстовых сообщений
func (h *AnswerHandler) GetTextHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.HandleText(c)
	}
}
