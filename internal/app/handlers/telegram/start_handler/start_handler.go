package start_handler

import (
	"context"
	"fmt"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/testportal/internal/app/handlers/telegram/chatstate"
	"github.com/IT-Nick/testportal/internal/domain/model"
	testService "github.com/IT-Nick/testportal/internal/domain/tests/service"
)

// StartHandler структура для обработки команды /start
type StartHandler struct {
	registry    *chatstate.Registry
	testService *testService.TestService
}

// NewStartHandler возвращает структуру обработчика
func NewStartHandler(registry *chatstate.Registry, testService *testService.TestService) *StartHandler {
	return &StartHandler{registry: registry, testService: testService}
}

// Handle приветствует пользователя и показывает опубликованные тесты
func (h *StartHandler) Handle(c telebot.Context) error {
	ctx := context.Background()

	provider, err := h.registry.Provider(ctx, c.Chat().ID)
	if err != nil {
		return c.Send(chatstate.ErrorText(err))
	}
	user := provider.CurrentUser()
	if user == nil {
		return c.Send("👋 Welcome to the test portal!\nLog in with /login <email> <password>.")
	}
	if user.Role != model.RoleStudent {
		return c.Send(fmt.Sprintf("👋 Hello, %s! Tests are authored through the web API.", user.Name))
	}

	if s := h.registry.Session(c.Chat().ID); s != nil {
		return chatstate.Show(c, s.Snapshot())
	}

	sheets, err := h.testService.ListPublished(ctx)
	if err != nil {
		return c.Send(chatstate.ErrorText(err))
	}
	if len(sheets) == 0 {
		return c.Send("There are no published tests yet.")
	}

	markup := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, len(sheets))
	for _, sheet := range sheets {
		label := fmt.Sprintf("%s (%d min)", sheet.Title, sheet.TimeLimitMinutes)
		rows = append(rows, markup.Row(markup.Data(label, model.StartTestKey, sheet.TestID)))
	}
	markup.Inline(rows...)

	return c.Send(fmt.Sprintf("👋 Hello, %s! Pick a test:", user.Name), markup)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *StartHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
