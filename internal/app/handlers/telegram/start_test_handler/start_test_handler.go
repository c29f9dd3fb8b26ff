package start_test_handler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/testportal/internal/app/handlers/telegram/chatstate"
	"github.com/IT-Nick/testportal/internal/domain/model"
	"github.com/IT-Nick/testportal/internal/domain/taking"
	testService "github.com/IT-Nick/testportal/internal/domain/tests/service"
	"github.com/IT-Nick/testportal/internal/infra/timer"
)

// Sender часть *telebot.Bot для отправки сообщений вне обработчика
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// StartTestHandler структура для обработки нажатия кнопки с тестом
type StartTestHandler struct {
	registry     *chatstate.Registry
	testService  *testService.TestService
	recorder     taking.Recorder
	updater      *timer.Updater
	sender       Sender
	tickInterval time.Duration
	log          logrus.FieldLogger
}

// NewStartTestHandler возвращает новый экземпляр обработчика
func NewStartTestHandler(
	registry *chatstate.Registry,
	testService *testService.TestService,
	recorder taking.Recorder,
	updater *timer.Updater,
	sender Sender,
	tickInterval time.Duration,
	log logrus.FieldLogger,
) *StartTestHandler {
	return &StartTestHandler{
		registry:     registry,
		testService:  testService,
		recorder:     recorder,
		updater:      updater,
		sender:       sender,
		tickInterval: tickInterval,
		log:          log,
	}
}

// Handle обрабатывает callback от кнопки теста, в данных id теста
func (h *StartTestHandler) Handle(c telebot.Context) error {
	ctx := context.Background()
	chatID := c.Chat().ID

	provider, err := h.registry.Provider(ctx, chatID)
	if err != nil {
		return chatstate.Reply(c, chatstate.ErrorText(err))
	}

	// total задается до запуска часов и до первой команды
	var total int
	session, err := h.testService.StartSession(ctx, provider, c.Callback().Data, testService.SessionOptions{
		TickInterval: h.tickInterval,
		Recorder:     h.recorder,
		OnSubmitted: func(sub model.Submission, err error) {
			h.onSubmitted(chatID, total, sub, err)
		},
	})
	if err != nil {
		return chatstate.Reply(c, chatstate.ErrorText(err))
	}
	total = len(session.Sheet().Questions)
	snap := session.Snapshot()

	timerMsg, err := h.sender.Send(c.Chat(), timer.Text(snap))
	if err != nil {
		return err
	}

	timerCtx, stopTimer := context.WithCancel(context.Background())
	h.registry.Attach(chatID, session, stopTimer)
	session.Start(context.Background())
	go h.updater.UpdateTimer(timerCtx, chatID, timerMsg.ID, session)

	if err := c.Respond(&telebot.CallbackResponse{Text: "Test started!"}); err != nil {
		h.log.WithError(err).Debug("failed to answer callback")
	}
	text, markup := chatstate.QuestionView(snap)
	return c.Send(text, markup, telebot.ModeMarkdown)
}

func (h *StartTestHandler) onSubmitted(chatID int64, total int, sub model.Submission, err error) {
	text := chatstate.SubmittedText(sub, total)
	if err != nil {
		text += "\n⚠️ The result could not be saved."
	}
	if _, sendErr := h.sender.Send(&telebot.Chat{ID: chatID}, text); sendErr != nil {
		h.log.WithError(sendErr).WithField("chat_id", chatID).Warn("failed to notify about submission")
	}
	h.registry.Finish(chatID)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *StartTestHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
