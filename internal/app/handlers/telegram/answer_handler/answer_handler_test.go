package answer_handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/testportal/internal/app/handlers/telegram/chatstate"
	"github.com/IT-Nick/testportal/internal/app/handlers/telegram/telegramtest"
)

const chatID = 42

func TestAnswerButtonMarksOption(t *testing.T) {
	bot, api := telegramtest.NewBot(t)
	registry := telegramtest.NewRegistry(t)
	session := telegramtest.Attach(t, registry, chatID, nil)
	h := NewAnswerHandler(registry)

	require.NoError(t, h.Handle(bot.NewContext(telegramtest.Callback(chatID, "q1-o2"))))

	assert.Equal(t, "q1-o2", session.Snapshot().Answers["q1"])
	assert.Len(t, api.Calls("answerCallbackQuery"), 1)
	edit := api.Last(t, "editMessageText")
	assert.Contains(t, edit.Param("reply_markup"), "✅ Watt")
}

func TestAnswerButtonUnknownOption(t *testing.T) {
	bot, api := telegramtest.NewBot(t)
	registry := telegramtest.NewRegistry(t)
	session := telegramtest.Attach(t, registry, chatID, nil)
	h := NewAnswerHandler(registry)

	require.NoError(t, h.Handle(bot.NewContext(telegramtest.Callback(chatID, "q9-o1"))))

	assert.Empty(t, session.Snapshot().Answers)
	assert.Equal(t, "This option no longer exists.", api.Last(t, "answerCallbackQuery").Param("text"))
	assert.Empty(t, api.Calls("editMessageText"))
}

func TestAnswerWithoutSession(t *testing.T) {
	bot, api := telegramtest.NewBot(t)
	h := NewAnswerHandler(telegramtest.NewRegistry(t))

	require.NoError(t, h.Handle(bot.NewContext(telegramtest.Callback(chatID, "q1-o1"))))
	assert.Equal(t, chatstate.NoSessionText, api.Last(t, "answerCallbackQuery").Param("text"))

	require.NoError(t, h.HandleText(bot.NewContext(telegramtest.Message(chatID, "Newton"))))
	assert.Equal(t, chatstate.NoSessionText, api.Last(t, "sendMessage").Param("text"))
}

func TestTextRejectedForChoiceQuestion(t *testing.T) {
	bot, api := telegramtest.NewBot(t)
	registry := telegramtest.NewRegistry(t)
	session := telegramtest.Attach(t, registry, chatID, nil)
	h := NewAnswerHandler(registry)

	require.NoError(t, h.HandleText(bot.NewContext(telegramtest.Message(chatID, "Newton"))))

	assert.Empty(t, session.Snapshot().Answers)
	assert.Equal(t, "Pick one of the options above.", api.Last(t, "sendMessage").Param("text"))
}

func TestTextAnswersFreeTextQuestion(t *testing.T) {
	bot, api := telegramtest.NewBot(t)
	registry := telegramtest.NewRegistry(t)
	session := telegramtest.Attach(t, registry, chatID, nil)
	require.NoError(t, session.JumpTo(1))
	h := NewAnswerHandler(registry)

	require.NoError(t, h.HandleText(bot.NewContext(telegramtest.Message(chatID, "F = ma"))))

	assert.Equal(t, "F = ma", session.Snapshot().Answers["q2"])
	assert.Contains(t, api.Last(t, "sendMessage").Param("text"), "Your answer: _F = ma_")
}

func TestBlankTextIsRejected(t *testing.T) {
	bot, api := telegramtest.NewBot(t)
	registry := telegramtest.NewRegistry(t)
	session := telegramtest.Attach(t, registry, chatID, nil)
	require.NoError(t, session.JumpTo(1))
	h := NewAnswerHandler(registry)

	require.NoError(t, h.HandleText(bot.NewContext(telegramtest.Message(chatID, "   "))))

	assert.Empty(t, session.Snapshot().Answers)
	assert.Equal(t, "The answer is empty.", api.Last(t, "sendMessage").Param("text"))
}
