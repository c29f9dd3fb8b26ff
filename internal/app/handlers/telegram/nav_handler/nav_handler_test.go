package nav_handler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/testportal/internal/app/handlers/telegram/telegramtest"
	"github.com/IT-Nick/testportal/internal/domain/model"
)

const chatID = 42

func TestNavigation(t *testing.T) {
	bot, api := telegramtest.NewBot(t)
	registry := telegramtest.NewRegistry(t)
	session := telegramtest.Attach(t, registry, chatID, nil)
	h := NewNavHandler(registry)

	press := func(data string) {
		t.Helper()
		require.NoError(t, h.Handle(bot.NewContext(telegramtest.Callback(chatID, data))))
	}

	press(model.NavNext)
	assert.Equal(t, 1, session.Snapshot().Index)
	press(model.NavNext)
	press(model.NavNext)
	assert.Equal(t, 2, session.Snapshot().Index)
	press(model.NavPrev)
	assert.Equal(t, 1, session.Snapshot().Index)
	press("0")
	assert.Equal(t, 0, session.Snapshot().Index)
	press("99")
	assert.Equal(t, 2, session.Snapshot().Index)

	assert.Contains(t, api.Last(t, "editMessageText").Param("text"), "Question 3 of 3")
}

func TestNavigationIgnoresGarbage(t *testing.T) {
	bot, api := telegramtest.NewBot(t)
	registry := telegramtest.NewRegistry(t)
	session := telegramtest.Attach(t, registry, chatID, nil)
	require.NoError(t, session.JumpTo(1))
	h := NewNavHandler(registry)

	require.NoError(t, h.Handle(bot.NewContext(telegramtest.Callback(chatID, "oops"))))

	assert.Equal(t, 1, session.Snapshot().Index)
	assert.Len(t, api.Calls("answerCallbackQuery"), 1)
	assert.Empty(t, api.Calls("editMessageText"))
}

func TestNavigationWhileConfirming(t *testing.T) {
	bot, api := telegramtest.NewBot(t)
	registry := telegramtest.NewRegistry(t)
	session := telegramtest.Attach(t, registry, chatID, nil)
	_, err := session.RequestSubmit(context.Background())
	require.NoError(t, err)
	h := NewNavHandler(registry)

	require.NoError(t, h.Handle(bot.NewContext(telegramtest.Callback(chatID, model.NavNext))))

	assert.Equal(t, 0, session.Snapshot().Index)
	assert.Equal(t, "Confirm or cancel the submission first.", api.Last(t, "answerCallbackQuery").Param("text"))
}
