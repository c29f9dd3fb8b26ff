package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v4"
)

func TestLoggingMiddleware(t *testing.T) {
	logger, hook := test.NewNullLogger()
	h := LoggingMiddleware(logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tests", nil))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, "/tests", entry.Data["path"])
}

func TestRecover(t *testing.T) {
	logger, hook := test.NewNullLogger()
	handler := Recover(logger)(func(telebot.Context) error {
		panic("boom")
	})

	err := handler(nil)
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestLoggerHidesCommandArguments(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	bot, err := telebot.NewBot(telebot.Settings{Offline: true})
	require.NoError(t, err)

	handler := Logger(logger)(func(telebot.Context) error { return nil })

	c := bot.NewContext(telebot.Update{ID: 1, Message: &telebot.Message{
		Chat: &telebot.Chat{ID: 7},
		Text: "/login student@example.com s3cret-pass",
	}})
	require.NoError(t, handler(c))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "/login", entry.Data["text"])
	line, err := entry.String()
	require.NoError(t, err)
	assert.NotContains(t, line, "s3cret-pass")
	assert.NotContains(t, line, "student@example.com")

	c = bot.NewContext(telebot.Update{ID: 2, Message: &telebot.Message{
		Chat: &telebot.Chat{ID: 7},
		Text: "Newton's second law",
	}})
	require.NoError(t, handler(c))
	assert.Equal(t, "Newton's second law", hook.LastEntry().Data["text"])
}
