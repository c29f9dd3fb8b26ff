package middleware

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v4"
)

// Logger возвращает middleware, которое логирует входящие обновления Telegram
func Logger(logger logrus.FieldLogger) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			fields := logrus.Fields{"update_id": c.Update().ID}
			if chat := c.Chat(); chat != nil {
				fields["chat_id"] = chat.ID
			}
			switch {
			case c.Callback() != nil:
				fields["callback"] = c.Callback().Data
			case c.Message() != nil:
				fields["text"] = loggedText(c.Message().Text)
			}
			entry := logger.WithFields(fields)
			entry.Debug("telegram update")

			err := next(c)
			if err != nil {
				entry.WithError(err).Warn("telegram handler failed")
			}
			return err
		}
	}
}

// loggedText у команд оставляет только саму команду, аргументы могут содержать пароль
func loggedText(text string) string {
	if !strings.HasPrefix(text, "/") {
		return text
	}
	if i := strings.IndexByte(text, ' '); i >= 0 {
		return text[:i]
	}
	return text
}

// Recover перехватывает панику в обработчике и превращает её в ошибку.
// onError вызывается с полученной ошибкой, по умолчанию паника логируется.
func Recover(logger logrus.FieldLogger, onError ...func(error, telebot.Context)) telebot.MiddlewareFunc {
	handleError := func(err error, _ telebot.Context) {
		logger.WithError(err).Error("recovered from panic")
	}
	if len(onError) > 0 {
		handleError = onError[0]
	}

	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var e error
					switch x := r.(type) {
					case error:
						e = errors.WithStack(x)
					case string:
						e = errors.New(x)
					default:
						e = errors.New(fmt.Sprint(x))
					}
					handleError(e, c)
					err = e
				}
			}()
			return next(c)
		}
	}
}
