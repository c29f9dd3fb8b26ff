package chatstate

import (
	"github.com/pkg/errors"
	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/testportal/internal/domain/identity"
	"github.com/IT-Nick/testportal/internal/domain/taking"
	testsRepo "github.com/IT-Nick/testportal/internal/domain/tests/repository"
	testsService "github.com/IT-Nick/testportal/internal/domain/tests/service"
)

// NoSessionText ответ, когда в чате нет активного теста
const NoSessionText = "No test in progress. Use /start to pick one."

// ErrorText короткое сообщение для пользователя по ошибке сценария
func ErrorText(err error) string {
	switch {
	case errors.Is(err, taking.ErrSubmitted), errors.Is(err, taking.ErrClosed):
		return "This test is already finished."
	case errors.Is(err, taking.ErrConfirmationPending):
		return "Confirm or cancel the submission first."
	case errors.Is(err, taking.ErrNotConfirming):
		return "Submission was not requested."
	case errors.Is(err, taking.ErrUnknownOption):
		return "This option no longer exists."
	case errors.Is(err, taking.ErrEmptyAnswer):
		return "The answer is empty."
	case errors.Is(err, identity.ErrNotAuthenticated):
		return "Please /login first."
	case errors.Is(err, identity.ErrForbidden):
		return "This action is not available for your role."
	case errors.Is(err, testsRepo.ErrNotFound):
		return "Test not found."
	case errors.Is(err, testsService.ErrNotPublished):
		return "This test is not published."
	}
	return "Something went wrong, try again."
}

// Reply сообщает пользователю об ошибке: всплывающим ответом на кнопку или сообщением
func Reply(c telebot.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&telebot.CallbackResponse{Text: text})
	}
	return c.Send(text)
}
