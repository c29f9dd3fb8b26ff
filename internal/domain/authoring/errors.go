package authoring

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code код ошибки валидации теста
type Code string

const (
	CodeMissingTitle         Code = "missing_title"
	CodeNoQuestions          Code = "no_questions"
	CodeMissingText          Code = "missing_text"
	CodeMissingCorrectAnswer Code = "missing_correct_answer"
	CodeMultipleCorrect      Code = "multiple_correct_answers"
	CodeEmptyOption          Code = "empty_option"
)

// ErrInvalidStatus неизвестный статус при сохранении
var ErrInvalidStatus = errors.New("invalid test status")

// ValidationError первая найденная проблема в тесте.
// Question и Option нумеруются с единицы, ноль означает "не относится".
type ValidationError struct {
	Code     Code
	Question int
	Option   int
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case CodeMissingTitle:
		return "missing title"
	case CodeNoQuestions:
		return "no questions"
	case CodeMissingText:
		return fmt.Sprintf("question %d missing text", e.Question)
	case CodeMissingCorrectAnswer:
		return fmt.Sprintf("question %d missing correct answer", e.Question)
	case CodeMultipleCorrect:
		return fmt.Sprintf("question %d has more than one correct answer", e.Question)
	case CodeEmptyOption:
		return fmt.Sprintf("option %d in question %d empty", e.Option, e.Question)
	}
	return string(e.Code)
}

// AsValidationError достает ValidationError из цепочки ошибок
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
