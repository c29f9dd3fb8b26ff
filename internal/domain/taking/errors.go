package taking

import "github.com/pkg/errors"

var (
	ErrSubmitted           = errors.New("test already submitted")
	ErrConfirmationPending = errors.New("submit confirmation pending")
	ErrNotConfirming       = errors.New("submit was not requested")
	ErrUnknownOption       = errors.New("unknown option")
	ErrEmptyAnswer         = errors.New("empty answer")
	ErrNoQuestions         = errors.New("test has no questions")
	ErrClosed              = errors.New("session closed")
)
