package model

// Константы для кнопок. Привязаны к названиям обработчиков.
// Не следует добавлять/изменять константы без изменения логики в обработчиках telegram
const (
	StartTestKey     = "start_test"
	AnswerKey        = "answer"
	NavKey           = "nav"
	SubmitKey        = "submit"
	ConfirmSubmitKey = "confirm_submit"
	CancelSubmitKey  = "cancel_submit"
)

// Данные кнопок навигации
const (
	NavPrev = "prev"
	NavNext = "next"
)
