package model

import "github.com/google/uuid"

// Kind тип вопроса
type Kind string

const (
	KindSingleChoice Kind = "single-choice"
	KindTrueFalse    Kind = "true-false"
	KindFreeText     Kind = "free-text"
)

// Подписи вариантов вопроса true-false
const (
	TrueLabel  = "True"
	FalseLabel = "False"
)

// SingleChoiceOptions количество пустых вариантов у нового вопроса с выбором
const SingleChoiceOptions = 4

// Valid сообщает, известен ли тип вопроса
func (k Kind) Valid() bool {
	switch k {
	case KindSingleChoice, KindTrueFalse, KindFreeText:
		return true
	}
	return false
}

// IsChoice true для вопросов с вариантами ответа
func (k Kind) IsChoice() bool {
	return k == KindSingleChoice || k == KindTrueFalse
}

// IDFunc генератор идентификаторов
type IDFunc func() string

// NewID возвращает новый uuid
func NewID() string {
	return uuid.NewString()
}

// Option вариант ответа
type Option struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	IsCorrect bool   `json:"is_correct" yaml:"is_correct"`
}

// ChoiceBody данные вопроса с выбором (single-choice, true-false)
type ChoiceBody struct {
	Options []Option `json:"options" yaml:"options"`
}

// FreeTextBody данные вопроса со свободным ответом
type FreeTextBody struct {
	ReferenceAnswer string `json:"reference_answer" yaml:"reference_answer"`
}

// Question представляет вопрос теста.
// Ровно одно из полей Choice/FreeText заполнено, в зависимости от Kind.
type Question struct {
	ID       string        `json:"id" yaml:"id"`
	Text     string        `json:"text" yaml:"text"`
	Kind     Kind          `json:"kind" yaml:"kind"`
	Choice   *ChoiceBody   `json:"choice,omitempty" yaml:"choice,omitempty"`
	FreeText *FreeTextBody `json:"free_text,omitempty" yaml:"free_text,omitempty"`
}

// NewQuestion создает вопрос заданного типа с пустыми данными
func NewQuestion(kind Kind, newID IDFunc) Question {
	return Question{ID: newID()}.WithKind(kind, newID)
}

// WithKind пересобирает данные вопроса под новый тип.
// Текст и id сохраняются, прежние варианты и эталонный ответ теряются.
func (q Question) WithKind(kind Kind, newID IDFunc) Question {
	out := Question{ID: q.ID, Text: q.Text, Kind: kind}
	switch kind {
	case KindTrueFalse:
		out.Choice = &ChoiceBody{Options: []Option{
			{ID: newID(), Text: TrueLabel},
			{ID: newID(), Text: FalseLabel},
		}}
	case KindFreeText:
		out.FreeText = &FreeTextBody{}
	default:
		out.Kind = KindSingleChoice
		opts := make([]Option, SingleChoiceOptions)
		for i := range opts {
			opts[i] = Option{ID: newID()}
		}
		out.Choice = &ChoiceBody{Options: opts}
	}
	return out
}

// Options варианты ответа, nil для свободного ответа
func (q Question) Options() []Option {
	if q.Choice == nil {
		return nil
	}
	return q.Choice.Options
}

// ReferenceAnswer эталонный ответ на вопрос со свободным ответом
func (q Question) ReferenceAnswer() string {
	if q.FreeText == nil {
		return ""
	}
	return q.FreeText.ReferenceAnswer
}

// CorrectOption возвращает первый вариант, отмеченный правильным
func (q Question) CorrectOption() (Option, bool) {
	for _, o := range q.Options() {
		if o.IsCorrect {
			return o, true
		}
	}
	return Option{}, false
}

// Clone глубокая копия вопроса
func (q Question) Clone() Question {
	out := q
	if q.Choice != nil {
		out.Choice = &ChoiceBody{Options: append([]Option(nil), q.Choice.Options...)}
	}
	if q.FreeText != nil {
		ft := *q.FreeText
		out.FreeText = &ft
	}
	return out
}
