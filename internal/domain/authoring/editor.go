package authoring

import (
	"github.com/pkg/errors"

	"github.com/IT-Nick/testportal/internal/domain/model"
)

// Metadata частичное обновление заголовка, описания и длительности.
// nil поля не меняются.
type Metadata struct {
	Title            *string `json:"title,omitempty"`
	Description      *string `json:"description,omitempty"`
	TimeLimitMinutes *int    `json:"time_limit_minutes,omitempty"`
}

// Editor редактор одного теста.
// Не потокобезопасен: им владеет один автор.
type Editor struct {
	test     model.Test
	selected int
	finished bool
	newID    model.IDFunc
}

// NewEditor создает редактор над копией теста
func NewEditor(test model.Test, newID model.IDFunc) *Editor {
	if newID == nil {
		newID = model.NewID
	}
	t := test.Clone()
	if t.Questions == nil {
		t.Questions = []model.Question{}
	}
	if !t.Status.Valid() {
		t.Status = model.StatusDraft
	}
	return &Editor{test: t, selected: -1, newID: newID}
}

// Test возвращает копию редактируемого теста
func (e *Editor) Test() model.Test {
	return e.test.Clone()
}

// Selected индекс выбранного вопроса
func (e *Editor) Selected() (int, bool) {
	return e.selected, e.selected >= 0
}

// Finished true после успешного сохранения
func (e *Editor) Finished() bool {
	return e.finished
}

func (e *Editor) inRange(index int) bool {
	return index >= 0 && index < len(e.test.Questions)
}

// Select выбирает вопрос
func (e *Editor) Select(index int) {
	if e.inRange(index) {
		e.selected = index
	}
}

// AddQuestion добавляет пустой вопрос с выбором и выбирает его
func (e *Editor) AddQuestion() int {
	e.test.Questions = append(e.test.Questions, model.NewQuestion(model.KindSingleChoice, e.newID))
	e.selected = len(e.test.Questions) - 1
	return e.selected
}

// RemoveQuestion удаляет вопрос и сдвигает выбор
func (e *Editor) RemoveQuestion(index int) {
	if !e.inRange(index) {
		return
	}
	e.test.Questions = append(e.test.Questions[:index], e.test.Questions[index+1:]...)
	switch {
	case e.selected == index:
		e.selected = -1
	case e.selected > index:
		e.selected--
	}
}

// SetQuestionKind меняет тип вопроса, данные собираются заново
func (e *Editor) SetQuestionKind(index int, kind model.Kind) {
	if !e.inRange(index) || !kind.Valid() || e.test.Questions[index].Kind == kind {
		return
	}
	e.test.Questions[index] = e.test.Questions[index].WithKind(kind, e.newID)
}

// EditQuestionText меняет текст вопроса
func (e *Editor) EditQuestionText(index int, text string) {
	if e.inRange(index) {
		e.test.Questions[index].Text = text
	}
}

// EditOption меняет текст варианта. Подписи true-false фиксированы.
func (e *Editor) EditOption(index, option int, text string) {
	if !e.inRange(index) {
		return
	}
	q := &e.test.Questions[index]
	if q.Kind != model.KindSingleChoice || q.Choice == nil || option < 0 || option >= len(q.Choice.Options) {
		return
	}
	q.Choice.Options[option].Text = text
}

// SetCorrectOption отмечает ровно один вариант правильным
func (e *Editor) SetCorrectOption(index, option int) {
	if !e.inRange(index) {
		return
	}
	q := &e.test.Questions[index]
	if q.Choice == nil || option < 0 || option >= len(q.Choice.Options) {
		return
	}
	for i := range q.Choice.Options {
		q.Choice.Options[i].IsCorrect = i == option
	}
}

// SetReferenceAnswer задает эталонный ответ для свободного ответа
func (e *Editor) SetReferenceAnswer(index int, answer string) {
	if !e.inRange(index) {
		return
	}
	q := &e.test.Questions[index]
	if q.FreeText == nil {
		return
	}
	q.FreeText.ReferenceAnswer = answer
}

// SetMetadata обновляет заголовок, описание и длительность
func (e *Editor) SetMetadata(m Metadata) {
	if m.Title != nil {
		e.test.Title = *m.Title
	}
	if m.Description != nil {
		e.test.Description = *m.Description
	}
	if m.TimeLimitMinutes != nil {
		e.test.TimeLimitMinutes = model.ClampTimeLimit(*m.TimeLimitMinutes)
	}
}

// Save проверяет тест и переводит его в статус status.
// При ошибке состояние редактора не меняется.
func (e *Editor) Save(status model.Status) error {
	if !status.Valid() {
		return errors.Wrapf(ErrInvalidStatus, "status %q", status)
	}
	if err := Validate(e.test); err != nil {
		return err
	}
	e.test.Status = status
	e.finished = true
	return nil
}
