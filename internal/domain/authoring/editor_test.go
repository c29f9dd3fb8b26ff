package authoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/testportal/internal/domain/model"
)

func seqID() model.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newEditor() *Editor {
	return NewEditor(model.NewTest("test-1"), seqID())
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func fillChoice(e *Editor, index int, texts ...string) {
	for i, text := range texts {
		e.EditOption(index, i, text)
	}
}

func TestAddQuestionSelectsNewQuestion(t *testing.T) {
	e := newEditor()
	_, ok := e.Selected()
	assert.False(t, ok)

	idx := e.AddQuestion()
	sel, ok := e.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, idx, sel)

	q := e.Test().Questions[0]
	assert.Equal(t, model.KindSingleChoice, q.Kind)
	require.Len(t, q.Options(), 4)
	assert.Equal(t, 0, model.CountCorrect(q))
}

func TestRemoveQuestionAdjustsSelection(t *testing.T) {
	e := newEditor()
	e.AddQuestion()
	e.AddQuestion()
	e.AddQuestion()

	// выбран последний, удаляем первый: выбор сдвигается вниз
	e.RemoveQuestion(0)
	sel, ok := e.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, sel)
	assert.Len(t, e.Test().Questions, 2)

	e.RemoveQuestion(1)
	_, ok = e.Selected()
	assert.False(t, ok)

	e.Select(0)
	e.RemoveQuestion(5)
	e.RemoveQuestion(-1)
	assert.Len(t, e.Test().Questions, 1)
	sel, ok = e.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, sel)
}

func TestRemoveQuestionBelowSelectionKeepsIt(t *testing.T) {
	e := newEditor()
	e.AddQuestion()
	e.AddQuestion()
	e.Select(0)
	e.RemoveQuestion(1)
	sel, ok := e.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, sel)
}

func TestSetCorrectOptionKeepsExactlyOne(t *testing.T) {
	e := newEditor()
	e.AddQuestion()
	for _, opt := range []int{0, 2, 3, 1} {
		e.SetCorrectOption(0, opt)
		q := e.Test().Questions[0]
		assert.Equal(t, 1, model.CountCorrect(q))
		assert.True(t, q.Options()[opt].IsCorrect)
	}
	e.SetCorrectOption(0, 9)
	assert.True(t, e.Test().Questions[0].Options()[1].IsCorrect)
}

func TestSetQuestionKindKeepsTextAndResetsPayload(t *testing.T) {
	e := newEditor()
	e.AddQuestion()
	e.EditQuestionText(0, "Is the sky blue?")
	fillChoice(e, 0, "a", "b", "c", "d")
	e.SetCorrectOption(0, 2)

	e.SetQuestionKind(0, model.KindTrueFalse)
	q := e.Test().Questions[0]
	assert.Equal(t, "Is the sky blue?", q.Text)
	require.Len(t, q.Options(), 2)
	assert.Equal(t, 0, model.CountCorrect(q))

	// подписи true-false не редактируются
	e.EditOption(0, 0, "Yes")
	assert.Equal(t, model.TrueLabel, e.Test().Questions[0].Options()[0].Text)

	e.SetQuestionKind(0, model.KindFreeText)
	e.SetCorrectOption(0, 0)
	e.SetReferenceAnswer(0, "yes")
	q = e.Test().Questions[0]
	assert.Nil(t, q.Options())
	assert.Equal(t, "yes", q.ReferenceAnswer())

	e.SetQuestionKind(0, model.Kind("essay"))
	assert.Equal(t, model.KindFreeText, e.Test().Questions[0].Kind)
}

func TestSetMetadataMergesAndClamps(t *testing.T) {
	e := newEditor()
	e.SetMetadata(Metadata{Title: strPtr("Physics")})
	e.SetMetadata(Metadata{Description: strPtr("Intro")})
	e.SetMetadata(Metadata{TimeLimitMinutes: intPtr(500)})

	test := e.Test()
	assert.Equal(t, "Physics", test.Title)
	assert.Equal(t, "Intro", test.Description)
	assert.Equal(t, model.MaxTimeLimitMinutes, test.TimeLimitMinutes)

	e.SetMetadata(Metadata{TimeLimitMinutes: intPtr(1)})
	assert.Equal(t, model.MinTimeLimitMinutes, e.Test().TimeLimitMinutes)
}

func TestSaveReportsErrorsInOrder(t *testing.T) {
	e := newEditor()

	err := e.Save(model.StatusPublished)
	assert.EqualError(t, err, "missing title")

	e.SetMetadata(Metadata{Title: strPtr("Physics")})
	assert.EqualError(t, e.Save(model.StatusPublished), "no questions")

	e.AddQuestion()
	assert.EqualError(t, e.Save(model.StatusPublished), "question 1 missing text")

	e.EditQuestionText(0, "Unit of force?")
	assert.EqualError(t, e.Save(model.StatusPublished), "question 1 missing correct answer")

	e.SetCorrectOption(0, 0)
	err = e.Save(model.StatusPublished)
	assert.EqualError(t, err, "option 1 in question 1 empty")
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, CodeEmptyOption, ve.Code)
	assert.Equal(t, 1, ve.Question)
	assert.Equal(t, 1, ve.Option)

	fillChoice(e, 0, "Newton", "Watt", "", "Ampere")
	assert.EqualError(t, e.Save(model.StatusPublished), "option 3 in question 1 empty")

	e.EditOption(0, 2, "Joule")
	e.AddQuestion()
	e.SetQuestionKind(1, model.KindFreeText)
	e.EditQuestionText(1, "Explain gravity")
	assert.EqualError(t, e.Save(model.StatusPublished), "question 2 missing correct answer")

	assert.False(t, e.Finished())
	assert.Equal(t, model.StatusDraft, e.Test().Status)

	e.SetReferenceAnswer(1, "Mass attracts mass")
	require.NoError(t, e.Save(model.StatusPublished))
	assert.True(t, e.Finished())
	assert.Equal(t, model.StatusPublished, e.Test().Status)
}

func TestSaveDraftUsesSameValidation(t *testing.T) {
	e := newEditor()
	e.SetMetadata(Metadata{Title: strPtr("Draft")})
	assert.EqualError(t, e.Save(model.StatusDraft), "no questions")
	assert.False(t, e.Finished())
}

func TestSaveRejectsUnknownStatus(t *testing.T) {
	e := newEditor()
	err := e.Save(model.Status("archived"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSaveSucceedsIffPublishable(t *testing.T) {
	e := newEditor()
	steps := []func(){
		func() { e.SetMetadata(Metadata{Title: strPtr("T")}) },
		func() { e.AddQuestion() },
		func() { e.EditQuestionText(0, "Q") },
		func() { e.SetCorrectOption(0, 1) },
		func() { fillChoice(e, 0, "a", "b", "c") },
		func() { e.EditOption(0, 3, "d") },
		func() { e.SetQuestionKind(0, model.KindTrueFalse) },
		func() { e.SetCorrectOption(0, 0) },
	}
	for i, step := range steps {
		step()
		err := Validate(e.Test())
		assert.Equal(t, model.IsPublishable(e.Test()), err == nil, "step %d", i)
	}
	require.NoError(t, e.Save(model.StatusPublished))
}

func TestValidateMultipleCorrect(t *testing.T) {
	newID := seqID()
	test := model.NewTest("x")
	test.Title = "Loaded"
	q := model.NewQuestion(model.KindTrueFalse, newID)
	q.Text = "Q"
	q.Choice.Options[0].IsCorrect = true
	q.Choice.Options[1].IsCorrect = true
	test.Questions = append(test.Questions, q)

	err := Validate(test)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, CodeMultipleCorrect, ve.Code)
	assert.False(t, model.IsPublishable(test))
}

func TestEditorWorksOnCopy(t *testing.T) {
	src := model.NewTest("x")
	src.Title = "Original"
	e := NewEditor(src, seqID())
	e.SetMetadata(Metadata{Title: strPtr("Changed")})
	assert.Equal(t, "Original", src.Title)
}

func TestApplyCommands(t *testing.T) {
	e := newEditor()
	cmds := []Command{
		{Op: OpSetMetadata, Metadata: &Metadata{Title: strPtr("Quiz")}},
		{Op: OpAddQuestion},
		{Op: OpSetQuestionKind, Index: 0, Kind: model.KindTrueFalse},
		{Op: OpEditQuestionText, Index: 0, Text: "Water is wet"},
		{Op: OpSetCorrectOption, Index: 0, Option: 0},
	}
	for _, cmd := range cmds {
		require.NoError(t, e.Apply(cmd))
	}
	require.NoError(t, e.Save(model.StatusPublished))

	err := e.Apply(Command{Op: "explode"})
	assert.ErrorIs(t, err, ErrUnknownOp)
}
