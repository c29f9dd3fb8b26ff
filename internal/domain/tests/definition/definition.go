package definition

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/IT-Nick/testportal/internal/domain/model"
)

// SampleTestID id демонстрационного теста
const SampleTestID = "sample-physics"

// Sample демонстрационный тест "Introduction to Physics"
func Sample() model.Test {
	return model.Test{
		ID:               SampleTestID,
		Title:            "Introduction to Physics",
		Description:      "Basic concepts of classical mechanics.",
		TimeLimitMinutes: 60,
		Status:           model.StatusPublished,
		AuthorID:         "t1",
		Questions: []model.Question{
			{
				ID:   "q1",
				Text: "Which of the following is a unit of force?",
				Kind: model.KindSingleChoice,
				Choice: &model.ChoiceBody{Options: []model.Option{
					{ID: "q1-o1", Text: "Newton", IsCorrect: true},
					{ID: "q1-o2", Text: "Watt"},
					{ID: "q1-o3", Text: "Joule"},
					{ID: "q1-o4", Text: "Ampere"},
				}},
			},
			{
				ID:   "q2",
				Text: "Explain the concept of gravitational potential energy.",
				Kind: model.KindFreeText,
				FreeText: &model.FreeTextBody{
					ReferenceAnswer: "Gravitational potential energy is the energy stored in an object due to its position in a gravitational field.",
				},
			},
			{
				ID:   "q3",
				Text: "Newton's first law states that an object will remain at rest or in uniform motion unless acted upon by an external force.",
				Kind: model.KindTrueFalse,
				Choice: &model.ChoiceBody{Options: []model.Option{
					{ID: "q3-true", Text: model.TrueLabel, IsCorrect: true},
					{ID: "q3-false", Text: model.FalseLabel},
				}},
			},
		},
	}
}

// Parse читает тест из YAML. Недостающие id генерируются.
func Parse(data []byte, newID model.IDFunc) (model.Test, error) {
	if newID == nil {
		newID = model.NewID
	}
	var test model.Test
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&test); err != nil {
		return model.Test{}, errors.Wrap(err, "failed to decode test definition")
	}

	if test.ID == "" {
		test.ID = newID()
	}
	if test.Status == "" {
		test.Status = model.StatusDraft
	}
	if !test.Status.Valid() {
		return model.Test{}, errors.Errorf("unknown status %q", test.Status)
	}
	if test.TimeLimitMinutes == 0 {
		test.TimeLimitMinutes = model.DefaultTimeLimitMinutes
	}
	test.TimeLimitMinutes = model.ClampTimeLimit(test.TimeLimitMinutes)

	for i := range test.Questions {
		q := &test.Questions[i]
		if q.ID == "" {
			q.ID = newID()
		}
		if !q.Kind.Valid() {
			return model.Test{}, errors.Errorf("question %d: unknown kind %q", i+1, q.Kind)
		}
		switch {
		case q.Kind.IsChoice():
			q.FreeText = nil
			if q.Choice == nil {
				q.Choice = &model.ChoiceBody{}
			}
			for j := range q.Choice.Options {
				if q.Choice.Options[j].ID == "" {
					q.Choice.Options[j].ID = newID()
				}
			}
		default:
			q.Choice = nil
			if q.FreeText == nil {
				q.FreeText = &model.FreeTextBody{}
			}
		}
	}
	return test, nil
}

// LoadFile читает тест из YAML-файла
func LoadFile(path string) (model.Test, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Test{}, errors.Wrapf(err, "failed to read %s", path)
	}
	return Parse(data, nil)
}
