package authoring

import (
	"strings"

	"github.com/IT-Nick/testportal/internal/domain/model"
)

// Validate проверяет тест в фиксированном порядке и возвращает первую ошибку.
// nil возвращается ровно тогда, когда model.IsPublishable(test) == true.
func Validate(test model.Test) error {
	if strings.TrimSpace(test.Title) == "" {
		return &ValidationError{Code: CodeMissingTitle}
	}
	if len(test.Questions) == 0 {
		return &ValidationError{Code: CodeNoQuestions}
	}
	for i, q := range test.Questions {
		n := i + 1
		if strings.TrimSpace(q.Text) == "" {
			return &ValidationError{Code: CodeMissingText, Question: n}
		}
		if !q.Kind.IsChoice() {
			if strings.TrimSpace(q.ReferenceAnswer()) == "" {
				return &ValidationError{Code: CodeMissingCorrectAnswer, Question: n}
			}
			continue
		}
		switch correct := model.CountCorrect(q); {
		case correct == 0:
			return &ValidationError{Code: CodeMissingCorrectAnswer, Question: n}
		case correct > 1:
			// достижимо только для тестов, загруженных извне
			return &ValidationError{Code: CodeMultipleCorrect, Question: n}
		}
		for j, o := range q.Options() {
			if strings.TrimSpace(o.Text) == "" {
				return &ValidationError{Code: CodeEmptyOption, Question: n, Option: j + 1}
			}
		}
	}
	return nil
}
