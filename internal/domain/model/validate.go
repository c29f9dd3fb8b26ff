package model

import "strings"

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsQuestionComplete проверяет, что вопрос можно публиковать
func IsQuestionComplete(q Question) bool {
	if blank(q.Text) {
		return false
	}
	if q.Kind.IsChoice() {
		if CountCorrect(q) != 1 {
			return false
		}
		for _, o := range q.Options() {
			if blank(o.Text) {
				return false
			}
		}
		return len(q.Options()) > 0
	}
	return !blank(q.ReferenceAnswer())
}

// IsPublishable проверяет тест целиком
func IsPublishable(t Test) bool {
	if blank(t.Title) || len(t.Questions) == 0 {
		return false
	}
	for _, q := range t.Questions {
		if !IsQuestionComplete(q) {
			return false
		}
	}
	return true
}

// CountCorrect количество вариантов, отмеченных правильными
func CountCorrect(q Question) int {
	n := 0
	for _, o := range q.Options() {
		if o.IsCorrect {
			n++
		}
	}
	return n
}
