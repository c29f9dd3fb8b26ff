package dto

import (
	"github.com/IT-Nick/testportal/internal/domain/authoring"
	"github.com/IT-Nick/testportal/internal/domain/model"
)

// EditTestRequest тело POST /tests/edit.
// Пустой TestID создает новый тест.
type EditTestRequest struct {
	TestID   string              `json:"test_id,omitempty"`
	Commands []authoring.Command `json:"commands"`
	Save     model.Status        `json:"save"`
}

// ValidationErrorResponse ответ 422 с единственной ошибкой валидации
type ValidationErrorResponse struct {
	Error    string         `json:"error"`
	Code     authoring.Code `json:"code"`
	Question int            `json:"question,omitempty"`
	Option   int            `json:"option,omitempty"`
}
