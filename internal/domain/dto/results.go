package dto

import "github.com/IT-Nick/testportal/internal/domain/model"

// ResultsResponse ответ GET /results: студенту его попытки, преподавателю сводки
type ResultsResponse struct {
	Results   []model.Result      `json:"results,omitempty"`
	Summaries []model.TestSummary `json:"summaries,omitempty"`
}
