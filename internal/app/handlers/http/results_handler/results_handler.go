package results_handler

import (
	"net/http"

	"github.com/IT-Nick/testportal/internal/app/handlers/http/respond"
	"github.com/IT-Nick/testportal/internal/domain/dto"
	"github.com/IT-Nick/testportal/internal/domain/identity"
	"github.com/IT-Nick/testportal/internal/domain/model"
	resultsService "github.com/IT-Nick/testportal/internal/domain/results/service"
	httpError "github.com/IT-Nick/testportal/pkg/http"
)

// ResultsHandler обработчик GET /results.
// Студент получает свои попытки, преподаватель сводки по тестам.
type ResultsHandler struct {
	provider      identity.Provider
	resultService *resultsService.ResultService
}

// NewResultsHandler создает новый экземпляр обработчика
func NewResultsHandler(provider identity.Provider, resultService *resultsService.ResultService) *ResultsHandler {
	return &ResultsHandler{provider: provider, resultService: resultService}
}

// ServeHTTP метод для обработки запроса
func (h *ResultsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user := h.provider.CurrentUser()
	if user == nil {
		respond.Error(w, identity.ErrNotAuthenticated)
		return
	}

	var response dto.ResultsResponse
	var err error
	if user.Role == model.RoleTeacher {
		response.Summaries, err = h.resultService.TestSummaries(r.Context(), h.provider)
	} else {
		response.Results, err = h.resultService.StudentResults(r.Context(), h.provider)
	}
	if err != nil {
		respond.Error(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, response)
}
