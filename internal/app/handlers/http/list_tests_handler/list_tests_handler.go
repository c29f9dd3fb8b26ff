package list_tests_handler

import (
	"net/http"

	"github.com/IT-Nick/testportal/internal/app/handlers/http/respond"
	testsService "github.com/IT-Nick/testportal/internal/domain/tests/service"
	httpError "github.com/IT-Nick/testportal/pkg/http"
)

// ListTestsHandler обработчик GET /tests, опубликованные тесты без ответов
type ListTestsHandler struct {
	testService *testsService.TestService
}

// NewListTestsHandler создает новый экземпляр обработчика
func NewListTestsHandler(testService *testsService.TestService) *ListTestsHandler {
	return &ListTestsHandler{testService: testService}
}

// ServeHTTP метод для обработки запроса
func (h *ListTestsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sheets, err := h.testService.ListPublished(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, sheets)
}
