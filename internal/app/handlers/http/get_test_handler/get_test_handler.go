package get_test_handler

import (
	"net/http"

	"github.com/IT-Nick/testportal/internal/app/handlers/http/respond"
	"github.com/IT-Nick/testportal/internal/domain/identity"
	testsService "github.com/IT-Nick/testportal/internal/domain/tests/service"
	httpError "github.com/IT-Nick/testportal/pkg/http"
)

// GetTestHandler обработчик GET /tests/{id}, полный тест для преподавателя
type GetTestHandler struct {
	provider    identity.Provider
	testService *testsService.TestService
}

// NewGetTestHandler создает новый экземпляр обработчика
func NewGetTestHandler(provider identity.Provider, testService *testsService.TestService) *GetTestHandler {
	return &GetTestHandler{provider: provider, testService: testService}
}

// ServeHTTP метод для обработки запроса
func (h *GetTestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	test, err := h.testService.GetTest(r.Context(), h.provider, r.PathValue("id"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, test)
}
