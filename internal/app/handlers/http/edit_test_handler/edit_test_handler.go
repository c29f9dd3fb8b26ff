package edit_test_handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/IT-Nick/testportal/internal/app/handlers/http/respond"
	"github.com/IT-Nick/testportal/internal/domain/dto"
	"github.com/IT-Nick/testportal/internal/domain/identity"
	testsService "github.com/IT-Nick/testportal/internal/domain/tests/service"
	httpError "github.com/IT-Nick/testportal/pkg/http"
)

// EditTestHandler обработчик POST /tests/edit.
// Применяет команды редактора по порядку и сохраняет тест.
type EditTestHandler struct {
	provider    identity.Provider
	testService *testsService.TestService
	log         logrus.FieldLogger
}

// NewEditTestHandler создает новый экземпляр обработчика
func NewEditTestHandler(provider identity.Provider, testService *testsService.TestService, log logrus.FieldLogger) *EditTestHandler {
	return &EditTestHandler{provider: provider, testService: testService, log: log}
}

// ServeHTTP метод для обработки запроса
func (h *EditTestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request dto.EditTestRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	editor, err := h.testService.OpenEditor(r.Context(), h.provider, request.TestID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	for i, cmd := range request.Commands {
		if err := editor.Apply(cmd); err != nil {
			httpError.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("command %d: %v", i+1, err))
			return
		}
	}

	test, err := h.testService.SaveEditor(r.Context(), editor, request.Save)
	if err != nil {
		h.log.WithError(err).WithField("test_id", editor.Test().ID).Debug("test rejected")
		respond.Error(w, err)
		return
	}

	httpError.JSONResponse(w, http.StatusOK, test)
}
