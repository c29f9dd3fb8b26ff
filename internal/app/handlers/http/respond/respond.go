package respond

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/IT-Nick/testportal/internal/domain/authoring"
	"github.com/IT-Nick/testportal/internal/domain/dto"
	"github.com/IT-Nick/testportal/internal/domain/identity"
	resultsRepo "github.com/IT-Nick/testportal/internal/domain/results/repository"
	testsRepo "github.com/IT-Nick/testportal/internal/domain/tests/repository"
	testsService "github.com/IT-Nick/testportal/internal/domain/tests/service"
	httpError "github.com/IT-Nick/testportal/pkg/http"
)

// Error переводит ошибку сервиса в HTTP-ответ
func Error(w http.ResponseWriter, err error) {
	if ve, ok := authoring.AsValidationError(err); ok {
		httpError.JSONResponse(w, http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
			Error:    ve.Error(),
			Code:     ve.Code,
			Question: ve.Question,
			Option:   ve.Option,
		})
		return
	}
	httpError.ErrorResponse(w, Status(err), err.Error())
}

// Status HTTP-код для ошибки
func Status(err error) int {
	switch {
	case errors.Is(err, identity.ErrNotAuthenticated), errors.Is(err, identity.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, identity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, testsRepo.ErrNotFound), errors.Is(err, resultsRepo.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, testsService.ErrNotPublished):
		return http.StatusConflict
	case errors.Is(err, authoring.ErrInvalidStatus), errors.Is(err, authoring.ErrUnknownOp):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
