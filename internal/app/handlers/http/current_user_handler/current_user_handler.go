package current_user_handler

import (
	"net/http"

	"github.com/IT-Nick/testportal/internal/app/handlers/http/respond"
	"github.com/IT-Nick/testportal/internal/domain/dto"
	"github.com/IT-Nick/testportal/internal/domain/identity"
	httpError "github.com/IT-Nick/testportal/pkg/http"
)

// CurrentUserHandler обработчик GET /auth/me
type CurrentUserHandler struct {
	provider identity.Provider
}

// NewCurrentUserHandler создает новый экземпляр обработчика
func NewCurrentUserHandler(provider identity.Provider) *CurrentUserHandler {
	return &CurrentUserHandler{provider: provider}
}

// ServeHTTP метод для обработки запроса
func (h *CurrentUserHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	user := h.provider.CurrentUser()
	if user == nil {
		respond.Error(w, identity.ErrNotAuthenticated)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, dto.UserResponse{User: user})
}
