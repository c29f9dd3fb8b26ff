package login_handler

import (
	"encoding/json"
	"net/http"

	"github.com/IT-Nick/testportal/internal/app/handlers/http/respond"
	"github.com/IT-Nick/testportal/internal/domain/dto"
	"github.com/IT-Nick/testportal/internal/domain/identity"
	httpError "github.com/IT-Nick/testportal/pkg/http"
)

// LoginHandler обработчик POST /auth/login
type LoginHandler struct {
	provider identity.Provider
}

// NewLoginHandler создает новый экземпляр обработчика
func NewLoginHandler(provider identity.Provider) *LoginHandler {
	return &LoginHandler{provider: provider}
}

// ServeHTTP метод для обработки запроса
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !request.Role.Valid() {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Unknown role")
		return
	}

	ok, err := h.provider.Login(r.Context(), request.Email, request.Password, request.Role)
	if err != nil {
		respond.Error(w, err)
		return
	}
	if !ok {
		respond.Error(w, identity.ErrInvalidCredentials)
		return
	}

	httpError.JSONResponse(w, http.StatusOK, dto.UserResponse{User: h.provider.CurrentUser()})
}
