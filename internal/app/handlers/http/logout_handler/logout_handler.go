package logout_handler

import (
	"net/http"

	"github.com/IT-Nick/testportal/internal/app/handlers/http/respond"
	"github.com/IT-Nick/testportal/internal/domain/identity"
)

// LogoutHandler обработчик POST /auth/logout
type LogoutHandler struct {
	provider identity.Provider
}

// NewLogoutHandler создает новый экземпляр обработчика
func NewLogoutHandler(provider identity.Provider) *LogoutHandler {
	return &LogoutHandler{provider: provider}
}

// ServeHTTP метод для обработки запроса
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.provider.Logout(r.Context()); err != nil {
		respond.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
