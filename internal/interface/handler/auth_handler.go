package handler

import (
	"net/http"

	"github.com/TmanScript/umoja-swap-collection/internal/usecase"
	"github.com/TmanScript/umoja-swap-collection/pkg/logger"
)

// AuthHandler exposes login and logout.
type AuthHandler struct {
	auth     *usecase.AuthUsecase
	sessions *SessionRegistry
	logger   logger.Logger
}

// NewAuthHandler creates the auth endpoints.
func NewAuthHandler(auth *usecase.AuthUsecase, sessions *SessionRegistry, log logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, logger: log}
}

// Login authenticates a phone/password pair and returns a session
// token with the admin identity.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	admin, token, err := h.auth.Login(r.Context(), req.Phone, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("Admin logged in", "admin_id", admin.AdminID)
	writeJSON(w, http.StatusOK, map[string]string{
		"token":    token,
		"admin_id": admin.AdminID,
		"name":     admin.Name,
	})
}

// Logout discards the admin's in-memory wizard session. The token
// itself simply expires.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)
	h.sessions.Drop(identity.AdminID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
