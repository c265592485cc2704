package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/carlosfox17/sgp-backend/internal/security/audit"
	"github.com/carlosfox17/sgp-backend/internal/service"
)

// LoginRequest represents the credentials submitted by the login form.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// LoginHandler handles authentication requests.
type LoginHandler struct {
	auth     *service.AuthService
	auditLog *audit.Logger
	logger   *slog.Logger
}

// NewLoginHandler creates a new login handler.
func NewLoginHandler(auth *service.AuthService, auditLog *audit.Logger, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{auth: auth, auditLog: auditLog, logger: logger}
}

// ServeHTTP handles POST /api/login requests.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.auditLog.LogLogin(r.Context(), req.Email, "denied")
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error("login failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.auditLog.LogLogin(r.Context(), req.Email, "granted")
	writeJSON(w, http.StatusOK, result)
}

// LogoutHandler closes sessions.
type LogoutHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewLogoutHandler creates a new logout handler.
func NewLogoutHandler(auth *service.AuthService, logger *slog.Logger) *LogoutHandler {
	return &LogoutHandler{auth: auth, logger: logger}
}

// ServeHTTP handles POST /api/logout requests.
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "sessionId required")
		return
	}

	h.auth.Logout(r.Context(), req.SessionID)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
