package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/carlosfox17/sgp-backend/internal/domain"
	"github.com/carlosfox17/sgp-backend/internal/query"
	"github.com/carlosfox17/sgp-backend/internal/security"
	"github.com/carlosfox17/sgp-backend/internal/security/middleware"
	"github.com/carlosfox17/sgp-backend/internal/service"
	"github.com/carlosfox17/sgp-backend/internal/store"
)

// UserRequest represents the payload for creating a user. The password is
// plaintext on the wire and hashed here before it reaches the store.
type UserRequest struct {
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Password   string      `json:"password"`
	Role       domain.Role `json:"role"`
	Department string      `json:"department"`
	Active     bool        `json:"active"`
}

// UserPatchRequest represents a partial user update.
type UserPatchRequest struct {
	Name       *string      `json:"name"`
	Email      *string      `json:"email"`
	Password   *string      `json:"password"`
	Role       *domain.Role `json:"role"`
	Department *string      `json:"department"`
	Active     *bool        `json:"active"`
}

// UsersHandler handles the user account endpoints. All of them are admin
// territory.
type UsersHandler struct {
	users  *store.UserStore
	authz  *security.AuthorizationService
	logger *slog.Logger
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(users *store.UserStore, authz *security.AuthorizationService, logger *slog.Logger) *UsersHandler {
	return &UsersHandler{users: users, authz: authz, logger: logger}
}

// List handles GET /api/users requests, optionally filtered by ?search=.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r) {
		return
	}
	users := query.SearchUsers(h.users.List(), r.URL.Query().Get("search"))
	writeJSON(w, http.StatusOK, users)
}

// Create handles POST /api/users requests.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r) {
		return
	}

	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}
	if req.Role == "" {
		req.Role = domain.RoleEmployee
	}

	hash, err := service.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	user := h.users.Create(domain.UserInput{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		Department:   req.Department,
		Active:       req.Active,
	})
	h.logger.Info("user created", slog.String("user_id", user.ID), slog.String("email", user.Email))
	writeJSON(w, http.StatusCreated, user)
}

// Update handles PUT /api/users/{id} requests.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r) {
		return
	}

	var req UserPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	patch := domain.UserPatch{
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		Department: req.Department,
		Active:     req.Active,
	}
	if req.Password != nil {
		hash, err := service.HashPassword(*req.Password)
		if err != nil {
			h.logger.Error("failed to hash password", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "failed to update user")
			return
		}
		patch.PasswordHash = &hash
	}

	h.users.Update(r.PathValue("id"), patch)
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/users/{id} requests.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r) {
		return
	}
	h.users.Delete(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *UsersHandler) allowed(w http.ResponseWriter, r *http.Request) bool {
	role := middleware.RoleFromContext(r.Context())
	if err := h.authz.ValidatePermission(role, security.PermManageUsers); err != nil {
		writeError(w, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}
