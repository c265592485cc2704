package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/carlosfox17/sgp-backend/internal/domain"
	"github.com/carlosfox17/sgp-backend/internal/query"
	"github.com/carlosfox17/sgp-backend/internal/security"
	"github.com/carlosfox17/sgp-backend/internal/security/middleware"
	"github.com/carlosfox17/sgp-backend/internal/store"
)

// ClientsHandler handles the client collection endpoints.
type ClientsHandler struct {
	clients *store.ClientStore
	authz   *security.AuthorizationService
	logger  *slog.Logger
}

// NewClientsHandler creates a new clients handler.
func NewClientsHandler(clients *store.ClientStore, authz *security.AuthorizationService, logger *slog.Logger) *ClientsHandler {
	return &ClientsHandler{clients: clients, authz: authz, logger: logger}
}

// List handles GET /api/clients requests, optionally filtered by ?search=.
func (h *ClientsHandler) List(w http.ResponseWriter, r *http.Request) {
	clients := query.SearchClients(h.clients.List(), r.URL.Query().Get("search"))
	writeJSON(w, http.StatusOK, clients)
}

// Create handles POST /api/clients requests.
func (h *ClientsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r) {
		return
	}

	var in domain.ClientInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if in.Name == "" || in.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	client := h.clients.Create(in)
	h.logger.Info("client created", slog.String("client_id", client.ID), slog.String("name", client.Name))
	writeJSON(w, http.StatusCreated, client)
}

// Update handles PUT /api/clients/{id} requests. An unknown id is accepted
// and changes nothing.
func (h *ClientsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r) {
		return
	}

	id := r.PathValue("id")
	var patch domain.ClientPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	h.clients.Update(id, patch)
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/clients/{id} requests. Deleting twice, or
// deleting an unknown id, succeeds quietly.
func (h *ClientsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r) {
		return
	}

	h.clients.Delete(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ClientsHandler) allowed(w http.ResponseWriter, r *http.Request) bool {
	role := middleware.RoleFromContext(r.Context())
	if err := h.authz.ValidatePermission(role, security.PermManageClients); err != nil {
		writeError(w, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}
