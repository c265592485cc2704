package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/carlosfox17/sgp-backend/internal/domain"
	"github.com/carlosfox17/sgp-backend/internal/query"
	"github.com/carlosfox17/sgp-backend/internal/security"
	"github.com/carlosfox17/sgp-backend/internal/security/audit"
	"github.com/carlosfox17/sgp-backend/internal/security/middleware"
	"github.com/carlosfox17/sgp-backend/internal/service"
	"github.com/carlosfox17/sgp-backend/internal/store"
)

// ProjectResponse is a project enriched with its resolved client name. The
// client reference is a soft key, so the name may be empty for dangling
// references.
type ProjectResponse struct {
	domain.Project
	ClientName string `json:"client_name"`
}

// ProjectsHandler handles the project collection endpoints.
type ProjectsHandler struct {
	projects *store.ProjectStore
	clients  *store.ClientStore
	svc      *service.ProjectService
	authz    *security.AuthorizationService
	auditLog *audit.Logger
	logger   *slog.Logger
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(
	projects *store.ProjectStore,
	clients *store.ClientStore,
	svc *service.ProjectService,
	authz *security.AuthorizationService,
	auditLog *audit.Logger,
	logger *slog.Logger,
) *ProjectsHandler {
	return &ProjectsHandler{
		projects: projects,
		clients:  clients,
		svc:      svc,
		authz:    authz,
		auditLog: auditLog,
		logger:   logger,
	}
}

// List handles GET /api/projects requests. Supported query parameters:
// search, status, department, date (today/week/month/all). All predicates
// are combined with AND.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := query.ProjectFilter{
		Search:     q.Get("search"),
		Status:     q.Get("status"),
		Department: q.Get("department"),
		Date:       query.DateRange(q.Get("date")),
	}

	clients := h.clients.List()
	projects := query.FilterProjects(h.projects.List(), clients, filter, time.Now())
	writeJSON(w, http.StatusOK, h.withClientNames(projects, clients))
}

// Get handles GET /api/projects/{id} requests.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, found := h.projects.Get(r.PathValue("id"))
	if !found {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	clientName := ""
	if client, ok := h.clients.Get(project.ClientID); ok {
		clientName = client.Name
	}
	writeJSON(w, http.StatusOK, ProjectResponse{Project: project, ClientName: clientName})
}

// Create handles POST /api/projects requests. The response carries the
// created project plus the outcome of the client notification; a failed
// notification still creates the project and still returns 201.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r) {
		return
	}

	var in domain.ProjectInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if in.Name == "" || in.ClientID == "" {
		writeError(w, http.StatusBadRequest, "name and client_id are required")
		return
	}
	if in.Status != "" && !domain.ValidStatus(in.Status) {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	result := h.svc.Create(r.Context(), in)

	userID := ""
	if c := middleware.GetClaimsFromContext(r.Context()); c != nil {
		userID = c.UserID
	}
	h.auditLog.LogMutation(r.Context(), userID, "create", "project", result.Project.ID)
	if result.Notification != nil && !result.Notification.Success {
		h.auditLog.LogNotification(r.Context(), userID, result.Project.ID, "failed", result.Notification.Error)
	}

	writeJSON(w, http.StatusCreated, result)
}

// Update handles PUT /api/projects/{id} requests. Edits never notify the
// client; only creation does.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r) {
		return
	}

	var patch domain.ProjectPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if patch.Status != nil && !domain.ValidStatus(*patch.Status) {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	h.svc.Update(r.PathValue("id"), patch)
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/projects/{id} requests.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r) {
		return
	}
	h.svc.Delete(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// Departments handles GET /api/departments requests: the distinct
// departamento values present across all projects, in first-seen order.
func (h *ProjectsHandler) Departments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, query.Departments(h.projects.List()))
}

// Statuses handles GET /api/statuses requests: the known statuses with
// their display labels and color categories.
func (h *ProjectsHandler) Statuses(w http.ResponseWriter, r *http.Request) {
	type statusInfo struct {
		Value domain.ProjectStatus `json:"value"`
		Label string               `json:"label"`
		Color string               `json:"color"`
	}
	out := make([]statusInfo, 0, len(domain.StatusLabels))
	for _, s := range []domain.ProjectStatus{
		domain.StatusPending,
		domain.StatusProposalSent,
		domain.StatusProposalAccepted,
		domain.StatusApproved,
		domain.StatusCompleted,
		domain.StatusOnHold,
	} {
		out = append(out, statusInfo{Value: s, Label: domain.StatusLabels[s], Color: domain.StatusColors[s]})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ProjectsHandler) withClientNames(projects []domain.Project, clients []domain.Client) []ProjectResponse {
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, ProjectResponse{Project: p, ClientName: names[p.ClientID]})
	}
	return out
}

func (h *ProjectsHandler) allowed(w http.ResponseWriter, r *http.Request) bool {
	role := middleware.RoleFromContext(r.Context())
	if err := h.authz.ValidatePermission(role, security.PermManageProjects); err != nil {
		writeError(w, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}
