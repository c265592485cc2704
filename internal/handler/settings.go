package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/carlosfox17/sgp-backend/internal/domain"
	"github.com/carlosfox17/sgp-backend/internal/security"
	"github.com/carlosfox17/sgp-backend/internal/security/middleware"
	"github.com/carlosfox17/sgp-backend/internal/store"
)

// SettingsSaver persists the settings aggregate so it survives restarts.
type SettingsSaver interface {
	Save(ctx context.Context, settings domain.AppSettings) error
}

// SettingsHandler handles the application settings endpoints. The in-memory
// store is authoritative; persistence is best-effort.
type SettingsHandler struct {
	settings *store.SettingsStore
	saver    SettingsSaver
	authz    *security.AuthorizationService
	logger   *slog.Logger
}

// NewSettingsHandler creates a new settings handler. saver may be nil when
// no durable storage is configured.
func NewSettingsHandler(settings *store.SettingsStore, saver SettingsSaver, authz *security.AuthorizationService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, saver: saver, authz: authz, logger: logger}
}

// Get handles GET /api/settings requests.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.settings.Get())
}

// Update handles PUT /api/settings requests. Top-level fields overwrite;
// the nested smtp block merges field-by-field.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	role := middleware.RoleFromContext(r.Context())
	if err := h.authz.ValidatePermission(role, security.PermManageSettings); err != nil {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	var patch domain.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	merged := h.settings.Update(patch)

	if h.saver != nil {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 2*time.Second)
		defer cancel()
		if err := h.saver.Save(ctx, merged); err != nil {
			// The update already took effect in memory; losing the durable
			// copy only costs the next restart.
			h.logger.Warn("failed to persist settings", slog.String("error", err.Error()))
		}
	}

	writeJSON(w, http.StatusOK, merged)
}
