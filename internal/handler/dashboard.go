package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/carlosfox17/sgp-backend/internal/events"
	"github.com/carlosfox17/sgp-backend/internal/query"
	"github.com/carlosfox17/sgp-backend/internal/store"
	"github.com/carlosfox17/sgp-backend/pkg/cache"
)

const dashboardCacheKey = "dashboard:summary"

// DashboardHandler serves the aggregate dashboard view. Summaries are
// cached briefly and the cache entry is dropped whenever any store
// publishes a change event.
type DashboardHandler struct {
	projects *store.ProjectStore
	clients  *store.ClientStore
	users    *store.UserStore
	cache    *cache.Cache
	ttl      time.Duration
	logger   *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler and starts listening
// for store change events on the broker.
func NewDashboardHandler(
	projects *store.ProjectStore,
	clients *store.ClientStore,
	users *store.UserStore,
	broker *events.Broker,
	logger *slog.Logger,
) *DashboardHandler {
	h := &DashboardHandler{
		projects: projects,
		clients:  clients,
		users:    users,
		cache:    cache.New(),
		ttl:      30 * time.Second,
		logger:   logger,
	}
	if broker != nil {
		ch, _ := broker.Subscribe()
		go func() {
			for range ch {
				h.cache.Delete(dashboardCacheKey)
			}
		}()
	}
	return h
}

// ServeHTTP handles GET /api/dashboard requests.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if cached, ok := h.cache.Get(dashboardCacheKey); ok {
		if summary, ok := cached.(query.Summary); ok {
			writeJSON(w, http.StatusOK, summary)
			return
		}
	}

	summary := query.Summarize(h.projects.List(), h.clients.List(), h.users.List())
	h.cache.Set(dashboardCacheKey, summary, h.ttl)
	writeJSON(w, http.StatusOK, summary)
}
