package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/carlosfox17/sgp-backend/internal/domain"
	"github.com/carlosfox17/sgp-backend/internal/observability/metrics"
	"github.com/carlosfox17/sgp-backend/internal/store"
)

// StatsWorker periodically publishes entity counts and the project status
// breakdown as gauges, so the scrape endpoint reflects store state without
// every scrape walking the collections.
type StatsWorker struct {
	clients  *store.ClientStore
	users    *store.UserStore
	projects *store.ProjectStore
	logger   *slog.Logger
	interval time.Duration
}

// NewStatsWorker creates a new stats worker.
func NewStatsWorker(
	clients *store.ClientStore,
	users *store.UserStore,
	projects *store.ProjectStore,
	logger *slog.Logger,
	interval time.Duration,
) *StatsWorker {
	return &StatsWorker{
		clients:  clients,
		users:    users,
		projects: projects,
		logger:   logger,
		interval: interval,
	}
}

// Start begins the stats worker loop.
func (w *StatsWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("stats worker started", slog.Duration("interval", w.interval))
	w.refresh()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stats worker stopped")
			return
		case <-ticker.C:
			w.refresh()
		}
	}
}

func (w *StatsWorker) refresh() {
	metrics.SetEntityCount("clients", w.clients.Len())
	metrics.SetEntityCount("users", w.users.Len())

	projects := w.projects.List()
	metrics.SetEntityCount("projects", len(projects))

	byStatus := map[domain.ProjectStatus]int{}
	for _, p := range projects {
		byStatus[p.Status]++
	}
	for status := range domain.StatusLabels {
		metrics.SetProjectsByStatus(string(status), byStatus[status])
	}
}
