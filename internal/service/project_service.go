package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/carlosfox17/sgp-backend/internal/domain"
	"github.com/carlosfox17/sgp-backend/internal/featureflags"
	"github.com/carlosfox17/sgp-backend/internal/mailer"
	"github.com/carlosfox17/sgp-backend/internal/observability/metrics"
	"github.com/carlosfox17/sgp-backend/internal/store"
)

// CreateResult pairs the created project with the outcome of the creation
// notification. Notification is nil when no email was attempted.
type CreateResult struct {
	Project      domain.Project `json:"project"`
	Notification *mailer.Result `json:"notification,omitempty"`
}

// ProjectService owns the project lifecycle. Creation triggers a best-effort
// client notification; the project record is committed before any email work
// starts and is never rolled back when the email fails.
type ProjectService struct {
	projects      *store.ProjectStore
	clients       *store.ClientStore
	settings      *store.SettingsStore
	dispatcher    *mailer.Dispatcher
	notifyTimeout time.Duration
	logger        *slog.Logger
}

// NewProjectService wires the project service. dispatcher may be nil to
// disable notifications entirely.
func NewProjectService(
	projects *store.ProjectStore,
	clients *store.ClientStore,
	settings *store.SettingsStore,
	dispatcher *mailer.Dispatcher,
	notifyTimeout time.Duration,
	logger *slog.Logger,
) *ProjectService {
	if logger == nil {
		logger = slog.Default()
	}
	if notifyTimeout <= 0 {
		notifyTimeout = 20 * time.Second
	}
	return &ProjectService{
		projects:      projects,
		clients:       clients,
		settings:      settings,
		dispatcher:    dispatcher,
		notifyTimeout: notifyTimeout,
		logger:        logger,
	}
}

// Create inserts the project and then notifies the project's client.
// Notification only happens when the client exists, has an email address,
// and an SMTP host is configured; a failed or skipped email never affects
// the stored project.
func (s *ProjectService) Create(ctx context.Context, input domain.ProjectInput) CreateResult {
	project := s.projects.Create(input)
	result := CreateResult{Project: project}

	client, found := s.clients.Get(project.ClientID)
	settings := s.settings.Get()

	switch {
	case s.dispatcher == nil:
	case featureflags.Disabled("notifications"):
		s.logger.Info("notifications disabled, skipping email", slog.String("project_id", project.ID))
	case !found:
		s.logger.Warn("project client not found, skipping email",
			slog.String("project_id", project.ID),
			slog.String("client_id", project.ClientID),
		)
	case client.Email == "":
		s.logger.Info("client has no email, skipping notification", slog.String("client_id", client.ID))
	case settings.Smtp.Host == "":
		s.logger.Info("smtp not configured, skipping notification", slog.String("project_id", project.ID))
	default:
		// The notification gets its own deadline, detached from the request
		// cancellation: the project is already committed, so an impatient
		// caller must not abort the email midway.
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
		defer cancel()

		msg := mailer.ProjectNotification(client.Name, project.Name, project.Description, settings.Smtp.FromName)
		msg.To = client.Email
		res := s.dispatcher.Send(notifyCtx, settings.Smtp, msg)
		result.Notification = &res
		metrics.ObserveNotification("project_created", res.Success)

		if !res.Success {
			s.logger.Warn("project notification failed",
				slog.String("project_id", project.ID),
				slog.String("client_email", client.Email),
				slog.String("error", res.Error),
			)
		}
	}

	return result
}

// Update applies a patch. Edits do not notify anyone.
func (s *ProjectService) Update(id string, patch domain.ProjectPatch) {
	s.projects.Update(id, patch)
}

// Delete removes a project, silently ignoring unknown ids.
func (s *ProjectService) Delete(id string) {
	s.projects.Delete(id)
}
