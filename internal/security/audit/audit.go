package audit

import (
	"context"
	"log/slog"
	"time"
)

// Logger emits structured audit records for state-changing operations.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates an audit logger on top of the application logger.
func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger}
}

// LogAction records one audited action.
func (al *Logger) LogAction(ctx context.Context, userID, action, resource, resourceID, status, details string) {
	requestID := ""
	if reqID := ctx.Value("request_id"); reqID != nil {
		requestID, _ = reqID.(string)
	}

	al.logger.Info("audit",
		slog.String("action", action),
		slog.String("resource", resource),
		slog.String("resource_id", resourceID),
		slog.String("user_id", userID),
		slog.String("status", status),
		slog.String("details", details),
		slog.String("request_id", requestID),
		slog.Time("timestamp", time.Now()),
	)
}

// LogMutation records a create/update/delete against an entity store.
func (al *Logger) LogMutation(ctx context.Context, userID, action, entity, entityID string) {
	al.LogAction(ctx, userID, action, entity, entityID, "applied", "")
}

// LogNotification records a notification attempt and its outcome.
func (al *Logger) LogNotification(ctx context.Context, userID, projectID, status, details string) {
	al.LogAction(ctx, userID, "notify", "project", projectID, status, details)
}

// LogLogin records an authentication attempt.
func (al *Logger) LogLogin(ctx context.Context, email, status string) {
	al.LogAction(ctx, "", "login", "session", email, status, "")
}
