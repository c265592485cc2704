package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carlosfox17/sgp-backend/internal/domain"
	"github.com/carlosfox17/sgp-backend/internal/infrastructure/redis"
)

// SessionRepository persists remember-me sessions in Redis with a TTL.
// Sessions without remember-me never reach this repository.
type SessionRepository struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewSessionRepository creates a session repository with the given TTL.
func NewSessionRepository(redisClient *redis.Client, ttl time.Duration, logger *slog.Logger) *SessionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionRepository{redis: redisClient, ttl: ttl, logger: logger}
}

func sessionKey(id string) string {
	return fmt.Sprintf("sgp:session:%s", id)
}

// Save stores a session.
func (r *SessionRepository) Save(ctx context.Context, session domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.redis.Set(ctx, sessionKey(session.ID), string(data), r.ttl); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	r.logger.Debug("session saved", slog.String("session_id", session.ID))
	return nil
}

// Get retrieves a session. The second return value is false for expired or
// unknown sessions.
func (r *SessionRepository) Get(ctx context.Context, id string) (domain.Session, bool, error) {
	data, err := r.redis.Get(ctx, sessionKey(id))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return domain.Session{}, false, nil
		}
		return domain.Session{}, false, fmt.Errorf("failed to load session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return domain.Session{}, false, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return session, true, nil
}

// Delete removes a session.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.redis.Delete(ctx, sessionKey(id)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
