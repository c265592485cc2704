// Package repository holds the durable-state collaborators. Only two
// concerns survive a restart: application settings and remember-me
// sessions. The entity collections are process-resident on purpose.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/carlosfox17/sgp-backend/internal/domain"
	"github.com/carlosfox17/sgp-backend/internal/infrastructure/redis"
)

const settingsKey = "sgp:settings"

// SettingsRepository persists the AppSettings aggregate in Redis.
type SettingsRepository struct {
	redis  *redis.Client
	logger *slog.Logger
}

// NewSettingsRepository creates a settings repository.
func NewSettingsRepository(redisClient *redis.Client, logger *slog.Logger) *SettingsRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsRepository{redis: redisClient, logger: logger}
}

// Save stores the full settings aggregate.
func (r *SettingsRepository) Save(ctx context.Context, settings domain.AppSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := r.redis.Set(ctx, settingsKey, string(data), 0); err != nil {
		return fmt.Errorf("failed to store settings: %w", err)
	}
	r.logger.Debug("settings saved")
	return nil
}

// Load retrieves the persisted settings. The second return value is false
// when nothing has been saved yet.
func (r *SettingsRepository) Load(ctx context.Context) (domain.AppSettings, bool, error) {
	data, err := r.redis.Get(ctx, settingsKey)
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return domain.AppSettings{}, false, nil
		}
		return domain.AppSettings{}, false, fmt.Errorf("failed to load settings: %w", err)
	}

	var settings domain.AppSettings
	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		return domain.AppSettings{}, false, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return settings, true, nil
}
