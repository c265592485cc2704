package store

import (
	"sync"

	"github.com/carlosfox17/sgp-backend/internal/domain"
	"github.com/carlosfox17/sgp-backend/internal/events"
)

// SettingsStore holds the AppSettings singleton. Updates are merged: top
// level fields overwrite when present in the patch, the nested smtp block
// merges one level deep so a partial SMTP update never wipes the fields it
// does not mention.
type SettingsStore struct {
	mu       sync.RWMutex
	settings domain.AppSettings
	broker   *events.Broker
}

// NewSettingsStore creates a settings store with the given initial state.
func NewSettingsStore(initial domain.AppSettings, broker *events.Broker) *SettingsStore {
	return &SettingsStore{settings: initial, broker: broker}
}

// Get returns the current settings.
func (s *SettingsStore) Get() domain.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update merges the patch and returns the resulting settings.
func (s *SettingsStore) Update(p domain.SettingsPatch) domain.AppSettings {
	s.mu.Lock()
	next := s.settings
	if p.AppName != nil {
		next.AppName = *p.AppName
	}
	if p.LogoURL != nil {
		next.LogoURL = *p.LogoURL
	}
	if p.PrimaryColor != nil {
		next.PrimaryColor = *p.PrimaryColor
	}
	if p.CompanyName != nil {
		next.CompanyName = *p.CompanyName
	}
	if p.ContactEmail != nil {
		next.ContactEmail = *p.ContactEmail
	}
	if p.DateFormat != nil {
		next.DateFormat = *p.DateFormat
	}
	if p.Timezone != nil {
		next.Timezone = *p.Timezone
	}
	if p.Smtp != nil {
		next.Smtp = mergeSmtp(next.Smtp, *p.Smtp)
	}
	s.settings = next
	s.mu.Unlock()

	s.broker.Publish(events.Event{Entity: "settings", Type: events.TypeUpdated})
	return next
}

// Replace swaps the whole aggregate, used when loading persisted settings
// at startup.
func (s *SettingsStore) Replace(settings domain.AppSettings) {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
}

func mergeSmtp(base domain.SmtpSettings, p domain.SmtpPatch) domain.SmtpSettings {
	if p.Host != nil {
		base.Host = *p.Host
	}
	if p.Port != nil {
		base.Port = *p.Port
	}
	if p.Secure != nil {
		base.Secure = *p.Secure
	}
	if p.Username != nil {
		base.Username = *p.Username
	}
	if p.Password != nil {
		base.Password = *p.Password
	}
	if p.FromEmail != nil {
		base.FromEmail = *p.FromEmail
	}
	if p.FromName != nil {
		base.FromName = *p.FromName
	}
	return base
}
