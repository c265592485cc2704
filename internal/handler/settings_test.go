package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/carlosfox17/sgp-backend/internal/domain"
	"github.com/carlosfox17/sgp-backend/internal/security"
	"github.com/carlosfox17/sgp-backend/internal/store"
)

type memSettingsSaver struct {
	saved []domain.AppSettings
}

func (m *memSettingsSaver) Save(ctx context.Context, s domain.AppSettings) error {
	m.saved = append(m.saved, s)
	return nil
}

func TestSettingsUpdateMergesAndPersists(t *testing.T) {
	settings := store.NewSettingsStore(domain.DefaultSettings(), nil)
	saver := &memSettingsSaver{}
	h := NewSettingsHandler(settings, saver, security.NewAuthorizationService(nil), discardLogger())

	body := `{"appName":"Gestor","smtp":{"host":"smtp.gmail.com"}}`
	req := asAdmin(httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var merged domain.AppSettings
	if err := json.NewDecoder(rec.Body).Decode(&merged); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if merged.AppName != "Gestor" {
		t.Fatalf("appName: %q", merged.AppName)
	}
	if merged.Smtp.Host != "smtp.gmail.com" || merged.Smtp.Port != 587 {
		t.Fatalf("smtp merge: %+v", merged.Smtp)
	}
	if len(saver.saved) != 1 || saver.saved[0].AppName != "Gestor" {
		t.Fatalf("settings not persisted: %+v", saver.saved)
	}
}

func TestSettingsUpdateForbiddenForEmployees(t *testing.T) {
	settings := store.NewSettingsStore(domain.DefaultSettings(), nil)
	h := NewSettingsHandler(settings, nil, security.NewAuthorizationService(nil), discardLogger())

	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(`{"appName":"X"}`))
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status %d", rec.Code)
	}
	if settings.Get().AppName != "SGP" {
		t.Fatalf("settings changed despite forbidden request")
	}
}

func TestSettingsGet(t *testing.T) {
	settings := store.NewSettingsStore(domain.DefaultSettings(), nil)
	h := NewSettingsHandler(settings, nil, security.NewAuthorizationService(nil), discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	var got domain.AppSettings
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.AppName != "SGP" || got.Timezone != "Africa/Luanda" {
		t.Fatalf("got %+v", got)
	}
}
