package store

import (
	"math/rand"
	"testing"

	"github.com/carlosfox17/sgp-backend/internal/domain"
)

func TestSettingsTopLevelOverwrite(t *testing.T) {
	s := NewSettingsStore(domain.DefaultSettings(), nil)

	name := "Gestor de Projetos"
	s.Update(domain.SettingsPatch{AppName: &name})

	got := s.Get()
	if got.AppName != "Gestor de Projetos" {
		t.Fatalf("appName not updated: %q", got.AppName)
	}
	if got.CompanyName != "Minha Empresa" {
		t.Fatalf("untouched top-level field changed: %q", got.CompanyName)
	}
	if got.Smtp.Port != 587 {
		t.Fatalf("smtp block changed by top-level patch: %+v", got.Smtp)
	}
}

func TestSettingsSmtpDeepMerge(t *testing.T) {
	initial := domain.DefaultSettings()
	initial.Smtp = domain.SmtpSettings{
		Host:      "smtp.gmail.com",
		Port:      465,
		Secure:    true,
		Username:  "me@gmail.com",
		Password:  "secret",
		FromEmail: "me@gmail.com",
		FromName:  "Eu",
	}
	s := NewSettingsStore(initial, nil)

	host := "smtp.outlook.com"
	s.Update(domain.SettingsPatch{Smtp: &domain.SmtpPatch{Host: &host}})

	got := s.Get().Smtp
	if got.Host != "smtp.outlook.com" {
		t.Fatalf("host not updated: %q", got.Host)
	}
	if got.Port != 465 || !got.Secure || got.Username != "me@gmail.com" ||
		got.Password != "secret" || got.FromEmail != "me@gmail.com" || got.FromName != "Eu" {
		t.Fatalf("partial smtp patch erased sibling fields: %+v", got)
	}
}

// TestSettingsSmtpMergeIsolation drives the merge with random partial
// patches and checks that every field absent from the patch keeps its
// previous value and every present field takes the patch value.
func TestSettingsSmtpMergeIsolation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		base := domain.SmtpSettings{
			Host:      "host0",
			Port:      100 + rng.Intn(900),
			Secure:    rng.Intn(2) == 0,
			Username:  "user0",
			Password:  "pass0",
			FromEmail: "from0@x.com",
			FromName:  "name0",
		}
		initial := domain.DefaultSettings()
		initial.Smtp = base
		s := NewSettingsStore(initial, nil)

		var patch domain.SmtpPatch
		want := base
		if rng.Intn(2) == 0 {
			v := "host1"
			patch.Host, want.Host = &v, v
		}
		if rng.Intn(2) == 0 {
			v := 9999
			patch.Port, want.Port = &v, v
		}
		if rng.Intn(2) == 0 {
			v := !base.Secure
			patch.Secure, want.Secure = &v, v
		}
		if rng.Intn(2) == 0 {
			v := "user1"
			patch.Username, want.Username = &v, v
		}
		if rng.Intn(2) == 0 {
			v := "pass1"
			patch.Password, want.Password = &v, v
		}
		if rng.Intn(2) == 0 {
			v := "from1@x.com"
			patch.FromEmail, want.FromEmail = &v, v
		}
		if rng.Intn(2) == 0 {
			v := "name1"
			patch.FromName, want.FromName = &v, v
		}

		s.Update(domain.SettingsPatch{Smtp: &patch})
		if got := s.Get().Smtp; got != want {
			t.Fatalf("iteration %d: merge mismatch\npatch: %+v\ngot:  %+v\nwant: %+v", i, patch, got, want)
		}
	}
}

func TestSettingsReplace(t *testing.T) {
	s := NewSettingsStore(domain.DefaultSettings(), nil)

	next := domain.DefaultSettings()
	next.AppName = "Outro"
	s.Replace(next)

	if s.Get().AppName != "Outro" {
		t.Fatalf("replace did not take effect")
	}
}
