package service

import (
	"context"
	"testing"

	"github.com/carlosfox17/sgp-backend/internal/domain"
	"github.com/carlosfox17/sgp-backend/internal/mailer"
	"github.com/carlosfox17/sgp-backend/internal/store"
)

type recordingTransport struct {
	sent []mailer.Message
}

func (r *recordingTransport) Verify(ctx context.Context, smtp mailer.Settings) mailer.Result {
	return mailer.Result{Success: true}
}

func (r *recordingTransport) Send(ctx context.Context, smtp mailer.Settings, msg mailer.Message) mailer.Result {
	r.sent = append(r.sent, msg)
	if smtp.Host == "smtp.fail.test" {
		return mailer.Result{Error: mailer.ErrSendFailed}
	}
	return mailer.Result{Success: true}
}

type projectFixture struct {
	svc       *ProjectService
	projects  *store.ProjectStore
	clients   *store.ClientStore
	settings  *store.SettingsStore
	transport *recordingTransport
}

func newProjectFixture(t *testing.T, smtpHost string) *projectFixture {
	t.Helper()

	clients := store.NewClientStore(nil)
	projects := store.NewProjectStore(nil)

	initial := domain.DefaultSettings()
	initial.Smtp = domain.SmtpSettings{
		Host:      smtpHost,
		Port:      587,
		Username:  "u",
		Password:  "p",
		FromEmail: "noreply@empresa.com",
		FromName:  "Minha Empresa",
	}
	settings := store.NewSettingsStore(initial, nil)

	transport := &recordingTransport{}
	dispatcher := mailer.NewDispatcher(transport, nil)

	return &projectFixture{
		svc:       NewProjectService(projects, clients, settings, dispatcher, 0, nil),
		projects:  projects,
		clients:   clients,
		settings:  settings,
		transport: transport,
	}
}

func TestCreateNotifiesClient(t *testing.T) {
	f := newProjectFixture(t, "smtp.example.com")
	client := f.clients.Create(domain.ClientInput{Name: "Acme", Email: "a@acme.com"})

	result := f.svc.Create(context.Background(), domain.ProjectInput{
		Name:        "Obra Nova",
		ClientID:    client.ID,
		Description: "Instalação",
	})

	if result.Project.ID == "" {
		t.Fatalf("project not created")
	}
	if result.Notification == nil || !result.Notification.Success {
		t.Fatalf("expected successful notification, got %+v", result.Notification)
	}
	if len(f.transport.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(f.transport.sent))
	}
	msg := f.transport.sent[0]
	if msg.To != "a@acme.com" {
		t.Fatalf("email went to %q", msg.To)
	}
	if msg.Subject != "Novo Projeto Criado: Obra Nova" {
		t.Fatalf("subject: %q", msg.Subject)
	}
}

func TestCreateSurvivesNotificationFailure(t *testing.T) {
	f := newProjectFixture(t, "smtp.fail.test")
	client := f.clients.Create(domain.ClientInput{Name: "Acme", Email: "a@acme.com"})

	result := f.svc.Create(context.Background(), domain.ProjectInput{
		Name:     "Obra Nova",
		ClientID: client.ID,
	})

	// Creation is reported successful regardless of delivery.
	if result.Project.ID == "" {
		t.Fatalf("project not created")
	}
	if _, ok := f.projects.Get(result.Project.ID); !ok {
		t.Fatalf("project missing from the store after failed notification")
	}
	if result.Notification == nil {
		t.Fatalf("expected a notification result")
	}
	if result.Notification.Success {
		t.Fatalf("notification should have failed")
	}
	if result.Notification.Error == "" {
		t.Fatalf("expected a failure reason")
	}
}

func TestCreateSkipsNotificationWithoutClientEmail(t *testing.T) {
	f := newProjectFixture(t, "smtp.example.com")
	client := f.clients.Create(domain.ClientInput{Name: "Acme"})

	result := f.svc.Create(context.Background(), domain.ProjectInput{Name: "Obra", ClientID: client.ID})
	if result.Notification != nil {
		t.Fatalf("notification attempted without a client email")
	}
	if len(f.transport.sent) != 0 {
		t.Fatalf("email sent without a client email")
	}
}

func TestCreateSkipsNotificationWithoutSmtpHost(t *testing.T) {
	f := newProjectFixture(t, "")
	client := f.clients.Create(domain.ClientInput{Name: "Acme", Email: "a@acme.com"})

	result := f.svc.Create(context.Background(), domain.ProjectInput{Name: "Obra", ClientID: client.ID})
	if result.Notification != nil {
		t.Fatalf("notification attempted without an smtp host")
	}
}

func TestCreateSkipsNotificationForUnknownClient(t *testing.T) {
	f := newProjectFixture(t, "smtp.example.com")

	result := f.svc.Create(context.Background(), domain.ProjectInput{Name: "Obra", ClientID: "ghost"})
	if result.Project.ID == "" {
		t.Fatalf("dangling client reference must not block creation")
	}
	if result.Notification != nil {
		t.Fatalf("notification attempted for unknown client")
	}
}

func TestUpdateDoesNotNotify(t *testing.T) {
	f := newProjectFixture(t, "smtp.example.com")
	client := f.clients.Create(domain.ClientInput{Name: "Acme", Email: "a@acme.com"})
	result := f.svc.Create(context.Background(), domain.ProjectInput{Name: "Obra", ClientID: client.ID})

	sentAfterCreate := len(f.transport.sent)
	status := domain.StatusCompleted
	f.svc.Update(result.Project.ID, domain.ProjectPatch{Status: &status})

	if len(f.transport.sent) != sentAfterCreate {
		t.Fatalf("edit triggered a notification")
	}
	got, _ := f.projects.Get(result.Project.ID)
	if got.Status != domain.StatusCompleted {
		t.Fatalf("update not applied")
	}
}
