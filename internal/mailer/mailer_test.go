package mailer

import (
	"context"
	"strings"
	"testing"

	"github.com/carlosfox17/sgp-backend/internal/domain"
)

// spyTransport records whether the network boundary was reached.
type spyTransport struct {
	verifyCalls int
	sendCalls   int
	result      Result
}

func (s *spyTransport) Verify(ctx context.Context, smtp Settings) Result {
	s.verifyCalls++
	return s.result
}

func (s *spyTransport) Send(ctx context.Context, smtp Settings, msg Message) Result {
	s.sendCalls++
	return s.result
}

func completeSmtp() domain.SmtpSettings {
	return domain.SmtpSettings{
		Host:      "smtp.example.com",
		Port:      587,
		Username:  "u",
		Password:  "p",
		FromEmail: "f@x.com",
		FromName:  "F",
	}
}

func TestVerifyMissingSettingsNeverReachesTransport(t *testing.T) {
	spy := &spyTransport{result: Result{Success: true}}
	d := NewDispatcher(spy, nil)

	res := d.Verify(context.Background(), domain.SmtpSettings{})
	if res.Success {
		t.Fatalf("expected failure")
	}
	if res.Error != ErrSettingsMissing {
		t.Fatalf("got %q", res.Error)
	}
	if spy.verifyCalls != 0 {
		t.Fatalf("transport reached despite missing settings")
	}
}

func TestVerifyIncompleteSettings(t *testing.T) {
	spy := &spyTransport{result: Result{Success: true}}
	d := NewDispatcher(spy, nil)

	smtp := completeSmtp()
	smtp.Password = ""
	res := d.Verify(context.Background(), smtp)
	if res.Error != ErrSettingsIncomplete {
		t.Fatalf("got %q", res.Error)
	}
	if spy.verifyCalls != 0 {
		t.Fatalf("transport reached despite incomplete settings")
	}
}

func TestVerifyDelegatesWhenComplete(t *testing.T) {
	spy := &spyTransport{result: Result{Success: true}}
	d := NewDispatcher(spy, nil)

	res := d.Verify(context.Background(), completeSmtp())
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Error)
	}
	if spy.verifyCalls != 1 {
		t.Fatalf("expected one verify call, got %d", spy.verifyCalls)
	}
}

func TestSendRequiresAllMessageFields(t *testing.T) {
	spy := &spyTransport{result: Result{Success: true}}
	d := NewDispatcher(spy, nil)

	for _, msg := range []Message{
		{Subject: "s", HTML: "<p>x</p>"},
		{To: "t@x.com", HTML: "<p>x</p>"},
		{To: "t@x.com", Subject: "s"},
	} {
		res := d.Send(context.Background(), completeSmtp(), msg)
		if res.Error != ErrMessageIncomplete {
			t.Fatalf("msg %+v: got %q", msg, res.Error)
		}
	}
	if spy.sendCalls != 0 {
		t.Fatalf("transport reached despite incomplete message")
	}
}

func TestSimulatedTransportFailureMarkers(t *testing.T) {
	tr := NewSimulatedTransport(nil)

	// A host containing "fail" refuses to verify.
	res := tr.Verify(context.Background(), Settings{Host: "smtp.fail.test", Username: "u", Password: "p"})
	if res.Success {
		t.Fatalf("expected verify failure on marker host")
	}
	if res.Error == "" {
		t.Fatalf("expected a non-empty error")
	}
	if res.Error != ErrConnectFailed {
		t.Fatalf("got %q", res.Error)
	}

	res = tr.Send(context.Background(), Settings{Host: "smtp.error.example", Username: "u", Password: "p"},
		Message{To: "a@x.com", Subject: "s", HTML: "<p>x</p>"})
	if res.Success || res.Error != ErrSendFailed {
		t.Fatalf("got %+v", res)
	}

	res = tr.Verify(context.Background(), Settings{Host: "smtp.gmail.com", Username: "u", Password: "p"})
	if !res.Success {
		t.Fatalf("clean host rejected: %q", res.Error)
	}
}

func TestFormatFrom(t *testing.T) {
	if got := FormatFrom("Minha Empresa", "x@y.com"); got != "Minha Empresa <x@y.com>" {
		t.Fatalf("got %q", got)
	}
	if got := FormatFrom("", "x@y.com"); got != "x@y.com" {
		t.Fatalf("got %q", got)
	}
}

func TestProjectNotificationTemplate(t *testing.T) {
	msg := ProjectNotification("Acme", "Obra Nova", "Descrição da obra", "Minha Empresa")

	if msg.Subject != "Novo Projeto Criado: Obra Nova" {
		t.Fatalf("subject: %q", msg.Subject)
	}
	for _, want := range []string{"Olá Acme", "Obra Nova", "Descrição da obra", "Minha Empresa"} {
		if !strings.Contains(msg.HTML, want) {
			t.Fatalf("template missing %q:\n%s", want, msg.HTML)
		}
	}
}
