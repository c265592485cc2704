// Package mailer validates, verifies and transmits outbound email through
// an external mail transport. Errors are resolved here and handed back as
// structured results; nothing past this boundary sees a raw fault.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/carlosfox17/sgp-backend/internal/domain"
)

// User-facing messages of the transport contract. These are the strings the
// dashboard displays, so they stay in Portuguese.
const (
	ErrSettingsMissing    = "Configurações SMTP não fornecidas"
	ErrSettingsIncomplete = "Configurações SMTP incompletas"
	ErrMessageIncomplete  = "Dados do email incompletos"
	ErrConnectFailed      = "Não foi possível conectar ao servidor SMTP"
	ErrSendFailed         = "Falha ao enviar email"
)

// Message is one outbound email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Result is the structured outcome of a verify or send operation.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func failure(msg string) Result { return Result{Error: msg} }

// Settings is the transport-level view of the SMTP configuration, with the
// sender already folded into a single From header value.
type Settings struct {
	Host     string
	Port     int
	Secure   bool
	Username string
	Password string
	From     string
}

// FormatFrom renders the From header value for a named sender.
func FormatFrom(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// TransportSettings converts the stored SMTP configuration for a transport.
func TransportSettings(s domain.SmtpSettings) Settings {
	return Settings{
		Host:     s.Host,
		Port:     s.Port,
		Secure:   s.Secure,
		Username: s.Username,
		Password: s.Password,
		From:     FormatFrom(s.FromName, s.FromEmail),
	}
}

// Transport is the external mail backend. Implementations must be safe for
// concurrent use and must express failures through the Result, never by
// panicking or leaking transport-specific errors.
type Transport interface {
	Verify(ctx context.Context, smtp Settings) Result
	Send(ctx context.Context, smtp Settings, msg Message) Result
}

// Dispatcher fronts a Transport with the validation the product requires:
// operations with incomplete configuration are rejected without ever
// touching the network.
type Dispatcher struct {
	transport Transport
	logger    *slog.Logger
}

// NewDispatcher creates a dispatcher over the given transport.
func NewDispatcher(transport Transport, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{transport: transport, logger: logger}
}

// Verify probes connectivity and credentials against the configured host.
// It is idempotent and has no effect on the mailbox beyond the provider's
// own handshake.
func (d *Dispatcher) Verify(ctx context.Context, smtp domain.SmtpSettings) Result {
	if smtp == (domain.SmtpSettings{}) {
		return failure(ErrSettingsMissing)
	}
	if !smtp.Complete() {
		return failure(ErrSettingsIncomplete)
	}

	res := d.transport.Verify(ctx, TransportSettings(smtp))
	if !res.Success {
		d.logger.Warn("smtp verify failed",
			slog.String("host", smtp.Host),
			slog.String("error", res.Error),
		)
	}
	return res
}

// Send transmits one message. The caller decides what a failure means;
// nothing is retried here.
func (d *Dispatcher) Send(ctx context.Context, smtp domain.SmtpSettings, msg Message) Result {
	if smtp == (domain.SmtpSettings{}) {
		return failure(ErrSettingsMissing)
	}
	if !smtp.Complete() {
		return failure(ErrSettingsIncomplete)
	}
	if msg.To == "" || msg.Subject == "" || msg.HTML == "" {
		return failure(ErrMessageIncomplete)
	}

	res := d.transport.Send(ctx, TransportSettings(smtp), msg)
	if res.Success {
		d.logger.Info("email sent", slog.String("to", msg.To), slog.String("subject", msg.Subject))
	} else {
		d.logger.Warn("email send failed",
			slog.String("to", msg.To),
			slog.String("error", res.Error),
		)
	}
	return res
}
