package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/carlosfox17/sgp-backend/internal/reliability/circuitbreaker"
)

// RelayTransport talks to an external mail relay service over HTTP. The
// relay exposes POST {base}/test and POST {base}/send taking the smtp
// envelope (plus the email block for send) and answering {success, error}.
// Calls go through a circuit breaker so a dead relay fails fast instead of
// holding request handlers on timeouts.
type RelayTransport struct {
	baseURL string
	client  *http.Client
	breaker *circuitbreaker.Breaker
	logger  *slog.Logger
}

// NewRelayTransport creates a relay transport for the given base URL.
func NewRelayTransport(baseURL string, logger *slog.Logger) *RelayTransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &RelayTransport{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		breaker: circuitbreaker.New(5, 30*time.Second),
		logger:  logger,
	}
}

type relayAuth struct {
	User string `json:"user"`
	Pass string `json:"pass"`
}

type relaySmtp struct {
	Host   string    `json:"host"`
	Port   int       `json:"port"`
	Secure bool      `json:"secure"`
	Auth   relayAuth `json:"auth"`
	From   string    `json:"from"`
}

type relayEmail struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type relayRequest struct {
	Smtp  relaySmtp   `json:"smtp"`
	Email *relayEmail `json:"email,omitempty"`
}

type relayResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func envelope(smtp Settings) relaySmtp {
	return relaySmtp{
		Host:   smtp.Host,
		Port:   smtp.Port,
		Secure: smtp.Secure,
		Auth:   relayAuth{User: smtp.Username, Pass: smtp.Password},
		From:   smtp.From,
	}
}

// Verify asks the relay to probe the SMTP host.
func (t *RelayTransport) Verify(ctx context.Context, smtp Settings) Result {
	return t.post(ctx, "/test", relayRequest{Smtp: envelope(smtp)}, ErrConnectFailed)
}

// Send asks the relay to transmit one message.
func (t *RelayTransport) Send(ctx context.Context, smtp Settings, msg Message) Result {
	req := relayRequest{
		Smtp:  envelope(smtp),
		Email: &relayEmail{To: msg.To, Subject: msg.Subject, HTML: msg.HTML},
	}
	return t.post(ctx, "/send", req, ErrSendFailed)
}

func (t *RelayTransport) post(ctx context.Context, path string, body relayRequest, genericErr string) Result {
	var res Result
	err := t.breaker.Do(func() error {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal relay request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("build relay request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.client.Do(req)
		if err != nil {
			return fmt.Errorf("mail relay unreachable: %w", err)
		}
		defer resp.Body.Close()

		var rr relayResponse
		if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
			return fmt.Errorf("decode relay response (status %d): %w", resp.StatusCode, err)
		}

		if rr.Success {
			res = Result{Success: true}
			return nil
		}
		if rr.Error != "" {
			res = failure(rr.Error)
		} else {
			res = failure(genericErr)
		}
		// A refused configuration is the relay working as intended, not a
		// relay outage: the breaker only counts transport-level errors.
		return nil
	})
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrOpen) {
			t.logger.Warn("mail relay circuit open", slog.String("path", path))
			return failure("Serviço de email temporariamente indisponível")
		}
		t.logger.Error("mail relay call failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return failure(genericErr)
	}
	return res
}
