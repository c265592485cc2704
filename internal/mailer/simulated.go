package mailer

import (
	"context"
	"log/slog"
	"strings"
)

// SimulatedTransport is the development and test backend. It accepts every
// complete configuration except hosts carrying a designated failure marker,
// reproducing the contract real relay deployments honor in their staging
// mode: a host containing "fail" or "error" refuses to connect or send.
type SimulatedTransport struct {
	logger *slog.Logger
}

// NewSimulatedTransport creates a simulated transport.
func NewSimulatedTransport(logger *slog.Logger) *SimulatedTransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &SimulatedTransport{logger: logger}
}

func hostRejects(host string) bool {
	return strings.Contains(host, "error") || strings.Contains(host, "fail")
}

// Verify simulates a connection probe against the configured host.
func (t *SimulatedTransport) Verify(ctx context.Context, smtp Settings) Result {
	if hostRejects(smtp.Host) {
		return failure(ErrConnectFailed)
	}
	t.logger.Debug("simulated smtp verify ok", slog.String("host", smtp.Host))
	return Result{Success: true}
}

// Send simulates transmitting a message.
func (t *SimulatedTransport) Send(ctx context.Context, smtp Settings, msg Message) Result {
	if hostRejects(smtp.Host) {
		return failure(ErrSendFailed)
	}
	t.logger.Debug("simulated email send ok",
		slog.String("host", smtp.Host),
		slog.String("to", msg.To),
	)
	return Result{Success: true}
}
