package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/carlosfox17/sgp-backend/internal/mailer"
	"github.com/carlosfox17/sgp-backend/internal/security"
	"github.com/carlosfox17/sgp-backend/internal/security/middleware"
)

// SmtpAuth is the credentials block of the mail wire envelope.
type SmtpAuth struct {
	User string `json:"user"`
	Pass string `json:"pass"`
}

// SmtpBlock is the smtp block of the mail wire envelope.
type SmtpBlock struct {
	Host   string   `json:"host"`
	Port   int      `json:"port"`
	Secure bool     `json:"secure"`
	Auth   SmtpAuth `json:"auth"`
	From   string   `json:"from"`
}

// EmailBlock is the message block of the mail wire envelope.
type EmailBlock struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// SmtpRequest is the full mail wire envelope. The blocks are pointers so a
// missing block is distinguishable from an empty one.
type SmtpRequest struct {
	Smtp  *SmtpBlock  `json:"smtp"`
	Email *EmailBlock `json:"email"`
}

// SmtpResponse is the wire response for both mail operations.
type SmtpResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SmtpHandler exposes the mail transport over HTTP: connection testing and
// direct sends. Validation failures and transport failures both come back
// as a structured {success, error} body; only a malformed request is a 500.
type SmtpHandler struct {
	transport mailer.Transport
	authz     *security.AuthorizationService
	logger    *slog.Logger
}

// NewSmtpHandler creates a new smtp handler.
func NewSmtpHandler(transport mailer.Transport, authz *security.AuthorizationService, logger *slog.Logger) *SmtpHandler {
	return &SmtpHandler{transport: transport, authz: authz, logger: logger}
}

// Test handles POST /api/smtp/test requests.
func (h *SmtpHandler) Test(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r) {
		return
	}

	var req SmtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusInternalServerError, SmtpResponse{Error: "Erro ao processar requisição"})
		return
	}

	if req.Smtp == nil {
		writeJSON(w, http.StatusBadRequest, SmtpResponse{Error: mailer.ErrSettingsMissing})
		return
	}
	if req.Smtp.Host == "" || req.Smtp.Auth.User == "" || req.Smtp.Auth.Pass == "" {
		writeJSON(w, http.StatusBadRequest, SmtpResponse{Error: mailer.ErrSettingsIncomplete})
		return
	}

	res := h.transport.Verify(r.Context(), settingsFromWire(*req.Smtp))
	if !res.Success {
		h.logger.Warn("smtp test failed", slog.String("host", req.Smtp.Host), slog.String("error", res.Error))
		writeJSON(w, http.StatusBadRequest, SmtpResponse{Error: res.Error})
		return
	}
	writeJSON(w, http.StatusOK, SmtpResponse{Success: true, Message: "Conexão SMTP testada com sucesso"})
}

// Send handles POST /api/smtp/send requests.
func (h *SmtpHandler) Send(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r) {
		return
	}

	var req SmtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusInternalServerError, SmtpResponse{Error: "Erro ao processar requisição"})
		return
	}

	if req.Smtp == nil || req.Email == nil {
		writeJSON(w, http.StatusBadRequest, SmtpResponse{Error: "Dados incompletos"})
		return
	}
	if req.Smtp.Host == "" || req.Smtp.Auth.User == "" || req.Smtp.Auth.Pass == "" {
		writeJSON(w, http.StatusBadRequest, SmtpResponse{Error: mailer.ErrSettingsIncomplete})
		return
	}
	if req.Email.To == "" || req.Email.Subject == "" || req.Email.HTML == "" {
		writeJSON(w, http.StatusBadRequest, SmtpResponse{Error: mailer.ErrMessageIncomplete})
		return
	}

	msg := mailer.Message{To: req.Email.To, Subject: req.Email.Subject, HTML: req.Email.HTML}
	res := h.transport.Send(r.Context(), settingsFromWire(*req.Smtp), msg)
	if !res.Success {
		h.logger.Warn("smtp send failed",
			slog.String("host", req.Smtp.Host),
			slog.String("to", req.Email.To),
			slog.String("error", res.Error),
		)
		writeJSON(w, http.StatusBadRequest, SmtpResponse{Error: res.Error})
		return
	}
	writeJSON(w, http.StatusOK, SmtpResponse{Success: true, Message: "Email enviado com sucesso"})
}

func settingsFromWire(b SmtpBlock) mailer.Settings {
	return mailer.Settings{
		Host:     b.Host,
		Port:     b.Port,
		Secure:   b.Secure,
		Username: b.Auth.User,
		Password: b.Auth.Pass,
		From:     b.From,
	}
}

func (h *SmtpHandler) allowed(w http.ResponseWriter, r *http.Request) bool {
	role := middleware.RoleFromContext(r.Context())
	if err := h.authz.ValidatePermission(role, security.PermTestSmtp); err != nil {
		writeError(w, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}
