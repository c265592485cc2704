package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/carlosfox17/sgp-backend/internal/domain"
	"github.com/carlosfox17/sgp-backend/internal/observability/metrics"
	"github.com/carlosfox17/sgp-backend/internal/security/auth"
	"github.com/carlosfox17/sgp-backend/internal/store"
)

// ErrInvalidCredentials is returned by Login for any failed authentication,
// deliberately unspecific to prevent user enumeration.
var ErrInvalidCredentials = errors.New("invalid credentials")

// SessionStore persists remember-me sessions across restarts.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, bool, error)
	Delete(ctx context.Context, id string) error
}

// AuthService is the session gate: it matches credentials against the user
// store and owns the authenticated sessions. Plain sessions live in memory;
// remember-me sessions additionally go to the session store.
type AuthService struct {
	users    *store.UserStore
	sessions SessionStore
	tokens   *auth.TokenManager
	tokenTTL time.Duration
	logger   *slog.Logger

	mu     sync.RWMutex
	active map[string]domain.Session
}

// NewAuthService creates the auth service. sessions may be nil, in which
// case remember-me behaves like a plain session.
func NewAuthService(users *store.UserStore, sessions SessionStore, tokens *auth.TokenManager, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		tokenTTL: 24 * time.Hour,
		logger:   logger,
		active:   map[string]domain.Session{},
	}
}

// Authenticate scans the user store in insertion order and returns the
// first user whose email matches, whose password verifies against the
// stored hash, and who is active. Duplicate emails are possible in the
// store; first match wins.
func (s *AuthService) Authenticate(email, password string) (domain.User, bool) {
	for _, u := range s.users.List() {
		if u.Email != email || !u.Active {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil {
			return u, true
		}
	}
	return domain.User{}, false
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	SessionID string             `json:"sessionId"`
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
	User      domain.SessionUser `json:"user"`
}

// Login authenticates and opens a session. The session carries the
// password-free user projection only.
func (s *AuthService) Login(ctx context.Context, email, password string, rememberMe bool) (*LoginResult, error) {
	user, ok := s.Authenticate(email, password)
	if !ok {
		s.logger.Info("login failed", slog.String("email", email))
		metrics.ObserveLogin(false)
		return nil, ErrInvalidCredentials
	}

	session := domain.Session{
		ID:         uuid.NewString(),
		User:       user.SessionUser(),
		RememberMe: rememberMe,
		CreatedAt:  time.Now(),
	}

	s.mu.Lock()
	s.active[session.ID] = session
	s.mu.Unlock()

	if rememberMe && s.sessions != nil {
		if err := s.sessions.Save(ctx, session); err != nil {
			// Persistence is a convenience for the next restart; the login
			// itself already succeeded.
			s.logger.Warn("failed to persist session", slog.String("error", err.Error()))
		}
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role, s.tokenTTL)
	if err != nil {
		s.logger.Error("failed to sign token", slog.String("error", err.Error()))
		return nil, errors.New("failed to generate token")
	}

	s.logger.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
		slog.Bool("remember_me", rememberMe),
	)
	metrics.ObserveLogin(true)

	return &LoginResult{
		SessionID: session.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokenTTL),
		User:      user.SessionUser(),
	}, nil
}

// Session resolves a session id, falling back to persisted remember-me
// sessions after a restart.
func (s *AuthService) Session(ctx context.Context, id string) (domain.Session, bool) {
	s.mu.RLock()
	session, ok := s.active[id]
	s.mu.RUnlock()
	if ok {
		return session, true
	}

	if s.sessions == nil {
		return domain.Session{}, false
	}
	session, found, err := s.sessions.Get(ctx, id)
	if err != nil {
		s.logger.Warn("failed to load session", slog.String("error", err.Error()))
		return domain.Session{}, false
	}
	if !found {
		return domain.Session{}, false
	}

	s.mu.Lock()
	s.active[session.ID] = session
	s.mu.Unlock()
	return session, true
}

// Logout clears a session from memory and from the persistent store.
func (s *AuthService) Logout(ctx context.Context, sessionID string) {
	s.mu.Lock()
	delete(s.active, sessionID)
	s.mu.Unlock()

	if s.sessions != nil {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			s.logger.Warn("failed to delete persisted session", slog.String("error", err.Error()))
		}
	}
	s.logger.Info("session closed", slog.String("session_id", sessionID))
}

// HashPassword produces the bcrypt hash stored on user records.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
