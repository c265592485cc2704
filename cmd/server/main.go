package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/carlosfox17/sgp-backend/internal/domain"
	"github.com/carlosfox17/sgp-backend/internal/events"
	"github.com/carlosfox17/sgp-backend/internal/handler"
	"github.com/carlosfox17/sgp-backend/internal/infrastructure/logger"
	"github.com/carlosfox17/sgp-backend/internal/infrastructure/redis"
	"github.com/carlosfox17/sgp-backend/internal/mailer"
	"github.com/carlosfox17/sgp-backend/internal/observability/metrics"
	"github.com/carlosfox17/sgp-backend/internal/observability/tracing"
	"github.com/carlosfox17/sgp-backend/internal/repository"
	"github.com/carlosfox17/sgp-backend/internal/security"
	"github.com/carlosfox17/sgp-backend/internal/security/audit"
	"github.com/carlosfox17/sgp-backend/internal/security/auth"
	"github.com/carlosfox17/sgp-backend/internal/security/middleware"
	"github.com/carlosfox17/sgp-backend/internal/seed"
	"github.com/carlosfox17/sgp-backend/internal/service"
	"github.com/carlosfox17/sgp-backend/internal/store"
	"github.com/carlosfox17/sgp-backend/internal/worker"
	"github.com/carlosfox17/sgp-backend/pkg/config"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize structured logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting SGP server", slog.String("environment", cfg.Environment))

	// 3. Initialize tracing
	shutdownTracing, err := tracing.Init(context.Background(), log, "sgp-backend", cfg.Environment)
	if err != nil {
		log.Warn("tracing disabled", slog.String("error", err.Error()))
		shutdownTracing = func(context.Context) error { return nil }
	}

	// 4. Initialize Redis. The stores are in-memory and authoritative, so a
	// missing Redis only costs settings/session durability, not the server.
	var redisClient *redis.Client
	if client, err := redis.NewClient(cfg.RedisURL); err != nil {
		log.Warn("redis unavailable, settings and sessions will not survive restarts",
			slog.String("error", err.Error()))
	} else {
		redisClient = client
		defer redisClient.Close()
	}

	// 5. Initialize stores and the change event broker
	broker := events.New()
	clients := store.NewClientStore(broker)
	users := store.NewUserStore(broker)
	projects := store.NewProjectStore(broker)

	settings := store.NewSettingsStore(domain.DefaultSettings(), broker)
	var settingsRepo *repository.SettingsRepository
	var sessionRepo *repository.SessionRepository
	if redisClient != nil {
		settingsRepo = repository.NewSettingsRepository(redisClient, log)
		sessionRepo = repository.NewSessionRepository(redisClient, time.Duration(cfg.SessionTTLHours)*time.Hour, log)

		loadCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if stored, found, err := settingsRepo.Load(loadCtx); err != nil {
			log.Warn("failed to load persisted settings", slog.String("error", err.Error()))
		} else if found {
			settings.Replace(stored)
			log.Info("loaded persisted settings")
		}
		cancel()
	}

	// 6. Seed the admin account (and demo data behind its flag)
	if err := seed.Run(seed.Stores{Clients: clients, Users: users, Projects: projects}, cfg.AdminEmail, cfg.AdminPassword, log); err != nil {
		log.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 7. Initialize the mail transport and dispatcher
	var transport mailer.Transport
	if cfg.MailRelayURL != "" {
		transport = mailer.NewRelayTransport(cfg.MailRelayURL, log)
		log.Info("using mail relay", slog.String("url", cfg.MailRelayURL))
	} else {
		transport = mailer.NewSimulatedTransport(log)
		log.Info("using simulated mail transport")
	}
	dispatcher := mailer.NewDispatcher(transport, log)

	// 8. Initialize security components
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, "sgp")
	authz := security.NewAuthorizationService(log)
	auditLogger := audit.NewLogger(log)

	// 9. Initialize services
	var sessionStore service.SessionStore
	if sessionRepo != nil {
		sessionStore = sessionRepo
	}
	authService := service.NewAuthService(users, sessionStore, tokenManager, log)
	projectService := service.NewProjectService(
		projects, clients, settings, dispatcher,
		time.Duration(cfg.NotifyTimeoutSecs)*time.Second, log,
	)

	// 10. Initialize handlers
	loginHandler := handler.NewLoginHandler(authService, auditLogger, log)
	logoutHandler := handler.NewLogoutHandler(authService, log)
	clientsHandler := handler.NewClientsHandler(clients, authz, log)
	usersHandler := handler.NewUsersHandler(users, authz, log)
	projectsHandler := handler.NewProjectsHandler(projects, clients, projectService, authz, auditLogger, log)
	var saver handler.SettingsSaver
	if settingsRepo != nil {
		saver = settingsRepo
	}
	settingsHandler := handler.NewSettingsHandler(settings, saver, authz, log)
	smtpHandler := handler.NewSmtpHandler(transport, authz, log)
	dashboardHandler := handler.NewDashboardHandler(projects, clients, users, broker, log)
	eventsHandler := handler.NewEventsHandler(broker, tokenManager, log, cfg.CORSAllowedOrigins)

	// 11. Setup HTTP routes
	mux := http.NewServeMux()
	mux.Handle("POST /api/login", loginHandler)
	mux.Handle("POST /api/logout", logoutHandler)

	mux.HandleFunc("GET /api/clients", clientsHandler.List)
	mux.HandleFunc("POST /api/clients", clientsHandler.Create)
	mux.HandleFunc("PUT /api/clients/{id}", clientsHandler.Update)
	mux.HandleFunc("DELETE /api/clients/{id}", clientsHandler.Delete)

	mux.HandleFunc("GET /api/users", usersHandler.List)
	mux.HandleFunc("POST /api/users", usersHandler.Create)
	mux.HandleFunc("PUT /api/users/{id}", usersHandler.Update)
	mux.HandleFunc("DELETE /api/users/{id}", usersHandler.Delete)

	mux.HandleFunc("GET /api/projects", projectsHandler.List)
	mux.HandleFunc("GET /api/projects/{id}", projectsHandler.Get)
	mux.HandleFunc("POST /api/projects", projectsHandler.Create)
	mux.HandleFunc("PUT /api/projects/{id}", projectsHandler.Update)
	mux.HandleFunc("DELETE /api/projects/{id}", projectsHandler.Delete)
	mux.HandleFunc("GET /api/departments", projectsHandler.Departments)
	mux.HandleFunc("GET /api/statuses", projectsHandler.Statuses)

	mux.HandleFunc("GET /api/settings", settingsHandler.Get)
	mux.HandleFunc("PUT /api/settings", settingsHandler.Update)

	mux.HandleFunc("POST /api/smtp/test", smtpHandler.Test)
	mux.HandleFunc("POST /api/smtp/send", smtpHandler.Send)

	mux.Handle("GET /api/dashboard", dashboardHandler)
	mux.Handle("GET /ws/events", eventsHandler)
	mux.Handle("/metrics", promhttp.Handler())

	// Health and readiness endpoints (no auth required)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := redisClient.Ping(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("redis not ready"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})

	// CORS middleware honoring configured origins
	handlerWithCORS := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(cfg.CORSAllowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else if len(cfg.CORSAllowedOrigins) > 0 {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSAllowedOrigins[0])
		}
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})

	// Chain middleware: request ID -> metrics -> audit -> JWT -> CORS
	rootHandler := withRequestID(
		metrics.HTTPMetricsMiddleware(
			middleware.AuditMiddleware(auditLogger)(
				middleware.JWTMiddleware(tokenManager, log)(handlerWithCORS),
			),
		),
		log,
	)
	rootHandler = otelhttp.NewHandler(rootHandler, "sgp-backend")

	// 12. Start stats worker in background
	statsWorker := worker.NewStatsWorker(clients, users, projects, log, time.Duration(cfg.StatsIntervalSecs)*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go statsWorker.Start(ctx)

	// 13. Start HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      rootHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting", slog.Int("port", cfg.ServerPort), slog.String("auth", "jwt"))

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	<-sigChan
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}

	cancel() // Stop stats worker
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown error", slog.String("error", err.Error()))
	}
	log.Info("server stopped")
}

type requestIDKey struct{}

// withRequestID attaches a request ID to the context and response headers for traceability
func withRequestID(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := generateRequestID()
		w.Header().Set("X-Request-ID", reqID)

		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		start := time.Now()

		next.ServeHTTP(w, r.WithContext(ctx))

		log.Info("request completed",
			slog.String("request_id", reqID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration_ms", time.Since(start)),
		)
	})
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return false
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

func generateRequestID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err == nil {
		return hex.EncodeToString(buf)
	}
	return fmt.Sprintf("req-%d", time.Now().UnixNano())
}
