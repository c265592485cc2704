package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Environment        string
	ServerPort         int
	RedisURL           string
	MailRelayURL       string
	JWTSecret          string
	LogLevel           string
	CORSAllowedOrigins []string
	NotifyTimeoutSecs  int
	StatsIntervalSecs  int
	SessionTTLHours    int
	AdminEmail         string
	AdminPassword      string
}

// Load reads configuration from environment variables, consulting a local
// .env file first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	notifyTimeout, err := strconv.Atoi(getEnv("NOTIFY_TIMEOUT_SECONDS", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFY_TIMEOUT_SECONDS: %w", err)
	}

	statsInterval, err := strconv.Atoi(getEnv("STATS_INTERVAL_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_INTERVAL_SECONDS: %w", err)
	}

	sessionTTL, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "720"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL_HOURS: %w", err)
	}

	return &Config{
		Environment:  getEnv("ENVIRONMENT", "development"),
		ServerPort:   port,
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
		MailRelayURL: getEnv("MAIL_RELAY_URL", ""),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: parseCSVEnv("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://localhost:3000",
		}),
		NotifyTimeoutSecs: notifyTimeout,
		StatsIntervalSecs: statsInterval,
		SessionTTLHours:   sessionTTL,
		AdminEmail:        getEnv("ADMIN_EMAIL", "admin@sistema.com"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", "12345678"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseCSVEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
