package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends.
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Session      SessionConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// SessionConfig controls where form sessions live and for how long.
type SessionConfig struct {
	Backend      string
	TTLMinutes   int
	CookieName   string
	SecureCookie bool
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
	// Output is a zap output path; empty means stdout.
	Output string
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	backend := strings.ToLower(getEnv("SESSION_BACKEND", SessionBackendMemory))
	if backend != SessionBackendMemory && backend != SessionBackendRedis {
		return nil, fmt.Errorf("invalid SESSION_BACKEND %q: want %s or %s", backend, SessionBackendMemory, SessionBackendRedis)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "event-registration"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 10),
		},
		Session: SessionConfig{
			Backend:      backend,
			TTLMinutes:   getEnvAsInt("SESSION_TTL_MINUTES", 30),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "registration_session"),
			SecureCookie: getEnvAsBool("SESSION_SECURE_COOKIE", false),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			DB:        redisDB,
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "registration:session:"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Output: os.Getenv("LOG_OUTPUT"),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", ""),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TTL returns how long an idle form session is kept.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
