package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string         `json:"env"`
	Http     HttpConfig     `json:"http"`
	Postgres PostgresConfig `json:"postgres"`
	Redis    RedisConfig    `json:"redis"`
	APIKey   string         `json:"api_key,omitempty"`
	Notify   NotifyConfig   `json:"notify"`
	Policy   PolicyConfig   `json:"policy"`
}

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
	SSLMode  string `json:"ssl_mode"`

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db"`
}

// NotifyConfig points at the external notification dispatcher. Delivery is
// best effort; failures never propagate into request creation.
type NotifyConfig struct {
	URL      string `json:"url"`
	Disabled bool   `json:"disabled"`
}

// PolicyConfig collects the time and distance policy constants so they live
// in configuration rather than inside the state machines.
type PolicyConfig struct {
	ObfuscationRadiusM    float64       `json:"obfuscation_radius_m"`
	MinSearchRadiusM      float64       `json:"min_search_radius_m"`
	MaxSearchRadiusM      float64       `json:"max_search_radius_m"`
	RequestTTL            time.Duration `json:"request_ttl"`
	MarkerTTL             time.Duration `json:"marker_ttl"`
	WeeklyRequestLimit    int           `json:"weekly_request_limit"`
	ArchiveFulfilledAfter time.Duration `json:"archive_fulfilled_after"`
	ArchiveCancelledAfter time.Duration `json:"archive_cancelled_after"`
	SweepInterval         time.Duration `json:"sweep_interval"`
}

func Load() (*Config, error) {
	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLogger.Warn(".env load warning", slog.Any("error", err))
	}

	cfg := &Config{
		Env: getEnv("ENV", "local"),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "pg-local"),
			Port:            getEnvInt("POSTGRES_PORT", 5432),
			Database:        getEnv("POSTGRES_DB", "neighbourcam_db"),
			User:            getEnv("POSTGRES_USER", "postgres"),
			Password:        getEnv("POSTGRES_PASSWORD", "postgres"),
			SSLMode:         getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConns:        20,
			MinConns:        1,
			MaxConnLifetime: 1 * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "redis-local:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		APIKey: getEnv("API_KEY", ""),
		Notify: NotifyConfig{
			URL:      getEnv("NOTIFY_URL", "http://notifier-local:9090/dispatch"),
			Disabled: getEnvBool("NOTIFY_DISABLED", false),
		},
		Policy: PolicyConfig{
			ObfuscationRadiusM:    getEnvFloat("OBFUSCATION_RADIUS_M", 50),
			MinSearchRadiusM:      getEnvFloat("MIN_SEARCH_RADIUS_M", 50),
			MaxSearchRadiusM:      getEnvFloat("MAX_SEARCH_RADIUS_M", 2000),
			RequestTTL:            getEnvDuration("REQUEST_TTL", 7*24*time.Hour),
			MarkerTTL:             getEnvDuration("MARKER_TTL", 14*24*time.Hour),
			WeeklyRequestLimit:    getEnvInt("WEEKLY_REQUEST_LIMIT", 3),
			ArchiveFulfilledAfter: getEnvDuration("ARCHIVE_FULFILLED_AFTER", 30*24*time.Hour),
			ArchiveCancelledAfter: getEnvDuration("ARCHIVE_CANCELLED_AFTER", 7*24*time.Hour),
			SweepInterval:         getEnvDuration("SWEEP_INTERVAL", 15*time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stdLogger.Info("Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.Http.Port),
		slog.String("postgres_db", cfg.Postgres.Database),
		slog.String("redis_addr", cfg.Redis.Addr),
		slog.Float64("obfuscation_radius_m", cfg.Policy.ObfuscationRadiusM))

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Http.Port == "" || c.Http.Port[0] != ':' {
		return errors.New("HTTP_PORT must start with ':' like ':8080'")
	}
	if c.Postgres.Host == "" {
		return errors.New("POSTGRES_HOST required")
	}
	if c.Policy.ObfuscationRadiusM < 25 || c.Policy.ObfuscationRadiusM > 100 {
		return errors.New("OBFUSCATION_RADIUS_M must be within 25..100")
	}
	if c.Policy.MinSearchRadiusM <= 0 || c.Policy.MaxSearchRadiusM <= c.Policy.MinSearchRadiusM {
		return errors.New("search radius bounds are inconsistent")
	}
	if c.Policy.WeeklyRequestLimit < 1 {
		return errors.New("WEEKLY_REQUEST_LIMIT must be at least 1")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
