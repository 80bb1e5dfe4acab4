// Package config loads lectora configuration from flags, environment variables and .env files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds the application configuration.
type Config struct {
	App             AppConfig
	Logger          LoggerConfig
	Store           StoreConfig
	Catalog         CatalogConfig
	Server          ServerConfig
	Recommendations RecommendationsConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
	Timezone    string // IANA name deciding calendar days; "Local" uses the host zone
}

// Location resolves Timezone.
func (a AppConfig) Location() (*time.Location, error) {
	if a.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(a.Timezone)
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// StoreConfig selects and configures the preference store backend.
type StoreConfig struct {
	Backend  string // badger, sqlite or redis
	DataPath string // directory for badger/sqlite files
	RedisURL string
}

// CatalogConfig configures the OpenLibrary client.
type CatalogConfig struct {
	BaseURL   string
	CoversURL string
	RPS       float64
	Burst     int
	Timeout   time.Duration
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CORSOrigins  []string
	RequestRPS   float64 // per client IP; 0 disables limiting
	RequestBurst int
}

// RecommendationsConfig tunes the home recommendations.
type RecommendationsConfig struct {
	MaxResults       int
	RefreshesPerDay  int
	RecentWindowSize int
	WarmupSchedule   string // cron spec; empty disables the daily warmup
}

// flagValues holds raw command-line values; empty means "not set".
type flagValues struct {
	env, logLevel, dataPath, backend, redisURL   string
	catalogURL, port, maxResults, warmupSchedule string
	envFile                                      string
}

// LoadConfig loads configuration with precedence:
// 1. Command-line flags.
// 2. Environment variables.
// 3. .env file.
// 4. Defaults.
func LoadConfig() (*Config, error) {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var fv flagValues
	fs.StringVar(&fv.env, "env", "", "Environment (development, staging, production)")
	fs.StringVar(&fv.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&fv.dataPath, "data-path", "", "Directory for local store files")
	fs.StringVar(&fv.backend, "store", "", "Store backend (badger, sqlite, redis)")
	fs.StringVar(&fv.redisURL, "redis-url", "", "Redis URL when -store=redis")
	fs.StringVar(&fv.catalogURL, "openlibrary-url", "", "OpenLibrary base URL")
	fs.StringVar(&fv.port, "port", "", "Server port (default: 8080)")
	fs.StringVar(&fv.maxResults, "recs-max", "", "Recommendations per day (default: 6)")
	fs.StringVar(&fv.warmupSchedule, "warmup-schedule", "", "Cron spec for the daily warmup")
	fs.StringVar(&fv.envFile, "env-file", ".env", "Path to .env file")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// godotenv.Load never overrides variables already present in the environment.
	if err := godotenv.Load(fv.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", fv.envFile, err)
	}

	return build(fv)
}

func build(fv flagValues) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(fv.env, "ENV", "development"),
			Timezone:    getConfigValue("", "APP_TIMEZONE", "Local"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(fv.logLevel, "LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Backend:  strings.ToLower(getConfigValue(fv.backend, "STORE_BACKEND", BackendBadger)),
			DataPath: getConfigValue(fv.dataPath, "DATA_PATH", ""),
			RedisURL: getConfigValue(fv.redisURL, "REDIS_URL", "redis://localhost:6379/0"),
		},
		Catalog: CatalogConfig{
			BaseURL:   strings.TrimRight(getConfigValue(fv.catalogURL, "OPENLIBRARY_BASE_URL", "https://openlibrary.org"), "/"),
			CoversURL: strings.TrimRight(getConfigValue("", "OPENLIBRARY_COVERS_URL", "https://covers.openlibrary.org"), "/"),
			RPS:       getFloatConfigValue("", "CATALOG_RPS", 3),
			Burst:     getIntConfigValue("", "CATALOG_BURST", 6),
		},
		Server: ServerConfig{
			Port:         getConfigValue(fv.port, "SERVER_PORT", "8080"),
			CORSOrigins:  splitList(getConfigValue("", "CORS_ORIGINS", "*")),
			RequestRPS:   getFloatConfigValue("", "SERVER_RPS", 20),
			RequestBurst: getIntConfigValue("", "SERVER_BURST", 40),
		},
		Recommendations: RecommendationsConfig{
			MaxResults:       getIntConfigValue(fv.maxResults, "RECS_MAX_RESULTS", 6),
			RefreshesPerDay:  getIntConfigValue("", "RECS_MAX_REFRESH_PER_DAY", 3),
			RecentWindowSize: getIntConfigValue("", "RECS_RECENT_WINDOW", 30),
			WarmupSchedule:   getConfigValue(fv.warmupSchedule, "WARMUP_SCHEDULE", "5 0 * * *"),
		},
	}

	durations := []struct {
		dst *time.Duration
		env string
		def string
	}{
		{&cfg.Catalog.Timeout, "CATALOG_TIMEOUT", "15s"},
		{&cfg.Server.ReadTimeout, "SERVER_READ_TIMEOUT", "15s"},
		{&cfg.Server.WriteTimeout, "SERVER_WRITE_TIMEOUT", "60s"},
		{&cfg.Server.IdleTimeout, "SERVER_IDLE_TIMEOUT", "60s"},
	}
	for _, d := range durations {
		raw := getConfigValue("", d.env, d.def)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.env, raw, err)
		}
		*d.dst = parsed
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all config values are present and valid.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case "development", "staging", "production":
	case "":
		return errors.New("ENV is required")
	default:
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	if _, err := c.App.Location(); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}

	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.Store.Backend {
	case BackendBadger, BackendSQLite:
		if c.Store.DataPath == "" {
			return errors.New("data path cannot be empty after expansion")
		}
	case BackendRedis:
		if c.Store.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis store")
		}
	default:
		return fmt.Errorf("invalid store backend: %s (must be badger, sqlite, or redis)", c.Store.Backend)
	}

	if c.Catalog.RPS <= 0 || c.Catalog.Burst <= 0 {
		return errors.New("catalog rate limit must be positive")
	}
	if c.Server.RequestRPS < 0 || c.Server.RequestBurst < 0 {
		return errors.New("server request rate limit cannot be negative")
	}
	if c.Recommendations.MaxResults < 1 {
		return errors.New("RECS_MAX_RESULTS must be at least 1")
	}
	if c.Recommendations.RefreshesPerDay < 1 {
		return errors.New("RECS_MAX_REFRESH_PER_DAY must be at least 1")
	}
	if c.Recommendations.RecentWindowSize < 0 {
		return errors.New("RECS_RECENT_WINDOW cannot be negative")
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, defaultPath is returned as is.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath defaults the data path to ~/.lectora.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	expanded, err := expandPath(c.Store.DataPath, filepath.Join(homeDir, ".lectora"))
	if err != nil {
		return err
	}
	c.Store.DataPath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	raw := getConfigValue(flagValue, envKey, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue
	}
	return v
}

// getFloatConfigValue returns a float from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	raw := getConfigValue(flagValue, envKey, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
