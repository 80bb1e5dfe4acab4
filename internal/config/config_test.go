package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:     AppConfig{Environment: "development"},
		Logger:  LoggerConfig{Level: "info"},
		Store:   StoreConfig{Backend: BackendBadger, DataPath: "/var/lib/lectora"},
		Catalog: CatalogConfig{RPS: 3, Burst: 6},
		Recommendations: RecommendationsConfig{
			MaxResults:       6,
			RefreshesPerDay:  3,
			RecentWindowSize: 30,
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			if tt.valid {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestAppConfig_Location(t *testing.T) {
	loc, err := AppConfig{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = AppConfig{Timezone: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	cfg := validConfig()
	cfg.App.Timezone = "Mars/Olympus_Mons"
	assert.Error(t, cfg.Validate())
}

func TestValidate_AllLogLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG"} {
		cfg := validConfig()
		cfg.Logger.Level = level
		assert.NoError(t, cfg.Validate(), level)
	}

	cfg := validConfig()
	cfg.Logger.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidate_StoreBackends(t *testing.T) {
	tests := []struct {
		name    string
		store   StoreConfig
		wantErr bool
	}{
		{name: "badger with path", store: StoreConfig{Backend: BackendBadger, DataPath: "/data"}},
		{name: "sqlite with path", store: StoreConfig{Backend: BackendSQLite, DataPath: "/data"}},
		{name: "sqlite without path", store: StoreConfig{Backend: BackendSQLite}, wantErr: true},
		{name: "redis with url", store: StoreConfig{Backend: BackendRedis, RedisURL: "redis://localhost:6379/0"}},
		{name: "redis without url", store: StoreConfig{Backend: BackendRedis}, wantErr: true},
		{name: "unknown backend", store: StoreConfig{Backend: "bolt", DataPath: "/data"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Store = tt.store
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestValidate_Recommendations(t *testing.T) {
	cfg := validConfig()
	cfg.Recommendations.MaxResults = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Recommendations.RefreshesPerDay = -1
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Recommendations.RefreshesPerDay = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Server.RequestRPS = -1
	assert.Error(t, cfg.Validate())
}

func TestBuild_Precedence(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DATA_PATH", t.TempDir())

	cfg, err := build(flagValues{logLevel: "debug"})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level, "flag beats env")
	assert.Equal(t, "9000", cfg.Server.Port, "env beats default")
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, BackendBadger, cfg.Store.Backend)
	assert.Equal(t, 6, cfg.Recommendations.MaxResults)
	assert.Equal(t, 3, cfg.Recommendations.RefreshesPerDay)
	assert.Equal(t, 15*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "https://openlibrary.org", cfg.Catalog.BaseURL)
}

func TestBuild_InvalidDuration(t *testing.T) {
	t.Setenv("DATA_PATH", t.TempDir())
	t.Setenv("CATALOG_TIMEOUT", "soon")

	_, err := build(flagValues{})
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/books", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "books"), got)

	got, err = expandPath("", "/fallback")
	require.NoError(t, err)
	assert.Equal(t, "/fallback", got)

	got, err = expandPath("/a/../b", "")
	require.NoError(t, err)
	assert.Equal(t, "/b", got)
}

func TestGetIntConfigValue_InvalidFallsBack(t *testing.T) {
	t.Setenv("RECS_MAX_RESULTS", "many")
	assert.Equal(t, 6, getIntConfigValue("", "RECS_MAX_RESULTS", 6))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, splitList(" http://a, ,http://b "))
	assert.Nil(t, splitList(""))
}
