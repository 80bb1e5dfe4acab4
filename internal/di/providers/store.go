package providers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/do/v2"

	"github.com/lectoraapp/lectora/internal/config"
	"github.com/lectoraapp/lectora/internal/logger"
	"github.com/lectoraapp/lectora/internal/store"
	"github.com/lectoraapp/lectora/internal/store/redisstore"
	"github.com/lectoraapp/lectora/internal/store/sqlite"
)

// StoreHandle wraps the preference store with shutdown capability.
type StoreHandle struct {
	*store.Prefs
	kv store.KV
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.kv.Close()
}

// ProvideStore opens the configured preference store backend.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	kv, err := openKV(cfg.Store, log)
	if err != nil {
		return nil, err
	}

	return &StoreHandle{
		Prefs: store.NewPrefs(kv, log.Component("store")),
		kv:    kv,
	}, nil
}

func openKV(cfg config.StoreConfig, log *logger.Logger) (store.KV, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return redisstore.Open(ctx, cfg.RedisURL, log.Logger)

	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.DataPath, 0o755); err != nil {
			return nil, fmt.Errorf("create data path: %w", err)
		}
		return sqlite.Open(filepath.Join(cfg.DataPath, "lectora.db"), log.Logger)

	case config.BackendBadger, "":
		if err := os.MkdirAll(cfg.DataPath, 0o755); err != nil {
			return nil, fmt.Errorf("create data path: %w", err)
		}
		return store.OpenBadger(filepath.Join(cfg.DataPath, "badger"), log.Logger)

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
