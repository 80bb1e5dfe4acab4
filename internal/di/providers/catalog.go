package providers

import (
	"github.com/samber/do/v2"

	"github.com/lectoraapp/lectora/internal/config"
	"github.com/lectoraapp/lectora/internal/logger"
	"github.com/lectoraapp/lectora/internal/metadata/openlibrary"
	"github.com/lectoraapp/lectora/internal/recommend"
)

// CatalogHandle wraps the OpenLibrary client with shutdown capability.
type CatalogHandle struct {
	*openlibrary.Client
}

// Shutdown implements do.Shutdownable.
func (h *CatalogHandle) Shutdown() error {
	h.Client.Close()
	return nil
}

// ProvideCatalog provides the OpenLibrary API client.
func ProvideCatalog(i do.Injector) (*CatalogHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := openlibrary.New(openlibrary.Options{
		BaseURL:   cfg.Catalog.BaseURL,
		CoversURL: cfg.Catalog.CoversURL,
		RPS:       cfg.Catalog.RPS,
		Burst:     cfg.Catalog.Burst,
		Timeout:   cfg.Catalog.Timeout,
	}, log.Component("openlibrary"))
	log.Info("OpenLibrary client initialized", "base_url", cfg.Catalog.BaseURL, "rps", cfg.Catalog.RPS)

	return &CatalogHandle{Client: client}, nil
}

// ProvideEngine provides the recommendation engine.
func ProvideEngine(i do.Injector) (*recommend.Engine, error) {
	log := do.MustInvoke[*logger.Logger](i)
	catalog := do.MustInvoke[*CatalogHandle](i)

	return recommend.NewEngine(catalog.Client, recommend.NewRandomPerturber(), log.Component("recommend")), nil
}
