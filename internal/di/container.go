// Package di provides dependency injection configuration for the lectora server.
package di

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/lectoraapp/lectora/internal/config"
	"github.com/lectoraapp/lectora/internal/di/providers"
	"github.com/lectoraapp/lectora/internal/logger"
	"github.com/lectoraapp/lectora/internal/recommend"
	"github.com/lectoraapp/lectora/internal/scheduler"
	"github.com/lectoraapp/lectora/internal/service"
	"github.com/lectoraapp/lectora/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Storage and catalog
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideEngine)

	// Business services
	do.Provide(injector, providers.ProvidePrefsService)
	do.Provide(injector, providers.ProvideLibraryService)
	do.Provide(injector, providers.ProvideStreakService)
	do.Provide(injector, providers.ProvideRecommendationService)
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideProfileService)

	// Background jobs and server
	do.Provide(injector, providers.ProvideWarmupScheduler)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes every service, migrates legacy progress and starts
// the server and scheduler.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	log := do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*providers.CatalogHandle](injector)
	_ = do.MustInvoke[*recommend.Engine](injector)

	_ = do.MustInvoke[*service.PrefsService](injector)
	library := do.MustInvoke[*service.LibraryService](injector)
	_ = do.MustInvoke[*service.StreakService](injector)
	_ = do.MustInvoke[*service.RecommendationService](injector)
	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*service.ProfileService](injector)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := library.MigrateLegacyProgress(ctx); err != nil {
		log.WithError(err).Warn("legacy progress migration failed")
	}

	if _, err := do.Invoke[*scheduler.WarmupScheduler](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}
	return nil
}
