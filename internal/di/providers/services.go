package providers

import (
	"github.com/samber/do/v2"

	"github.com/lectoraapp/lectora/internal/config"
	"github.com/lectoraapp/lectora/internal/logger"
	"github.com/lectoraapp/lectora/internal/recommend"
	"github.com/lectoraapp/lectora/internal/service"
	"github.com/lectoraapp/lectora/internal/validation"
)

// ProvideValidator provides the struct validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvidePrefsService provides the onboarding preferences service.
func ProvidePrefsService(i do.Injector) (*service.PrefsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPrefsService(storeHandle.Prefs, validator, log.Component("prefs")), nil
}

// ProvideLibraryService provides the library lists service.
func ProvideLibraryService(i do.Injector) (*service.LibraryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLibraryService(storeHandle.Prefs, log.Component("library")), nil
}

// ProvideStreakService provides the reading streak service.
func ProvideStreakService(i do.Injector) (*service.StreakService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	loc, err := cfg.App.Location()
	if err != nil {
		return nil, err
	}
	return service.NewStreakService(storeHandle.Prefs, nil, log.Component("streak")).WithLocation(loc), nil
}

// ProvideRecommendationService provides the daily recommendations service.
func ProvideRecommendationService(i do.Injector) (*service.RecommendationService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	engine := do.MustInvoke[*recommend.Engine](i)
	log := do.MustInvoke[*logger.Logger](i)

	loc, err := cfg.App.Location()
	if err != nil {
		return nil, err
	}
	recs := service.NewRecommendationService(storeHandle.Prefs, engine, service.RecommendationOptions{
		MaxResults:       cfg.Recommendations.MaxResults,
		RefreshesPerDay:  cfg.Recommendations.RefreshesPerDay,
		RecentWindowSize: cfg.Recommendations.RecentWindowSize,
	}, nil, log.Component("recommendations"))
	return recs.WithLocation(loc), nil
}

// ProvideBookService provides the explore and detail service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	catalog := do.MustInvoke[*CatalogHandle](i)
	prefs := do.MustInvoke[*service.PrefsService](i)
	library := do.MustInvoke[*service.LibraryService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(catalog.Client, prefs, library, log.Component("books")), nil
}

// ProvideProfileService provides the profile summary service.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	prefs := do.MustInvoke[*service.PrefsService](i)
	streak := do.MustInvoke[*service.StreakService](i)
	library := do.MustInvoke[*service.LibraryService](i)

	return service.NewProfileService(prefs, streak, library), nil
}
