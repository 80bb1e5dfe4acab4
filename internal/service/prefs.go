package service

import (
	"context"
	"log/slog"

	"github.com/lectoraapp/lectora/internal/domain"
	"github.com/lectoraapp/lectora/internal/store"
	"github.com/lectoraapp/lectora/internal/validation"
)

// PrefsService reads and writes the onboarding preferences.
type PrefsService struct {
	prefs     *store.Prefs
	validator *validation.Validator
	logger    *slog.Logger
}

// NewPrefsService creates a new preferences service.
func NewPrefsService(prefs *store.Prefs, validator *validation.Validator, logger *slog.Logger) *PrefsService {
	return &PrefsService{prefs: prefs, validator: validator, logger: logger}
}

// Get returns the saved preferences, or nil before onboarding.
func (s *PrefsService) Get(ctx context.Context) *domain.UserPrefs {
	p, ok := store.Lookup[domain.UserPrefs](ctx, s.prefs, store.KeyUserPrefs)
	if !ok {
		return nil
	}
	return &p
}

// Save validates and stores p, marking the user as onboarded.
// Genres are trimmed, deduplicated and sorted first.
func (s *PrefsService) Save(ctx context.Context, p domain.UserPrefs) (domain.UserPrefs, error) {
	p = p.Normalized()
	p.Onboarded = true
	if err := s.validator.Validate(p); err != nil {
		return domain.UserPrefs{}, err
	}

	if err := s.prefs.Save(ctx, store.KeyUserPrefs, p); err != nil {
		return domain.UserPrefs{}, err
	}
	s.logger.Info("preferences saved", "signature", p.Signature())
	return p, nil
}

// Reset removes the preferences so the user onboards again.
func (s *PrefsService) Reset(ctx context.Context) error {
	if err := s.prefs.Remove(ctx, store.KeyUserPrefs); err != nil {
		return err
	}
	s.logger.Info("preferences reset")
	return nil
}
