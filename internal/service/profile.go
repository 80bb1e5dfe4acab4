package service

import (
	"context"

	"github.com/lectoraapp/lectora/internal/domain"
)

// ProfileSummary gathers what the profile screen shows.
type ProfileSummary struct {
	Prefs           *domain.UserPrefs  `json:"prefs"`
	Onboarded       bool               `json:"onboarded"`
	Streak          domain.StreakState `json:"streak"`
	ReadingNowCount int                `json:"readingNowCount"`
	ToReadCount     int                `json:"toReadCount"`
	FinishedCount   int                `json:"finishedCount"`
	PagesRead       int                `json:"pagesRead"`
}

// ProfileService summarizes the reader's state.
type ProfileService struct {
	prefs   *PrefsService
	streak  *StreakService
	library *LibraryService
}

// NewProfileService creates a new profile service.
func NewProfileService(prefs *PrefsService, streak *StreakService, library *LibraryService) *ProfileService {
	return &ProfileService{prefs: prefs, streak: streak, library: library}
}

// Summary returns preferences, streak and list counts.
func (s *ProfileService) Summary(ctx context.Context) (ProfileSummary, error) {
	lib, err := s.library.Snapshot(ctx)
	if err != nil {
		return ProfileSummary{}, err
	}

	prefs := s.prefs.Get(ctx)
	sum := ProfileSummary{
		Prefs:           prefs,
		Onboarded:       prefs != nil && prefs.Onboarded,
		Streak:          s.streak.Get(ctx),
		ReadingNowCount: len(lib.ReadingNow),
		ToReadCount:     len(lib.ToRead),
		FinishedCount:   len(lib.Finished),
	}
	for _, pages := range lib.Progress {
		sum.PagesRead += pages
	}
	return sum, nil
}
