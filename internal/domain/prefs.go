package domain

import (
	"slices"
	"strconv"
	"strings"
)

// Level is the user's self-reported reading experience.
type Level string

// Reading levels.
const (
	LevelNew         Level = "NEW"
	LevelExperienced Level = "EXPERIENCED"
)

// LanguageMode controls which languages catalog searches favor.
type LanguageMode string

// Language modes.
const (
	LanguageModeSpanish   LanguageMode = "ES"
	LanguageModeBilingual LanguageMode = "BILINGUAL"
)

// Reading-rate and ceiling constants used by estimates and recommendation filters.
const (
	DefaultPagesPerHour     = 35
	DefaultDailyMinutesGoal = 10
	NoPrefsSignature        = "NO_PREFS"
)

// UserPrefs is the onboarding result, stored as one blob.
type UserPrefs struct {
	Onboarded        bool         `json:"onboarded"`
	Level            Level        `json:"level" validate:"required,oneof=NEW EXPERIENCED"`
	Genres           []string     `json:"genres" validate:"max=30,dive,required,max=60"`
	DailyMinutesGoal int          `json:"dailyMinutesGoal" validate:"required,oneof=5 10 20"`
	LanguageMode     LanguageMode `json:"languageMode,omitempty" validate:"omitempty,oneof=ES BILINGUAL"`
}

// Normalized returns a copy with genres trimmed, deduped and sorted.
func (p UserPrefs) Normalized() UserPrefs {
	out := p
	out.Genres = UniqueStrings(p.Genres, 0)
	slices.Sort(out.Genres)
	return out
}

// Signature fingerprints the preferences that shape recommendations.
// A nil receiver yields NoPrefsSignature.
func (p *UserPrefs) Signature() string {
	if p == nil {
		return NoPrefsSignature
	}
	genres := slices.Clone(p.Genres)
	slices.Sort(genres)
	return string(p.Level) + "::" + strconv.Itoa(p.DailyMinutesGoal) + "::" + strings.Join(genres, "|")
}

// PagesPerHour is the assumed reading rate for a level.
func PagesPerHour(level Level) int {
	switch level {
	case LevelNew:
		return 28
	case LevelExperienced:
		return 40
	default:
		return DefaultPagesPerHour
	}
}

// MaxPages is the longest book worth recommending at a level.
func MaxPages(level Level) int {
	if level == LevelNew {
		return 320
	}
	return 900
}

// MaxHours is the longest estimated read worth recommending for a daily goal.
func MaxHours(dailyMinutesGoal int) float64 {
	switch dailyMinutesGoal {
	case 5:
		return 6
	case 0, 10:
		return 9
	default:
		return 14
	}
}

// SearchLanguage is the catalog language bias for a mode. Bilingual users get none.
func SearchLanguage(mode LanguageMode) Language {
	if mode == LanguageModeBilingual {
		return ""
	}
	return DefaultLanguage
}
