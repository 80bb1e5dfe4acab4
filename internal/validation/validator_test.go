package validation_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectoraapp/lectora/internal/domain"
	domainerrors "github.com/lectoraapp/lectora/internal/errors"
	"github.com/lectoraapp/lectora/internal/validation"
)

func validPrefs() domain.UserPrefs {
	return domain.UserPrefs{
		Onboarded:        true,
		Level:            domain.LevelNew,
		Genres:           []string{"Misterio"},
		DailyMinutesGoal: 10,
	}
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Validate(validPrefs()))

	p := validPrefs()
	p.LanguageMode = domain.LanguageModeBilingual
	p.Genres = nil
	assert.NoError(t, v.Validate(p))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		mutate    func(p *domain.UserPrefs)
		wantField string
	}{
		{
			name:      "missing level",
			mutate:    func(p *domain.UserPrefs) { p.Level = "" },
			wantField: "level",
		},
		{
			name:      "unknown level",
			mutate:    func(p *domain.UserPrefs) { p.Level = "EXPERT" },
			wantField: "level",
		},
		{
			name:      "unsupported daily goal",
			mutate:    func(p *domain.UserPrefs) { p.DailyMinutesGoal = 15 },
			wantField: "dailyMinutesGoal",
		},
		{
			name:      "unknown language mode",
			mutate:    func(p *domain.UserPrefs) { p.LanguageMode = "FR" },
			wantField: "languageMode",
		},
		{
			name:      "empty genre",
			mutate:    func(p *domain.UserPrefs) { p.Genres = []string{"Misterio", ""} },
			wantField: "genres[1]",
		},
		{
			name:      "genre too long",
			mutate:    func(p *domain.UserPrefs) { p.Genres = []string{strings.Repeat("a", 61)} },
			wantField: "genres[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPrefs()
			tt.mutate(&p)

			err := v.Validate(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)

			var derr *domainerrors.Error
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, http.StatusBadRequest, derr.HTTPStatus())
			assert.Contains(t, derr.Message, tt.wantField)

			details, ok := derr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.wantField)
		})
	}
}

func TestValidator_JSONFieldNames(t *testing.T) {
	v := validation.New()

	p := validPrefs()
	p.DailyMinutesGoal = 0

	err := v.Validate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dailyMinutesGoal")
	assert.NotContains(t, err.Error(), "DailyMinutesGoal")
}

func TestValidator_TooManyGenres(t *testing.T) {
	v := validation.New()

	p := validPrefs()
	p.Genres = make([]string, 31)
	for i := range p.Genres {
		p.Genres[i] = "g"
	}

	err := v.Validate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not have more than 30 items")
}
