package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectoraapp/lectora/internal/domain"
	domainerrors "github.com/lectoraapp/lectora/internal/errors"
	"github.com/lectoraapp/lectora/internal/logger"
	"github.com/lectoraapp/lectora/internal/validation"
)

func setupTestPrefsService(t *testing.T) *PrefsService {
	t.Helper()
	prefs, _ := newTestPrefs(t)
	return NewPrefsService(prefs, validation.New(), logger.Discard())
}

func TestPrefs_GetBeforeOnboarding(t *testing.T) {
	svc := setupTestPrefsService(t)
	assert.Nil(t, svc.Get(context.Background()))
}

func TestPrefs_SaveNormalizes(t *testing.T) {
	svc := setupTestPrefsService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, domain.UserPrefs{
		Level:            domain.LevelNew,
		Genres:           []string{"Terror", " Misterio ", "Terror"},
		DailyMinutesGoal: 5,
	})
	require.NoError(t, err)

	assert.True(t, saved.Onboarded)
	assert.Equal(t, []string{"Misterio", "Terror"}, saved.Genres)
	assert.Equal(t, "NEW::5::Misterio|Terror", saved.Signature())

	got := svc.Get(ctx)
	require.NotNil(t, got)
	assert.Equal(t, saved, *got)
}

func TestPrefs_SaveRejectsInvalid(t *testing.T) {
	svc := setupTestPrefsService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, domain.UserPrefs{Level: "EXPERT", DailyMinutesGoal: 7})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	assert.Nil(t, svc.Get(ctx), "nothing stored")
}

func TestPrefs_Reset(t *testing.T) {
	svc := setupTestPrefsService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, domain.UserPrefs{Level: domain.LevelExperienced, DailyMinutesGoal: 20})
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx))
	assert.Nil(t, svc.Get(ctx))
	require.NoError(t, svc.Reset(ctx), "resetting twice is fine")
}
