package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lectoraapp/lectora/internal/domain"
)

func (s *Server) registerPrefsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getPrefs",
		Method:      http.MethodGet,
		Path:        "/api/v1/prefs",
		Summary:     "Get preferences",
		Description: "Returns the onboarding preferences; prefs is null before onboarding",
		Tags:        []string{"Preferences"},
	}, s.handleGetPrefs)

	huma.Register(s.api, huma.Operation{
		OperationID: "savePrefs",
		Method:      http.MethodPut,
		Path:        "/api/v1/prefs",
		Summary:     "Save preferences",
		Description: "Validates and stores the onboarding preferences, marking the user as onboarded",
		Tags:        []string{"Preferences"},
	}, s.handleSavePrefs)

	huma.Register(s.api, huma.Operation{
		OperationID: "resetPrefs",
		Method:      http.MethodDelete,
		Path:        "/api/v1/prefs",
		Summary:     "Reset preferences",
		Description: "Removes the preferences so the user onboards again",
		Tags:        []string{"Preferences"},
	}, s.handleResetPrefs)
}

// === DTOs ===

// PrefsResponse is the preferences view.
type PrefsResponse struct {
	Onboarded bool              `json:"onboarded" doc:"Whether onboarding has been completed"`
	Prefs     *domain.UserPrefs `json:"prefs" doc:"Saved preferences, null before onboarding"`
}

// PrefsOutput wraps the preferences response for Huma.
type PrefsOutput struct {
	Body PrefsResponse
}

// SavePrefsRequest is the onboarding form.
type SavePrefsRequest struct {
	Level            string   `json:"level" doc:"Reading level: NEW or EXPERIENCED"`
	Genres           []string `json:"genres" doc:"Favorite genres"`
	DailyMinutesGoal int      `json:"dailyMinutesGoal" doc:"Daily reading goal in minutes: 5, 10 or 20"`
	LanguageMode     string   `json:"languageMode,omitempty" doc:"ES or BILINGUAL; defaults to ES"`
}

// SavePrefsInput wraps the save request for Huma.
type SavePrefsInput struct {
	Body SavePrefsRequest
}

// === Handlers ===

func (s *Server) handleGetPrefs(ctx context.Context, _ *struct{}) (*PrefsOutput, error) {
	p := s.services.Prefs.Get(ctx)
	return &PrefsOutput{Body: PrefsResponse{
		Onboarded: p != nil && p.Onboarded,
		Prefs:     p,
	}}, nil
}

func (s *Server) handleSavePrefs(ctx context.Context, input *SavePrefsInput) (*PrefsOutput, error) {
	saved, err := s.services.Prefs.Save(ctx, domain.UserPrefs{
		Level:            domain.Level(input.Body.Level),
		Genres:           input.Body.Genres,
		DailyMinutesGoal: input.Body.DailyMinutesGoal,
		LanguageMode:     domain.LanguageMode(input.Body.LanguageMode),
	})
	if err != nil {
		return nil, err
	}
	return &PrefsOutput{Body: PrefsResponse{Onboarded: true, Prefs: &saved}}, nil
}

func (s *Server) handleResetPrefs(ctx context.Context, _ *struct{}) (*struct{}, error) {
	if err := s.services.Prefs.Reset(ctx); err != nil {
		return nil, err
	}
	return nil, nil
}
