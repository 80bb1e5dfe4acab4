package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lectoraapp/lectora/internal/domain"
)

func (s *Server) registerStreakRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getStreak",
		Method:      http.MethodGet,
		Path:        "/api/v1/streak",
		Summary:     "Get streak",
		Tags:        []string{"Streak"},
	}, s.handleGetStreak)

	huma.Register(s.api, huma.Operation{
		OperationID: "markReadToday",
		Method:      http.MethodPost,
		Path:        "/api/v1/streak/read-today",
		Summary:     "Mark read today",
		Description: "Records reading today; repeated calls on the same day are no-ops",
		Tags:        []string{"Streak"},
	}, s.handleMarkReadToday)

	huma.Register(s.api, huma.Operation{
		OperationID: "resetStreak",
		Method:      http.MethodDelete,
		Path:        "/api/v1/streak",
		Summary:     "Reset streak",
		Tags:        []string{"Streak"},
	}, s.handleResetStreak)
}

// StreakResponse is the streak view.
type StreakResponse struct {
	domain.StreakState
	Today     string `json:"today" doc:"Server calendar date, YYYY-MM-DD"`
	ReadToday bool   `json:"readToday" doc:"Whether today already counts"`
}

// StreakOutput wraps the streak response for Huma.
type StreakOutput struct {
	Body StreakResponse
}

func (s *Server) streakOutput(state domain.StreakState) *StreakOutput {
	today := s.services.Streak.Today()
	return &StreakOutput{Body: StreakResponse{
		StreakState: state,
		Today:       today,
		ReadToday:   state.LastRead() == today,
	}}
}

func (s *Server) handleGetStreak(ctx context.Context, _ *struct{}) (*StreakOutput, error) {
	return s.streakOutput(s.services.Streak.Get(ctx)), nil
}

func (s *Server) handleMarkReadToday(ctx context.Context, _ *struct{}) (*StreakOutput, error) {
	state, err := s.services.Streak.MarkReadToday(ctx)
	if err != nil {
		return nil, err
	}
	return s.streakOutput(state), nil
}

func (s *Server) handleResetStreak(ctx context.Context, _ *struct{}) (*StreakOutput, error) {
	state, err := s.services.Streak.Reset(ctx)
	if err != nil {
		return nil, err
	}
	return s.streakOutput(state), nil
}
