package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lectoraapp/lectora/internal/service"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profile",
		Summary:     "Get profile",
		Description: "Returns preferences, streak and library totals",
		Tags:        []string{"Profile"},
	}, s.handleGetProfile)
}

// ProfileOutput wraps the profile summary for Huma.
type ProfileOutput struct {
	Body service.ProfileSummary
}

func (s *Server) handleGetProfile(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	summary, err := s.services.Profile.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: summary}, nil
}
