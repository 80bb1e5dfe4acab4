package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lectoraapp/lectora/internal/service"
)

func (s *Server) registerRecommendationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getRecommendations",
		Method:      http.MethodGet,
		Path:        "/api/v1/recommendations",
		Summary:     "Today's recommendations",
		Description: "Returns today's cached list, generating it on the first request of the day or after a preference change",
		Tags:        []string{"Recommendations"},
	}, s.handleGetRecommendations)

	huma.Register(s.api, huma.Operation{
		OperationID: "refreshRecommendations",
		Method:      http.MethodPost,
		Path:        "/api/v1/recommendations/refresh",
		Summary:     "Refresh recommendations",
		Description: "Generates a new list while today's refresh budget lasts; otherwise returns the cached list",
		Tags:        []string{"Recommendations"},
	}, s.handleRefreshRecommendations)
}

// RecommendationsOutput wraps the recommendations view for Huma.
type RecommendationsOutput struct {
	Body service.Recommendations
}

func (s *Server) handleGetRecommendations(ctx context.Context, _ *struct{}) (*RecommendationsOutput, error) {
	recs, err := s.services.Recommendations.Today(ctx)
	if err != nil {
		return nil, err
	}
	return &RecommendationsOutput{Body: recs}, nil
}

func (s *Server) handleRefreshRecommendations(ctx context.Context, _ *struct{}) (*RecommendationsOutput, error) {
	recs, err := s.services.Recommendations.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return &RecommendationsOutput{Body: recs}, nil
}
