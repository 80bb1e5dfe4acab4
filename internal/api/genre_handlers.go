package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lectoraapp/lectora/internal/genre"
)

func (s *Server) registerGenreRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listGenres",
		Method:      http.MethodGet,
		Path:        "/api/v1/genres",
		Summary:     "List genres",
		Description: "Returns the onboarding genres in display order and the explore value meaning all genres",
		Tags:        []string{"Genres"},
	}, s.handleListGenres)
}

// GenresResponse lists the genre choices.
type GenresResponse struct {
	Genres []string `json:"genres" doc:"Genre names in display order"`
	All    string   `json:"all" doc:"Explore filter value meaning no genre filter"`
}

// GenresOutput wraps the genres response for Huma.
type GenresOutput struct {
	Body GenresResponse
}

func (s *Server) handleListGenres(_ context.Context, _ *struct{}) (*GenresOutput, error) {
	return &GenresOutput{Body: GenresResponse{Genres: genre.Names(), All: genre.All}}, nil
}
