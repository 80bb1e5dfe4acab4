package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lectoraapp/lectora/internal/domain"
	"github.com/lectoraapp/lectora/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/search",
		Summary:     "Search books",
		Description: "Searches the catalog by text, optionally filtered by genre. An empty query browses the genre.",
		Tags:        []string{"Books"},
	}, s.handleSearchBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Description: "Returns book details with reading estimates and library state",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "resolveBook",
		Method:      http.MethodPost,
		Path:        "/api/v1/books/{id}/detail",
		Summary:     "Resolve book",
		Description: "Like getBook, merging the catalog record over the list-view copy sent in the body. " +
			"If the catalog is unavailable the copy is returned with partial set.",
		Tags: []string{"Books"},
	}, s.handleResolveBook)
}

// === DTOs ===

// SearchBooksInput contains explore parameters.
type SearchBooksInput struct {
	Query string `query:"q" doc:"Free-text query"`
	Genre string `query:"genre" doc:"Genre name; empty or Todos means all"`
	Limit int    `query:"limit" minimum:"0" maximum:"100" doc:"Maximum results (default 40)"`
}

// SearchBooksResponse contains explore results.
type SearchBooksResponse struct {
	Books []domain.Book `json:"books" doc:"Matching books"`
	Count int           `json:"count" doc:"Number of books returned"`
}

// SearchBooksOutput wraps the search response for Huma.
type SearchBooksOutput struct {
	Body SearchBooksResponse
}

// GetBookInput identifies a book.
type GetBookInput struct {
	ID string `path:"id" doc:"Catalog work ID"`
}

// ResolveBookInput carries a list-view copy to merge.
type ResolveBookInput struct {
	ID   string `path:"id" doc:"Catalog work ID"`
	Body domain.Book
}

// BookDetailOutput wraps book details for Huma.
type BookDetailOutput struct {
	Body *service.BookDetail
}

// === Handlers ===

func (s *Server) handleSearchBooks(ctx context.Context, input *SearchBooksInput) (*SearchBooksOutput, error) {
	books := s.services.Books.Search(ctx, input.Query, input.Genre, input.Limit)
	if books == nil {
		books = []domain.Book{}
	}
	return &SearchBooksOutput{Body: SearchBooksResponse{Books: books, Count: len(books)}}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*BookDetailOutput, error) {
	detail, err := s.services.Books.Detail(ctx, input.ID, nil)
	if err != nil {
		return nil, err
	}
	return &BookDetailOutput{Body: detail}, nil
}

func (s *Server) handleResolveBook(ctx context.Context, input *ResolveBookInput) (*BookDetailOutput, error) {
	base := input.Body
	detail, err := s.services.Books.Detail(ctx, input.ID, &base)
	if err != nil {
		return nil, err
	}
	return &BookDetailOutput{Body: detail}, nil
}
