package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lectoraapp/lectora/internal/domain"
)

func (s *Server) registerLibraryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getLibrary",
		Method:      http.MethodGet,
		Path:        "/api/v1/library",
		Summary:     "Get library",
		Description: "Returns the reading-now, to-read and finished lists with page progress",
		Tags:        []string{"Library"},
	}, s.handleGetLibrary)

	huma.Register(s.api, huma.Operation{
		OperationID: "startReading",
		Method:      http.MethodPost,
		Path:        "/api/v1/library/reading-now",
		Summary:     "Start reading",
		Description: "Moves a book to the front of reading-now",
		Tags:        []string{"Library"},
	}, s.handleStartReading)

	huma.Register(s.api, huma.Operation{
		OperationID: "addToRead",
		Method:      http.MethodPost,
		Path:        "/api/v1/library/to-read",
		Summary:     "Add to read",
		Description: "Moves a book to the front of to-read",
		Tags:        []string{"Library"},
	}, s.handleAddToRead)

	huma.Register(s.api, huma.Operation{
		OperationID: "markFinished",
		Method:      http.MethodPost,
		Path:        "/api/v1/library/finished",
		Summary:     "Mark finished",
		Description: "Moves a book to the front of finished and completes its progress when the page count is known",
		Tags:        []string{"Library"},
	}, s.handleMarkFinished)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFromList",
		Method:      http.MethodDelete,
		Path:        "/api/v1/library/{list}/{id}",
		Summary:     "Remove from list",
		Description: "Removes a book from one list; progress is kept",
		Tags:        []string{"Library"},
	}, s.handleRemoveFromList)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProgress",
		Method:      http.MethodPost,
		Path:        "/api/v1/library/progress/{id}",
		Summary:     "Update progress",
		Description: "Adds a page delta to a book's progress, clamped to the page count",
		Tags:        []string{"Library"},
	}, s.handleUpdateProgress)

	huma.Register(s.api, huma.Operation{
		OperationID: "setProgress",
		Method:      http.MethodPut,
		Path:        "/api/v1/library/progress/{id}",
		Summary:     "Set progress",
		Description: "Sets a book's pages read, clamped to the page count",
		Tags:        []string{"Library"},
	}, s.handleSetProgress)
}

// === DTOs ===

// LibraryOutput wraps a library snapshot for Huma.
type LibraryOutput struct {
	Body domain.Library
}

// BookInput carries the book being moved between lists.
type BookInput struct {
	Body domain.Book
}

// RemoveFromListInput identifies a list entry.
type RemoveFromListInput struct {
	List string `path:"list" enum:"reading-now,to-read,finished" doc:"List name"`
	ID   string `path:"id" doc:"Book ID"`
}

// UpdateProgressRequest is a relative progress change.
type UpdateProgressRequest struct {
	Delta int `json:"delta" doc:"Pages to add; negative values subtract"`
	Total int `json:"total,omitempty" doc:"Book page count; 0 when unknown"`
}

// UpdateProgressInput wraps the update request for Huma.
type UpdateProgressInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body UpdateProgressRequest
}

// SetProgressRequest is an absolute progress value.
type SetProgressRequest struct {
	Pages int `json:"pages" doc:"Pages read"`
	Total int `json:"total,omitempty" doc:"Book page count; 0 when unknown"`
}

// SetProgressInput wraps the set request for Huma.
type SetProgressInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body SetProgressRequest
}

// ProgressResponse reports a book's stored progress.
type ProgressResponse struct {
	BookID    string `json:"bookId" doc:"Book ID"`
	PagesRead int    `json:"pagesRead" doc:"Pages read after the update"`
}

// ProgressOutput wraps the progress response for Huma.
type ProgressOutput struct {
	Body ProgressResponse
}

// === Handlers ===

func (s *Server) handleGetLibrary(ctx context.Context, _ *struct{}) (*LibraryOutput, error) {
	lib, err := s.services.Library.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &LibraryOutput{Body: lib}, nil
}

func (s *Server) handleStartReading(ctx context.Context, input *BookInput) (*LibraryOutput, error) {
	lib, err := s.services.Library.StartReading(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &LibraryOutput{Body: lib}, nil
}

func (s *Server) handleAddToRead(ctx context.Context, input *BookInput) (*LibraryOutput, error) {
	lib, err := s.services.Library.AddToRead(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &LibraryOutput{Body: lib}, nil
}

func (s *Server) handleMarkFinished(ctx context.Context, input *BookInput) (*LibraryOutput, error) {
	lib, err := s.services.Library.MarkFinished(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &LibraryOutput{Body: lib}, nil
}

func (s *Server) handleRemoveFromList(ctx context.Context, input *RemoveFromListInput) (*LibraryOutput, error) {
	lib, err := s.services.Library.Remove(ctx, domain.List(input.List), input.ID)
	if err != nil {
		return nil, err
	}
	return &LibraryOutput{Body: lib}, nil
}

func (s *Server) handleUpdateProgress(ctx context.Context, input *UpdateProgressInput) (*ProgressOutput, error) {
	pages, err := s.services.Library.UpdateProgress(ctx, input.ID, input.Body.Delta, input.Body.Total)
	if err != nil {
		return nil, err
	}
	return &ProgressOutput{Body: ProgressResponse{BookID: input.ID, PagesRead: pages}}, nil
}

func (s *Server) handleSetProgress(ctx context.Context, input *SetProgressInput) (*ProgressOutput, error) {
	pages, err := s.services.Library.SetProgressExact(ctx, input.ID, input.Body.Pages, input.Body.Total)
	if err != nil {
		return nil, err
	}
	return &ProgressOutput{Body: ProgressResponse{BookID: input.ID, PagesRead: pages}}, nil
}
