package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/lectoraapp/lectora/internal/domain"
	domainerrors "github.com/lectoraapp/lectora/internal/errors"
	"github.com/lectoraapp/lectora/internal/genre"
	"github.com/lectoraapp/lectora/internal/metadata/openlibrary"
	"github.com/lectoraapp/lectora/internal/normalize"
)

const (
	// DefaultExploreResults is how many books an explore search requests.
	DefaultExploreResults = 40
	maxExploreResults     = 100

	detailSummaryRunes = 280
)

// BookCatalog is the slice of the catalog client the book service needs.
type BookCatalog interface {
	Search(ctx context.Context, query string, opts openlibrary.SearchOptions) []domain.Book
	Recommended(ctx context.Context, genre string, maxResults int, lang string) []domain.Book
	GetByID(ctx context.Context, id string) (*domain.Book, error)
}

// BookDetail is a book with reading estimates and the reader's state for it.
type BookDetail struct {
	domain.Book
	EstimatedHours *float64    `json:"estimatedHours,omitempty"`
	EstimatedDays  *int        `json:"estimatedDays,omitempty"`
	Summary        string      `json:"summary,omitempty"`
	List           domain.List `json:"list,omitempty"`
	PagesRead      *int        `json:"pagesRead,omitempty"`
	Partial        bool        `json:"partial"`
}

// BookService serves explore searches and book details.
type BookService struct {
	catalog BookCatalog
	prefs   *PrefsService
	library *LibraryService
	logger  *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(catalog BookCatalog, prefs *PrefsService, library *LibraryService, logger *slog.Logger) *BookService {
	return &BookService{catalog: catalog, prefs: prefs, library: library, logger: logger}
}

// Search runs an explore search. With an empty query a genre browses its
// subject instead; with neither there is nothing to search. Results are
// limited to books whose categories match the genre, unless it is "Todos".
func (s *BookService) Search(ctx context.Context, query, genreName string, maxResults int) []domain.Book {
	if maxResults <= 0 {
		maxResults = DefaultExploreResults
	}
	maxResults = min(maxResults, maxExploreResults)

	query = strings.TrimSpace(query)
	allGenres := genre.IsAll(genreName)
	if query == "" && allGenres {
		return []domain.Book{}
	}

	lang := string(domain.SearchLanguage(s.languageMode(ctx)))

	var books []domain.Book
	if query == "" {
		books = s.catalog.Recommended(ctx, browseSubject(genreName), maxResults, lang)
	} else {
		books = s.catalog.Search(ctx, query, openlibrary.SearchOptions{MaxResults: maxResults, Lang: lang})
	}

	if allGenres {
		return books
	}
	out := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if genre.Matches(genreName, b.Categories) {
			out = append(out, b)
		}
	}
	return out
}

// Detail fetches a book by id, merged over base when the caller already has a
// list-view copy. When the catalog lookup fails, base alone is returned as a
// partial detail; without base the book is reported as not found.
func (s *BookService) Detail(ctx context.Context, id string, base *domain.Book) (*BookDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domainerrors.Validation("book id is required")
	}

	fetched, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, openlibrary.ErrNotFound) {
			s.logger.Warn("book detail lookup failed", "book_id", id, "error", err)
		}
	}
	if fetched == nil && base == nil {
		return nil, domainerrors.NotFoundf("book %s is not available", id).WithCause(err)
	}

	var book domain.Book
	switch {
	case fetched != nil && base != nil:
		book = domain.MergeBooks(*base, *fetched)
		book.ID = id
	case fetched != nil:
		book = *fetched
	default:
		book = *base
		book.ID = id
	}

	detail := &BookDetail{
		Book:    book,
		Summary: normalize.Summary(book.Description, detailSummaryRunes),
		Partial: fetched == nil,
	}

	prefs := s.prefs.Get(ctx)
	level, goal := domain.Level(""), domain.DefaultDailyMinutesGoal
	if prefs != nil {
		level, goal = prefs.Level, prefs.DailyMinutesGoal
	}
	if hours, ok := book.EstimatedHours(domain.PagesPerHour(level)); ok {
		detail.EstimatedHours = &hours
		if days, ok := domain.EstimateDays(hours, goal); ok {
			detail.EstimatedDays = &days
		}
	}

	s.attachLibraryState(ctx, detail)
	return detail, nil
}

func (s *BookService) attachLibraryState(ctx context.Context, detail *BookDetail) {
	lib, err := s.library.Snapshot(ctx)
	if err != nil {
		s.logger.Warn("library unavailable for detail", "error", err)
		return
	}

	for _, list := range allLists {
		for _, b := range *listOf(&lib, list) {
			if b.ID == detail.ID {
				detail.List = list
			}
		}
	}
	if pages, ok := lib.Progress[detail.ID]; ok {
		detail.PagesRead = &pages
	}
}

func (s *BookService) languageMode(ctx context.Context) domain.LanguageMode {
	if p := s.prefs.Get(ctx); p != nil {
		return p.LanguageMode
	}
	return ""
}

// browseSubject is the catalog subject used to browse a genre: its first
// mapped subject with underscores as spaces, or the name itself when unmapped.
func browseSubject(genreName string) string {
	g, ok := genre.Lookup(genreName)
	if !ok || len(g.Subjects) == 0 {
		return strings.TrimSpace(genreName)
	}
	return strings.ReplaceAll(g.Subjects[0], "_", " ")
}
