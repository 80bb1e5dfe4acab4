package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectoraapp/lectora/internal/domain"
	domainerrors "github.com/lectoraapp/lectora/internal/errors"
	"github.com/lectoraapp/lectora/internal/logger"
	"github.com/lectoraapp/lectora/internal/metadata/openlibrary"
	"github.com/lectoraapp/lectora/internal/validation"
)

type searchCall struct {
	query string
	genre string
	max   int
	lang  string
}

type fakeBookCatalog struct {
	results  []domain.Book
	works    map[string]domain.Book
	workErr  error
	searches []searchCall
}

func (f *fakeBookCatalog) Search(_ context.Context, query string, opts openlibrary.SearchOptions) []domain.Book {
	f.searches = append(f.searches, searchCall{query: query, max: opts.MaxResults, lang: opts.Lang})
	return f.results
}

func (f *fakeBookCatalog) Recommended(_ context.Context, genre string, maxResults int, lang string) []domain.Book {
	f.searches = append(f.searches, searchCall{genre: genre, max: maxResults, lang: lang})
	return f.results
}

func (f *fakeBookCatalog) GetByID(_ context.Context, id string) (*domain.Book, error) {
	if f.workErr != nil {
		return nil, f.workErr
	}
	b, ok := f.works[id]
	if !ok {
		return nil, fmt.Errorf("work %s: %w", id, openlibrary.ErrNotFound)
	}
	return &b, nil
}

func setupTestBooks(t *testing.T, cat *fakeBookCatalog) (*BookService, *PrefsService, *LibraryService) {
	t.Helper()
	prefs, _ := newTestPrefs(t)
	prefsSvc := NewPrefsService(prefs, validation.New(), logger.Discard())
	library := NewLibraryService(prefs, logger.Discard())
	return NewBookService(cat, prefsSvc, library, logger.Discard()), prefsSvc, library
}

func TestBooks_SearchNothingToSearch(t *testing.T) {
	cat := &fakeBookCatalog{}
	svc, _, _ := setupTestBooks(t, cat)

	assert.Empty(t, svc.Search(context.Background(), "  ", "Todos", 0))
	assert.Empty(t, svc.Search(context.Background(), "", "", 0))
	assert.Empty(t, cat.searches)
}

func TestBooks_SearchByQuery(t *testing.T) {
	cat := &fakeBookCatalog{results: []domain.Book{{ID: "a"}, {ID: "b"}}}
	svc, prefs, _ := setupTestBooks(t, cat)
	ctx := context.Background()

	got := svc.Search(ctx, " borges ", "Todos", 0)
	assert.Len(t, got, 2)
	require.Len(t, cat.searches, 1)
	assert.Equal(t, searchCall{query: "borges", max: DefaultExploreResults, lang: "es"}, cat.searches[0])

	_, err := prefs.Save(ctx, domain.UserPrefs{Level: domain.LevelNew, DailyMinutesGoal: 10, LanguageMode: domain.LanguageModeBilingual})
	require.NoError(t, err)

	svc.Search(ctx, "borges", "", 500)
	assert.Equal(t, searchCall{query: "borges", max: 100, lang: ""}, cat.searches[1])
}

func TestBooks_SearchFiltersByGenre(t *testing.T) {
	cat := &fakeBookCatalog{results: []domain.Book{
		{ID: "mystery", Categories: []string{"Detective and mystery stories"}},
		{ID: "misterio", Categories: []string{"Novela de misterio"}},
		{ID: "crime", Categories: []string{"Fiction / Crime"}},
		{ID: "cooking", Categories: []string{"Cooking"}},
		{ID: "none"},
	}}
	svc, _, _ := setupTestBooks(t, cat)

	got := svc.Search(context.Background(), "", "Misterio", 10)

	assert.Equal(t, []string{"mystery", "misterio", "crime"}, bookIDs(got))
	require.Len(t, cat.searches, 1)
	assert.Equal(t, "mystery", cat.searches[0].genre, "browses the genre's subject")
}

func TestBooks_BrowseSubject(t *testing.T) {
	assert.Equal(t, "science fiction", browseSubject("ciencia ficcion"))
	assert.Equal(t, "Cocina", browseSubject(" Cocina "))
}

func TestBooks_DetailMergesOverBase(t *testing.T) {
	cat := &fakeBookCatalog{works: map[string]domain.Book{
		"OL1W": {
			ID:          "OL1W",
			Title:       "Work Title",
			PageCount:   280,
			Description: "<p>Una historia <b>breve</b>.</p>",
			Categories:  []string{"Fiction"},
		},
	}}
	svc, prefs, _ := setupTestBooks(t, cat)
	ctx := context.Background()

	_, err := prefs.Save(ctx, domain.UserPrefs{Level: domain.LevelNew, DailyMinutesGoal: 10})
	require.NoError(t, err)

	base := &domain.Book{ID: "OL1W", Title: "List Title", Categories: []string{"Mystery"}}
	d, err := svc.Detail(ctx, "OL1W", base)
	require.NoError(t, err)

	assert.Equal(t, "List Title", d.Title, "list-view fields win")
	assert.Equal(t, 280, d.PageCount)
	assert.Equal(t, []string{"Mystery", "Fiction"}, d.Categories)
	assert.Equal(t, "Una historia breve.", d.Summary)
	assert.False(t, d.Partial)

	require.NotNil(t, d.EstimatedHours)
	assert.InDelta(t, 10.0, *d.EstimatedHours, 0.001)
	require.NotNil(t, d.EstimatedDays)
	assert.Equal(t, 60, *d.EstimatedDays)
}

func TestBooks_DetailUnknownPages(t *testing.T) {
	cat := &fakeBookCatalog{works: map[string]domain.Book{"OL1W": {ID: "OL1W", Title: "T"}}}
	svc, _, _ := setupTestBooks(t, cat)

	d, err := svc.Detail(context.Background(), "OL1W", nil)
	require.NoError(t, err)
	assert.Nil(t, d.EstimatedHours)
	assert.Nil(t, d.EstimatedDays)
}

func TestBooks_DetailNotAvailable(t *testing.T) {
	cat := &fakeBookCatalog{}
	svc, _, _ := setupTestBooks(t, cat)

	d, err := svc.Detail(context.Background(), "OL404W", nil)
	assert.Nil(t, d)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.ErrorIs(t, err, openlibrary.ErrNotFound)

	_, err = svc.Detail(context.Background(), " ", nil)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestBooks_DetailFallsBackToBase(t *testing.T) {
	cat := &fakeBookCatalog{workErr: openlibrary.ErrServer}
	svc, _, _ := setupTestBooks(t, cat)

	d, err := svc.Detail(context.Background(), "OL1W", &domain.Book{ID: "OL1W", Title: "Cached", PageCount: 70})
	require.NoError(t, err)
	assert.True(t, d.Partial)
	assert.Equal(t, "Cached", d.Title)
	require.NotNil(t, d.EstimatedHours)
	assert.InDelta(t, 2.0, *d.EstimatedHours, 0.001)
}

func TestBooks_DetailLibraryState(t *testing.T) {
	b := domain.Book{ID: "OL1W", Title: "T", PageCount: 100}
	cat := &fakeBookCatalog{works: map[string]domain.Book{"OL1W": b}}
	svc, _, library := setupTestBooks(t, cat)
	ctx := context.Background()

	_, err := library.StartReading(ctx, b)
	require.NoError(t, err)
	_, err = library.UpdateProgress(ctx, "OL1W", 40, 100)
	require.NoError(t, err)

	d, err := svc.Detail(ctx, "OL1W", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ListReadingNow, d.List)
	require.NotNil(t, d.PagesRead)
	assert.Equal(t, 40, *d.PagesRead)
}
