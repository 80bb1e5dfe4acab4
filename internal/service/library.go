package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/lectoraapp/lectora/internal/domain"
	domainerrors "github.com/lectoraapp/lectora/internal/errors"
	"github.com/lectoraapp/lectora/internal/store"
)

// allLists is the order lists are written in.
var allLists = []domain.List{domain.ListReadingNow, domain.ListToRead, domain.ListFinished}

// listKeys maps each list to its storage key.
var listKeys = map[domain.List]string{
	domain.ListReadingNow: store.KeyReadingNow,
	domain.ListToRead:     store.KeyToRead,
	domain.ListFinished:   store.KeyFinished,
}

// LibraryService manages the three reading lists and page progress.
// A book id lives on at most one list; every move removes it from the others.
type LibraryService struct {
	prefs  *store.Prefs
	logger *slog.Logger

	mu sync.Mutex
}

// NewLibraryService creates a new library service.
func NewLibraryService(prefs *store.Prefs, logger *slog.Logger) *LibraryService {
	return &LibraryService{prefs: prefs, logger: logger}
}

// Snapshot returns the lists and progress, migrating legacy data first.
func (s *LibraryService) Snapshot(ctx context.Context) (domain.Library, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lib, err := s.load(ctx)
	if err != nil {
		return domain.Library{}, err
	}
	progress, err := s.migrateLegacyProgress(ctx, lib)
	if err != nil {
		return domain.Library{}, err
	}
	lib.Progress = progress
	return lib, nil
}

// StartReading puts book at the front of reading-now and starts its progress at 0
// unless progress already exists.
func (s *LibraryService) StartReading(ctx context.Context, book domain.Book) (domain.Library, error) {
	return s.move(ctx, book, domain.ListReadingNow, func(progress domain.ProgressMap) bool {
		if _, ok := progress[book.ID]; ok {
			return false
		}
		progress[book.ID] = 0
		return true
	})
}

// AddToRead puts book at the front of to-read.
func (s *LibraryService) AddToRead(ctx context.Context, book domain.Book) (domain.Library, error) {
	return s.move(ctx, book, domain.ListToRead, nil)
}

// MarkFinished puts book at the front of finished. Progress becomes the page
// count when known; otherwise existing progress is kept (0 if none).
func (s *LibraryService) MarkFinished(ctx context.Context, book domain.Book) (domain.Library, error) {
	return s.move(ctx, book, domain.ListFinished, func(progress domain.ProgressMap) bool {
		if book.HasPageCount() {
			progress[book.ID] = book.PageCount
			return true
		}
		if _, ok := progress[book.ID]; ok {
			return false
		}
		progress[book.ID] = 0
		return true
	})
}

// UpdateProgress adds delta pages to a book's progress and returns the new value,
// clamped to [0, total]. A non-positive total means the length is unknown.
func (s *LibraryService) UpdateProgress(ctx context.Context, id string, delta, total int) (int, error) {
	return s.setProgress(ctx, id, func(current int) int { return domain.AddPages(current, delta, total) }, total)
}

// SetProgressExact sets a book's progress and returns the stored value,
// clamped like UpdateProgress.
func (s *LibraryService) SetProgressExact(ctx context.Context, id string, pages, total int) (int, error) {
	return s.setProgress(ctx, id, func(int) int { return pages }, total)
}

// Remove drops id from one list. Progress is left untouched.
func (s *LibraryService) Remove(ctx context.Context, list domain.List, id string) (domain.Library, error) {
	key, ok := listKeys[list]
	if !ok {
		return domain.Library{}, domainerrors.Validationf("unknown list %q", list)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Library{}, domainerrors.Validation("book id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lib, err := s.load(ctx)
	if err != nil {
		return domain.Library{}, err
	}

	books := listOf(&lib, list)
	if !slices.ContainsFunc(*books, byID(id)) {
		return lib, nil
	}
	*books = withoutID(*books, id)
	if err := s.prefs.Save(ctx, key, *books); err != nil {
		return domain.Library{}, err
	}

	s.logger.Debug("book removed from list", "list", list, "book_id", id)
	return lib, nil
}

// RemoveFromReadingNow drops id from reading-now.
func (s *LibraryService) RemoveFromReadingNow(ctx context.Context, id string) (domain.Library, error) {
	return s.Remove(ctx, domain.ListReadingNow, id)
}

// RemoveFromToRead drops id from to-read.
func (s *LibraryService) RemoveFromToRead(ctx context.Context, id string) (domain.Library, error) {
	return s.Remove(ctx, domain.ListToRead, id)
}

// RemoveFromFinished drops id from finished.
func (s *LibraryService) RemoveFromFinished(ctx context.Context, id string) (domain.Library, error) {
	return s.Remove(ctx, domain.ListFinished, id)
}

// MigrateLegacyProgress converts percent-based progress to pages once.
// It does nothing when page progress already exists or there is nothing to convert.
func (s *LibraryService) MigrateLegacyProgress(ctx context.Context) (domain.ProgressMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lib, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.migrateLegacyProgress(ctx, lib)
}

func (s *LibraryService) migrateLegacyProgress(ctx context.Context, lib domain.Library) (domain.ProgressMap, error) {
	if len(lib.Progress) > 0 {
		return lib.Progress, nil
	}
	legacy := store.Load(ctx, s.prefs, store.KeyProgressLegacy, domain.LegacyProgressMap{})
	if len(legacy) == 0 {
		return lib.Progress, nil
	}

	totals := make(map[string]int)
	for _, b := range lib.Books() {
		if _, seen := totals[b.ID]; !seen {
			totals[b.ID] = b.PageCount
		}
	}

	migrated := make(domain.ProgressMap, len(legacy))
	for id, pct := range legacy {
		migrated[id] = domain.PagesFromPercent(pct, totals[id])
	}

	if err := s.prefs.Save(ctx, store.KeyProgressPages, migrated); err != nil {
		return nil, err
	}
	s.logger.Info("migrated legacy reading progress", "entries", len(migrated))
	return migrated, nil
}

// move puts book at the front of target, removes it from the other lists and
// lets updateProgress adjust progress. updateProgress reports whether it changed anything.
func (s *LibraryService) move(ctx context.Context, book domain.Book, target domain.List, updateProgress func(domain.ProgressMap) bool) (domain.Library, error) {
	book.ID = strings.TrimSpace(book.ID)
	if book.ID == "" {
		return domain.Library{}, domainerrors.Validation("book id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lib, err := s.load(ctx)
	if err != nil {
		return domain.Library{}, err
	}
	if lib.Progress, err = s.migrateLegacyProgress(ctx, lib); err != nil {
		return domain.Library{}, err
	}

	for _, list := range allLists {
		key := listKeys[list]
		books := listOf(&lib, list)
		if list == target {
			*books = append([]domain.Book{book}, withoutID(*books, book.ID)...)
		} else {
			if !slices.ContainsFunc(*books, byID(book.ID)) {
				continue
			}
			*books = withoutID(*books, book.ID)
		}
		if err := s.prefs.Save(ctx, key, *books); err != nil {
			return domain.Library{}, err
		}
	}

	if updateProgress != nil && updateProgress(lib.Progress) {
		if err := s.prefs.Save(ctx, store.KeyProgressPages, lib.Progress); err != nil {
			return domain.Library{}, err
		}
	}

	s.logger.Debug("book moved", "list", target, "book_id", book.ID)
	return lib, nil
}

func (s *LibraryService) setProgress(ctx context.Context, id string, next func(current int) int, total int) (int, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, domainerrors.Validation("book id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lib, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	progress, err := s.migrateLegacyProgress(ctx, lib)
	if err != nil {
		return 0, err
	}
	if progress == nil {
		progress = domain.ProgressMap{}
	}
	value := domain.ClampPages(next(progress[id]), total)
	progress[id] = value

	if err := s.prefs.Save(ctx, store.KeyProgressPages, progress); err != nil {
		return 0, fmt.Errorf("update progress: %w", err)
	}
	return value, nil
}

// load reads all lists and progress. A single-book reading-now value from
// older versions is rewritten as a list.
func (s *LibraryService) load(ctx context.Context) (domain.Library, error) {
	var lib domain.Library

	if rn, ok := store.Lookup[domain.ReadingNowList](ctx, s.prefs, store.KeyReadingNow); ok {
		lib.ReadingNow = domain.UniqueBooks(rn.Books)
		if rn.Migrated {
			if err := s.prefs.Save(ctx, store.KeyReadingNow, lib.ReadingNow); err != nil {
				return domain.Library{}, err
			}
			s.logger.Info("migrated single-book reading-now value")
		}
	}
	lib.ToRead = domain.UniqueBooks(store.Load(ctx, s.prefs, store.KeyToRead, []domain.Book{}))
	lib.Finished = domain.UniqueBooks(store.Load(ctx, s.prefs, store.KeyFinished, []domain.Book{}))

	lib.Progress = store.Load(ctx, s.prefs, store.KeyProgressPages, domain.ProgressMap{})
	if lib.Progress == nil {
		lib.Progress = domain.ProgressMap{}
	}
	if lib.ReadingNow == nil {
		lib.ReadingNow = []domain.Book{}
	}
	return lib, nil
}

func listOf(lib *domain.Library, list domain.List) *[]domain.Book {
	switch list {
	case domain.ListReadingNow:
		return &lib.ReadingNow
	case domain.ListToRead:
		return &lib.ToRead
	default:
		return &lib.Finished
	}
}

func byID(id string) func(domain.Book) bool {
	return func(b domain.Book) bool { return b.ID == id }
}

func withoutID(books []domain.Book, id string) []domain.Book {
	out := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}
