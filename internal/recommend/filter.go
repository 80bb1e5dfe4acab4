package recommend

import (
	"cmp"
	"slices"
	"strings"

	"github.com/lectoraapp/lectora/internal/domain"
)

// recentYear splits modern editions from older works when ranking.
const recentYear = 1990

// Filter keeps books short enough for the reader. A book is dropped when its
// known page count exceeds the level's ceiling, or its estimated reading time
// exceeds the daily goal's ceiling. Unknown page counts are never filtered.
func Filter(books []domain.Book, p domain.UserPrefs) []domain.Book {
	maxPages := domain.MaxPages(p.Level)
	maxHours := domain.MaxHours(p.DailyMinutesGoal)
	pph := domain.PagesPerHour(p.Level)

	out := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if b.HasPageCount() {
			if b.PageCount > maxPages {
				continue
			}
			if h, ok := b.EstimatedHours(pph); ok && h > maxHours {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

// Sort orders books in place: works from 1990 on first, newer first, more
// editions first, then (for new readers) shorter first, then by title.
func Sort(books []domain.Book, p domain.UserPrefs) {
	pph := domain.PagesPerHour(p.Level)
	shortFirst := p.Level == domain.LevelNew

	slices.SortStableFunc(books, func(a, b domain.Book) int {
		ya, yb := a.PublishedYear(), b.PublishedYear()
		if c := cmp.Compare(boolRank(ya >= recentYear), boolRank(yb >= recentYear)); c != 0 {
			return c
		}
		if c := cmp.Compare(yb, ya); c != 0 {
			return c
		}
		if c := cmp.Compare(b.EditionCount, a.EditionCount); c != 0 {
			return c
		}
		if shortFirst {
			if c := compareHours(a, b, pph); c != 0 {
				return c
			}
		}
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	})
}

// boolRank sorts true before false.
func boolRank(v bool) int {
	if v {
		return 0
	}
	return 1
}

// compareHours orders by estimated hours, unknown last.
func compareHours(a, b domain.Book, pph int) int {
	ha, okA := a.EstimatedHours(pph)
	hb, okB := b.EstimatedHours(pph)
	switch {
	case okA && okB:
		return cmp.Compare(ha, hb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}
