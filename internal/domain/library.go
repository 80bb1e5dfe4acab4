package domain

import (
	"encoding/json"
	"math"
)

// List names a library shelf. A book id lives on at most one list.
type List string

// Library lists.
const (
	ListReadingNow List = "reading-now"
	ListToRead     List = "to-read"
	ListFinished   List = "finished"
)

// Valid reports whether l names a known list.
func (l List) Valid() bool {
	switch l {
	case ListReadingNow, ListToRead, ListFinished:
		return true
	}
	return false
}

// ProgressMap maps book id to pages read.
type ProgressMap map[string]int

// LegacyProgressMap maps book id to percent read (0-100) from older app versions.
type LegacyProgressMap map[string]float64

// Library is a snapshot of the three lists and page progress.
type Library struct {
	ReadingNow []Book      `json:"readingNow"`
	ToRead     []Book      `json:"toRead"`
	Finished   []Book      `json:"finished"`
	Progress   ProgressMap `json:"progress"`
}

// Books returns every book across the lists, reading-now first.
func (l Library) Books() []Book {
	out := make([]Book, 0, len(l.ReadingNow)+len(l.ToRead)+len(l.Finished))
	out = append(out, l.ReadingNow...)
	out = append(out, l.ToRead...)
	return append(out, l.Finished...)
}

// ClampPages clamps pages to [0, total].
// A non-positive total means unknown, so only the lower bound applies.
func ClampPages(pages, total int) int {
	upper := math.MaxInt
	if total > 0 {
		upper = total
	}
	return min(max(pages, 0), upper)
}

// AddPages returns pages+delta clamped to [0, total] without overflowing.
func AddPages(pages, delta, total int) int {
	switch {
	case delta > 0 && pages > math.MaxInt-delta:
		return ClampPages(math.MaxInt, total)
	case delta < 0 && pages < math.MinInt-delta:
		return 0
	}
	return ClampPages(pages+delta, total)
}

// PagesFromPercent converts a legacy percent into pages of total.
// Unknown totals yield 0.
func PagesFromPercent(percent float64, total int) int {
	if total <= 0 || math.IsNaN(percent) {
		return 0
	}
	pct := min(max(percent, 0), 100)
	return ClampPages(int(math.Round(pct/100*float64(total))), total)
}

// ReadingNowList decodes the reading-now value, which older versions stored
// as a single book object instead of a list.
type ReadingNowList struct {
	Books    []Book
	Migrated bool // true when the stored value used the single-book format
}

// UnmarshalJSON accepts a list, a single book, or null.
func (r *ReadingNowList) UnmarshalJSON(data []byte) error {
	var list []Book
	if err := json.Unmarshal(data, &list); err == nil {
		r.Books = list
		r.Migrated = false
		return nil
	}

	var single *Book
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	r.Books = nil
	if single != nil && single.ID != "" {
		r.Books = []Book{*single}
	}
	r.Migrated = true
	return nil
}
