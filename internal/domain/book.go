// Package domain contains the core entities of the lectora reading tracker.
package domain

import (
	"math"
	"strconv"
	"strings"
)

// Language is a book language the app understands. Anything else is left unset.
type Language string

// Supported languages.
const (
	LanguageSpanish Language = "es"
	LanguageEnglish Language = "en"
)

// DefaultLanguage biases catalog searches.
const DefaultLanguage = LanguageSpanish

// MaxDetailCategories caps the categories kept on a merged or detail book.
const MaxDetailCategories = 80

// Book is the app's view of a catalog work. Zero values mean unknown.
// JSON names match the values already persisted by earlier app versions.
type Book struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors,omitempty"`
	Description   string   `json:"description,omitempty"`
	PageCount     int      `json:"pageCount,omitempty"`
	Language      Language `json:"language,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	Thumbnail     string   `json:"thumbnail,omitempty"`
	PreviewLink   string   `json:"previewLink,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty"`
	EditionCount  int      `json:"editionCount,omitempty"`
}

// HasPageCount reports whether the page count is known.
func (b Book) HasPageCount() bool {
	return b.PageCount > 0
}

// PublishedYear extracts the leading year of PublishedDate, or 0.
func (b Book) PublishedYear() int {
	s := strings.TrimSpace(b.PublishedDate)
	if len(s) < 4 {
		return 0
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return 0
	}
	return year
}

// EstimatedHours estimates reading time at pagesPerHour.
// ok is false when the page count is unknown.
func (b Book) EstimatedHours(pagesPerHour int) (hours float64, ok bool) {
	return EstimateHours(b.PageCount, pagesPerHour)
}

// EstimateHours returns max(1, pages/pph) rounded to one decimal.
// A non-positive pagesPerHour falls back to the unknown-level rate.
func EstimateHours(pageCount, pagesPerHour int) (float64, bool) {
	if pageCount <= 0 {
		return 0, false
	}
	if pagesPerHour <= 0 {
		pagesPerHour = DefaultPagesPerHour
	}
	h := math.Round(float64(pageCount)/float64(pagesPerHour)*10) / 10
	return math.Max(1, h), true
}

// EstimateDays returns how many days of dailyMinutes it takes to read for hours.
func EstimateDays(hours float64, dailyMinutes int) (int, bool) {
	if hours <= 0 || dailyMinutes <= 0 {
		return 0, false
	}
	total := math.Round(hours * 60)
	return max(1, int(math.Ceil(total/float64(dailyMinutes)))), true
}

// MergeBooks overlays incoming onto base: known fields of base win,
// categories are the union of both.
func MergeBooks(base, incoming Book) Book {
	out := base
	if out.ID == "" {
		out.ID = incoming.ID
	}
	if out.Title == "" {
		out.Title = incoming.Title
	}
	if len(out.Authors) == 0 {
		out.Authors = incoming.Authors
	}
	if out.Description == "" {
		out.Description = incoming.Description
	}
	if !out.HasPageCount() {
		out.PageCount = incoming.PageCount
	}
	if out.Language == "" {
		out.Language = incoming.Language
	}
	if out.Thumbnail == "" {
		out.Thumbnail = incoming.Thumbnail
	}
	if out.PreviewLink == "" {
		out.PreviewLink = incoming.PreviewLink
	}
	if out.PublishedDate == "" {
		out.PublishedDate = incoming.PublishedDate
	}
	if out.EditionCount == 0 {
		out.EditionCount = incoming.EditionCount
	}

	merged := make([]string, 0, len(base.Categories)+len(incoming.Categories))
	merged = append(merged, base.Categories...)
	merged = append(merged, incoming.Categories...)
	out.Categories = UniqueStrings(merged, MaxDetailCategories)
	if len(out.Categories) == 0 {
		out.Categories = nil
	}
	return out
}

// UniqueStrings trims values, drops empties and duplicates, keeping first-seen order.
// A non-positive limit means no cap.
func UniqueStrings(values []string, limit int) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// UniqueBooks dedupes by ID, keeping the first occurrence.
func UniqueBooks(books []Book) []Book {
	seen := make(map[string]struct{}, len(books))
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if b.ID == "" {
			continue
		}
		if _, dup := seen[b.ID]; dup {
			continue
		}
		seen[b.ID] = struct{}{}
		out = append(out, b)
	}
	return out
}
