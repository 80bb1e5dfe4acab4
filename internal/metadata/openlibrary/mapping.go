package openlibrary

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/lectoraapp/lectora/internal/domain"
	"github.com/lectoraapp/lectora/internal/normalize"
)

// Cover sizes served by the covers API.
const (
	CoverSmall  = "S"
	CoverMedium = "M"
	CoverLarge  = "L"
)

const workLinkBase = "https://openlibrary.org/works/"

// coverURL returns the cover image URL for a cover ID, or "" when there is none.
func (c *Client) coverURL(coverID int, size string) string {
	if coverID <= 0 {
		return ""
	}
	return fmt.Sprintf("%s/b/id/%d-%s.jpg", c.coversURL, coverID, size)
}

// keyID strips the path from an OpenLibrary key: "/works/OL45W" becomes "OL45W".
func keyID(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if !strings.Contains(key, "/") {
		return key
	}
	id := path.Base(key)
	if id == "/" || id == "." {
		return ""
	}
	return id
}

func workLink(id string) string {
	if id == "" {
		return ""
	}
	return workLinkBase + id
}

func yearString(year int) string {
	if year <= 0 {
		return ""
	}
	return strconv.Itoa(year)
}

func (c *Client) docToBook(doc *rawDoc) domain.Book {
	id := keyID(doc.Key)
	var lang domain.Language
	if len(doc.Language) > 0 {
		lang = normalize.BookLanguage(doc.Language[0])
	}

	return domain.Book{
		ID:            id,
		Title:         normalize.Title(doc.Title),
		Authors:       domain.UniqueStrings(doc.AuthorName, 0),
		PageCount:     max(0, doc.NumberOfPagesMedian),
		Language:      lang,
		Categories:    normalize.Subjects(doc.Subject),
		Thumbnail:     c.coverURL(doc.CoverI, CoverMedium),
		PreviewLink:   workLink(id),
		PublishedDate: yearString(doc.FirstPublishYear),
		EditionCount:  max(0, doc.EditionCount),
	}
}

func (c *Client) subjectWorkToBook(w *rawSubjectWork) domain.Book {
	id := keyID(w.Key)

	authors := make([]string, 0, len(w.Authors))
	for _, a := range w.Authors {
		authors = append(authors, a.Name)
	}

	subjects := w.Subject
	if len(subjects) == 0 {
		subjects = w.Subjects
	}

	// The subjects API reports neither page counts nor languages; Enrich backfills them.
	return domain.Book{
		ID:            id,
		Title:         normalize.Title(w.Title),
		Authors:       domain.UniqueStrings(authors, 0),
		Categories:    normalize.Subjects(subjects),
		Thumbnail:     c.coverURL(w.CoverID, CoverMedium),
		PreviewLink:   workLink(id),
		PublishedDate: yearString(w.FirstPublishYear),
		EditionCount:  max(0, w.EditionCount),
	}
}

// editionPages returns the first positive page count among editions.
func editionPages(editions []rawEdition) int {
	for _, e := range editions {
		if e.NumberOfPages > 0 {
			return e.NumberOfPages
		}
	}
	return 0
}

// editionLanguage returns the first supported language reported by an edition.
// Only the first language of each edition is considered.
func editionLanguage(editions []rawEdition) domain.Language {
	for _, e := range editions {
		if len(e.Languages) == 0 {
			continue
		}
		if lang := normalize.BookLanguage(e.Languages[0].Key); lang != "" {
			return lang
		}
	}
	return ""
}

// workPublishedDate is the date part of the work's creation timestamp.
func workPublishedDate(w *rawWork) string {
	if w.Created == nil {
		return ""
	}
	v := strings.TrimSpace(w.Created.Value)
	if len(v) > 10 {
		v = v[:10]
	}
	return v
}

// workAuthorIDs returns deduplicated author IDs, at most limit.
func workAuthorIDs(w *rawWork, limit int) []string {
	ids := make([]string, 0, len(w.Authors))
	for _, a := range w.Authors {
		ids = append(ids, keyID(a.Author.Key))
	}
	return domain.UniqueStrings(ids, limit)
}

func firstCover(covers []int) int {
	if len(covers) == 0 {
		return 0
	}
	return covers[0]
}
