package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"

	"github.com/lectoraapp/lectora/internal/domain"
)

// MaxListSubjects caps subjects kept on list-view books.
const MaxListSubjects = 10

// htmlTagPattern detects common HTML tags in a description.
var htmlTagPattern = regexp.MustCompile(`<(p|br|div|span|b|i|strong|em|a|ul|ol|li|h[1-6]|blockquote)[\s>/]`)

var whitespace = regexp.MustCompile(`\s+`)

func containsHTML(s string) bool {
	return htmlTagPattern.MatchString(strings.ToLower(s))
}

// Description converts HTML descriptions to Markdown.
// Plain text is returned trimmed and otherwise unchanged.
func Description(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !containsHTML(s) {
		return s
	}

	markdown, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(markdown)
}

// Summary returns the visible text of s, whitespace-collapsed and cut to at
// most maxRunes runes on a word boundary. HTML tags are dropped.
func Summary(s string, maxRunes int) string {
	text := s
	if containsHTML(s) {
		text = visibleText(s)
	}
	text = strings.TrimSpace(whitespace.ReplaceAllString(text, " "))

	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:maxRunes])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " .,;:") + "…"
}

func visibleText(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String()
}

// Subjects trims, dedupes and caps catalog subjects for list views.
func Subjects(subjects []string) []string {
	out := domain.UniqueStrings(subjects, MaxListSubjects)
	if len(out) == 0 {
		return nil
	}
	return out
}

// Title falls back to a placeholder for untitled works.
func Title(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return "Sin título"
}
