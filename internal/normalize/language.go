// Package normalize cleans catalog values before they become domain data.
package normalize

import (
	"path"
	"strings"

	"github.com/lectoraapp/lectora/internal/domain"
)

// iso639_2to1 maps ISO 639-2 codes (terminology and bibliographic) to ISO 639-1.
// OpenLibrary reports languages as 639-2 codes or /languages/{code} keys.
//
//nolint:gochecknoglobals // Static lookup table
var iso639_2to1 = map[string]string{
	"eng": "en", "spa": "es", "fra": "fr", "fre": "fr", "deu": "de",
	"ger": "de", "ita": "it", "por": "pt", "nld": "nl", "dut": "nl",
	"rus": "ru", "jpn": "ja", "zho": "zh", "chi": "zh", "kor": "ko",
	"ara": "ar", "cat": "ca", "glg": "gl", "eus": "eu", "baq": "eu",
	"pol": "pl", "swe": "sv", "lat": "la", "gre": "el", "ell": "el",
}

//nolint:gochecknoglobals // Static lookup table
var languageNameToCode = map[string]string{
	"english": "en", "spanish": "es", "español": "es", "espanol": "es",
	"castellano": "es", "inglés": "en", "ingles": "en",
	"french": "fr", "german": "de", "italian": "it", "portuguese": "pt",
}

// LanguageCode converts a language representation to ISO 639-1.
// It handles "es", "spa", "/languages/spa", "es-MX" and names like "Spanish".
// Returns "" for unrecognized values.
func LanguageCode(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	if strings.Contains(s, "/") {
		s = path.Base(s)
	}
	if idx := strings.IndexAny(s, "-_"); idx > 0 {
		s = s[:idx]
	}

	switch len(s) {
	case 2:
		return s
	case 3:
		if code, ok := iso639_2to1[s]; ok {
			return code
		}
	}
	return languageNameToCode[s]
}

// BookLanguage narrows raw to a language the app supports, or "".
func BookLanguage(raw string) domain.Language {
	switch LanguageCode(raw) {
	case "es":
		return domain.LanguageSpanish
	case "en":
		return domain.LanguageEnglish
	default:
		return ""
	}
}
