package textutil

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName trims a user-supplied name and collapses internal runs of
// whitespace to a single space.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// FoldName returns the case-folded, normalized form used to compare names.
func FoldName(name string) string {
	return cases.Fold().String(NormalizeName(name))
}

// SameName reports whether two names are equal under case folding.
func SameName(a, b string) bool {
	return FoldName(a) == FoldName(b)
}

// HasControl reports whether name contains control characters.
func HasControl(name string) bool {
	return strings.IndexFunc(name, unicode.IsControl) >= 0
}

// TitleCase title-cases s for display.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// DisplayNameFromPath derives a readable name from a media file path:
// the extension is dropped, separators become spaces, and words are
// title-cased. It returns "Untitled" when nothing usable remains.
func DisplayNameFromPath(path string) string {
	base := filepath.Base(strings.TrimSpace(path))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	var cleaned strings.Builder
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	name := strings.TrimSpace(cleaned.String())
	if name == "" || name == "." {
		return "Untitled"
	}
	return TitleCase(name)
}
