// Package slugs builds the file-name fragments used for record files and
// central log entries.
//
// There are two strategies:
//   - Record slugs: readable, transliterated, built on gosimple/slug.
//   - Intent slugs: a fixed character-level mapping so log file names stay
//     predictable for tools that grep them.
package slugs

import (
	"strings"
	"unicode"

	goslug "github.com/gosimple/slug"
)

// MaxLength is the default maximum slug length in runes.
const MaxLength = 50

// Record converts a record title to a file-name safe slug of at most max
// runes (MaxLength when max <= 0). Titles that transliterate to nothing fall
// back to a dash-joined lowercase form; "untitled" is used as a last resort.
func Record(title string, max int) string {
	if max <= 0 {
		max = MaxLength
	}
	s := goslug.Make(title)
	if s == "" {
		s = Intent(strings.Join(strings.Fields(title), "-"), max)
		s = collapseDashes(s)
	}
	s = strings.Trim(truncate(s, max), "-")
	if s == "" {
		return "untitled"
	}
	return s
}

// Intent maps a task intent to a log file slug: lowercase, every rune that is
// not a letter, digit, '-' or '_' replaced by '-', truncated to max runes
// (MaxLength when max <= 0). Dashes are not collapsed.
func Intent(intent string, max int) string {
	if max <= 0 {
		max = MaxLength
	}
	var b strings.Builder
	for _, r := range strings.ToLower(intent) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return truncate(b.String(), max)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func collapseDashes(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}
