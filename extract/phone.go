package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// phonePatterns are applied in order and their matches unioned.
var phonePatterns = []*regexp.Regexp{
	// (555) 123-4567, 555.123.4567
	regexp.MustCompile(`\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`),
	// +1 555 123 4567
	regexp.MustCompile(`\+?1?[-.\s]?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`),
	// 555-123-4567
	regexp.MustCompile(`([0-9]{3})[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`),
	// 555-123-4567 ext 89
	regexp.MustCompile(`(?i)([0-9]{3})[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})\s*(?:x|ext|extension)?\s*([0-9]+)`),
	// Direct: 555-123-4567
	regexp.MustCompile(`(?i)(?:direct|office|phone|tel)[:\s]*([0-9]{3})[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`),
}

// Phones returns phone-number-like strings found in text.
//
// Matches are trimmed of surrounding whitespace and of a leading separator
// picked up by the optional international prefix, so the same number found
// by several patterns collapses to one entry.
func Phones(text string) []string {
	var set orderedSet
	for _, re := range phonePatterns {
		for _, m := range re.FindAllString(text, -1) {
			set.add(cleanPhone(m))
		}
	}
	return set.items
}

func cleanPhone(s string) string {
	s = strings.TrimFunc(s, unicode.IsSpace)
	return strings.TrimLeft(s, "-.")
}
