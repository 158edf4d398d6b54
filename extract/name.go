package extract

import (
	"regexp"
	"strings"

	"github.com/fwojciec/prospect"
)

// namePattern pairs a pattern with the capture groups holding the first
// and last name.
type namePattern struct {
	re    *regexp.Regexp
	first int
	last  int
}

var namePatterns = []namePattern{
	// Jane Doe
	{re: regexp.MustCompile(`\b([A-Z][a-z]+)[ \t]+([A-Z][a-z]+)\b`), first: 1, last: 2},
	// Jane Q. Doe
	{re: regexp.MustCompile(`\b([A-Z][a-z]+)[ \t]+[A-Z]\.[ \t]+([A-Z][a-z]+)\b`), first: 1, last: 2},
	// Jane Marie Doe
	{re: regexp.MustCompile(`\b([A-Z][a-z]+)[ \t]+([A-Z][a-z]+)[ \t]+([A-Z][a-z]+)\b`), first: 1, last: 3},
	// Dr. Jane Doe
	{re: regexp.MustCompile(`\b(?i:mr|mrs|ms|dr|prof)\.[ \t]+([A-Z][a-z]+)[ \t]+([A-Z][a-z]+)\b`), first: 1, last: 2},
	// "Jane Doe"
	{re: regexp.MustCompile(`"([A-Z][a-z]+)[ \t]+([A-Z][a-z]+)"`), first: 1, last: 2},
	// (Jane Doe)
	{re: regexp.MustCompile(`\(([A-Z][a-z]+)[ \t]+([A-Z][a-z]+)\)`), first: 1, last: 2},
}

// Names returns capitalized first/last name pairs found in text.
// Pairs whose parts are equal or a single character are rejected.
// Deduplication ignores case and keeps the first spelling seen.
func Names(text string) []prospect.Name {
	var names []prospect.Name
	seen := make(map[string]struct{})
	for _, p := range namePatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			first, last := m[p.first], m[p.last]
			if len(first) <= 1 || len(last) <= 1 || strings.EqualFold(first, last) {
				continue
			}
			key := strings.ToLower(first) + "\x00" + strings.ToLower(last)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			names = append(names, prospect.Name{First: first, Last: last})
		}
	}
	return names
}
