package extract

import "regexp"

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// Emails returns email addresses found in text.
// Deduplication is exact: addresses differing only in case are distinct.
func Emails(text string) []string {
	var set orderedSet
	for _, m := range emailPattern.FindAllString(text, -1) {
		set.add(m)
	}
	return set.items
}
