package extract

import (
	"regexp"
	"strings"
)

// Address length window, inclusive.
const (
	minAddressLen = 10
	maxAddressLen = 200
)

const streetSuffix = `(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Place|Pl|Way|Circle|Cir|Parkway|Pkwy|Suite|Ste)`

var addressPatterns = []*regexp.Regexp{
	// 123 Main Street, Springfield, IL 62704
	regexp.MustCompile(`\b\d+[ \t]+[A-Za-z0-9 \t]+\b` + streetSuffix + `\b\.?[ \t,]+[A-Za-z \t]+[ \t,]+[A-Z]{2}[ \t]+\d{5}(?:-\d{4})?`),
	// Office: 500 Market St, San Francisco
	regexp.MustCompile(`(?i)\b(?:office|address|location)[:\s]+[^.\n]+?\b` + streetSuffix + `\b[^.\n]*`),
	// Home: 12 Elm Road
	regexp.MustCompile(`(?i)\b(?:home|residence|lives at)[:\s]+[^.\n]+?\b` + streetSuffix + `\b[^.\n]*`),
	// Personal address: 9 Oak Lane
	regexp.MustCompile(`(?i)\b(?:personal|private|residential)[ \t]*(?:address|residence)?[:\s]+[^.\n]+?\b` + streetSuffix + `\b[^.\n]*`),
	// Founder office: 1 Infinite Loop Way
	regexp.MustCompile(`(?i)\b(?:co-founder|founder|ceo)[ \t\w]*?(?:address|location|office)[:\s]+[^.\n]+?\b` + streetSuffix + `\b[^.\n]*`),
}

// Addresses returns street-address-like strings found in text, trimmed and
// limited to a plausible length.
func Addresses(text string) []string {
	var set orderedSet
	for _, re := range addressPatterns {
		for _, m := range re.FindAllString(text, -1) {
			m = strings.TrimSpace(m)
			if len(m) < minAddressLen || len(m) > maxAddressLen {
				continue
			}
			set.add(m)
		}
	}
	return set.items
}
