// Package extract provides heuristic field extractors over page text.
//
// Every extractor is a pure function: it returns a deduplicated sequence in
// first-occurrence order, returns an empty sequence when nothing matches and
// never fails. Patterns are compiled once at package initialization.
package extract

import "github.com/fwojciec/prospect"

// Fields runs every text extractor over text. Company, title and location
// are structural and are left for the caller to fill in.
func Fields(text string) prospect.ExtractedFields {
	return prospect.ExtractedFields{
		Phones:    Phones(text),
		Emails:    Emails(text),
		Names:     Names(text),
		Addresses: Addresses(text),
	}
}

// orderedSet collects strings in first-seen order, dropping exact repeats.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func (s *orderedSet) add(v string) {
	if v == "" {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}
