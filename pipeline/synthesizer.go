package pipeline

import (
	"fmt"
	"strings"

	"github.com/fwojciec/prospect"
)

// DefaultMaxPairs is the number of positional (email, phone) pairs tried
// per extracted name.
const DefaultMaxPairs = 3

// maxNoteAddresses bounds the address summary appended to notes.
const maxNoteAddresses = 3

// Synthesizer turns the fields of one page into candidate contacts.
type Synthesizer struct {
	// Weights defaults to prospect.DefaultWeights when zero.
	Weights prospect.Weights

	// MaxPairs defaults to DefaultMaxPairs when zero.
	MaxPairs int

	// Tags are added to every candidate after the provenance tags.
	Tags []string
}

// Synthesize returns the candidates for page, in extraction order.
//
// When names were found, each name is paired positionally with up to
// MaxPairs (email, phone) combinations. Otherwise one placeholder-named
// candidate is emitted per index across the longer of the phone and email
// sequences. A candidate always carries an email or a phone.
func (s *Synthesizer) Synthesize(page *prospect.Page) []*prospect.Contact {
	f := page.Fields
	if !f.HasContactData() {
		return nil
	}

	weights := s.Weights
	if weights == (prospect.Weights{}) {
		weights = prospect.DefaultWeights()
	}
	sparse := !f.HasProfile()
	notes := pageNotes(page)

	base := func(email, phone string) *prospect.Contact {
		return &prospect.Contact{
			Email:    email,
			Phone:    phone,
			Company:  f.Company,
			Title:    f.Title,
			Location: f.Location,
			Website:  page.URL,
			Notes:    notes,
			Source:   page.Source,
		}
	}

	var contacts []*prospect.Contact

	if len(f.Names) == 0 {
		confidence := weights.Score(false, sparse)
		tags := prospect.NewTags(prospect.TagScraped, prospect.TagNoName).Add(s.Tags...)
		for i := 0; i < max(len(f.Phones), len(f.Emails)); i++ {
			c := base(at(f.Emails, i), at(f.Phones, i))
			c.FirstName = prospect.UnknownFirstName
			c.LastName = prospect.UnknownLastName
			c.Confidence = confidence
			c.Tags = tags.Add()
			contacts = append(contacts, c)
		}
		return contacts
	}

	maxPairs := s.MaxPairs
	if maxPairs <= 0 {
		maxPairs = DefaultMaxPairs
	}
	n := min(maxPairs, max(len(f.Phones), len(f.Emails)))
	confidence := weights.Score(true, sparse)
	tags := prospect.NewTags(prospect.TagScraped).Add(s.Tags...)

	for _, name := range f.Names {
		seen := make(map[[2]string]bool)
		for i := 0; i < n; i++ {
			email, phone := at(f.Emails, i), at(f.Phones, i)
			pair := [2]string{email, phone}
			if seen[pair] {
				continue
			}
			seen[pair] = true

			c := base(email, phone)
			c.FirstName = name.First
			c.LastName = name.Last
			c.Confidence = confidence
			c.Tags = tags.Add()
			contacts = append(contacts, c)
		}
	}
	return contacts
}

// pageNotes records where a page came from and the first few addresses on it.
func pageNotes(page *prospect.Page) string {
	notes := fmt.Sprintf("Found on %s (%s)", page.Source, page.URL)
	if addrs := page.Fields.Addresses; len(addrs) > 0 {
		if len(addrs) > maxNoteAddresses {
			addrs = addrs[:maxNoteAddresses]
		}
		notes += " | Found Addresses: " + strings.Join(addrs, "; ")
	}
	return notes
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}
