package google

import (
	"context"

	"github.com/fwojciec/prospect"
	"github.com/fwojciec/prospect/extract"
)

var _ prospect.Lookup = (*SnippetLookup)(nil)

// SnippetLookup mines email addresses and phone numbers from the result
// snippets of one targeted Custom Search query.
type SnippetLookup struct {
	Client *Client

	// Label names the lookup and is the source of its results.
	Label string

	// Query builds the search query for a subject. An empty query skips
	// the lookup.
	Query func(prospect.Subject) string

	Confidence float64

	// PhoneOnly restricts results to the first phone number found.
	PhoneOnly bool
}

// NewSECFilingLookup searches filings for the subject at their company.
// It needs a company.
func NewSECFilingLookup(c *Client) *SnippetLookup {
	return &SnippetLookup{
		Client: c,
		Label:  "SEC Filing",
		Query: func(s prospect.Subject) string {
			if s.Company == "" {
				return ""
			}
			return s.String() + " SEC filing contact"
		},
		Confidence: 0.9,
	}
}

// NewConferenceSpeakerLookup searches conference speaker listings.
func NewConferenceSpeakerLookup(c *Client) *SnippetLookup {
	return &SnippetLookup{
		Client: c,
		Label:  "Conference Speaker",
		Query: func(s prospect.Subject) string {
			return s.String() + " conference speaker contact"
		},
		Confidence: 0.7,
	}
}

// NewPhoneDirectoryLookup searches public phone directories.
func NewPhoneDirectoryLookup(c *Client) *SnippetLookup {
	return &SnippetLookup{
		Client: c,
		Label:  "Phone Directory Search",
		Query: func(s prospect.Subject) string {
			return s.String() + " phone number"
		},
		Confidence: 0.6,
		PhoneOnly:  true,
	}
}

func (l *SnippetLookup) Name() string {
	return l.Label
}

// Lookup returns one result for the first email and one for the first
// phone in each snippet.
func (l *SnippetLookup) Lookup(ctx context.Context, subject prospect.Subject) ([]prospect.LookupResult, error) {
	q := l.Query(subject)
	if q == "" {
		return nil, nil
	}

	items, err := l.Client.Search(ctx, q, maxPerCall, 1)
	if err != nil {
		return nil, err
	}

	var results []prospect.LookupResult
	for _, it := range items {
		if !l.PhoneOnly {
			if emails := extract.Emails(it.Snippet); len(emails) > 0 {
				results = append(results, prospect.LookupResult{
					Email:      emails[0],
					Confidence: l.Confidence,
					Source:     l.Label,
				})
			}
		}
		if phones := extract.Phones(it.Snippet); len(phones) > 0 {
			results = append(results, prospect.LookupResult{
				Phone:      phones[0],
				Confidence: l.Confidence,
				Source:     l.Label,
			})
			if l.PhoneOnly {
				break
			}
		}
	}
	return results, nil
}
