package pipeline

import (
	"context"
	"strings"

	"github.com/fwojciec/prospect"
	"github.com/fwojciec/prospect/extract"
)

// Compile-time interface verification.
var _ prospect.Lookup = (*PatternLookup)(nil)

// DefaultPatternConfidence is the confidence of a generated address.
const DefaultPatternConfidence = 0.7

// PatternLookup guesses a first.last@domain address from the subject's name
// and company domain. It produces nothing when the domain is unknown.
type PatternLookup struct {
	// Confidence defaults to DefaultPatternConfidence when zero.
	Confidence float64
}

func (l *PatternLookup) Name() string {
	return "Email Pattern Generation"
}

func (l *PatternLookup) Lookup(_ context.Context, subject prospect.Subject) ([]prospect.LookupResult, error) {
	domain := NormalizeDomain(subject.Domain)
	first := strings.ToLower(subject.FirstName())
	last := strings.ToLower(strings.ReplaceAll(subject.LastName(), " ", ""))
	if domain == "" || first == "" || last == "" {
		return nil, nil
	}

	// Reject names that cannot form a valid local part.
	candidate := first + "." + last + "@" + domain
	emails := extract.Emails(candidate)
	if len(emails) != 1 || emails[0] != candidate {
		return nil, nil
	}

	confidence := l.Confidence
	if confidence == 0 {
		confidence = DefaultPatternConfidence
	}
	return []prospect.LookupResult{{
		Email:      candidate,
		FirstName:  subject.FirstName(),
		LastName:   subject.LastName(),
		Company:    subject.Company,
		Confidence: confidence,
		Source:     l.Name(),
	}}, nil
}

// NormalizeDomain reduces a URL or host to a bare lowercase domain,
// dropping scheme, "www." prefix, port and path.
func NormalizeDomain(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.Index(s, "://"); i != -1 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i != -1 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, ":"); i != -1 {
		s = s[:i]
	}
	return strings.TrimPrefix(s, "www.")
}

// contactFromLookup builds a candidate from a lookup result. Missing name
// and company are taken from the subject the lookup ran for.
func contactFromLookup(subject prospect.Subject, lookupName string, r prospect.LookupResult) *prospect.Contact {
	source := r.Source
	if source == "" {
		source = lookupName
	}
	c := &prospect.Contact{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		Company:     r.Company,
		Title:       r.Title,
		LinkedInURL: r.LinkedInURL,
		Source:      source,
		Confidence:  min(max(r.Confidence, 0), 1),
		Notes:       "Found via " + source,
		Tags:        prospect.NewTags(prospect.TagLookup),
	}
	if c.FirstName == "" && c.LastName == "" {
		c.FirstName = subject.FirstName()
		c.LastName = subject.LastName()
	}
	if c.Company == "" {
		c.Company = subject.Company
	}
	return c
}
