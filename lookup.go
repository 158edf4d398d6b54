package prospect

import "context"

// LookupResult is a candidate returned by an alternate producer such as
// an email-finder API. It carries the same information a page-derived
// candidate does.
type LookupResult struct {
	Email       string
	Phone       string
	FirstName   string
	LastName    string
	Company     string
	Title       string
	LinkedInURL string
	Confidence  float64
	Source      string
}

// Lookup produces contact candidates for a subject without harvesting pages.
type Lookup interface {
	// Name is the provenance label attached to produced candidates.
	Name() string

	// Lookup returns zero or more candidates. An empty result is not an error.
	Lookup(ctx context.Context, subject Subject) ([]LookupResult, error)
}
