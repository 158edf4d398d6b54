package prospect

import "context"

// SearchResult is a URL together with the query that produced it.
type SearchResult struct {
	URL   string
	Query string
}

// SearchEngine runs queries against a web search engine.
type SearchEngine interface {
	// Name identifies the engine in logs and rate limiting.
	Name() string

	// Search returns result URLs for query in ranked order. want is the
	// number of results to ask for; callers apply their own cap after
	// filtering, so an engine may return more.
	Search(ctx context.Context, query string, want int) ([]string, error)
}

// QueryPlan is an ordered two-stage search strategy. Primary queries run
// first, most specific to least; Fallback runs once only when the primary
// stage produced no usable URLs.
type QueryPlan struct {
	Primary  []string
	Fallback []string
}

// Len returns the total number of queries in the plan.
func (p QueryPlan) Len() int {
	return len(p.Primary) + len(p.Fallback)
}

// SeedSource proposes pages worth harvesting before any query runs, such as
// the team and contact pages listed in a company's sitemap.
type SeedSource interface {
	// Name identifies the source in logs and diagnostics.
	Name() string

	// Seeds returns candidate page URLs for subject, most relevant first.
	// A source with nothing to offer for subject returns no URLs and no
	// error.
	Seeds(ctx context.Context, subject Subject) ([]string, error)
}
