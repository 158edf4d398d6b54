package prospect

import "context"

// URLFrontier manages the harvest queue for one run with deduplication.
type URLFrontier interface {
	// Push adds a result to the frontier.
	// Returns false if the URL has already been seen.
	Push(result SearchResult) bool

	// Pop returns the next result in insertion order.
	// Returns false if the frontier is empty.
	Pop() (SearchResult, bool)

	// Len returns the number of results in the queue.
	Len() int

	// Seen returns true if the URL has been processed or queued.
	Seen(url string) bool
}

// DomainLimiter provides per-key rate limiting. Keys are hostnames for page
// harvests and engine names for search queries.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request for the key.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, key string) error
}
