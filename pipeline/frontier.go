package pipeline

import (
	"strings"
	"sync"

	"github.com/fwojciec/prospect"
	"github.com/fwojciec/prospect/bloom"
)

// Compile-time interface verification.
var _ prospect.URLFrontier = (*Frontier)(nil)

// Frontier configuration for one run.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for the filter.
	frontierFalsePositiveRate = 0.001
)

// Frontier is an in-memory FIFO of search results with run-wide URL
// deduplication. The Bloom filter answers most lookups for new URLs; its
// positives are confirmed against the exact set, so a false positive never
// drops a URL.
//
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	bloom *bloom.Filter
	seen  map[string]struct{}
	queue []prospect.SearchResult
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for the Bloom filter.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		bloom: bloom.NewFilter(n, fpRate),
		seen:  make(map[string]struct{}),
	}
}

// Push adds a result to the frontier.
// Returns false if the URL has already been seen.
// URL fragments are stripped before deduplication - URLs differing only by fragment
// are considered duplicates.
func (f *Frontier) Push(result prospect.SearchResult) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(result.URL)
	if f.bloom.TestAndAdd(url) {
		if _, ok := f.seen[url]; ok {
			return false
		}
	}
	f.seen[url] = struct{}{}

	result.URL = url
	f.queue = append(f.queue, result)
	return true
}

// Pop returns the oldest queued result.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (prospect.SearchResult, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return prospect.SearchResult{}, false
	}
	result := f.queue[0]
	f.queue[0] = prospect.SearchResult{}
	f.queue = f.queue[1:]
	return result, true
}

// Len returns the number of results in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been processed or queued.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seenLocked(stripFragment(rawURL))
}

// seenLocked must be called with mu held.
func (f *Frontier) seenLocked(url string) bool {
	if !f.bloom.Test(url) {
		return false
	}
	_, ok := f.seen[url]
	return ok
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
