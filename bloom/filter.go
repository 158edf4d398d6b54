// Package bloom provides probabilistic URL membership using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a Bloom filter over URL strings. A negative answer is exact;
// a positive answer may be a false positive and must be confirmed by the
// caller when correctness matters.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Test returns true if the URL might be in the filter.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// TestAndAdd adds the URL and reports whether it might have been present
// before the call.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}
