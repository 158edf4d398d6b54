package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/prospect/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_TestAndAdd(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://acme.com/team"))
	assert.False(t, f.TestAndAdd("https://acme.com/team"), "first add reports absent")
	assert.True(t, f.TestAndAdd("https://acme.com/team"), "second add reports present")
	assert.True(t, f.Test("https://acme.com/team"))
	assert.False(t, f.Test("https://acme.com/about"))
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.TestAndAdd(fmt.Sprintf("https://example.com/added/%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("https://example.com/probe/%d", i)) {
			falsePositives++
		}
	}

	// Allow generous headroom over the configured rate.
	observed := float64(falsePositives) / testProbes
	assert.Less(t, observed, fpRate*3, "false positive rate %.4f too high", observed)
}
