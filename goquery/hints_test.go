package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/prospect/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHintExtractor_ExtractHints(t *testing.T) {
	t.Parallel()

	t.Run("takes first match per field in priority order", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Team | Acme</title></head><body>
<h1>Acme Corp</h1>
<div class="profile">
  <span class="job-title">Chief Executive Officer</span>
  <span class="location">San Francisco, CA</span>
</div>
</body></html>`

		hints, err := goquery.NewHintExtractor().ExtractHints(html)

		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", hints.Company)
		assert.Equal(t, "Chief Executive Officer", hints.Title)
		assert.Equal(t, "San Francisco, CA", hints.Location)
	})

	t.Run("skips values outside the length window", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h1>AB</h1>
<h2>` + strings.Repeat("x", 120) + `</h2>
<h3>Globex Holdings</h3>
</body></html>`

		hints, err := goquery.NewHintExtractor().ExtractHints(html)

		require.NoError(t, err)
		assert.Equal(t, "Globex Holdings", hints.Company)
	})

	t.Run("reads site name from meta content", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta property="og:site_name" content="Initech"></head><body><p>hi</p></body></html>`

		hints, err := goquery.NewHintExtractor().ExtractHints(html)

		require.NoError(t, err)
		assert.Equal(t, "Initech", hints.Company)
		assert.Empty(t, hints.Title)
		assert.Empty(t, hints.Location)
	})
}
