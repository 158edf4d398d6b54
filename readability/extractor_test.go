package readability_test

import (
	"testing"

	"github.com/fwojciec/prospect"
	"github.com/fwojciec/prospect/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const teamPage = `<!DOCTYPE html>
<html>
<head>
<title>Our Team - Acme Corp</title>
<meta property="og:site_name" content="Acme Corp">
</head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article>
<p class="byline">By Jane Doe</p>
<p>Jane Doe leads engineering at Acme Corp. She joined the company in 2019 after a decade building
distributed systems, and today she runs a team of forty engineers across three offices.</p>
<p>You can reach Jane at jane.doe@acme.com or call the main office at (555) 123-4567 during
business hours. Press inquiries should go through the communications team.</p>
</article>
<footer><p>Footer Copyright Text</p></footer>
</body>
</html>`

func TestExtractor_ExtractText(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := readability.NewExtractor().ExtractText("  ")

		require.Error(t, err)
		assert.Equal(t, prospect.EINVALID, prospect.ErrorCode(err))
	})

	t.Run("keeps article body", func(t *testing.T) {
		t.Parallel()

		text, err := readability.NewExtractor().ExtractText(teamPage)

		require.NoError(t, err)
		assert.Contains(t, text, "jane.doe@acme.com")
		assert.Contains(t, text, "(555) 123-4567")
	})

	t.Run("strips navigation and footer", func(t *testing.T) {
		t.Parallel()

		text, err := readability.NewExtractor().ExtractText(teamPage)

		require.NoError(t, err)
		assert.NotContains(t, text, "Home Nav Link")
		assert.NotContains(t, text, "Footer Copyright Text")
	})
}

func TestExtractor_ExtractHints(t *testing.T) {
	t.Parallel()

	t.Run("reports site name as company", func(t *testing.T) {
		t.Parallel()

		hints, err := readability.NewExtractor().ExtractHints(teamPage)

		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", hints.Company)
		assert.Equal(t, "Acme Corp", hints.SiteName)
		assert.Empty(t, hints.Title)
		assert.Empty(t, hints.Location)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := readability.NewExtractor().ExtractHints("")

		require.Error(t, err)
	})
}
