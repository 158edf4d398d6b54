package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/prospect/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profilePage = `<!DOCTYPE html>
<html>
<head>
<title>Jane Doe - Acme Corp</title>
<meta property="og:site_name" content="Acme Corp">
<meta name="author" content="Jane Doe">
</head>
<body>
<nav>Home | About | Careers</nav>
<main>
<article>
<h1>Meet our founder</h1>
<p>Jane Doe founded Acme Corp in 2015 and leads the company as chief executive officer.
She can be reached at jane.doe@acme.com for partnership enquiries and press requests.</p>
<p>Before Acme she spent a decade building logistics software for regional carriers,
and she still answers customer questions herself every Friday afternoon.</p>
</article>
</main>
<footer>Copyright Acme Corp</footer>
</body>
</html>`

func TestExtractor_ExtractHints(t *testing.T) {
	t.Parallel()

	t.Run("reads site name and author from metadata", func(t *testing.T) {
		t.Parallel()

		hints, err := trafilatura.NewExtractor().ExtractHints(profilePage)

		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", hints.SiteName)
		assert.Equal(t, "Acme Corp", hints.Company)
		assert.Empty(t, hints.Title)
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().ExtractHints("")

		require.Error(t, err)
	})
}

func TestExtractor_ExtractText(t *testing.T) {
	t.Parallel()

	text, err := trafilatura.NewExtractor().ExtractText(profilePage)

	require.NoError(t, err)
	assert.Contains(t, text, "jane.doe@acme.com")
	assert.NotContains(t, text, "Careers")
}
