package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/prospect"
	"github.com/fwojciec/prospect/extract"
	"github.com/fwojciec/prospect/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextExtractor_ExtractText(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewTextExtractor().ExtractText(`<p>Hello, world!</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "Hello, world!")
	})

	t.Run("keeps mailto targets visible to extractors", func(t *testing.T) {
		t.Parallel()

		html := `<p>Write to <a href="mailto:jane.doe@acme.com">Jane</a></p>`

		md, err := htmltomarkdown.NewTextExtractor().ExtractText(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"jane.doe@acme.com"}, extract.Emails(md))
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewTextExtractor().ExtractText("  ")

		require.Error(t, err)
		assert.Equal(t, prospect.EINVALID, prospect.ErrorCode(err))
	})
}
