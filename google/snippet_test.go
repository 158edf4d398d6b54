package google_test

import (
	"testing"

	"github.com/fwojciec/prospect"
	"github.com/fwojciec/prospect/google"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippetLookup_Lookup(t *testing.T) {
	t.Parallel()

	snippets := func(q string, start int) []google.Item {
		return []google.Item{
			{Snippet: "Contact Jane Doe at jane@acme.com or (555) 123-4567."},
			{Snippet: "Investor relations: ir@acme.com"},
			{Snippet: "Main line 555-987-6543"},
		}
	}

	t.Run("SEC filing returns emails and phones", func(t *testing.T) {
		t.Parallel()

		srv := newAPIServer(t, snippets)
		l := google.NewSECFilingLookup(google.NewClient("key", "cx", google.WithBaseURL(srv.URL)))

		got, err := l.Lookup(t.Context(), prospect.Subject{Name: "Jane Doe", Company: "Acme Corp"})

		require.NoError(t, err)
		assert.Equal(t, []prospect.LookupResult{
			{Email: "jane@acme.com", Confidence: 0.9, Source: "SEC Filing"},
			{Phone: "(555) 123-4567", Confidence: 0.9, Source: "SEC Filing"},
			{Email: "ir@acme.com", Confidence: 0.9, Source: "SEC Filing"},
			{Phone: "555-987-6543", Confidence: 0.9, Source: "SEC Filing"},
		}, got)
		assert.Equal(t, "Jane Doe Acme Corp SEC filing contact", srv.params()[0]["q"])
	})

	t.Run("SEC filing is skipped without company", func(t *testing.T) {
		t.Parallel()

		srv := newAPIServer(t, snippets)
		l := google.NewSECFilingLookup(google.NewClient("key", "cx", google.WithBaseURL(srv.URL)))

		got, err := l.Lookup(t.Context(), prospect.Subject{Name: "Jane Doe"})

		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Empty(t, srv.params())
	})

	t.Run("phone directory returns first phone only", func(t *testing.T) {
		t.Parallel()

		srv := newAPIServer(t, snippets)
		l := google.NewPhoneDirectoryLookup(google.NewClient("key", "cx", google.WithBaseURL(srv.URL)))

		got, err := l.Lookup(t.Context(), prospect.Subject{Name: "Jane Doe"})

		require.NoError(t, err)
		assert.Equal(t, []prospect.LookupResult{
			{Phone: "(555) 123-4567", Confidence: 0.6, Source: "Phone Directory Search"},
		}, got)
		assert.Equal(t, "Jane Doe phone number", srv.params()[0]["q"])
	})

	t.Run("conference speaker uses its own label", func(t *testing.T) {
		t.Parallel()

		srv := newAPIServer(t, snippets)
		l := google.NewConferenceSpeakerLookup(google.NewClient("key", "cx", google.WithBaseURL(srv.URL)))

		got, err := l.Lookup(t.Context(), prospect.Subject{Name: "Jane Doe"})

		require.NoError(t, err)
		require.NotEmpty(t, got)
		assert.Equal(t, "Conference Speaker", l.Name())
		assert.Equal(t, 0.7, got[0].Confidence)
	})
}
