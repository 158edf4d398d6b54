package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/prospect"
	"github.com/fwojciec/prospect/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		contact *prospect.Contact
		want    string
	}{
		{
			name:    "name and short id",
			contact: &prospect.Contact{ID: "0b5e2a4c-1f7d-4e5b", FirstName: "Jane", LastName: "Doe"},
			want:    "jane-doe-0b5e2a4c.md",
		},
		{
			name:    "punctuation collapses to single dash",
			contact: &prospect.Contact{ID: "abc", FirstName: "Mary-Jane", LastName: "O'Brien"},
			want:    "mary-jane-o-brien-abc.md",
		},
		{
			name:    "placeholder name",
			contact: &prospect.Contact{ID: "12345678", FirstName: prospect.UnknownFirstName, LastName: prospect.UnknownLastName},
			want:    "unknown-contact-12345678.md",
		},
		{
			name:    "no name and no id",
			contact: &prospect.Contact{Email: "info@acme.com"},
			want:    "contact.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fs.ContactPath(tt.contact))
		})
	}
}

func TestFormatContact(t *testing.T) {
	t.Parallel()

	c := &prospect.Contact{
		FirstName:  "Jane",
		LastName:   "Doe",
		Email:      "jane.doe@acme.com",
		Company:    "Acme Corp",
		Tags:       prospect.NewTags(prospect.TagScraped),
		Source:     "https://acme.com/team",
		Confidence: 0.8,
		Notes:      "Met at the March conference.",
	}

	got := fs.FormatContact(c)

	want := "---\n" +
		"name: \"Jane Doe\"\n" +
		"email: \"jane.doe@acme.com\"\n" +
		"company: \"Acme Corp\"\n" +
		"tags: [\"scraped\"]\n" +
		"source: \"https://acme.com/team\"\n" +
		"confidence: 0.8 # 80%\n" +
		"---\n" +
		"\nMet at the March conference.\n"
	assert.Equal(t, want, got)
}

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	contacts := []*prospect.Contact{
		{ID: "aaaaaaaa-1", FirstName: "Jane", LastName: "Doe", Email: "jane.doe@acme.com", Confidence: 0.8},
		{ID: "bbbbbbbb-2", FirstName: "John", LastName: "Smith", Phone: "555-123-4567", Confidence: 0.5},
	}

	t.Run("writes one card per contact", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		e := fs.NewExporter(base, "cards")

		require.NoError(t, e.Export(context.Background(), contacts))

		assert.Equal(t, filepath.Join(base, "cards"), e.Dir())
		entries, err := os.ReadDir(e.Dir())
		require.NoError(t, err)
		require.Len(t, entries, 2)

		content, err := os.ReadFile(filepath.Join(e.Dir(), "jane-doe-aaaaaaaa.md"))
		require.NoError(t, err)
		assert.Contains(t, string(content), `email: "jane.doe@acme.com"`)

		_, err = os.Stat(filepath.Join(base, "cards.tmp"))
		assert.True(t, os.IsNotExist(err), "temp dir should be gone after commit")
	})

	t.Run("replaces previous export", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		stale := filepath.Join(base, "cards", "stale.md")
		require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
		require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

		e := fs.NewExporter(base, "cards")
		require.NoError(t, e.Export(context.Background(), contacts[:1]))

		_, err := os.Stat(stale)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("empty export creates empty directory", func(t *testing.T) {
		t.Parallel()

		e := fs.NewExporter(t.TempDir(), "cards")
		require.NoError(t, e.Export(context.Background(), nil))

		entries, err := os.ReadDir(e.Dir())
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("canceled context leaves previous export", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		previous := filepath.Join(base, "cards", "keep.md")
		require.NoError(t, os.MkdirAll(filepath.Dir(previous), 0755))
		require.NoError(t, os.WriteFile(previous, []byte("keep"), 0644))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		e := fs.NewExporter(base, "cards")
		err := e.Export(ctx, contacts)

		require.ErrorIs(t, err, context.Canceled)
		_, err = os.Stat(previous)
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(base, "cards.tmp"))
		assert.True(t, os.IsNotExist(err))
	})
}
