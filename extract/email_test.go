package extract_test

import (
	"testing"

	"github.com/fwojciec/prospect/extract"
	"github.com/stretchr/testify/assert"
)

func TestEmails(t *testing.T) {
	t.Parallel()

	t.Run("treats addresses differing in case as distinct", func(t *testing.T) {
		t.Parallel()

		got := extract.Emails("john.doe@example.com and JOHN.DOE@example.com")

		assert.Equal(t, []string{"john.doe@example.com", "JOHN.DOE@example.com"}, got)
	})

	t.Run("drops exact repeats", func(t *testing.T) {
		t.Parallel()

		got := extract.Emails("jane@acme.com, jane+news@acme.com; jane@acme.com")

		assert.Equal(t, []string{"jane@acme.com", "jane+news@acme.com"}, got)
	})

	t.Run("ignores strings without a top level domain", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, extract.Emails("user@localhost or @handle"))
	})
}
