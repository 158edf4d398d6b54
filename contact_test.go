package prospect_test

import (
	"testing"

	"github.com/fwojciec/prospect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContact_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts contact with only an email", func(t *testing.T) {
		t.Parallel()

		c := &prospect.Contact{Email: "jane@acme.com", Confidence: 0.8}
		require.NoError(t, c.Validate())
	})

	t.Run("rejects contact without email, phone or name", func(t *testing.T) {
		t.Parallel()

		c := &prospect.Contact{Company: "Acme"}
		err := c.Validate()
		require.Error(t, err)
		assert.Equal(t, prospect.EINVALID, prospect.ErrorCode(err))
	})

	t.Run("rejects confidence outside unit interval", func(t *testing.T) {
		t.Parallel()

		c := &prospect.Contact{Email: "jane@acme.com", Confidence: 1.2}
		err := c.Validate()
		require.Error(t, err)
		assert.Equal(t, prospect.EINVALID, prospect.ErrorCode(err))
	})
}

func TestContact_HasName(t *testing.T) {
	t.Parallel()

	assert.True(t, (&prospect.Contact{FirstName: "Jane", LastName: "Doe"}).HasName())
	assert.False(t, (&prospect.Contact{FirstName: prospect.UnknownFirstName, LastName: prospect.UnknownLastName}).HasName())
	assert.False(t, (&prospect.Contact{Email: "x@y.com"}).HasName())
}

func TestContact_Clone(t *testing.T) {
	t.Parallel()

	orig := &prospect.Contact{Email: "jane@acme.com", Tags: prospect.NewTags("scraped")}
	clone := orig.Clone()
	clone.Tags[0] = "changed"
	clone.Email = "other@acme.com"

	assert.Equal(t, prospect.Tags{"scraped"}, orig.Tags)
	assert.Equal(t, "jane@acme.com", orig.Email)
}

func TestTags_Add(t *testing.T) {
	t.Parallel()

	tags := prospect.NewTags("scraped", "no-name", "scraped")
	assert.Equal(t, prospect.Tags{"scraped", "no-name"}, tags)

	union := tags.Add("lookup", "", "no-name")
	assert.Equal(t, prospect.Tags{"scraped", "no-name", "lookup"}, union)
	assert.Equal(t, prospect.Tags{"scraped", "no-name"}, tags, "receiver must not change")
	assert.True(t, union.Has("lookup"))
	assert.False(t, union.Has("founder-search"))
}

func TestHighlights(t *testing.T) {
	t.Parallel()

	contacts := []*prospect.Contact{
		{Email: "a@x.com", Confidence: 0.6},
		{Email: "b@x.com", Confidence: 0.8},
		{Email: "c@x.com", Confidence: 0.7},
		{Email: "d@x.com", Confidence: 0.9},
		{Email: "e@x.com", Confidence: 0.8},
	}

	got := prospect.Highlights(contacts, 0.7, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "d@x.com", got[0].Email)
	assert.Equal(t, "b@x.com", got[1].Email)
}

func TestSortByConfidence_KeepsInput(t *testing.T) {
	t.Parallel()

	contacts := []*prospect.Contact{
		{Email: "a@x.com", Confidence: 0.5},
		{Email: "b@x.com", Confidence: 0.9},
	}

	sorted := prospect.SortByConfidence(contacts)

	assert.Equal(t, "b@x.com", sorted[0].Email)
	assert.Equal(t, "a@x.com", contacts[0].Email)
}

func TestWeights_Score(t *testing.T) {
	t.Parallel()

	w := prospect.DefaultWeights()

	assert.Equal(t, 0.8, w.Score(true, false))
	assert.Equal(t, 0.7, w.Score(true, true))
	assert.Equal(t, 0.6, w.Score(false, false))
	assert.Equal(t, 0.5, w.Score(false, true))
	assert.Equal(t, 0.0, prospect.Weights{Unnamed: 0.05, SparsePenalty: 0.1}.Score(false, true))
}

func TestSubject(t *testing.T) {
	t.Parallel()

	s := prospect.Subject{Name: "  Jane  van Doe ", Company: "Acme Corp"}

	require.NoError(t, s.Validate())
	assert.Equal(t, "Jane", s.FirstName())
	assert.Equal(t, "van Doe", s.LastName())
	assert.Equal(t, "Jane van Doe Acme Corp", s.String())

	err := prospect.Subject{Name: "  "}.Validate()
	assert.Equal(t, prospect.EINVALID, prospect.ErrorCode(err))
}
