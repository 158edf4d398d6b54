package pipeline_test

import (
	"testing"

	"github.com/fwojciec/prospect"
	"github.com/fwojciec/prospect/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanner_Plan(t *testing.T) {
	t.Parallel()

	t.Run("ends primary stage with bare subject", func(t *testing.T) {
		t.Parallel()

		p := &pipeline.Planner{}
		plan := p.Plan(prospect.Subject{Name: "Jane Doe", Company: "Acme Corp"})

		require.NotEmpty(t, plan.Primary)
		assert.Equal(t, "Jane Doe Acme Corp founder contact", plan.Primary[0])
		assert.Equal(t, "Jane Doe Acme Corp", plan.Primary[len(plan.Primary)-1])
		assert.Equal(t, []string{"Jane Doe"}, plan.Fallback)
		assert.Len(t, plan.Primary, len(pipeline.DefaultTemplates)+1)
	})

	t.Run("normalizes whitespace in subject", func(t *testing.T) {
		t.Parallel()

		p := &pipeline.Planner{Templates: []string{"email"}}
		plan := p.Plan(prospect.Subject{Name: "  Jane   Doe "})

		assert.Equal(t, []string{"Jane Doe email", "Jane Doe"}, plan.Primary)
		assert.Equal(t, []string{"Jane Doe"}, plan.Fallback)
	})

	t.Run("drops duplicate queries keeping order", func(t *testing.T) {
		t.Parallel()

		p := &pipeline.Planner{Templates: []string{"email", "phone", "email", ""}}
		plan := p.Plan(prospect.Subject{Name: "Jane Doe"})

		assert.Equal(t, []string{"Jane Doe email", "Jane Doe phone", "Jane Doe"}, plan.Primary)
	})

	t.Run("founder mode puts founder templates first", func(t *testing.T) {
		t.Parallel()

		p := &pipeline.Planner{Templates: []string{"email"}, Founder: true}
		plan := p.Plan(prospect.Subject{Name: "Jane Doe"})

		require.Len(t, plan.Primary, len(pipeline.FounderTemplates)+2)
		assert.Equal(t, "Jane Doe Y Combinator founder", plan.Primary[0])
		assert.Equal(t, "Jane Doe email", plan.Primary[len(plan.Primary)-2])
		assert.Equal(t, len(pipeline.FounderTemplates)+3, plan.Len())
	})
}
