package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/prospect"
	"github.com/fwojciec/prospect/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobReporter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ prospect.JobReporter = &mock.JobReporter{}
}

func TestJobReporter_OnComplete(t *testing.T) {
	t.Parallel()

	t.Run("delegates to OnCompleteFn", func(t *testing.T) {
		t.Parallel()

		var gotTotal int
		var gotErrs []string
		r := &mock.JobReporter{
			OnCompleteFn: func(_ context.Context, _ []*prospect.Contact, totalFound int, errs []string) error {
				gotTotal = totalFound
				gotErrs = errs
				return nil
			},
		}

		err := r.OnComplete(context.Background(), nil, 3, []string{"query failed"})

		require.NoError(t, err)
		assert.Equal(t, 3, gotTotal)
		assert.Equal(t, []string{"query failed"}, gotErrs)
	})

	t.Run("returns error from OnCompleteFn", func(t *testing.T) {
		t.Parallel()

		r := &mock.JobReporter{
			OnCompleteFn: func(_ context.Context, _ []*prospect.Contact, _ int, _ []string) error {
				return prospect.Errorf(prospect.ENOTFOUND, "job not found")
			},
		}

		err := r.OnComplete(context.Background(), nil, 0, nil)

		assert.Equal(t, prospect.ENOTFOUND, prospect.ErrorCode(err))
	})
}
