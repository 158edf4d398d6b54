package mock

import (
	"context"

	"github.com/fwojciec/prospect"
)

var _ prospect.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of prospect.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, key string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, key string) error {
	return l.WaitFn(ctx, key)
}
