package mock

import (
	"context"

	"github.com/fwojciec/prospect"
)

var _ prospect.Lookup = (*Lookup)(nil)

// Lookup is a mock implementation of prospect.Lookup.
type Lookup struct {
	NameFn   func() string
	LookupFn func(ctx context.Context, subject prospect.Subject) ([]prospect.LookupResult, error)
}

func (l *Lookup) Name() string {
	return l.NameFn()
}

func (l *Lookup) Lookup(ctx context.Context, subject prospect.Subject) ([]prospect.LookupResult, error) {
	return l.LookupFn(ctx, subject)
}
