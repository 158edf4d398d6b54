package mock

import (
	"context"

	"github.com/fwojciec/prospect"
)

var _ prospect.SearchEngine = (*SearchEngine)(nil)

// SearchEngine is a mock implementation of prospect.SearchEngine.
type SearchEngine struct {
	NameFn   func() string
	SearchFn func(ctx context.Context, query string, want int) ([]string, error)
}

func (e *SearchEngine) Name() string {
	return e.NameFn()
}

func (e *SearchEngine) Search(ctx context.Context, query string, want int) ([]string, error) {
	return e.SearchFn(ctx, query, want)
}

var _ prospect.SeedSource = (*SeedSource)(nil)

// SeedSource is a mock implementation of prospect.SeedSource.
type SeedSource struct {
	NameFn  func() string
	SeedsFn func(ctx context.Context, subject prospect.Subject) ([]string, error)
}

func (s *SeedSource) Name() string {
	return s.NameFn()
}

func (s *SeedSource) Seeds(ctx context.Context, subject prospect.Subject) ([]string, error) {
	return s.SeedsFn(ctx, subject)
}
