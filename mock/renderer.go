package mock

import (
	"context"

	"github.com/fwojciec/prospect"
)

var _ prospect.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of prospect.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string) (string, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	return r.RenderFn(ctx, url)
}

func (r *Renderer) Close() error {
	return r.CloseFn()
}
