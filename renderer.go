package prospect

import "context"

// DefaultUserAgent is the client identity sent by renderers unless
// configured otherwise.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Renderer retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Renderer interface {
	// Render navigates to the URL, waits for the page to settle
	// and returns the rendered HTML.
	// The context controls timeout and cancellation. Implementations
	// return an EUNAVAILABLE error when the rendering backend itself
	// cannot be acquired.
	Render(ctx context.Context, url string) (html string, err error)

	// Close releases rendering resources.
	// Must be called when the Renderer is no longer needed.
	Close() error
}
