// Package rod renders pages with a headless Chrome browser driven by go-rod.
package rod

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/prospect"
	"github.com/go-rod/rod/lib/proto"
)

// Defaults for Renderer.
const (
	DefaultTimeout  = 30 * time.Second
	DefaultIdleWait = 5 * time.Second

	// idleQuiet is how long the network must stay silent to count as idle.
	idleQuiet = 500 * time.Millisecond
)

// Ensure Renderer implements prospect.Renderer at compile time.
var _ prospect.Renderer = (*Renderer)(nil)

// Renderer retrieves rendered HTML using Chrome browser automation.
// The browser is launched on the first Render call, not on construction,
// and every Render uses its own page which is closed before returning.
//
// Renderer is safe for concurrent use by multiple goroutines.
type Renderer struct {
	timeout   time.Duration
	idleWait  time.Duration
	userAgent string
	maxPages  int64

	mu        sync.Mutex
	manager   *BrowserManager
	launchErr error
	closed    bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTimeout bounds each Render call. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithIdleWait bounds how long Render waits for network activity to settle
// after the load event. Time spent navigating does not count against it.
// Zero skips the wait. Defaults to DefaultIdleWait.
func WithIdleWait(d time.Duration) Option {
	return func(r *Renderer) {
		r.idleWait = d
	}
}

// WithUserAgent overrides the client identity string.
// Defaults to prospect.DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(r *Renderer) {
		r.userAgent = ua
	}
}

// WithBrowserPages sets how many pages a browser serves before it is recycled.
func WithBrowserPages(n int64) Option {
	return func(r *Renderer) {
		r.maxPages = n
	}
}

// NewRenderer creates a Renderer. No browser is started until the first
// call to Render. Close must be called when the Renderer is no longer needed.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		timeout:   DefaultTimeout,
		idleWait:  DefaultIdleWait,
		userAgent: prospect.DefaultUserAgent,
		maxPages:  DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render navigates to the URL and returns the rendered HTML.
// Returns an EUNAVAILABLE error if the browser cannot be started.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	manager, err := r.acquire()
	if err != nil {
		return "", err
	}

	browser, release, err := manager.Acquire()
	if err != nil {
		return "", prospect.Errorf(prospect.EUNAVAILABLE, "browser unavailable: %v", err)
	}
	defer release()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: r.userAgent}); err != nil {
		return "", fmt.Errorf("setting user agent: %w", err)
	}

	// The idle listener has to see requests from navigation onward, but its
	// budget only starts once the load event fires.
	var waitIdle func()
	idleCtx, stopIdle := context.WithCancel(ctx)
	defer stopIdle()
	if r.idleWait > 0 {
		waitIdle = page.Context(idleCtx).WaitRequestIdle(idleQuiet, nil, nil, nil)
	}

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("waiting for load: %w", err)
	}
	if waitIdle != nil {
		timer := time.AfterFunc(r.idleWait, stopIdle)
		waitIdle()
		timer.Stop()
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading HTML: %w", err)
	}

	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times,
// and a Renderer that never rendered has nothing to release.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	if r.manager == nil {
		return nil
	}
	return r.manager.Close()
}

// acquire starts the browser on first use. A failed launch is remembered
// so every later call reports the same error.
func (r *Renderer) acquire() (*BrowserManager, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, prospect.Errorf(prospect.EUNAVAILABLE, "renderer closed")
	}
	if r.launchErr != nil {
		return nil, r.launchErr
	}
	if r.manager == nil {
		manager, err := NewBrowserManager(WithMaxPages(r.maxPages))
		if err != nil {
			r.launchErr = prospect.Errorf(prospect.EUNAVAILABLE, "browser unavailable: %v", err)
			return nil, r.launchErr
		}
		r.manager = manager
	}
	return r.manager, nil
}
