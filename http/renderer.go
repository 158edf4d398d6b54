// Package http provides the plain-HTTP Renderer for static pages and the
// REST API server.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/prospect"
)

// DefaultTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultTimeout.
const DefaultTimeout = 30 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 5 << 20

// Ensure Renderer implements prospect.Renderer at compile time.
var _ prospect.Renderer = (*Renderer)(nil)

// Renderer retrieves HTML content from URLs using HTTP requests.
// Unlike rod.Renderer, this does not execute JavaScript and is suitable
// for static pages only.
type Renderer struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
// Defaults to prospect.DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(r *Renderer) {
		r.userAgent = ua
	}
}

// NewRenderer creates a new HTTP-based Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		timeout:   DefaultTimeout,
		userAgent: prospect.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.client = &http.Client{
		Timeout: r.timeout,
	}

	return r
}

// Render retrieves the HTML content from the given URL.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For the HTTP renderer this is a no-op since
// http.Client doesn't require explicit cleanup.
func (r *Renderer) Close() error {
	return nil
}
