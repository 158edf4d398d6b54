package google

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fwojciec/prospect"
)

// DefaultSearchURL is the results page rendered by RenderedEngine.
const DefaultSearchURL = "https://www.google.com/search"

var _ prospect.SearchEngine = (*RenderedEngine)(nil)

// RenderedEngine searches by rendering the public results page and parsing
// its links.
type RenderedEngine struct {
	renderer prospect.Renderer
	parser   prospect.ResultParser
	baseURL  string
}

// NewRenderedEngine creates a RenderedEngine that renders pages with r and
// extracts links with p.
func NewRenderedEngine(r prospect.Renderer, p prospect.ResultParser) *RenderedEngine {
	return &RenderedEngine{
		renderer: r,
		parser:   p,
		baseURL:  DefaultSearchURL,
	}
}

// WithBaseURL returns a copy of the engine querying u instead of
// DefaultSearchURL.
func (e *RenderedEngine) WithBaseURL(u string) *RenderedEngine {
	other := *e
	other.baseURL = u
	return &other
}

func (e *RenderedEngine) Name() string {
	return "google"
}

func (e *RenderedEngine) Search(ctx context.Context, query string, want int) ([]string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("num", strconv.Itoa(want))
	pageURL := e.baseURL + "?" + params.Encode()

	html, err := e.renderer.Render(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	links, err := e.parser.ParseResults(html, pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return links, nil
}
