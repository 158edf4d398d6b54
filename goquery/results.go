package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/prospect"
)

// Ensure ResultParser implements prospect.ResultParser at compile time.
var _ prospect.ResultParser = (*ResultParser)(nil)

// DefaultResultSelectors lists selectors for organic results on a search
// engine results page, most specific first. The trailing catch-all keeps
// parsing useful when the engine changes its markup.
var DefaultResultSelectors = []string{
	".yuRUbf a[href]",
	"div.g a[href]",
	"h3 a[href]",
	".rc a[href]",
	"a[href]",
}

// ResultParser extracts result links from rendered search results pages.
type ResultParser struct {
	selectors []string
}

// NewResultParser creates a ResultParser. With no selectors it uses
// DefaultResultSelectors.
func NewResultParser(selectors ...string) *ResultParser {
	if len(selectors) == 0 {
		selectors = DefaultResultSelectors
	}
	return &ResultParser{selectors: selectors}
}

// ParseResults returns absolute http(s) links in selector order, then
// document order, without duplicates. Redirect wrappers of the form
// /url?q=<target> are unwrapped to their target.
func (p *ResultParser) ParseResults(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, prospect.Errorf(prospect.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, prospect.Errorf(prospect.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	var links []string

	for _, selector := range p.selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists || href == "" {
				return
			}

			// Skip non-HTTP links (javascript:, mailto:, etc.)
			if isNonHTTPLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" {
				return
			}

			if _, ok := seen[resolved]; ok {
				return
			}
			seen[resolved] = struct{}{}
			links = append(links, resolved)
		})
	}

	return links, nil
}

// resolveURL resolves href against base and unwraps redirect links.
// Returns empty string if the result is not an absolute http(s) URL or is
// self-referential.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)

	if resolved.Path == "/url" && resolved.Host == base.Host {
		target := resolved.Query().Get("q")
		if target == "" {
			target = resolved.Query().Get("url")
		}
		u, err := url.Parse(target)
		if err != nil {
			return ""
		}
		resolved = u
	}

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
