package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/prospect"
)

// Sitemap defaults.
const (
	DefaultMaxSeeds    = 10
	DefaultMaxSitemaps = 10
)

// peoplePage matches path segments of pages that usually list people or
// contact details.
var peoplePage = regexp.MustCompile(`(?i)(^|[/_-])(team|people|staff|leadership|management|founders?|board|about|about-us|contact|contact-us|who-we-are|our-story)([/_.-]|$)`)

var _ prospect.SeedSource = (*SitemapSeeds)(nil)

// SitemapSeeds proposes team, about and contact pages found in the sitemap
// of the subject's company domain. Pages whose path mentions the subject's
// last name come first.
type SitemapSeeds struct {
	client      *http.Client
	userAgent   string
	maxSeeds    int
	maxSitemaps int
}

// SitemapOption configures SitemapSeeds.
type SitemapOption func(*SitemapSeeds)

// WithHTTPClient sets the client used to fetch robots.txt and sitemaps.
func WithHTTPClient(c *http.Client) SitemapOption {
	return func(s *SitemapSeeds) {
		s.client = c
	}
}

// WithMaxSeeds caps the number of URLs returned per subject.
func WithMaxSeeds(n int) SitemapOption {
	return func(s *SitemapSeeds) {
		s.maxSeeds = n
	}
}

// NewSitemapSeeds creates a SitemapSeeds.
func NewSitemapSeeds(opts ...SitemapOption) *SitemapSeeds {
	s := &SitemapSeeds{
		userAgent:   prospect.DefaultUserAgent,
		maxSeeds:    DefaultMaxSeeds,
		maxSitemaps: DefaultMaxSitemaps,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: DefaultTimeout}
	}
	return s
}

// Name identifies the source.
func (s *SitemapSeeds) Name() string { return "sitemap" }

// Seeds returns people and contact pages from the domain's sitemap. A
// subject without a domain, or a domain without a sitemap, yields nothing.
func (s *SitemapSeeds) Seeds(ctx context.Context, subject prospect.Subject) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base, ok := domainRoot(subject.Domain)
	if !ok {
		return nil, nil
	}

	sitemaps, err := s.findSitemaps(ctx, base)
	if err != nil || len(sitemaps) == 0 {
		return nil, err
	}

	seen := make(map[string]bool)
	var urls []string
	for _, sm := range sitemaps {
		found, err := s.readSitemap(ctx, sm, seen)
		if err != nil {
			return nil, err
		}
		urls = append(urls, found...)
	}

	return s.rank(urls, subject), nil
}

// domainRoot turns a bare domain or URL into the site root.
func domainRoot(domain string) (*url.URL, bool) {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return nil, false
	}
	if !strings.Contains(domain, "://") {
		domain = "https://" + domain
	}
	u, err := url.Parse(domain)
	if err != nil || u.Host == "" {
		return nil, false
	}
	return &url.URL{Scheme: u.Scheme, Host: u.Host}, true
}

// rank keeps people pages, puts those naming the subject first and applies
// the seed cap. Duplicates are dropped.
func (s *SitemapSeeds) rank(urls []string, subject prospect.Subject) []string {
	last := strings.ToLower(strings.Join(strings.Fields(subject.LastName()), "-"))

	var named, people []string
	dup := make(map[string]bool)
	for _, raw := range urls {
		if dup[raw] {
			continue
		}
		dup[raw] = true
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		path := strings.ToLower(u.Path)
		switch {
		case last != "" && strings.Contains(path, last):
			named = append(named, raw)
		case peoplePage.MatchString(path):
			people = append(people, raw)
		}
	}

	ranked := append(named, people...)
	if s.maxSeeds > 0 && len(ranked) > s.maxSeeds {
		ranked = ranked[:s.maxSeeds]
	}
	return ranked
}

// findSitemaps reads Sitemap directives from robots.txt and falls back to
// /sitemap.xml.
func (s *SitemapSeeds) findSitemaps(ctx context.Context, base *url.URL) ([]string, error) {
	robots := base.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if body, err := s.fetch(ctx, robots); err == nil {
		defer body.Close()
		var sitemaps []string
		sc := bufio.NewScanner(body)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if len(line) > len("sitemap:") && strings.EqualFold(line[:len("sitemap:")], "sitemap:") {
				if sm := strings.TrimSpace(line[len("sitemap:"):]); sm != "" {
					sitemaps = append(sitemaps, sm)
				}
			}
		}
		if len(sitemaps) > 0 {
			return sitemaps, nil
		}
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return []string{base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()}, nil
}

// readSitemap returns the page URLs of a urlset, following sitemap indexes.
// Missing sitemaps yield nothing. At most maxSitemaps documents are read.
func (s *SitemapSeeds) readSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] || len(seen) >= s.maxSitemaps {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetch(ctx, sitemapURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap %s: %w", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, nil
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, loc := range locs(root, "sitemap") {
			found, err := s.readSitemap(ctx, loc, seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, found...)
		}
		return urls, nil
	}
	return locs(root, "url"), nil
}

// locs returns the trimmed <loc> text of each child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s *SitemapSeeds) fetch(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	return limitedBody{Reader: io.LimitReader(resp.Body, maxBodyBytes), Closer: resp.Body}, nil
}

type limitedBody struct {
	io.Reader
	io.Closer
}
