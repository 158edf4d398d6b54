package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/fwojciec/prospect"
)

// Search budgets.
const (
	// DefaultPerQuery caps the URLs taken from one primary query.
	DefaultPerQuery = 20
	// DefaultFallbackPerQuery caps the URLs taken from one fallback query.
	DefaultFallbackPerQuery = 10
)

// DefaultDenylist holds hosts whose results are never harvested. A host
// matches an entry if it equals it or is a subdomain of it.
var DefaultDenylist = []string{
	"google.com",
	"goo.gl",
	"youtube.com",
	"youtu.be",
	"facebook.com",
	"twitter.com",
	"x.com",
	"instagram.com",
	"reddit.com",
}

// SearchReport is the outcome of executing a query plan.
type SearchReport struct {
	// Results holds the URLs pushed to the frontier, in push order.
	Results []prospect.SearchResult

	// Raw counts URLs taken from query results after filtering and the
	// per-query cap, before deduplication. Seed URLs count as returned.
	Raw int

	// Errors holds one entry per failed query.
	Errors []string

	UsedFallback bool
}

// Executor runs a query plan against a search engine and fills a frontier
// with the surviving result URLs.
type Executor struct {
	Engine prospect.SearchEngine

	// FallbackEngine runs the fallback stage. Engine is used when nil.
	FallbackEngine prospect.SearchEngine

	// Limiter paces queries, keyed by engine name. Nil disables pacing.
	Limiter prospect.DomainLimiter

	PerQuery         int
	FallbackPerQuery int

	// MaxURLs stops execution once that many URLs were pushed. Zero means
	// no limit.
	MaxURLs int

	// Denylist overrides DefaultDenylist when non-nil.
	Denylist []string

	Logger *slog.Logger
}

// Execute runs the primary stage of plan and, if it pushed nothing, the
// fallback stage once. Query failures are recorded in the report and
// skipped. An EUNAVAILABLE error from an engine aborts execution and is
// returned along with the partial report.
func (e *Executor) Execute(ctx context.Context, plan prospect.QueryPlan, frontier prospect.URLFrontier) (*SearchReport, error) {
	report := &SearchReport{}

	perQuery := e.PerQuery
	if perQuery <= 0 {
		perQuery = DefaultPerQuery
	}
	if err := e.runStage(ctx, e.Engine, plan.Primary, perQuery, frontier, report); err != nil {
		return report, err
	}

	if len(report.Results) > 0 || len(plan.Fallback) == 0 || ctx.Err() != nil {
		return report, nil
	}

	engine := e.FallbackEngine
	if engine == nil {
		engine = e.Engine
	}
	fallbackPerQuery := e.FallbackPerQuery
	if fallbackPerQuery <= 0 {
		fallbackPerQuery = DefaultFallbackPerQuery
	}
	report.UsedFallback = true
	e.logger().Info("primary queries found nothing, running fallback", "queries", len(plan.Fallback))
	if err := e.runStage(ctx, engine, plan.Fallback, fallbackPerQuery, frontier, report); err != nil {
		return report, err
	}
	return report, nil
}

// Seed pushes the URLs proposed by sources into the frontier ahead of any
// query, subject to the same filtering and MaxURLs budget as search
// results. Source failures are recorded in report and skipped.
func (e *Executor) Seed(ctx context.Context, subject prospect.Subject, sources []prospect.SeedSource, frontier prospect.URLFrontier, report *SearchReport) {
	for _, src := range sources {
		if ctx.Err() != nil || e.full(report) {
			return
		}

		urls, err := src.Seeds(ctx, subject)
		if err != nil {
			e.logger().Warn("seed source failed", "source", src.Name(), "err", err)
			report.Errors = append(report.Errors, fmt.Sprintf("seed %s: %v", src.Name(), err))
			continue
		}
		report.Raw += len(urls)

		for _, u := range urls {
			if e.full(report) {
				break
			}
			if !e.allowed(u) {
				continue
			}
			result := prospect.SearchResult{URL: stripFragment(u), Query: src.Name()}
			if frontier.Push(result) {
				report.Results = append(report.Results, result)
			}
		}
	}
}

func (e *Executor) runStage(ctx context.Context, engine prospect.SearchEngine, queries []string, perQuery int, frontier prospect.URLFrontier, report *SearchReport) error {
	for _, q := range queries {
		if ctx.Err() != nil || e.full(report) {
			return nil
		}

		if e.Limiter != nil {
			if err := e.Limiter.Wait(ctx, engine.Name()); err != nil {
				return nil
			}
		}

		urls, err := engine.Search(ctx, q, perQuery)
		if err != nil {
			if prospect.ErrorCode(err) == prospect.EUNAVAILABLE {
				return err
			}
			e.logger().Warn("query failed", "engine", engine.Name(), "query", q, "err", err)
			report.Errors = append(report.Errors, fmt.Sprintf("search %q: %v", q, err))
			continue
		}

		// The cap applies to URLs that pass the filter, so a page of
		// denylisted links ahead of the organic results costs nothing.
		taken := 0
		for _, u := range urls {
			if taken >= perQuery || e.full(report) {
				break
			}
			if !e.allowed(u) {
				continue
			}
			taken++
			result := prospect.SearchResult{URL: stripFragment(u), Query: q}
			if frontier.Push(result) {
				report.Results = append(report.Results, result)
			}
		}
		report.Raw += taken
	}
	return nil
}

func (e *Executor) full(report *SearchReport) bool {
	return e.MaxURLs > 0 && len(report.Results) >= e.MaxURLs
}

// allowed reports whether u is an http(s) URL on a host outside the denylist.
func (e *Executor) allowed(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return false
	}

	denylist := e.Denylist
	if denylist == nil {
		denylist = DefaultDenylist
	}
	for _, d := range denylist {
		if host == d || strings.HasSuffix(host, "."+d) {
			return false
		}
	}
	return true
}

func (e *Executor) logger() *slog.Logger {
	return orDiscard(e.Logger)
}
