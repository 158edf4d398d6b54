// Package pipeline runs contact searches.
// It plans queries for a subject, executes them against a search engine,
// harvests the resulting pages, synthesizes candidate contacts and merges
// them with candidates from lookup producers.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/prospect"
	"golang.org/x/sync/errgroup"
)

// Run budgets.
const (
	DefaultMaxURLs     = 100
	DefaultMaxResults  = 50
	DefaultConcurrency = 1
)

// RendererFactory builds the renderer owned by one run.
type RendererFactory func(ctx context.Context) (prospect.Renderer, error)

// EngineFactory builds the search engine for one run. Engines that render
// result pages use the run's renderer.
type EngineFactory func(r prospect.Renderer) (prospect.SearchEngine, error)

// Pipeline finds contacts for one subject per Run.
type Pipeline struct {
	Renderers RendererFactory
	Engines   EngineFactory

	// FallbackEngine runs the fallback stage when set.
	FallbackEngine prospect.SearchEngine

	// Seeds propose pages that are queued ahead of search results.
	Seeds []prospect.SeedSource

	Text    prospect.TextExtractor
	Hints   []prospect.HintExtractor
	Lookups []prospect.Lookup

	Planner *Planner
	Weights prospect.Weights

	// Tags are added to every page-derived candidate.
	Tags []string

	Concurrency int
	MaxURLs     int
	MaxResults  int

	// QueryLimiter paces queries per engine. Defaults to DefaultQueryPause.
	QueryLimiter prospect.DomainLimiter
	// HostLimiter paces harvests per host. Defaults to DefaultHostPause.
	HostLimiter prospect.DomainLimiter

	RetryDelays []time.Duration
	Logger      *slog.Logger
}

// Result holds the outcome of a run. It carries partial results when the
// run aborted.
type Result struct {
	Contacts []*prospect.Contact

	// TotalFound is the number of distinct contacts before the result cap.
	TotalFound int

	// Errors holds diagnostics for failed queries, lookups and harvests.
	Errors []string

	// URLs is the number of URLs queued for harvesting.
	URLs int

	// Harvested is the number of pages rendered successfully.
	Harvested int

	UsedFallback bool
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// harvestResult holds the outcome of harvesting a single URL.
type harvestResult struct {
	url        string
	candidates []*prospect.Contact
	err        error
}

// Run searches for subject and returns the aggregated contacts. The
// reporter, if provided, is notified of the run lifecycle; progress, if
// provided, receives harvest events.
//
// Per-query, per-lookup and per-URL failures are recorded in the result and
// the run continues. A renderer that cannot be acquired (EUNAVAILABLE)
// aborts the run with an error and the partial result.
func (p *Pipeline) Run(ctx context.Context, subject prospect.Subject, reporter prospect.JobReporter, progress ProgressFunc) (*Result, error) {
	if err := subject.Validate(); err != nil {
		return nil, err
	}
	logger := orDiscard(p.Logger)
	result := &Result{}

	// Lifecycle reports outlive cancellation so an interrupted run still
	// leaves its job in a terminal state.
	reportCtx := context.WithoutCancel(ctx)
	fail := func(err error) (*Result, error) {
		result.Errors = append(result.Errors, err.Error())
		if reporter != nil {
			if rerr := reporter.OnFail(reportCtx, result.Errors); rerr != nil {
				logger.Error("report failure", "err", rerr)
			}
		}
		return result, err
	}

	if reporter != nil {
		if err := reporter.OnStart(ctx); err != nil {
			return fail(fmt.Errorf("report start: %w", err))
		}
	}

	renderer, err := p.Renderers(ctx)
	if err != nil {
		return fail(err)
	}
	defer renderer.Close()

	engine, err := p.Engines(renderer)
	if err != nil {
		return fail(err)
	}

	candidates := p.runLookups(ctx, subject, result)

	planner := p.Planner
	if planner == nil {
		planner = &Planner{}
	}
	maxURLs := orDefault(p.MaxURLs, DefaultMaxURLs)
	maxResults := orDefault(p.MaxResults, DefaultMaxResults)

	queryLimiter := p.QueryLimiter
	if queryLimiter == nil {
		queryLimiter = NewDomainLimiter(DefaultQueryPause)
	}
	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	executor := &Executor{
		Engine:         engine,
		FallbackEngine: p.FallbackEngine,
		Limiter:        queryLimiter,
		MaxURLs:        maxURLs,
		Logger:         logger,
	}
	seeded := &SearchReport{}
	executor.Seed(ctx, subject, p.Seeds, frontier, seeded)
	result.Errors = append(result.Errors, seeded.Errors...)

	if remaining := maxURLs - len(seeded.Results); remaining > 0 {
		executor.MaxURLs = remaining
		report, err := executor.Execute(ctx, planner.Plan(subject), frontier)
		if report != nil {
			result.Errors = append(result.Errors, report.Errors...)
			result.UsedFallback = report.UsedFallback
		}
		if err != nil {
			return fail(err)
		}
	}

	var queue []prospect.SearchResult
	for len(queue) < maxURLs {
		r, ok := frontier.Pop()
		if !ok {
			break
		}
		queue = append(queue, r)
	}
	result.URLs = len(queue)

	pageCandidates, err := p.harvest(ctx, renderer, queue, len(candidates), maxResults, result, progress)
	candidates = append(candidates, pageCandidates...)
	if err != nil {
		return fail(err)
	}

	result.Contacts, result.TotalFound = Aggregate(candidates, maxResults)
	logger.Info("run finished",
		"subject", subject.String(),
		"urls", result.URLs,
		"harvested", result.Harvested,
		"candidates", len(candidates),
		"contacts", len(result.Contacts),
		"errors", len(result.Errors))

	if reporter != nil {
		if err := reporter.OnComplete(reportCtx, result.Contacts, result.TotalFound, result.Errors); err != nil {
			return fail(fmt.Errorf("report completion: %w", err))
		}
	}
	return result, nil
}

// runLookups runs every lookup concurrently and returns their candidates in
// lookup order. Failures are recorded in result.
func (p *Pipeline) runLookups(ctx context.Context, subject prospect.Subject, result *Result) []*prospect.Contact {
	if len(p.Lookups) == 0 {
		return nil
	}

	found := make([][]prospect.LookupResult, len(p.Lookups))
	errs := make([]error, len(p.Lookups))

	var g errgroup.Group
	for i, l := range p.Lookups {
		g.Go(func() error {
			found[i], errs[i] = l.Lookup(ctx, subject)
			return nil
		})
	}
	_ = g.Wait()

	var candidates []*prospect.Contact
	for i, l := range p.Lookups {
		if errs[i] != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("lookup %s: %v", l.Name(), errs[i]))
			continue
		}
		for _, r := range found[i] {
			c := contactFromLookup(subject, l.Name(), r)
			if c.Email == "" && c.Phone == "" {
				continue
			}
			candidates = append(candidates, c)
		}
	}
	return candidates
}

// harvest renders queued URLs with bounded concurrency and synthesizes
// candidates from each distinct page. No new harvest starts once
// maxResults candidates exist; started harvests finish. Results are
// collected by queue position.
func (p *Pipeline) harvest(ctx context.Context, renderer prospect.Renderer, queue []prospect.SearchResult, existing, maxResults int, result *Result, progress ProgressFunc) ([]*prospect.Contact, error) {
	hostLimiter := p.HostLimiter
	if hostLimiter == nil {
		hostLimiter = NewDomainLimiter(DefaultHostPause)
	}
	harvester := &Harvester{
		Renderer:    renderer,
		Text:        p.Text,
		Hints:       p.Hints,
		Limiter:     hostLimiter,
		RetryDelays: p.RetryDelays,
		Logger:      p.Logger,
	}
	synthesizer := &Synthesizer{Weights: p.Weights, Tags: p.Tags}

	var (
		found     atomic.Int64
		completed atomic.Int64
		hashMu    sync.Mutex
		hashes    = make(map[uint64]struct{})
		progMu    sync.Mutex
	)
	found.Store(int64(existing))
	total := len(queue)

	notify := func(event ProgressEvent) {
		if progress == nil {
			return
		}
		progMu.Lock()
		defer progMu.Unlock()
		progress(event)
	}
	notify(ProgressEvent{Type: ProgressStarted, Total: total})

	results := make([]harvestResult, len(queue))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(orDefault(p.Concurrency, DefaultConcurrency))

	for i, item := range queue {
		if gctx.Err() != nil || found.Load() >= int64(maxResults) {
			break
		}
		g.Go(func() error {
			// The budget may have been reached while waiting for a slot.
			if found.Load() >= int64(maxResults) {
				return nil
			}
			r := &results[i]
			r.url = item.URL

			page, err := harvester.Harvest(gctx, item.URL, item.Query)
			if err != nil {
				if prospect.ErrorCode(err) == prospect.EUNAVAILABLE {
					return err
				}
				r.err = err
				notify(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Add(1)),
					Total:     total,
					URL:       item.URL,
					Error:     err,
				})
				return nil
			}

			hashMu.Lock()
			h := xxhash.Sum64String(page.Text)
			_, dup := hashes[h]
			hashes[h] = struct{}{}
			hashMu.Unlock()

			if !dup {
				r.candidates = synthesizer.Synthesize(page)
				found.Add(int64(len(r.candidates)))
			}
			notify(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Add(1)),
				Total:     total,
				URL:       item.URL,
			})
			return nil
		})
	}
	err := g.Wait()

	var candidates []*prospect.Contact
	for _, r := range results {
		if r.url == "" {
			continue
		}
		if r.err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("harvest %s: %v", r.url, r.err))
			continue
		}
		candidates = append(candidates, r.candidates...)
	}
	result.Harvested = int(completed.Load()) - countFailed(results)

	notify(ProgressEvent{Type: ProgressFinished, Completed: int(completed.Load()), Total: total})
	return candidates, err
}

func countFailed(results []harvestResult) int {
	n := 0
	for _, r := range results {
		if r.err != nil {
			n++
		}
	}
	return n
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func orDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
