package prometheus

import (
	"context"

	"github.com/fwojciec/prospect"
)

var (
	_ prospect.Renderer     = (*InstrumentedRenderer)(nil)
	_ prospect.SearchEngine = (*InstrumentedSearchEngine)(nil)
	_ prospect.Lookup       = (*InstrumentedLookup)(nil)
	_ prospect.JobReporter  = (*InstrumentedReporter)(nil)
)

// InstrumentedRenderer counts renders by status.
type InstrumentedRenderer struct {
	next    prospect.Renderer
	metrics *Metrics
}

// NewInstrumentedRenderer wraps next.
func NewInstrumentedRenderer(next prospect.Renderer, m *Metrics) *InstrumentedRenderer {
	return &InstrumentedRenderer{next: next, metrics: m}
}

// Render delegates to the wrapped renderer.
func (r *InstrumentedRenderer) Render(ctx context.Context, url string) (string, error) {
	html, err := r.next.Render(ctx, url)
	r.metrics.ObserveRender(err)
	return html, err
}

// Close delegates to the wrapped renderer.
func (r *InstrumentedRenderer) Close() error {
	return r.next.Close()
}

// InstrumentedSearchEngine counts queries by engine and status.
type InstrumentedSearchEngine struct {
	next    prospect.SearchEngine
	metrics *Metrics
}

// NewInstrumentedSearchEngine wraps next.
func NewInstrumentedSearchEngine(next prospect.SearchEngine, m *Metrics) *InstrumentedSearchEngine {
	return &InstrumentedSearchEngine{next: next, metrics: m}
}

// Name returns the wrapped engine's name.
func (e *InstrumentedSearchEngine) Name() string {
	return e.next.Name()
}

// Search delegates to the wrapped engine.
func (e *InstrumentedSearchEngine) Search(ctx context.Context, query string, want int) ([]string, error) {
	urls, err := e.next.Search(ctx, query, want)
	e.metrics.ObserveQuery(e.next.Name(), err)
	return urls, err
}

// InstrumentedLookup counts lookups by source and status.
type InstrumentedLookup struct {
	next    prospect.Lookup
	metrics *Metrics
}

// NewInstrumentedLookup wraps next.
func NewInstrumentedLookup(next prospect.Lookup, m *Metrics) *InstrumentedLookup {
	return &InstrumentedLookup{next: next, metrics: m}
}

// Name returns the wrapped lookup's name.
func (l *InstrumentedLookup) Name() string {
	return l.next.Name()
}

// Lookup delegates to the wrapped lookup.
func (l *InstrumentedLookup) Lookup(ctx context.Context, subject prospect.Subject) ([]prospect.LookupResult, error) {
	results, err := l.next.Lookup(ctx, subject)
	l.metrics.ObserveLookup(l.next.Name(), err)
	return results, err
}

// InstrumentedReporter counts job transitions and final contacts. A nil
// next reporter is allowed.
type InstrumentedReporter struct {
	next    prospect.JobReporter
	metrics *Metrics
}

// NewInstrumentedReporter wraps next.
func NewInstrumentedReporter(next prospect.JobReporter, m *Metrics) *InstrumentedReporter {
	return &InstrumentedReporter{next: next, metrics: m}
}

// OnStart records a running job.
func (r *InstrumentedReporter) OnStart(ctx context.Context) error {
	r.metrics.ObserveJob(prospect.JobRunning)
	if r.next == nil {
		return nil
	}
	return r.next.OnStart(ctx)
}

// OnComplete records a completed job and its contacts by origin.
func (r *InstrumentedReporter) OnComplete(ctx context.Context, contacts []*prospect.Contact, totalFound int, errs []string) error {
	r.metrics.ObserveJob(prospect.JobCompleted)
	var lookup, scraped int
	for _, c := range contacts {
		if c.Tags.Has(prospect.TagLookup) {
			lookup++
		} else {
			scraped++
		}
	}
	r.metrics.ObserveCandidates(prospect.TagLookup, lookup)
	r.metrics.ObserveCandidates(prospect.TagScraped, scraped)
	if r.next == nil {
		return nil
	}
	return r.next.OnComplete(ctx, contacts, totalFound, errs)
}

// OnFail records a failed job.
func (r *InstrumentedReporter) OnFail(ctx context.Context, errs []string) error {
	r.metrics.ObserveJob(prospect.JobFailed)
	if r.next == nil {
		return nil
	}
	return r.next.OnFail(ctx, errs)
}
