package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/prospect"
)

// Ensure LoggingSearchEngine implements prospect.SearchEngine.
var _ prospect.SearchEngine = (*LoggingSearchEngine)(nil)

// LoggingSearchEngine wraps a SearchEngine with logging.
type LoggingSearchEngine struct {
	next   prospect.SearchEngine
	logger *slog.Logger
}

// NewLoggingSearchEngine creates a new LoggingSearchEngine.
func NewLoggingSearchEngine(next prospect.SearchEngine, logger *slog.Logger) *LoggingSearchEngine {
	return &LoggingSearchEngine{next: next, logger: logger}
}

// Name returns the wrapped engine's name.
func (e *LoggingSearchEngine) Name() string {
	return e.next.Name()
}

// Search delegates to the wrapped engine and logs the query.
func (e *LoggingSearchEngine) Search(ctx context.Context, query string, want int) (urls []string, err error) {
	defer func(begin time.Time) {
		e.logger.Info("search",
			"engine", e.next.Name(),
			"query", query,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Search(ctx, query, want)
}

var _ prospect.SeedSource = (*LoggingSeedSource)(nil)

// LoggingSeedSource wraps a SeedSource with logging.
type LoggingSeedSource struct {
	next   prospect.SeedSource
	logger *slog.Logger
}

// NewLoggingSeedSource creates a new LoggingSeedSource.
func NewLoggingSeedSource(next prospect.SeedSource, logger *slog.Logger) *LoggingSeedSource {
	return &LoggingSeedSource{next: next, logger: logger}
}

// Name returns the wrapped source's name.
func (s *LoggingSeedSource) Name() string {
	return s.next.Name()
}

// Seeds delegates to the wrapped source and logs the outcome.
func (s *LoggingSeedSource) Seeds(ctx context.Context, subject prospect.Subject) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("seeds",
			"source", s.next.Name(),
			"domain", subject.Domain,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Seeds(ctx, subject)
}
