package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/prospect"
)

// Ensure LoggingLookup implements prospect.Lookup.
var _ prospect.Lookup = (*LoggingLookup)(nil)

// LoggingLookup wraps a Lookup with logging.
type LoggingLookup struct {
	next   prospect.Lookup
	logger *slog.Logger
}

// NewLoggingLookup creates a new LoggingLookup.
func NewLoggingLookup(next prospect.Lookup, logger *slog.Logger) *LoggingLookup {
	return &LoggingLookup{next: next, logger: logger}
}

// Name returns the wrapped lookup's name.
func (l *LoggingLookup) Name() string {
	return l.next.Name()
}

// Lookup delegates to the wrapped lookup and logs the result count.
func (l *LoggingLookup) Lookup(ctx context.Context, subject prospect.Subject) (results []prospect.LookupResult, err error) {
	defer func(begin time.Time) {
		l.logger.Info("lookup",
			"source", l.next.Name(),
			"subject", subject.String(),
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Lookup(ctx, subject)
}
