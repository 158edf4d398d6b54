package prospect

import "context"

// FindOptions adjusts a single contact search.
type FindOptions struct {
	// MaxResults caps the returned contacts. Zero uses the finder default.
	MaxResults int

	// Founder biases queries toward founder and startup sources.
	Founder bool
}

// Finder runs contact searches and records each one as a job.
type Finder interface {
	// Find searches for subject and returns the job describing the run
	// with the contacts it produced. A run that finds nothing is not an
	// error. When the run aborts, the failed job is returned with the error.
	Find(ctx context.Context, subject Subject, opts FindOptions) (*Job, []*Contact, error)
}
