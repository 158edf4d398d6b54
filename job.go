package prospect

import (
	"context"
	"time"
)

// JobStatus is the lifecycle state of a search job.
type JobStatus string

// Job statuses. A job moves from pending to running and ends in either
// completed or failed.
const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Valid reports whether s is a known status.
func (s JobStatus) Valid() bool {
	switch s {
	case JobPending, JobRunning, JobCompleted, JobFailed:
		return true
	}
	return false
}

// Terminal reports whether s is a final status.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// Job records one contact search run.
type Job struct {
	ID     string    `json:"id"`
	Query  string    `json:"query"`
	Status JobStatus `json:"status"`

	// Results is the number of contacts kept after aggregation.
	Results int `json:"results"`

	// TotalFound is the number of distinct contacts before the result cap.
	TotalFound int `json:"totalFound"`

	// Errors holds the diagnostics accumulated during the run.
	Errors []string `json:"errors,omitempty"`

	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Validate returns an error if the job contains invalid fields.
func (j *Job) Validate() error {
	if j.Query == "" {
		return Errorf(EINVALID, "job query required")
	}
	if j.Status != "" && !j.Status.Valid() {
		return Errorf(EINVALID, "invalid job status %q", j.Status)
	}
	return nil
}

// JobService represents a service for managing jobs.
type JobService interface {
	// CreateJob creates a new job. An empty status defaults to pending.
	CreateJob(ctx context.Context, job *Job) error

	// FindJobByID retrieves a job by ID.
	// Returns ENOTFOUND if job does not exist.
	FindJobByID(ctx context.Context, id string) (*Job, error)

	// FindJobs retrieves jobs matching the filter, newest first.
	FindJobs(ctx context.Context, filter JobFilter) ([]*Job, error)

	// UpdateJob updates an existing job.
	// Returns ENOTFOUND if job does not exist.
	UpdateJob(ctx context.Context, id string, upd JobUpdate) (*Job, error)

	// DeleteJob permanently removes a job. Contacts produced by the job
	// are kept with their job reference cleared.
	// Returns ENOTFOUND if job does not exist.
	DeleteJob(ctx context.Context, id string) error
}

// JobFilter represents a filter for FindJobs.
type JobFilter struct {
	ID     *string    `json:"id"`
	Status *JobStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// JobUpdate represents fields that can be updated on a job.
type JobUpdate struct {
	Status      *JobStatus `json:"status"`
	Results     *int       `json:"results"`
	TotalFound  *int       `json:"totalFound"`
	Errors      []string   `json:"errors"`
	StartedAt   *time.Time `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// JobReporter receives lifecycle notifications from a pipeline run.
// The reporter owns persistence; a run never reads its own past jobs.
type JobReporter interface {
	// OnStart is called once before any query is issued.
	OnStart(ctx context.Context) error

	// OnComplete is called with the final aggregated contacts when the run
	// finishes, including runs that found nothing.
	OnComplete(ctx context.Context, contacts []*Contact, totalFound int, errs []string) error

	// OnFail is called when the run aborts on a fatal error.
	OnFail(ctx context.Context, errs []string) error
}
