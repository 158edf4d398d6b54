package pipeline

import (
	"context"
	"time"

	"github.com/fwojciec/prospect"
)

var _ prospect.Finder = (*Finder)(nil)

// Finder runs a pipeline per request and records it as a job. Without Jobs
// the job is kept in memory only and nothing is saved.
type Finder struct {
	Pipeline *Pipeline
	Jobs     prospect.JobService
	Contacts prospect.ContactService

	Progress ProgressFunc

	// WrapReporter decorates each run's job reporter when set. The reporter
	// passed in is nil when jobs are not persisted.
	WrapReporter func(prospect.JobReporter) prospect.JobReporter
}

// Find creates a pending job for subject, runs the pipeline and returns the
// job in its final state.
func (f *Finder) Find(ctx context.Context, subject prospect.Subject, opts prospect.FindOptions) (*prospect.Job, []*prospect.Contact, error) {
	if err := subject.Validate(); err != nil {
		return nil, nil, err
	}

	job := &prospect.Job{Query: subject.String(), Status: prospect.JobPending}
	var reporter prospect.JobReporter
	if f.Jobs != nil {
		if err := f.Jobs.CreateJob(ctx, job); err != nil {
			return nil, nil, err
		}
		reporter = &JobRecorder{Jobs: f.Jobs, Contacts: f.Contacts, JobID: job.ID}
	}
	if f.WrapReporter != nil {
		reporter = f.WrapReporter(reporter)
	}

	p := *f.Pipeline
	if opts.MaxResults > 0 {
		p.MaxResults = opts.MaxResults
	}
	if opts.Founder {
		planner := Planner{}
		if f.Pipeline.Planner != nil {
			planner = *f.Pipeline.Planner
		}
		planner.Founder = true
		p.Planner = &planner
		p.Tags = prospect.NewTags(p.Tags...).Add(prospect.TagFounderSearch)
	}

	started := time.Now()
	job.StartedAt = &started
	result, err := p.Run(ctx, subject, reporter, f.Progress)
	completed := time.Now()
	job.CompletedAt = &completed
	if result != nil {
		job.Errors = result.Errors
	}
	if err != nil {
		job.Status = prospect.JobFailed
		if result == nil {
			job.Errors = append(job.Errors, err.Error())
		}
		return f.reload(ctx, job), nil, err
	}

	job.Status = prospect.JobCompleted
	job.Results = len(result.Contacts)
	job.TotalFound = result.TotalFound
	return f.reload(ctx, job), result.Contacts, nil
}

// reload returns the stored version of job when jobs are persisted.
func (f *Finder) reload(ctx context.Context, job *prospect.Job) *prospect.Job {
	if f.Jobs == nil || job.ID == "" {
		return job
	}
	stored, err := f.Jobs.FindJobByID(ctx, job.ID)
	if err != nil {
		return job
	}
	return stored
}
