package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/prospect"
)

var _ prospect.JobReporter = (*JobRecorder)(nil)

// JobRecorder persists the lifecycle of one run: job status transitions go
// through Jobs and the final contacts are saved through Contacts, linked to
// the job.
type JobRecorder struct {
	Jobs     prospect.JobService
	Contacts prospect.ContactService
	JobID    string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

func (r *JobRecorder) OnStart(ctx context.Context) error {
	status := prospect.JobRunning
	now := r.now()
	_, err := r.Jobs.UpdateJob(ctx, r.JobID, prospect.JobUpdate{
		Status:    &status,
		StartedAt: &now,
	})
	return err
}

func (r *JobRecorder) OnComplete(ctx context.Context, contacts []*prospect.Contact, totalFound int, errs []string) error {
	for _, c := range contacts {
		c.JobID = r.JobID
		if err := r.Contacts.CreateContact(ctx, c); err != nil {
			return fmt.Errorf("save contact: %w", err)
		}
	}

	status := prospect.JobCompleted
	results := len(contacts)
	now := r.now()
	_, err := r.Jobs.UpdateJob(ctx, r.JobID, prospect.JobUpdate{
		Status:      &status,
		Results:     &results,
		TotalFound:  &totalFound,
		Errors:      errs,
		CompletedAt: &now,
	})
	return err
}

func (r *JobRecorder) OnFail(ctx context.Context, errs []string) error {
	status := prospect.JobFailed
	now := r.now()
	_, err := r.Jobs.UpdateJob(ctx, r.JobID, prospect.JobUpdate{
		Status:      &status,
		Errors:      errs,
		CompletedAt: &now,
	})
	return err
}

func (r *JobRecorder) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
