package mock

import (
	"context"

	"github.com/fwojciec/prospect"
)

var (
	_ prospect.JobService  = (*JobService)(nil)
	_ prospect.JobReporter = (*JobReporter)(nil)
)

// JobService is a mock implementation of prospect.JobService.
type JobService struct {
	CreateJobFn   func(ctx context.Context, job *prospect.Job) error
	FindJobByIDFn func(ctx context.Context, id string) (*prospect.Job, error)
	FindJobsFn    func(ctx context.Context, filter prospect.JobFilter) ([]*prospect.Job, error)
	UpdateJobFn   func(ctx context.Context, id string, upd prospect.JobUpdate) (*prospect.Job, error)
	DeleteJobFn   func(ctx context.Context, id string) error
}

func (s *JobService) CreateJob(ctx context.Context, job *prospect.Job) error {
	return s.CreateJobFn(ctx, job)
}

func (s *JobService) FindJobByID(ctx context.Context, id string) (*prospect.Job, error) {
	return s.FindJobByIDFn(ctx, id)
}

func (s *JobService) FindJobs(ctx context.Context, filter prospect.JobFilter) ([]*prospect.Job, error) {
	return s.FindJobsFn(ctx, filter)
}

func (s *JobService) UpdateJob(ctx context.Context, id string, upd prospect.JobUpdate) (*prospect.Job, error) {
	return s.UpdateJobFn(ctx, id, upd)
}

func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	return s.DeleteJobFn(ctx, id)
}

// JobReporter is a mock implementation of prospect.JobReporter.
type JobReporter struct {
	OnStartFn    func(ctx context.Context) error
	OnCompleteFn func(ctx context.Context, contacts []*prospect.Contact, totalFound int, errs []string) error
	OnFailFn     func(ctx context.Context, errs []string) error
}

func (r *JobReporter) OnStart(ctx context.Context) error {
	return r.OnStartFn(ctx)
}

func (r *JobReporter) OnComplete(ctx context.Context, contacts []*prospect.Contact, totalFound int, errs []string) error {
	return r.OnCompleteFn(ctx, contacts, totalFound, errs)
}

func (r *JobReporter) OnFail(ctx context.Context, errs []string) error {
	return r.OnFailFn(ctx, errs)
}

var _ prospect.Finder = (*Finder)(nil)

// Finder is a mock implementation of prospect.Finder.
type Finder struct {
	FindFn func(ctx context.Context, subject prospect.Subject, opts prospect.FindOptions) (*prospect.Job, []*prospect.Contact, error)
}

func (f *Finder) Find(ctx context.Context, subject prospect.Subject, opts prospect.FindOptions) (*prospect.Job, []*prospect.Contact, error) {
	return f.FindFn(ctx, subject, opts)
}
