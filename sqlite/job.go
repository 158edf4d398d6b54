package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/prospect"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ prospect.JobService = (*JobService)(nil)

const jobColumns = `id, query, status, results, total_found, errors, started_at,
	completed_at, created_at, updated_at`

// JobService implements prospect.JobService using SQLite.
type JobService struct {
	db *DB
}

// NewJobService creates a new JobService.
func NewJobService(db *DB) *JobService {
	return &JobService{db: db}
}

// CreateJob creates a new job.
func (s *JobService) CreateJob(ctx context.Context, job *prospect.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}
	if job.Status == "" {
		job.Status = prospect.JobPending
	}

	errs, err := encodeStrings(job.Errors)
	if err != nil {
		return err
	}

	job.ID = uuid.New().String()
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO jobs (`+jobColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, job.ID, job.Query, string(job.Status), job.Results, job.TotalFound, errs,
		formatNullRFC3339(job.StartedAt), formatNullRFC3339(job.CompletedAt),
		job.CreatedAt.Format(time.RFC3339), job.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindJobByID retrieves a job by ID.
func (s *JobService) FindJobByID(ctx context.Context, id string) (*prospect.Job, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM jobs WHERE id = ?", id)

	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, prospect.Errorf(prospect.ENOTFOUND, "job not found")
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// FindJobs retrieves jobs matching the filter, newest first.
func (s *JobService) FindJobs(ctx context.Context, filter prospect.JobFilter) ([]*prospect.Job, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + jobColumns + " FROM jobs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*prospect.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// UpdateJob updates an existing job.
func (s *JobService) UpdateJob(ctx context.Context, id string, upd prospect.JobUpdate) (*prospect.Job, error) {
	job, err := s.FindJobByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil {
		job.Status = *upd.Status
	}
	if upd.Results != nil {
		job.Results = *upd.Results
	}
	if upd.TotalFound != nil {
		job.TotalFound = *upd.TotalFound
	}
	if upd.Errors != nil {
		job.Errors = upd.Errors
	}
	if upd.StartedAt != nil {
		job.StartedAt = upd.StartedAt
	}
	if upd.CompletedAt != nil {
		job.CompletedAt = upd.CompletedAt
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}

	errs, err := encodeStrings(job.Errors)
	if err != nil {
		return nil, err
	}

	job.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE jobs
		SET status = ?, results = ?, total_found = ?, errors = ?, started_at = ?,
			completed_at = ?, updated_at = ?
		WHERE id = ?
	`, string(job.Status), job.Results, job.TotalFound, errs,
		formatNullRFC3339(job.StartedAt), formatNullRFC3339(job.CompletedAt),
		job.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return job, nil
}

// DeleteJob permanently removes a job. The foreign key clears job_id on the
// job's contacts.
func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM jobs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return prospect.Errorf(prospect.ENOTFOUND, "job not found")
	}

	return nil
}

func scanJob(row scanner) (*prospect.Job, error) {
	var job prospect.Job
	var status, errs, createdAt, updatedAt string
	var startedAt, completedAt sql.NullString

	if err := row.Scan(&job.ID, &job.Query, &status, &job.Results, &job.TotalFound, &errs,
		&startedAt, &completedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	job.Status = prospect.JobStatus(status)

	var err error
	if job.Errors, err = decodeStrings(errs, "errors"); err != nil {
		return nil, err
	}
	if job.StartedAt, err = parseNullRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if job.CompletedAt, err = parseNullRFC3339(completedAt, "completed_at"); err != nil {
		return nil, err
	}
	if job.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if job.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &job, nil
}
