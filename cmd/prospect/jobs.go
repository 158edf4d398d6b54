package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/prospect"
)

// Run executes the jobs command.
func (c *JobsCmd) Run(deps *Dependencies) error {
	jobs, err := deps.Jobs.FindJobs(deps.Ctx, prospect.JobFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prospect.ErrorMessage(err))
		return err
	}

	if len(jobs) == 0 {
		fmt.Fprintln(deps.Stdout, "No jobs found. Use 'prospect find' to start one.")
		return nil
	}

	for _, j := range jobs {
		fmt.Fprintf(deps.Stdout, "%s  %-9s  %3d  %s  %s\n",
			j.ID, j.Status, j.Results, j.CreatedAt.Local().Format(time.DateTime), j.Query)
	}

	return nil
}

// Run executes the job command.
func (c *JobCmd) Run(deps *Dependencies) error {
	job, err := deps.Jobs.FindJobByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prospect.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, job)
	}

	printJob(deps.Stdout, job)
	return nil
}

func printJob(w io.Writer, j *prospect.Job) {
	fmt.Fprintf(w, "Job:        %s\n", j.ID)
	fmt.Fprintf(w, "Query:      %s\n", j.Query)
	fmt.Fprintf(w, "Status:     %s\n", j.Status)
	fmt.Fprintf(w, "Results:    %d of %d found\n", j.Results, j.TotalFound)
	fmt.Fprintf(w, "Created:    %s\n", j.CreatedAt.Local().Format(time.DateTime))
	if j.StartedAt != nil {
		fmt.Fprintf(w, "Started:    %s\n", j.StartedAt.Local().Format(time.DateTime))
	}
	if j.CompletedAt != nil {
		fmt.Fprintf(w, "Completed:  %s\n", j.CompletedAt.Local().Format(time.DateTime))
		if j.StartedAt != nil {
			fmt.Fprintf(w, "Duration:   %s\n", j.CompletedAt.Sub(*j.StartedAt).Round(time.Second))
		}
	}
	if len(j.Errors) > 0 {
		fmt.Fprintf(w, "Errors:\n")
		for _, e := range j.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
	}
}
