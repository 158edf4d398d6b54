package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/prospect"
	"github.com/fwojciec/prospect/pipeline"
)

// Highlights view limits.
const (
	highlightMinConfidence = 0.7
	highlightCount         = 5
)

// Run executes the find command. A completed run exits zero even when it
// found nothing.
func (c *FindCmd) Run(deps *Dependencies) error {
	subject := prospect.Subject{Name: c.Name, Company: c.Company, Domain: c.Domain}
	if err := subject.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prospect.ErrorMessage(err))
		return err
	}

	job, contacts, err := deps.Finder.Find(deps.Ctx, subject, prospect.FindOptions{
		MaxResults: c.MaxResults,
		Founder:    c.Founder,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prospect.ErrorMessage(err))
		if prospect.ErrorCode(err) == prospect.EUNAVAILABLE {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed, or use --engine=static")
		}
		return err
	}

	shown := contacts
	if c.Highlights {
		shown = prospect.Highlights(contacts, highlightMinConfidence, highlightCount)
	}

	if c.JSON {
		return writeJSON(deps.Stdout, map[string]any{
			"jobId":      job.ID,
			"contacts":   nonNil(shown),
			"totalFound": job.TotalFound,
			"errors":     nonNil(job.Errors),
		})
	}

	if len(shown) == 0 {
		fmt.Fprintf(deps.Stdout, "No contacts found for %q.\n", subject.String())
	}
	for i, contact := range shown {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		printContact(deps.Stdout, contact)
	}

	fmt.Fprintf(deps.Stdout, "\nFound %d contacts (%d distinct", len(contacts), job.TotalFound)
	if len(job.Errors) > 0 {
		fmt.Fprintf(deps.Stdout, ", %d errors", len(job.Errors))
	}
	fmt.Fprintln(deps.Stdout, ")")
	if job.ID != "" {
		fmt.Fprintf(deps.Stdout, "Job %s\n", job.ID)
	}
	return nil
}

// printContact writes one contact as an indented block.
func printContact(w io.Writer, c *prospect.Contact) {
	fmt.Fprintf(w, "%s  %s\n", c.FullName(), pipeline.FormatConfidence(c.Confidence))
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "  %-9s %s\n", label+":", value)
		}
	}
	field("Email", c.Email)
	field("Phone", c.Phone)
	field("Company", c.Company)
	field("Title", c.Title)
	field("Location", c.Location)
	field("LinkedIn", c.LinkedInURL)
	field("Source", pipeline.TruncateURL(c.Source, 60))
	field("Tags", strings.Join(c.Tags, ", "))
	field("ID", c.ID)
}

// progressPrinter reports harvest progress on w.
func progressPrinter(w io.Writer) pipeline.ProgressFunc {
	return func(event pipeline.ProgressEvent) {
		switch event.Type {
		case pipeline.ProgressStarted:
			fmt.Fprintf(w, "  Harvesting %d URLs\n", event.Total)
		case pipeline.ProgressFailed:
			fmt.Fprintf(w, "  skip %s: %v\n", pipeline.TruncateURL(event.URL, 60), event.Error)
		case pipeline.ProgressCompleted, pipeline.ProgressFinished:
			// Summary printed after the run completes
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// nonNil keeps empty lists as [] in JSON output.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
