package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/prospect"
	main "github.com/fwojciec/prospect/cmd/prospect"
	"github.com/fwojciec/prospect/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleContacts() []*prospect.Contact {
	return []*prospect.Contact{
		{
			ID: "c-1", FirstName: "Jane", LastName: "Doe", Email: "jane.doe@acme.com",
			Company: "Acme Corp", Tags: prospect.NewTags(prospect.TagLookup),
			Source: "Hunter.io", Confidence: 0.8,
		},
		{
			ID: "c-2", FirstName: "Unknown", LastName: "Contact", Phone: "555-123-4567",
			Tags:   prospect.NewTags(prospect.TagScraped, prospect.TagNoName),
			Source: "https://acme.com/contact", Confidence: 0.5,
		},
	}
}

func TestFindCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints contacts and summary", func(t *testing.T) {
		t.Parallel()

		var gotSubject prospect.Subject
		var gotOpts prospect.FindOptions
		finder := &mock.Finder{
			FindFn: func(_ context.Context, s prospect.Subject, opts prospect.FindOptions) (*prospect.Job, []*prospect.Contact, error) {
				gotSubject, gotOpts = s, opts
				return &prospect.Job{ID: "job-1", Status: prospect.JobCompleted, TotalFound: 2}, sampleContacts(), nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Finder: finder}

		cmd := &main.FindCmd{Name: "Jane Doe", Company: "Acme Corp", MaxResults: 10, Founder: true}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, prospect.Subject{Name: "Jane Doe", Company: "Acme Corp"}, gotSubject)
		assert.Equal(t, prospect.FindOptions{MaxResults: 10, Founder: true}, gotOpts)

		output := stdout.String()
		assert.Contains(t, output, "Jane Doe  80%")
		assert.Contains(t, output, "jane.doe@acme.com")
		assert.Contains(t, output, "555-123-4567")
		assert.Contains(t, output, "scraped, no-name")
		assert.Contains(t, output, "Found 2 contacts (2 distinct)")
		assert.Contains(t, output, "Job job-1")
	})

	t.Run("highlights keep only confident contacts", func(t *testing.T) {
		t.Parallel()

		finder := &mock.Finder{
			FindFn: func(context.Context, prospect.Subject, prospect.FindOptions) (*prospect.Job, []*prospect.Contact, error) {
				return &prospect.Job{Status: prospect.JobCompleted, TotalFound: 2}, sampleContacts(), nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Finder: finder}

		cmd := &main.FindCmd{Name: "Jane Doe", Highlights: true}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "jane.doe@acme.com")
		assert.NotContains(t, stdout.String(), "555-123-4567")
	})

	t.Run("prints JSON", func(t *testing.T) {
		t.Parallel()

		finder := &mock.Finder{
			FindFn: func(context.Context, prospect.Subject, prospect.FindOptions) (*prospect.Job, []*prospect.Contact, error) {
				return &prospect.Job{ID: "job-1", TotalFound: 2}, sampleContacts(), nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Finder: finder}

		cmd := &main.FindCmd{Name: "Jane Doe", JSON: true}
		require.NoError(t, cmd.Run(deps))

		var out struct {
			JobID      string              `json:"jobId"`
			Contacts   []*prospect.Contact `json:"contacts"`
			TotalFound int                 `json:"totalFound"`
			Errors     []string            `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
		assert.Equal(t, "job-1", out.JobID)
		assert.Len(t, out.Contacts, 2)
		assert.Equal(t, 2, out.TotalFound)
		assert.NotNil(t, out.Errors)
	})

	t.Run("zero results is not an error", func(t *testing.T) {
		t.Parallel()

		finder := &mock.Finder{
			FindFn: func(context.Context, prospect.Subject, prospect.FindOptions) (*prospect.Job, []*prospect.Contact, error) {
				return &prospect.Job{Status: prospect.JobCompleted}, nil, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Finder: finder}

		cmd := &main.FindCmd{Name: "Nobody Atall"}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), `No contacts found for "Nobody Atall"`)
	})

	t.Run("returns error with hint when renderer is unavailable", func(t *testing.T) {
		t.Parallel()

		finder := &mock.Finder{
			FindFn: func(context.Context, prospect.Subject, prospect.FindOptions) (*prospect.Job, []*prospect.Contact, error) {
				return &prospect.Job{Status: prospect.JobFailed}, nil, prospect.Errorf(prospect.EUNAVAILABLE, "browser unavailable")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Finder: finder}

		cmd := &main.FindCmd{Name: "Jane Doe"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: browser unavailable")
		assert.Contains(t, stderr.String(), "Hint:")
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Finder: &mock.Finder{}}

		err := (&main.FindCmd{Name: "  "}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, prospect.EINVALID, prospect.ErrorCode(err))
	})
}
