package main

import (
	"context"
	"io"

	"github.com/fwojciec/prospect"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Contacts prospect.ContactService
	Jobs     prospect.JobService
	Finder   prospect.Finder
	Server   Server
}

// Server is the API server started by the serve command.
type Server interface {
	ListenAndServe(ctx context.Context, addr string) error
}

// Globals are flags shared by every command. Each can also be set from the
// environment or the JSON config file.
type Globals struct {
	DB      string `name:"db" env:"PROSPECT_DB" help:"SQLite database path (default ~/.prospect/prospect.db)"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	GoogleAPIKey   string `name:"google-api-key" env:"GOOGLE_SEARCH_API_KEY" help:"Google Custom Search API key"`
	GoogleEngineID string `name:"google-engine-id" env:"GOOGLE_SEARCH_ENGINE_ID" help:"Google Custom Search engine ID"`
	HunterAPIKey   string `name:"hunter-api-key" env:"HUNTER_API_KEY" help:"Hunter.io API key"`
	GeminiAPIKey   string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Globals `embed:""`

	Find          FindCmd          `cmd:"" help:"Find contact details for a person"`
	Jobs          JobsCmd          `cmd:"" help:"List recent search jobs"`
	Job           JobCmd           `cmd:"" help:"Show a search job"`
	Contacts      ContactsCmd      `cmd:"" help:"List saved contacts"`
	DeleteContact DeleteContactCmd `cmd:"" name:"delete-contact" help:"Delete a saved contact"`
	Serve         ServeCmd         `cmd:"" help:"Serve the JSON API"`
}

// PipelineFlags configure how searches run.
type PipelineFlags struct {
	MaxURLs     int    `name:"max-urls" default:"100" help:"Maximum URLs to harvest"`
	Concurrency int    `short:"c" default:"1" help:"Concurrent page harvests"`
	Engine      string `enum:"browser,customsearch,static" default:"browser" help:"Search engine: browser, customsearch or static"`
	Text        string `enum:"visible,markdown,main,readable" default:"visible" help:"Page text: visible, markdown, main or readable"`
	NoSitemap   bool   `name:"no-sitemap" help:"Do not seed pages from the company domain's sitemap"`
}

// FindCmd is the "find" subcommand.
type FindCmd struct {
	PipelineFlags `embed:""`

	Name       string `arg:"" help:"Full name of the person"`
	Company    string `help:"Company or organization"`
	Domain     string `help:"Company web domain"`
	MaxResults int    `name:"max-results" default:"50" help:"Maximum contacts to return"`
	Founder    bool   `help:"Bias queries toward founder sources"`
	Highlights bool   `help:"Show only the best few contacts"`
	NoSave     bool   `name:"no-save" help:"Do not record the job or contacts"`
	JSON       bool   `name:"json" help:"Print contacts as JSON"`
}

// JobsCmd is the "jobs" subcommand.
type JobsCmd struct {
	Limit int `default:"10" help:"Number of jobs to show"`
}

// JobCmd is the "job" subcommand.
type JobCmd struct {
	ID   string `arg:"" help:"Job ID"`
	JSON bool   `name:"json" help:"Print as JSON"`
}

// ContactsCmd is the "contacts" subcommand.
type ContactsCmd struct {
	Query    string `short:"q" help:"Match name, company, title or email"`
	Company  string `help:"Filter by company"`
	Location string `help:"Filter by location"`
	JobID    string `name:"job" help:"Filter by job ID"`
	HasEmail bool   `name:"has-email" help:"Only contacts with an email"`
	HasPhone bool   `name:"has-phone" help:"Only contacts with a phone"`
	Limit    int    `default:"50" help:"Page size"`
	Offset   int    `default:"0" help:"Page offset"`
	JSON     bool   `name:"json" help:"Print as JSON"`
	Export   string `type:"path" help:"Write the listed contacts as markdown cards to this directory"`
}

// DeleteContactCmd is the "delete-contact" subcommand.
type DeleteContactCmd struct {
	ID string `arg:"" help:"Contact ID"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	PipelineFlags `embed:""`

	Addr string `default:"127.0.0.1:8080" help:"Listen address"`
}
