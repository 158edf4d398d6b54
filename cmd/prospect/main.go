package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/prospect"
	"github.com/fwojciec/prospect/gemini"
	"github.com/fwojciec/prospect/google"
	"github.com/fwojciec/prospect/goquery"
	"github.com/fwojciec/prospect/htmltomarkdown"
	prospecthttp "github.com/fwojciec/prospect/http"
	"github.com/fwojciec/prospect/hunter"
	"github.com/fwojciec/prospect/pipeline"
	"github.com/fwojciec/prospect/prometheus"
	"github.com/fwojciec/prospect/readability"
	"github.com/fwojciec/prospect/rod"
	pslog "github.com/fwojciec/prospect/slog"
	"github.com/fwojciec/prospect/sqlite"
	"github.com/fwojciec/prospect/trafilatura"
	"google.golang.org/genai"
)

// DefaultConfigPath is the optional JSON file holding flag defaults.
const DefaultConfigPath = "~/.prospect/config.json"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db and PROSPECT_DB are unset.
	DBPath string

	// JSON files consulted for flag defaults, in order.
	ConfigPaths []string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ContactService prospect.ContactService
	JobService     prospect.JobService

	// Finder replaces the pipeline-backed finder when set.
	Finder prospect.Finder
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:      defaultDBPath(),
		ConfigPaths: []string{DefaultConfigPath},
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("prospect"),
		kong.Description("Find contact details for a person from public web sources"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Configuration(kong.JSON, m.ConfigPaths...),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'prospect --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger := newLogger(stderr, cli.Verbose)

	noSave := cmd == "find" && cli.Find.NoSave
	if !noSave {
		dbPath := m.DBPath
		if cli.DB != "" {
			dbPath = cli.DB
		}
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PROSPECT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		defer m.Close()

		m.ContactService = sqlite.NewContactService(m.DB)
		m.JobService = sqlite.NewJobService(m.DB)
		deps.Contacts = m.ContactService
		deps.Jobs = m.JobService
	}

	switch cmd {
	case "find":
		finder, err := m.finder(ctx, cli.Globals, cli.Find.PipelineFlags, logger, nil)
		if err != nil {
			return err
		}
		if f, ok := finder.(*pipeline.Finder); ok {
			f.Progress = progressPrinter(stderr)
		}
		deps.Finder = finder

	case "serve":
		metrics := prometheus.NewMetrics()
		finder, err := m.finder(ctx, cli.Globals, cli.Serve.PipelineFlags, logger, metrics)
		if err != nil {
			return err
		}
		deps.Finder = finder
		deps.Server = prospecthttp.NewServer(finder, deps.Contacts, deps.Jobs,
			prospecthttp.WithLogger(logger),
			prospecthttp.WithMetricsHandler(metrics.Handler()),
			prospecthttp.WithMiddleware(metrics.Middleware),
		)
	}

	return kongCtx.Run(deps)
}

// finder returns m.Finder or builds a pipeline-backed one.
func (m *Main) finder(ctx context.Context, g Globals, f PipelineFlags, logger *slog.Logger, metrics *prometheus.Metrics) (prospect.Finder, error) {
	if m.Finder != nil {
		return m.Finder, nil
	}

	p, err := buildPipeline(ctx, g, f, logger, metrics)
	if err != nil {
		return nil, err
	}

	finder := &pipeline.Finder{
		Pipeline: p,
		Jobs:     m.JobService,
		Contacts: m.ContactService,
	}
	if metrics != nil {
		finder.WrapReporter = func(next prospect.JobReporter) prospect.JobReporter {
			return prometheus.NewInstrumentedReporter(next, metrics)
		}
	}
	return finder, nil
}

// buildPipeline wires renderers, engines, extractors and lookups according
// to the flags and the configured API keys. Optional producers whose keys
// are missing are skipped.
func buildPipeline(ctx context.Context, g Globals, f PipelineFlags, logger *slog.Logger, metrics *prometheus.Metrics) (*pipeline.Pipeline, error) {
	var searchClient *google.Client
	if g.GoogleAPIKey != "" && g.GoogleEngineID != "" {
		searchClient = google.NewClient(g.GoogleAPIKey, g.GoogleEngineID)
	}
	if f.Engine == "customsearch" && searchClient == nil {
		return nil, prospect.Errorf(prospect.EINVALID,
			"the customsearch engine requires GOOGLE_SEARCH_API_KEY and GOOGLE_SEARCH_ENGINE_ID")
	}

	decorateEngine := func(e prospect.SearchEngine) prospect.SearchEngine {
		if g.Verbose {
			e = pslog.NewLoggingSearchEngine(e, logger)
		}
		if metrics != nil {
			e = prometheus.NewInstrumentedSearchEngine(e, metrics)
		}
		return e
	}

	p := &pipeline.Pipeline{
		Renderers: func(context.Context) (prospect.Renderer, error) {
			var r prospect.Renderer
			if f.Engine == "static" {
				r = prospecthttp.NewRenderer()
			} else {
				r = rod.NewRenderer()
			}
			if g.Verbose {
				r = pslog.NewLoggingRenderer(r, logger)
			}
			if metrics != nil {
				r = prometheus.NewInstrumentedRenderer(r, metrics)
			}
			return r, nil
		},
		Engines: func(r prospect.Renderer) (prospect.SearchEngine, error) {
			if f.Engine == "customsearch" {
				return decorateEngine(google.NewCustomSearchEngine(searchClient)), nil
			}
			return decorateEngine(google.NewRenderedEngine(r, goquery.NewResultParser())), nil
		},
		Hints:       []prospect.HintExtractor{goquery.NewHintExtractor(), trafilatura.NewExtractor(), readability.NewExtractor()},
		Planner:     &pipeline.Planner{},
		Weights:     prospect.DefaultWeights(),
		Concurrency: f.Concurrency,
		MaxURLs:     f.MaxURLs,
		Logger:      logger,
	}

	switch f.Text {
	case "markdown":
		p.Text = htmltomarkdown.NewTextExtractor()
	case "main":
		p.Text = trafilatura.NewExtractor()
	case "readable":
		p.Text = readability.NewExtractor()
	default:
		p.Text = goquery.NewTextExtractor()
	}

	if !f.NoSitemap {
		var seeds prospect.SeedSource = prospecthttp.NewSitemapSeeds()
		if g.Verbose {
			seeds = pslog.NewLoggingSeedSource(seeds, logger)
		}
		p.Seeds = []prospect.SeedSource{seeds}
	}

	if searchClient != nil && f.Engine != "customsearch" {
		p.FallbackEngine = decorateEngine(google.NewCustomSearchEngine(searchClient))
	}

	lookups := []prospect.Lookup{&pipeline.PatternLookup{}}
	if g.HunterAPIKey != "" {
		lookups = append(lookups, hunter.NewLookup(g.HunterAPIKey))
	}
	if searchClient != nil {
		lookups = append(lookups,
			google.NewSECFilingLookup(searchClient),
			google.NewConferenceSpeakerLookup(searchClient),
			google.NewPhoneDirectoryLookup(searchClient),
		)
	}
	if g.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		lookups = append(lookups, gemini.NewLookup(client))
	}
	for _, l := range lookups {
		if g.Verbose {
			l = pslog.NewLoggingLookup(l, logger)
		}
		if metrics != nil {
			l = prometheus.NewInstrumentedLookup(l, metrics)
		}
		p.Lookups = append(p.Lookups, l)
	}

	return p, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "prospect.db"
	}
	dir := filepath.Join(home, ".prospect")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "prospect.db")
}
