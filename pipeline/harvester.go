package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/prospect"
	"github.com/fwojciec/prospect/extract"
)

// DefaultHostPause is the pause enforced between harvests of one host.
const DefaultHostPause = time.Second

// Harvester renders one URL and extracts its candidate fields.
type Harvester struct {
	Renderer prospect.Renderer
	Text     prospect.TextExtractor

	// Hints are consulted in order; the first non-empty value per field wins.
	Hints []prospect.HintExtractor

	// Limiter paces renders, keyed by host. Nil disables pacing.
	Limiter prospect.DomainLimiter

	// RetryDelays overrides DefaultRetryDelays when non-nil.
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// Harvest renders rawURL and returns the page text with its extracted
// fields. source labels how the URL was found. A failed render or text
// extraction is returned as an error; hint extraction failures are not.
func (h *Harvester) Harvest(ctx context.Context, rawURL, source string) (*prospect.Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, prospect.Errorf(prospect.EINVALID, "invalid URL %q", rawURL)
	}

	if h.Limiter != nil {
		if err := h.Limiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	delays := h.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	logger := h.logger()
	html, err := RenderWithRetry(ctx, rawURL, h.Renderer.Render, func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}, delays)
	if err != nil {
		return nil, err
	}

	text, err := h.Text.ExtractText(html)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	var hints prospect.PageHints
	for _, hx := range h.Hints {
		got, err := hx.ExtractHints(html)
		if err != nil {
			logger.Debug("hint extraction failed", "url", rawURL, "err", err)
			continue
		}
		hints = hints.Merge(got)
	}

	fields := extract.Fields(text)
	fields.Company = hints.Company
	if fields.Company == "" {
		fields.Company = hints.SiteName
	}
	fields.Title = hints.Title
	fields.Location = hints.Location

	return &prospect.Page{
		URL:    rawURL,
		Source: source,
		Text:   text,
		Fields: fields,
	}, nil
}

func (h *Harvester) logger() *slog.Logger {
	return orDiscard(h.Logger)
}
