// Package trafilatura adapts go-trafilatura for page metadata and main
// content text.
package trafilatura

import (
	"errors"
	"strings"

	"github.com/fwojciec/prospect"
	"github.com/markusmobius/go-trafilatura"
)

// Compile-time interface verification.
var (
	_ prospect.HintExtractor = (*Extractor)(nil)
	_ prospect.TextExtractor = (*Extractor)(nil)
)

// Extractor wraps go-trafilatura. As a HintExtractor it reports metadata
// (site name, author); as a TextExtractor it returns the main content text
// with boilerplate removed.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractHints returns the site name as the company guess along with the
// page author. Title and location are never set.
func (e *Extractor) ExtractHints(rawHTML string) (prospect.PageHints, error) {
	result, err := extract(rawHTML)
	if err != nil {
		return prospect.PageHints{}, err
	}

	siteName := strings.TrimSpace(result.Metadata.Sitename)
	return prospect.PageHints{
		Company:  siteName,
		SiteName: siteName,
		Author:   strings.TrimSpace(result.Metadata.Author),
	}, nil
}

// ExtractText returns the main content as plain text.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	result, err := extract(rawHTML)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.ContentText), nil
}

func extract(rawHTML string) (*trafilatura.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, errors.New("empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	return trafilatura.Extract(strings.NewReader(rawHTML), opts)
}
