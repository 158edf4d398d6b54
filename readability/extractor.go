// Package readability adapts go-readability for article text and byline
// metadata.
package readability

import (
	"strings"

	"github.com/fwojciec/prospect"
	"github.com/go-shiori/go-readability"
)

var (
	_ prospect.TextExtractor = (*Extractor)(nil)
	_ prospect.HintExtractor = (*Extractor)(nil)
)

// Extractor wraps go-readability. It returns the readable article text with
// navigation and footers stripped, and reports the byline and site name as
// hints.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the article body as plain text.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	article, err := parse(rawHTML)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(article.TextContent), nil
}

// ExtractHints reports the site name as the company guess and the byline
// as the author.
func (e *Extractor) ExtractHints(rawHTML string) (prospect.PageHints, error) {
	article, err := parse(rawHTML)
	if err != nil {
		return prospect.PageHints{}, err
	}
	siteName := strings.TrimSpace(article.SiteName)
	return prospect.PageHints{
		Company:  siteName,
		SiteName: siteName,
		Author:   strings.TrimSpace(article.Byline),
	}, nil
}

func parse(rawHTML string) (readability.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return readability.Article{}, prospect.Errorf(prospect.EINVALID, "empty HTML input")
	}
	return readability.FromReader(strings.NewReader(rawHTML), nil)
}
