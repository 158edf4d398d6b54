package mock

import "github.com/fwojciec/prospect"

var (
	_ prospect.TextExtractor = (*TextExtractor)(nil)
	_ prospect.HintExtractor = (*HintExtractor)(nil)
	_ prospect.ResultParser  = (*ResultParser)(nil)
)

// TextExtractor is a mock implementation of prospect.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *TextExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}

// HintExtractor is a mock implementation of prospect.HintExtractor.
type HintExtractor struct {
	ExtractHintsFn func(html string) (prospect.PageHints, error)
}

func (e *HintExtractor) ExtractHints(html string) (prospect.PageHints, error) {
	return e.ExtractHintsFn(html)
}

// ResultParser is a mock implementation of prospect.ResultParser.
type ResultParser struct {
	ParseResultsFn func(html string, baseURL string) ([]string, error)
}

func (p *ResultParser) ParseResults(html string, baseURL string) ([]string, error) {
	return p.ParseResultsFn(html, baseURL)
}
