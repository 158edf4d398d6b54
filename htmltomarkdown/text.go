// Package htmltomarkdown renders pages as Markdown text for extraction.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/prospect"
)

// Ensure TextExtractor implements prospect.TextExtractor at compile time.
var _ prospect.TextExtractor = (*TextExtractor)(nil)

// TextExtractor converts HTML to Markdown. Unlike plain visible text,
// Markdown keeps link targets, so addresses that only appear in mailto:
// and tel: hrefs reach the field extractors.
type TextExtractor struct {
	conv *converter.Converter
}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &TextExtractor{conv: conv}
}

// ExtractText transforms HTML content into Markdown.
func (e *TextExtractor) ExtractText(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", prospect.Errorf(prospect.EINVALID, "empty HTML input")
	}

	result, err := e.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}
