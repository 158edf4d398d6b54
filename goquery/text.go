package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/prospect"
	"golang.org/x/net/html"
)

// Ensure TextExtractor implements prospect.TextExtractor at compile time.
var _ prospect.TextExtractor = (*TextExtractor)(nil)

// blockElements end a line of visible text.
const blockElements = "p, div, li, tr, td, th, dt, dd, h1, h2, h3, h4, h5, h6, " +
	"section, article, header, footer, aside, nav, address, blockquote, pre, table, ul, ol, form"

// TextExtractor returns the visible text of a page, one block per line.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractText drops scripts and styles, breaks lines at block elements and
// collapses whitespace within each line. Empty lines are removed.
func (e *TextExtractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", prospect.Errorf(prospect.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", prospect.Errorf(prospect.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("script, style, noscript, template, svg").Remove()
	doc.Find("br").ReplaceWithNodes(newline())
	doc.Find(blockElements).AppendNodes(newline())

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var lines []string
	for _, line := range strings.Split(root.Text(), "\n") {
		if line = collapseSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func newline() *html.Node {
	return &html.Node{Type: html.TextNode, Data: "\n"}
}
