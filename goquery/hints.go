package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/prospect"
)

// Ensure HintExtractor implements prospect.HintExtractor at compile time.
var _ prospect.HintExtractor = (*HintExtractor)(nil)

// Hint values must be strictly longer than minHintLen and strictly shorter
// than maxHintLen characters.
const (
	minHintLen = 2
	maxHintLen = 100
)

// hintSelector is a CSS selector with an optional attribute read when the
// element has no text (meta tags).
type hintSelector struct {
	selector string
	attr     string
}

var companySelectors = []hintSelector{
	{selector: "h1"},
	{selector: "h2"},
	{selector: "h3"},
	{selector: ".company-name"},
	{selector: ".brand"},
	{selector: ".logo-text"},
	{selector: `[class*="company"]`},
	{selector: `[class*="brand"]`},
	{selector: `[class*="logo"]`},
	{selector: ".organization"},
	{selector: ".business-name"},
	{selector: ".corporate-name"},
	{selector: "title"},
	{selector: `meta[property="og:site_name"]`, attr: "content"},
}

var titleSelectors = []hintSelector{
	{selector: ".title"},
	{selector: ".job-title"},
	{selector: ".position"},
	{selector: ".role"},
	{selector: `[class*="title"]`},
	{selector: `[class*="position"]`},
	{selector: `[class*="role"]`},
	{selector: "h4"},
	{selector: "h5"},
	{selector: "h6"},
}

var locationSelectors = []hintSelector{
	{selector: ".location"},
	{selector: ".address"},
	{selector: ".city"},
	{selector: ".state"},
	{selector: `[class*="location"]`},
	{selector: `[class*="address"]`},
}

// HintExtractor guesses company, title and location from page markup using
// prioritized selector lists.
type HintExtractor struct{}

// NewHintExtractor creates a new HintExtractor.
func NewHintExtractor() *HintExtractor {
	return &HintExtractor{}
}

// ExtractHints returns, for each field, the first selector match whose text
// fits the length window. Selectors are tried in list order and elements
// in document order.
func (e *HintExtractor) ExtractHints(html string) (prospect.PageHints, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return prospect.PageHints{}, prospect.Errorf(prospect.EINVALID, "failed to parse HTML: %v", err)
	}

	return prospect.PageHints{
		Company:  firstMatch(doc, companySelectors),
		Title:    firstMatch(doc, titleSelectors),
		Location: firstMatch(doc, locationSelectors),
	}, nil
}

func firstMatch(doc *goquery.Document, selectors []hintSelector) string {
	for _, s := range selectors {
		var found string
		doc.Find(s.selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			value := collapseSpace(sel.Text())
			if value == "" && s.attr != "" {
				attr, _ := sel.Attr(s.attr)
				value = collapseSpace(attr)
			}
			n := utf8.RuneCountInString(value)
			if n > minHintLen && n < maxHintLen {
				found = value
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// collapseSpace trims s and replaces internal whitespace runs with one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
