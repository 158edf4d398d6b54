package prospect

// TextExtractor turns rendered HTML into the text the field extractors
// run over.
type TextExtractor interface {
	ExtractText(html string) (string, error)
}

// HintExtractor derives structural hints from rendered HTML.
type HintExtractor interface {
	// ExtractHints returns best-guess company, title and location values.
	// Fields it cannot determine are left empty.
	ExtractHints(html string) (PageHints, error)
}

// ResultParser extracts outbound result links from a rendered search
// engine results page.
type ResultParser interface {
	// ParseResults returns absolute result URLs in document order.
	// Relative links are resolved against baseURL.
	ParseResults(html string, baseURL string) ([]string, error)
}
