package prospect

// Page is the outcome of harvesting one URL.
type Page struct {
	URL string

	// Source is the caller-supplied label describing how the URL was found,
	// usually the query that produced it.
	Source string

	// Text is the visible page text the extractors ran over.
	Text string

	Fields ExtractedFields
}

// PageHints holds structural guesses about a page taken from markup and
// metadata rather than free text.
type PageHints struct {
	Company  string
	Title    string
	Location string
	SiteName string
	Author   string
}

// Merge fills empty fields of h from other and returns the result.
func (h PageHints) Merge(other PageHints) PageHints {
	if h.Company == "" {
		h.Company = other.Company
	}
	if h.Title == "" {
		h.Title = other.Title
	}
	if h.Location == "" {
		h.Location = other.Location
	}
	if h.SiteName == "" {
		h.SiteName = other.SiteName
	}
	if h.Author == "" {
		h.Author = other.Author
	}
	return h
}
