package prospect

// Name is a person name split into first and last parts.
type Name struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// ExtractedFields holds the candidate fields found on one page.
// Sequences keep first-occurrence order and contain no duplicates.
type ExtractedFields struct {
	Phones    []string `json:"phones"`
	Emails    []string `json:"emails"`
	Names     []Name   `json:"names"`
	Addresses []string `json:"addresses"`

	// Best-guess single values taken from the page structure.
	Company  string `json:"company"`
	Title    string `json:"title"`
	Location string `json:"location"`
}

// HasContactData reports whether any phone or email was found.
func (f *ExtractedFields) HasContactData() bool {
	return len(f.Phones) > 0 || len(f.Emails) > 0
}

// HasProfile reports whether any of company, title or location is known.
func (f *ExtractedFields) HasProfile() bool {
	return f.Company != "" || f.Title != "" || f.Location != ""
}
