package prospect

import (
	"context"
	"sort"
	"strings"
	"time"
)

// Placeholder name for candidates built from pages that had contact data
// but no recognizable person name.
const (
	UnknownFirstName = "Unknown"
	UnknownLastName  = "Contact"
)

// Provenance tags.
const (
	TagScraped       = "scraped"
	TagNoName        = "no-name"
	TagLookup        = "lookup"
	TagFounderSearch = "founder-search"
)

// Contact represents a candidate contact record for a person.
type Contact struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Company     string  `json:"company,omitempty"`
	Title       string  `json:"title,omitempty"`
	Website     string  `json:"website,omitempty"`
	LinkedInURL string  `json:"linkedinUrl,omitempty"`
	Location    string  `json:"location,omitempty"`
	Industry    string  `json:"industry,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	Tags        Tags    `json:"tags"`
	Source      string  `json:"source"`
	Confidence  float64 `json:"confidence"`

	// JobID links the contact to the job that produced it, if any.
	JobID string `json:"jobId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the contact contains invalid fields.
func (c *Contact) Validate() error {
	if c.Email == "" && c.Phone == "" && c.FirstName == "" && c.LastName == "" {
		return Errorf(EINVALID, "contact requires an email, phone or name")
	}
	if c.Confidence < 0 || c.Confidence > 1 {
		return Errorf(EINVALID, "contact confidence must be between 0 and 1")
	}
	return nil
}

// HasName reports whether the contact carries a real (non-placeholder) name.
func (c *Contact) HasName() bool {
	if c.FirstName == "" && c.LastName == "" {
		return false
	}
	return c.FirstName != UnknownFirstName || c.LastName != UnknownLastName
}

// FullName returns first and last name joined by a space.
func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Clone returns a deep copy of the contact.
func (c *Contact) Clone() *Contact {
	other := *c
	other.Tags = append(Tags(nil), c.Tags...)
	return &other
}

// SortByConfidence returns a copy of contacts ordered by descending
// confidence. Contacts with equal confidence keep their relative order.
func SortByConfidence(contacts []*Contact) []*Contact {
	sorted := make([]*Contact, len(contacts))
	copy(sorted, contacts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})
	return sorted
}

// Highlights returns at most n contacts whose confidence is strictly above
// min, best first. A non-positive n returns all of them.
func Highlights(contacts []*Contact, min float64, n int) []*Contact {
	var out []*Contact
	for _, c := range SortByConfidence(contacts) {
		if c.Confidence <= min {
			continue
		}
		out = append(out, c)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}

// Tags is an ordered set of provenance markers.
type Tags []string

// NewTags returns a set holding the given tags in first-seen order.
func NewTags(tags ...string) Tags {
	return Tags(nil).Add(tags...)
}

// Add returns the union of t and tags. Existing order is kept and new tags
// are appended in the order given. Empty strings are ignored.
func (t Tags) Add(tags ...string) Tags {
	out := append(Tags(nil), t...)
	for _, tag := range tags {
		if tag == "" || out.Has(tag) {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// Has reports whether tag is in the set.
func (t Tags) Has(tag string) bool {
	for _, v := range t {
		if v == tag {
			return true
		}
	}
	return false
}

// ContactService represents a service for managing contacts.
type ContactService interface {
	// CreateContact creates a new contact.
	CreateContact(ctx context.Context, contact *Contact) error

	// FindContactByID retrieves a contact by ID.
	// Returns ENOTFOUND if contact does not exist.
	FindContactByID(ctx context.Context, id string) (*Contact, error)

	// FindContacts retrieves contacts matching the filter along with the
	// total number of matches ignoring Limit and Offset.
	FindContacts(ctx context.Context, filter ContactFilter) ([]*Contact, int, error)

	// UpdateContact updates an existing contact.
	// Returns ENOTFOUND if contact does not exist.
	UpdateContact(ctx context.Context, id string, upd ContactUpdate) (*Contact, error)

	// DeleteContact permanently removes a contact.
	// Returns ENOTFOUND if contact does not exist.
	DeleteContact(ctx context.Context, id string) error
}

// ContactFilter represents a filter for FindContacts.
type ContactFilter struct {
	ID    *string `json:"id"`
	JobID *string `json:"jobId"`

	// Query matches first name, last name, company, title or email,
	// case-insensitively.
	Query    *string `json:"q"`
	Company  *string `json:"company"`
	Location *string `json:"location"`
	HasEmail bool    `json:"hasEmail"`
	HasPhone bool    `json:"hasPhone"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ContactUpdate represents fields that can be updated on a contact.
type ContactUpdate struct {
	FirstName   *string  `json:"firstName"`
	LastName    *string  `json:"lastName"`
	Email       *string  `json:"email"`
	Phone       *string  `json:"phone"`
	Company     *string  `json:"company"`
	Title       *string  `json:"title"`
	Website     *string  `json:"website"`
	LinkedInURL *string  `json:"linkedinUrl"`
	Location    *string  `json:"location"`
	Industry    *string  `json:"industry"`
	Notes       *string  `json:"notes"`
	Tags        *Tags    `json:"tags"`
	Confidence  *float64 `json:"confidence"`
}
