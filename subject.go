package prospect

import "strings"

// Subject identifies the person being searched for.
type Subject struct {
	// Name is the person's full name. Required.
	Name string `json:"name"`

	// Company optionally narrows queries to an employer or organization.
	Company string `json:"company,omitempty"`

	// Domain is the company's web domain, used by lookups that build or
	// verify addresses against it.
	Domain string `json:"domain,omitempty"`
}

// Validate returns an error if the subject cannot be searched for.
func (s Subject) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return Errorf(EINVALID, "subject name required")
	}
	return nil
}

// FirstName returns the first whitespace-separated token of the name.
func (s Subject) FirstName() string {
	fields := strings.Fields(s.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// LastName returns everything after the first token of the name.
func (s Subject) LastName() string {
	fields := strings.Fields(s.Name)
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}

// String returns the name followed by the company, if any.
func (s Subject) String() string {
	name := strings.Join(strings.Fields(s.Name), " ")
	if c := strings.TrimSpace(s.Company); c != "" {
		return name + " " + c
	}
	return name
}
