package pipeline

import (
	"strings"

	"github.com/fwojciec/prospect"
)

// DefaultTemplates are the query suffixes appended to "name company",
// most specific first.
var DefaultTemplates = []string{
	"founder contact",
	"email address",
	"phone number",
	"contact information",
	"LinkedIn profile",
	"office address",
	"direct contact",
	"personal email",
	"home address",
	"contact page",
	"business contact",
	"contact details",
	"direct line",
}

// FounderTemplates are prepended in founder mode.
var FounderTemplates = []string{
	"Y Combinator founder",
	"YC founder contact",
	"Y Combinator startup founder",
	"YC alumni contact",
	"founder email address",
	"founder phone number",
	"founder personal contact",
	"founder home address",
	"founder LinkedIn profile",
	"founder contact information",
	"startup founder contact",
	"CEO founder",
	"co-founder",
}

// Planner expands a subject into an ordered query plan.
type Planner struct {
	// Templates overrides DefaultTemplates when non-nil.
	Templates []string

	// Founder adds FounderTemplates ahead of the general templates.
	Founder bool
}

// Plan returns the query plan for subject. Primary queries run from most to
// least specific and end with the bare subject string. The fallback stage
// is the bare name alone.
func (p *Planner) Plan(subject prospect.Subject) prospect.QueryPlan {
	base := subject.String()
	name := strings.Join(strings.Fields(subject.Name), " ")

	templates := p.Templates
	if templates == nil {
		templates = DefaultTemplates
	}
	if p.Founder {
		templates = append(append([]string(nil), FounderTemplates...), templates...)
	}

	seen := make(map[string]bool)
	var primary []string
	add := func(q string) {
		q = strings.Join(strings.Fields(q), " ")
		if q == "" || seen[q] {
			return
		}
		seen[q] = true
		primary = append(primary, q)
	}
	for _, t := range templates {
		add(base + " " + t)
	}
	add(base)

	var fallback []string
	if name != "" {
		fallback = []string{name}
	}

	return prospect.QueryPlan{Primary: primary, Fallback: fallback}
}
