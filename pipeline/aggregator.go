package pipeline

import "github.com/fwojciec/prospect"

// Aggregate merges candidates that describe the same contact and returns at
// most max of them along with the number of distinct contacts found. A
// non-positive max returns all of them.
//
// Two candidates are the same contact when they share a non-empty email or
// a non-empty phone, transitively. Candidates with neither are never
// merged. Within a group the candidate with the highest confidence is
// canonical (the earliest wins ties); its empty fields are filled from the
// others and tags are unioned. Output follows the order in which each
// group first appeared. Inputs are not modified.
func Aggregate(candidates []*prospect.Contact, max int) ([]*prospect.Contact, int) {
	parent := make([]int, len(candidates))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		// The earlier index stays root so group order follows first occurrence.
		if rb < ra {
			ra, rb = rb, ra
		}
		parent[rb] = ra
	}

	byEmail := make(map[string]int)
	byPhone := make(map[string]int)
	for i, c := range candidates {
		if c.Email != "" {
			if j, ok := byEmail[c.Email]; ok {
				union(j, i)
			} else {
				byEmail[c.Email] = i
			}
		}
		if c.Phone != "" {
			if j, ok := byPhone[c.Phone]; ok {
				union(j, i)
			} else {
				byPhone[c.Phone] = i
			}
		}
	}

	groups := make(map[int][]int)
	var roots []int
	for i := range candidates {
		r := find(i)
		if _, ok := groups[r]; !ok {
			roots = append(roots, r)
		}
		groups[r] = append(groups[r], i)
	}

	merged := make([]*prospect.Contact, 0, len(roots))
	for _, r := range roots {
		members := groups[r]
		canonical := candidates[members[0]].Clone()
		for _, m := range members[1:] {
			canonical = mergeContacts(canonical, candidates[m])
		}
		merged = append(merged, canonical)
	}

	total := len(merged)
	if max > 0 && len(merged) > max {
		merged = merged[:max]
	}
	return merged, total
}

// mergeContacts folds other into acc, which is owned by the caller. The
// higher-confidence record becomes canonical; acc wins ties.
func mergeContacts(acc, other *prospect.Contact) *prospect.Contact {
	canonical, donor := acc, other
	if other.Confidence > acc.Confidence {
		canonical, donor = other.Clone(), acc
	}

	if !canonical.HasName() && donor.HasName() {
		canonical.FirstName = donor.FirstName
		canonical.LastName = donor.LastName
	}
	fill(&canonical.Email, donor.Email)
	fill(&canonical.Phone, donor.Phone)
	fill(&canonical.Company, donor.Company)
	fill(&canonical.Title, donor.Title)
	fill(&canonical.Website, donor.Website)
	fill(&canonical.LinkedInURL, donor.LinkedInURL)
	fill(&canonical.Location, donor.Location)
	fill(&canonical.Industry, donor.Industry)
	fill(&canonical.Notes, donor.Notes)
	fill(&canonical.Source, donor.Source)
	canonical.Tags = canonical.Tags.Add(donor.Tags...)
	if canonical.CreatedAt.IsZero() || (!donor.CreatedAt.IsZero() && donor.CreatedAt.Before(canonical.CreatedAt)) {
		canonical.CreatedAt = donor.CreatedAt
	}
	return canonical
}

func fill(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
