// Package prospect finds public contact details for a person.
// It fans a subject out into search-engine queries, harvests the result
// pages, runs heuristic extractors over the rendered text and merges the
// resulting candidates into a deduplicated contact list.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, goquery/).
package prospect
