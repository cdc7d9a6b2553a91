package catalog

import (
	"math"
	"strconv"
	"strings"
)

// Filter is the full set of user-editable search inputs for one directory
// page. The zero value matches every record: an empty field is the neutral
// element for its dimension. Numeric bounds stay raw strings because they
// arrive from text inputs; input that does not parse is treated as no
// constraint rather than an error.
type Filter struct {
	Query    string // case-insensitive substring over the kind's query text
	Location string // case-insensitive substring over the kind's location text
	Tag      string // exact membership in Tags (skill, service)
	Category string // exact equality with Category (task type, availability)

	MinRate     string
	MaxRate     string
	MaxDistance string
	MinRating   string
	MinHours    string
}

// Matches reports whether r satisfies every active dimension of f.
// Dimensions are evaluated left to right and short-circuit on the first
// miss. The function is pure: nothing is mutated and it never panics, so
// repeated invocation with the same inputs always yields the same answer.
func (f Filter) Matches(r Record) bool {
	if f.Query != "" && !containsFold(queryText(r), f.Query) {
		return false
	}
	if f.Location != "" && !containsFold(locationText(r), f.Location) {
		return false
	}
	if f.Tag != "" && !hasTag(r.Tags, f.Tag) {
		return false
	}
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if min, ok := parseBound(f.MinRate); ok && r.Attr(FieldRate) < min {
		return false
	}
	if max, ok := parseBound(f.MaxRate); ok && r.Attr(FieldRate) > max {
		return false
	}
	if max, ok := parseBound(f.MaxDistance); ok && r.Attr(FieldDistance) > max {
		return false
	}
	if min, ok := parseBound(f.MinRating); ok && r.Attr(FieldRating) < min {
		return false
	}
	if min, ok := parseBound(f.MinHours); ok && r.Attr(FieldHours) < min {
		return false
	}
	return true
}

// Apply filters records, preserving input order. The input slice is never
// mutated; the result is always a fresh slice so callers can re-sort it.
func (f Filter) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// containsFold reports whether needle occurs in haystack, ignoring case.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

// parseBound turns raw filter input into a numeric bound. Empty, blank,
// non-numeric, and NaN input all mean "unconstrained".
func parseBound(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
