package catalog

import "sort"

// SortKey selects the ordering applied to a filtered tractor/vendor view.
type SortKey string

const (
	SortDistance SortKey = "distance" // nearest first
	SortFare     SortKey = "fare"     // lowest hourly fare first
	SortRating   SortKey = "rating"   // highest rated first, missing rating last
)

// ParseSortKey maps user input to a SortKey, defaulting to nearest.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortFare:
		return SortFare
	case SortRating:
		return SortRating
	default:
		return SortDistance
	}
}

// SortRecords returns records ordered by key. The sort is stable, so equal
// keys keep their relative input order, and the input slice is left
// untouched: the result is a new slice.
func SortRecords(records []Record, key SortKey) []Record {
	out := make([]Record, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		switch key {
		case SortFare:
			return out[i].Attr(FieldRate) < out[j].Attr(FieldRate)
		case SortRating:
			return out[i].Attr(FieldRating) > out[j].Attr(FieldRating)
		default:
			return out[i].Attr(FieldDistance) < out[j].Attr(FieldDistance)
		}
	})
	return out
}
