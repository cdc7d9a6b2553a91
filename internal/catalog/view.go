package catalog

import "unicode/utf8"

// ViewMode selects how a result view is rendered. Both states are reachable
// from both states; new pages start in grid mode.
type ViewMode string

const (
	ViewGrid  ViewMode = "grid"
	ViewTable ViewMode = "table"
)

// ParseViewMode maps user input to a ViewMode, defaulting to grid.
func ParseViewMode(s string) ViewMode {
	if ViewMode(s) == ViewTable {
		return ViewTable
	}
	return ViewGrid
}

// cardRuneBudget bounds description length on cards; tables show full text.
const cardRuneBudget = 160

// View is the projection of an already filtered (and already sorted) record
// sequence for display, plus its live count.
type View struct {
	Mode  ViewMode
	Rows  []Record
	Count int
}

// Project formats records for the given view mode. No filtering or sorting
// happens here: the row sequence and count are exactly the input's, in the
// input's order, whichever mode is selected. Grid mode truncates long
// descriptions with an ellipsis; the input records are not modified.
func Project(records []Record, mode ViewMode) View {
	rows := make([]Record, len(records))
	copy(rows, records)

	if mode == ViewGrid {
		for i := range rows {
			rows[i].Description = truncate(rows[i].Description, cardRuneBudget)
		}
	}

	return View{Mode: mode, Rows: rows, Count: len(rows)}
}

func truncate(s string, budget int) string {
	if utf8.RuneCountInString(s) <= budget {
		return s
	}
	runes := []rune(s)
	return string(runes[:budget]) + "…"
}
