package catalog

import (
	"strings"
	"testing"
)

// TestViewModeRoundTrip toggles grid → table → grid and verifies the
// underlying record sequence and count never change.
func TestViewModeRoundTrip(t *testing.T) {
	filtered := SortRecords(Filter{Location: "IN"}.Apply(Records(FixtureTractors())), SortFare)

	grid := Project(filtered, ViewGrid)
	table := Project(filtered, ViewTable)
	gridAgain := Project(filtered, ViewGrid)

	if grid.Count != table.Count || table.Count != gridAgain.Count {
		t.Fatalf("counts diverged: %d / %d / %d", grid.Count, table.Count, gridAgain.Count)
	}
	for i := range filtered {
		if grid.Rows[i].ID != filtered[i].ID || table.Rows[i].ID != filtered[i].ID || gridAgain.Rows[i].ID != filtered[i].ID {
			t.Fatalf("row order diverged at %d", i)
		}
	}
}

// TestProjectTruncatesCardDescriptions shortens long text in grid mode only.
func TestProjectTruncatesCardDescriptions(t *testing.T) {
	long := strings.Repeat("harvest ", 40) // well past the card budget
	records := []Record{{ID: 1, Kind: KindTask, Name: "Big", Description: long}}

	grid := Project(records, ViewGrid)
	if !strings.HasSuffix(grid.Rows[0].Description, "…") {
		t.Error("grid projection should end truncated text with an ellipsis")
	}
	if len(grid.Rows[0].Description) >= len(long) {
		t.Error("grid projection did not shorten the description")
	}

	table := Project(records, ViewTable)
	if table.Rows[0].Description != long {
		t.Error("table projection must keep the full description")
	}

	// The source records stay intact either way.
	if records[0].Description != long {
		t.Error("Project mutated its input")
	}
}

// TestProjectCountMatchesRows keeps the live count equal to the row count.
func TestProjectCountMatchesRows(t *testing.T) {
	records := Records(FixtureLabour())
	v := Project(records, ViewTable)
	if v.Count != len(v.Rows) || v.Count != len(records) {
		t.Fatalf("count %d, rows %d, input %d", v.Count, len(v.Rows), len(records))
	}
}

// TestParseViewModeDefaultsToGrid treats anything but "table" as grid.
func TestParseViewModeDefaultsToGrid(t *testing.T) {
	if ParseViewMode("") != ViewGrid || ParseViewMode("cards") != ViewGrid {
		t.Error("unknown modes should default to grid")
	}
	if ParseViewMode("table") != ViewTable {
		t.Error("table mode not recognised")
	}
}
