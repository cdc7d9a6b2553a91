package catalog

import (
	"context"
	"testing"
)

// TestStaticSourceCopiesOnRead makes sure a caller sorting the returned
// slice cannot disturb the shared catalog.
func TestStaticSourceCopiesOnRead(t *testing.T) {
	src := Static(Records(FixtureTractors()))

	first, err := src.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	SortRecords(first, SortFare)
	first[0].Name = "clobbered"

	second, err := src.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if second[0].Name == "clobbered" {
		t.Fatal("mutation through a read leaked into the source")
	}
}

// TestStaticSourceReplace swaps the whole catalog atomically.
func TestStaticSourceReplace(t *testing.T) {
	src := Static(Records(FixtureLabour()))
	src.Replace(nil)

	got, err := src.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty catalog after Replace, got %d", len(got))
	}
}
