package chrono

import (
	"testing"

	"keepsake/models"
)

func TestKeyStripsTagsAndNormalizesDots(t *testing.T) {
	plain := Key("2026-03-10", "09:30")
	if plain == 0 {
		t.Fatal("expected a nonzero key for a parseable date")
	}
	wrapped := Key("<div>2026.03.10</div>", "<b>09:30</b>")
	if wrapped != plain {
		t.Fatalf("expected markup-wrapped date to produce the same key: %d vs %d", wrapped, plain)
	}
}

func TestKeyUnparseableFallsBackToZero(t *testing.T) {
	cases := []struct {
		date, timeSlot string
	}{
		{"", ""},
		{"not a date", ""},
		{"<div></div>", "<b></b>"},
		{"someday soon", "after lunch"},
	}
	for _, c := range cases {
		if got := Key(c.date, c.timeSlot); got != 0 {
			t.Errorf("Key(%q, %q) = %d, want 0", c.date, c.timeSlot, got)
		}
	}
}

func TestSortSameDayByTime(t *testing.T) {
	list := []models.ItineraryItem{
		{EntryID: "a", Date: "2026.01.08", TimeSlot: "14:00"},
		{EntryID: "b", Date: "2026.01.08", TimeSlot: "09:00"},
	}
	sorted := SortEntries(list)
	if sorted[0].EntryID != "b" || sorted[1].EntryID != "a" {
		t.Fatalf("expected [b a], got [%s %s]", sorted[0].EntryID, sorted[1].EntryID)
	}
}

func TestSortUnparseablePlacedFirst(t *testing.T) {
	list := []models.ItineraryItem{
		{EntryID: "dated", Date: "2026-01-01"},
		{EntryID: "undated", Date: "not a date"},
	}
	sorted := SortEntries(list)
	if sorted[0].EntryID != "undated" {
		t.Fatalf("expected the unparseable entry first, got %s", sorted[0].EntryID)
	}
}

func TestSortStableForEqualKeys(t *testing.T) {
	list := []models.ItineraryItem{
		{EntryID: "one", Date: "nothing"},
		{EntryID: "two", Date: "also nothing"},
		{EntryID: "three", Date: "<i>still nothing</i>"},
		{EntryID: "four", Date: "2026-05-01", TimeSlot: "10:00"},
		{EntryID: "five", Date: "2026.05.01", TimeSlot: "<b>10:00</b>"},
	}
	sorted := SortEntries(list)
	order := []string{"one", "two", "three", "four", "five"}
	for i, want := range order {
		if sorted[i].EntryID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, sorted[i].EntryID)
		}
	}
}

func TestSortDoesNotModifyInput(t *testing.T) {
	list := []models.ItineraryItem{
		{EntryID: "late", Date: "2026-02-02"},
		{EntryID: "early", Date: "2026-01-01"},
	}
	_ = SortEntries(list)
	if list[0].EntryID != "late" {
		t.Fatal("input slice was reordered")
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  <div>2026.01.08</div> "); got != "2026-01-08" {
		t.Fatalf("Normalize = %q, want %q", got, "2026-01-08")
	}
	if got := Normalize(""); got != "" {
		t.Fatalf("Normalize(\"\") = %q, want empty", got)
	}
}
