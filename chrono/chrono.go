package chrono

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"keepsake/models"
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// StripTags removes every markup tag from a rich-text fragment, leaving
// the visible text.
func StripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}

// Normalize strips tags, coerces dot-separated dates (2026.01.08) toward
// the hyphen-separated form the parser handles, and trims whitespace.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(StripTags(s), ".", "-"))
}

// Layouts tried in order against the normalized "date time" text. The
// non-padded numeric fields also accept zero-padded input, so
// "2026-01-08 14:00" and "2026-1-8 14:00" both land on the first entry.
var layouts = []string{
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2 3:04 PM",
	"2006-1-2 3:04PM",
	"2006-1-2",
	"2006/1/2 15:04",
	"2006/1/2",
	"1-2-2006 15:04",
	"1-2-2006",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006",
	"January 2, 2006 15:04",
	"January 2, 2006",
}

// Key derives the sort key for one entry from its free-form date and time
// fragments. Unparseable input degrades to exactly 0, never an error, so
// undated entries sort at or before every dated one.
func Key(date, timeSlot string) int64 {
	text := strings.TrimSpace(Normalize(date) + " " + Normalize(timeSlot))
	if text == "" {
		return 0
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

// SortEntries returns the entries in non-decreasing key order. The sort is
// stable: entries with equal keys keep their original relative order. The
// input slice is not modified.
func SortEntries(list []models.ItineraryItem) []models.ItineraryItem {
	type keyed struct {
		item models.ItineraryItem
		key  int64
	}
	ks := make([]keyed, len(list))
	for i, item := range list {
		ks[i] = keyed{item: item, key: Key(item.Date, item.TimeSlot)}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		return ks[i].key < ks[j].key
	})
	out := make([]models.ItineraryItem, len(list))
	for i, k := range ks {
		out[i] = k.item
	}
	return out
}
