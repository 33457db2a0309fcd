package scrapbook

import "testing"

func TestAllowedFieldsCoverEntryFields(t *testing.T) {
	for _, field := range []string{
		"day_number", "date", "time_slot", "title",
		"guideline", "thoughts", "photo_urls", "google_maps_url",
	} {
		if !allowedFields[field] {
			t.Errorf("field %q should be updatable", field)
		}
	}
	for _, field := range []string{"entryid", "id", "_id", ""} {
		if allowedFields[field] {
			t.Errorf("field %q must not be updatable", field)
		}
	}
}

func TestRichFieldsAreUpdatable(t *testing.T) {
	for field := range richFields {
		if !allowedFields[field] {
			t.Errorf("designer field %q is not in the update whitelist", field)
		}
	}
	// photo ordering is system-managed, never edited through the designer
	if _, ok := richFields["photo_urls"]; ok {
		t.Error("photo_urls must not be designer-editable")
	}
}
