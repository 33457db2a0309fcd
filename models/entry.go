package models

// ItineraryItem is one "day" of the trip. Every text field except
// GoogleMapsURL is a rich-text HTML fragment and is treated as an opaque
// blob everywhere outside the chrono package.
type ItineraryItem struct {
	EntryID       string   `json:"id" bson:"entryid"`
	DayNumber     int      `json:"day_number" bson:"day_number"`
	Date          string   `json:"date" bson:"date"`
	TimeSlot      string   `json:"time_slot" bson:"time_slot"`
	Title         string   `json:"title" bson:"title"`
	Guideline     string   `json:"guideline" bson:"guideline"`
	Thoughts      string   `json:"thoughts" bson:"thoughts"`
	PhotoURLs     []string `json:"photo_urls" bson:"photo_urls"`
	GoogleMapsURL string   `json:"google_maps_url" bson:"google_maps_url"`
}

// ScrapbookSettings is the single shared settings document: what every
// collaborator session sees for the page background, cover and title.
type ScrapbookSettings struct {
	Title           string `json:"title" bson:"title"`
	BackgroundColor string `json:"background_color" bson:"background_color"`
	CoverURL        string `json:"cover_url" bson:"cover_url"`
}

// BundleManifest is written into every exported zip bundle.
type BundleManifest struct {
	ExportedAt      string `json:"exported_at"`
	BackgroundColor string `json:"background_color"`
	PageCount       int    `json:"page_count"`
}

// UpdateEvent is the payload published after every committed field
// mutation and broadcast to connected collaborator sessions.
type UpdateEvent struct {
	EntryID   string `json:"entry_id"`
	Field     string `json:"field"`
	Value     any    `json:"value"`
	Timestamp int64  `json:"timestamp"`
}
