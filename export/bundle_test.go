package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"testing"

	"keepsake/models"
)

func testSettings() models.ScrapbookSettings {
	return models.ScrapbookSettings{
		Title:           "Test Trip",
		BackgroundColor: "#ffd9b6",
	}
}

func TestBuildBundleContents(t *testing.T) {
	entries := []models.ItineraryItem{
		{EntryID: "a", Title: "<b>Day one</b>", Date: "2026.01.08", TimeSlot: "09:00"},
		{EntryID: "b", Title: "Day two", Date: "2026.01.09"},
	}

	data, err := BuildBundle(entries, testSettings())
	if err != nil {
		t.Fatal(err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}

	names := map[string]*zip.File{}
	for _, f := range zr.File {
		names[f.Name] = f
	}

	for _, want := range []string{
		"pages/page-000-cover.png",
		"pages/page-001.png",
		"pages/page-002.png",
		"entries.json",
		"manifest.json",
	} {
		if _, ok := names[want]; !ok {
			t.Errorf("bundle missing %s", want)
		}
	}

	mf, err := names["manifest.json"].Open()
	if err != nil {
		t.Fatal(err)
	}
	defer mf.Close()

	var manifest models.BundleManifest
	if err := json.NewDecoder(mf).Decode(&manifest); err != nil {
		t.Fatal(err)
	}
	if manifest.PageCount != 3 {
		t.Errorf("page count = %d, want 3", manifest.PageCount)
	}
	if manifest.BackgroundColor != "#ffd9b6" {
		t.Errorf("background = %q", manifest.BackgroundColor)
	}
	if manifest.ExportedAt == "" {
		t.Error("missing export timestamp")
	}

	ef, err := names["entries.json"].Open()
	if err != nil {
		t.Fatal(err)
	}
	defer ef.Close()

	var mirrored []models.ItineraryItem
	if err := json.NewDecoder(ef).Decode(&mirrored); err != nil {
		t.Fatal(err)
	}
	if len(mirrored) != 2 || mirrored[0].Title != "<b>Day one</b>" {
		t.Errorf("entries.json does not mirror input: %+v", mirrored)
	}
}

func TestBuildBundleRejectsBadBackground(t *testing.T) {
	settings := testSettings()
	settings.BackgroundColor = "peach"
	if _, err := BuildBundle(nil, settings); err == nil {
		t.Fatal("expected an error for an unparseable background color")
	}
}

func TestBuildPDFProducesDocument(t *testing.T) {
	entries := []models.ItineraryItem{
		{EntryID: "a", Title: "Day one", Date: "2026-01-08", GoogleMapsURL: "https://maps.example/x"},
	}
	data, err := BuildPDF(entries, testSettings())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF document")
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ffd9b6")
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 0xff || c.G != 0xd9 || c.B != 0xb6 {
		t.Fatalf("got %+v", c)
	}

	short, err := ParseHexColor("#abc")
	if err != nil {
		t.Fatal(err)
	}
	if short.R != 0xaa || short.G != 0xbb || short.B != 0xcc {
		t.Fatalf("got %+v", short)
	}

	for _, bad := range []string{"", "ffd9b6", "#ff", "#zzzzzz"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestRenderEntryPageSize(t *testing.T) {
	r, err := NewRenderer("#ffffff")
	if err != nil {
		t.Fatal(err)
	}
	page, err := r.RenderEntry(models.ItineraryItem{Title: "Size check"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	b := page.Bounds()
	if b.Dx() != pageW*Supersample || b.Dy() != pageH*Supersample {
		t.Fatalf("page is %dx%d, want %dx%d", b.Dx(), b.Dy(), pageW*Supersample, pageH*Supersample)
	}
}
