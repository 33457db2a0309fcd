package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"time"

	"keepsake/models"

	"github.com/disintegration/imaging"
)

// BuildBundle produces the downloadable zip artifact: one PNG per page
// (cover included) at the fixed supersampling factor, a JSON mirror of
// every entry, and a manifest. Any failure aborts the whole bundle; the
// caller gets either a complete artifact or an error, never a partial one.
func BuildBundle(entries []models.ItineraryItem, settings models.ScrapbookSettings) ([]byte, error) {
	renderer, err := NewRenderer(settings.BackgroundColor)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	cover := renderer.RenderCover(settings)
	if err := writePage(zw, "pages/page-000-cover.png", cover); err != nil {
		return nil, err
	}

	for i, item := range entries {
		page, err := renderer.RenderEntry(item, i+1)
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i+1, err)
		}
		name := fmt.Sprintf("pages/page-%03d.png", i+1)
		if err := writePage(zw, name, page); err != nil {
			return nil, err
		}
	}

	if err := writeJSON(zw, "entries.json", entries); err != nil {
		return nil, err
	}

	manifest := models.BundleManifest{
		ExportedAt:      time.Now().UTC().Format(time.RFC3339),
		BackgroundColor: settings.BackgroundColor,
		PageCount:       len(entries) + 1,
	}
	if err := writeJSON(zw, "manifest.json", manifest); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

func writePage(zw *zip.Writer, name string, page image.Image) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := imaging.Encode(f, page, imaging.PNG); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}

func writeJSON(zw *zip.Writer, name string, v any) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}
