package export

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"keepsake/chrono"
	"keepsake/models"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// A4 in mm
const (
	pdfPageW = 210.0
	pdfPageH = 297.0
	pdfMarg  = 18.0
)

// BuildPDF renders the printable document: cover first, then one page per
// entry with an explicit page break. The selected background color is
// painted on every page unconditionally, and entry pages carry a page
// number the cover does not.
func BuildPDF(entries []models.ItineraryItem, settings models.ScrapbookSettings) ([]byte, error) {
	bg, err := ParseHexColor(settings.BackgroundColor)
	if err != nil {
		return nil, err
	}

	renderer, err := NewRenderer(settings.BackgroundColor)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	paintBackground := func() {
		pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
		pdf.Rect(0, 0, pdfPageW, pdfPageH, "F")
	}

	// cover
	pdf.AddPage()
	paintBackground()
	if img := renderer.fetchPhoto(settings.CoverURL); img != nil {
		embedImage(pdf, "cover", img, 0, 0, pdfPageW, pdfPageH)
	}
	pdf.SetFont("Times", "B", 28)
	pdf.SetTextColor(28, 25, 23)
	title := chrono.StripTags(settings.Title)
	if title == "" {
		title = "TRAVEL BUDDIES"
	}
	pdf.Text(pdfMarg, pdfPageH/2, title)

	for i, item := range entries {
		pdf.AddPage()
		paintBackground()
		pdf.SetTextColor(28, 25, 23)

		y := pdfMarg + 8
		pdf.SetFont("Times", "B", 22)
		y = writeLines(pdf, pdfMarg, y, 9, chrono.StripTags(item.Title))
		y += 4

		pdf.SetFont("Courier", "", 9)
		dateLine := strings.TrimSpace(chrono.StripTags(item.Date) + "  " + chrono.StripTags(item.TimeSlot))
		if dateLine != "" {
			y = writeLines(pdf, pdfMarg, y, 5, "DATE  "+dateLine)
			y += 4
		}

		pdf.SetFont("Times", "I", 11)
		if guideline := chrono.StripTags(item.Guideline); guideline != "" {
			y = writeLines(pdf, pdfMarg, y, 6, guideline)
			y += 4
		}

		for j, url := range item.PhotoURLs {
			data := renderer.fetchPhoto(url)
			if data == nil {
				continue
			}
			h := 70.0
			if y+h > pdfPageH-pdfMarg-20 {
				break
			}
			name := fmt.Sprintf("photo-%d-%d", i, j)
			if embedImage(pdf, name, data, pdfMarg, y, pdfPageW-2*pdfMarg, h) {
				y += h + 6
			}
		}

		pdf.SetFont("Times", "", 11)
		if thoughts := chrono.StripTags(item.Thoughts); thoughts != "" {
			y = writeLines(pdf, pdfMarg, y+2, 6, thoughts)
		}

		if item.GoogleMapsURL != "" {
			if qr, err := qrcode.Encode(item.GoogleMapsURL, qrcode.Medium, 256); err == nil {
				embedImage(pdf, fmt.Sprintf("qr-%d", i), qr, pdfPageW-pdfMarg-24, pdfPageH-pdfMarg-24, 24, 24)
			}
		}

		// entry pages are numbered, the cover is not
		pdf.SetFont("Times", "", 8)
		pdf.SetTextColor(153, 153, 153)
		pdf.Text(pdfMarg, pdfPageH-10, fmt.Sprintf("Page %d", i+1))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// embedImage registers raw image bytes under name and draws them. Formats
// gofpdf cannot embed are skipped. Reports whether the image was drawn.
func embedImage(pdf *gofpdf.Fpdf, name string, data []byte, x, y, w, h float64) bool {
	var imgType string
	switch http.DetectContentType(data) {
	case "image/jpeg":
		imgType = "JPG"
	case "image/png":
		imgType = "PNG"
	case "image/gif":
		imgType = "GIF"
	default:
		return false
	}

	opts := gofpdf.ImageOptions{ImageType: imgType}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if pdf.Err() {
		pdf.ClearError()
		return false
	}
	pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return true
}

// writeLines word-wraps text into the printable width and returns the
// next baseline y.
func writeLines(pdf *gofpdf.Fpdf, x, y, lineHeight float64, text string) float64 {
	usable := pdfPageW - 2*pdfMarg
	words := strings.Fields(text)
	line := ""
	for _, word := range words {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if pdf.GetStringWidth(candidate) > usable && line != "" {
			pdf.Text(x, y, line)
			y += lineHeight
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		pdf.Text(x, y, line)
		y += lineHeight
	}
	return y
}
