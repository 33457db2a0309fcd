package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"keepsake/chrono"
	"keepsake/filemgr"
	"keepsake/models"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// A4 at 72dpi; every page image is rendered at this size times the
// supersampling factor.
const (
	pageW       = 595
	pageH       = 842
	Supersample = 2
	margin      = 48 * Supersample
)

// photoWait bounds how long the renderer waits for one photo before the
// page proceeds without it.
const photoWait = 5 * time.Second

var inkColor = color.NRGBA{R: 0x1c, G: 0x19, B: 0x17, A: 0xff}

// PageRenderer rasterizes scrapbook pages for the bundle export.
type PageRenderer struct {
	Background color.NRGBA
	client     *http.Client
}

func NewRenderer(background string) (*PageRenderer, error) {
	bg, err := ParseHexColor(background)
	if err != nil {
		return nil, fmt.Errorf("background color: %w", err)
	}
	return &PageRenderer{
		Background: bg,
		client:     &http.Client{Timeout: photoWait},
	}, nil
}

// ParseHexColor parses #rgb and #rrggbb color values.
func ParseHexColor(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	hexVal := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}
	if len(s) == 0 || s[0] != '#' {
		return c, fmt.Errorf("invalid color %q", s)
	}
	switch len(s) {
	case 7:
		for i := 0; i < 3; i++ {
			hi, ok1 := hexVal(s[1+i*2])
			lo, ok2 := hexVal(s[2+i*2])
			if !ok1 || !ok2 {
				return c, fmt.Errorf("invalid color %q", s)
			}
			v := hi<<4 | lo
			switch i {
			case 0:
				c.R = v
			case 1:
				c.G = v
			case 2:
				c.B = v
			}
		}
	case 4:
		for i := 0; i < 3; i++ {
			v, ok := hexVal(s[1+i])
			if !ok {
				return c, fmt.Errorf("invalid color %q", s)
			}
			v = v<<4 | v
			switch i {
			case 0:
				c.R = v
			case 1:
				c.G = v
			case 2:
				c.B = v
			}
		}
	default:
		return c, fmt.Errorf("invalid color %q", s)
	}
	return c, nil
}

// fetchPhoto resolves a photo locator to raw bytes. Locally served
// uploads are read from disk; anything else goes through the HTTP client
// with its bounded wait. A nil result means "proceed without the photo".
func (p *PageRenderer) fetchPhoto(url string) []byte {
	if strings.HasPrefix(url, "/uploads/") {
		path := filepath.Join(filemgr.UploadRoot(), filepath.FromSlash(strings.TrimPrefix(url, "/uploads/")))
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		return data
	}

	resp, err := p.client.Get(url)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}
	return data
}

func (p *PageRenderer) newPage() *image.NRGBA {
	return imaging.New(pageW*Supersample, pageH*Supersample, p.Background)
}

// RenderCover draws the cover page: background, cover photo when it
// resolves, and the scrapbook title.
func (p *PageRenderer) RenderCover(settings models.ScrapbookSettings) *image.NRGBA {
	page := p.newPage()

	if data := p.fetchPhoto(settings.CoverURL); data != nil {
		if img, err := imaging.Decode(bytes.NewReader(data)); err == nil {
			fitted := imaging.Fill(img, pageW*Supersample, pageH*Supersample, imaging.Center, imaging.Lanczos)
			page = imaging.Paste(page, fitted, image.Pt(0, 0))
		}
	}

	title := chrono.StripTags(settings.Title)
	if title == "" {
		title = "TRAVEL BUDDIES"
	}
	drawText(page, margin, pageH*Supersample/2, inkColor, title)
	return page
}

// RenderEntry draws one itinerary page: heading, date/time line,
// guideline, photos, diary text, and the page number.
func (p *PageRenderer) RenderEntry(item models.ItineraryItem, pageNo int) (*image.NRGBA, error) {
	page := p.newPage()
	y := margin + 13

	y = drawWrapped(page, margin, y, inkColor, chrono.StripTags(item.Title))
	y += 20

	dateLine := strings.TrimSpace(chrono.StripTags(item.Date) + "  " + chrono.StripTags(item.TimeSlot))
	if dateLine != "" {
		y = drawWrapped(page, margin, y, inkColor, dateLine)
		y += 20
	}
	if guideline := chrono.StripTags(item.Guideline); guideline != "" {
		y = drawWrapped(page, margin, y, inkColor, guideline)
		y += 20
	}

	for _, url := range item.PhotoURLs {
		data := p.fetchPhoto(url)
		if data == nil {
			continue
		}
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			continue
		}
		fitted := imaging.Fit(img, pageW*Supersample-2*margin, 260*Supersample, imaging.Lanczos)
		if y+fitted.Bounds().Dy() > pageH*Supersample-margin {
			break
		}
		page = imaging.Paste(page, fitted, image.Pt(margin, y))
		y += fitted.Bounds().Dy() + 16
	}

	if thoughts := chrono.StripTags(item.Thoughts); thoughts != "" {
		drawWrapped(page, margin, y+10, inkColor, thoughts)
	}

	drawText(page, margin, pageH*Supersample-margin/2, inkColor, fmt.Sprintf("Page %d", pageNo))
	return page, nil
}

func drawText(dst *image.NRGBA, x, y int, col color.Color, text string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// drawWrapped draws text with naive word wrapping and returns the next
// baseline y.
func drawWrapped(dst *image.NRGBA, x, y int, col color.Color, text string) int {
	const lineHeight = 16
	maxChars := (pageW*Supersample - 2*margin) / 7
	if maxChars < 8 {
		maxChars = 8
	}

	line := ""
	for _, word := range strings.Fields(text) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if len(candidate) > maxChars && line != "" {
			drawText(dst, x, y, col, line)
			y += lineHeight
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		drawText(dst, x, y, col, line)
		y += lineHeight
	}
	return y
}
