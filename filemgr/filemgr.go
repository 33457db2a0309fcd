package filemgr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const maxPhotoSize = 10 << 20

var (
	allowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	allowedMIMEs      = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

	ErrInvalidExtension = errors.New("invalid file extension")
	ErrInvalidMIME      = errors.New("invalid MIME type")
	ErrFileTooLarge     = errors.New("file size exceeds limit")
)

// UploadRoot is the on-disk directory photos are served from. Overridable
// through KEEPSAKE_UPLOAD_DIR for tests and deployments.
func UploadRoot() string {
	if dir := os.Getenv("KEEPSAKE_UPLOAD_DIR"); dir != "" {
		return dir
	}
	return filepath.Join("static", "uploads")
}

func PhotoDir() string {
	return filepath.Join(UploadRoot(), "photo")
}

func ThumbDir() string {
	return filepath.Join(UploadRoot(), "thumb")
}

// PublicURL maps a stored photo filename to the locator clients resolve.
func PublicURL(filename string) string {
	return "/uploads/photo/" + filename
}

// SavePhoto validates and stores one uploaded photo. JPEG-decodable images
// are re-encoded first, which drops EXIF data, and get a 300px thumbnail.
// Returns the stored filename.
func SavePhoto(file multipart.File, header *multipart.FileHeader, customName string) (string, error) {
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !contains(allowedExtensions, ext) {
		return "", fmt.Errorf("%w: %s", ErrInvalidExtension, ext)
	}

	buf, err := io.ReadAll(io.LimitReader(file, maxPhotoSize+1))
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	if len(buf) > maxPhotoSize {
		return "", ErrFileTooLarge
	}

	mimeType := http.DetectContentType(buf)
	if mimeType == "application/octet-stream" {
		if formMime := header.Header.Get("Content-Type"); formMime != "" {
			mimeType = formMime
		}
	}
	if !contains(allowedMIMEs, mimeType) {
		return "", fmt.Errorf("%w: %s", ErrInvalidMIME, mimeType)
	}

	filename := customName
	if filename == "" {
		filename = uuid.New().String() + ext
	} else {
		filename = EnsureSafeFilename(filename, ext)
	}

	img, _, decodeErr := image.Decode(bytes.NewReader(buf))
	if decodeErr == nil {
		if strip, err := stripEXIF(img); err == nil {
			buf = strip.Bytes()
			filename = replaceExt(filename, ".jpg")
		}
	}

	if err := os.MkdirAll(PhotoDir(), 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", PhotoDir(), err)
	}
	fullPath := filepath.Join(PhotoDir(), filename)
	if err := os.WriteFile(fullPath, buf, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", fullPath, err)
	}

	if decodeErr == nil {
		_ = generateThumbnail(img, filename)
	}

	return filename, nil
}

// stripEXIF re-encodes the image, shedding any metadata segments.
func stripEXIF(img image.Image) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 90})
	return buf, err
}

func generateThumbnail(img image.Image, filename string) error {
	if err := os.MkdirAll(ThumbDir(), 0o755); err != nil {
		return err
	}
	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	return imaging.Save(thumb, filepath.Join(ThumbDir(), replaceExt(filename, ".jpg")))
}

func contains(list []string, v string) bool {
	for _, a := range list {
		if a == v {
			return true
		}
	}
	return false
}

func replaceExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}
