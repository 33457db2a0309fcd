package filedrop

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"keepsake/filemgr"
	"keepsake/scrapbook"
	"keepsake/utils"

	"github.com/julienschmidt/httprouter"
)

// buildPhotoName derives the stored base name for one uploaded photo:
// entry id plus batch timestamp, and in batch mode also the original file
// name and submission index so names inside one batch never collide.
func buildPhotoName(entryID string, ts int64, original string, index int, batch bool) string {
	if !batch {
		return fmt.Sprintf("%s-%d", entryID, ts)
	}
	base := strings.TrimSuffix(original, filepath.Ext(original))
	return fmt.Sprintf("%s-%d-%s-%d", entryID, ts, base, index)
}

// POST /api/scrapbook/entries/:id/photos
//
// Files are saved strictly one after another so the resulting photo_urls
// order always matches submission order. New locators are appended to the
// entry through the single field-update path.
func UploadEntryPhotos(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	entryID := ps.ByName("id")

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	files := r.MultipartForm.File["photos"]
	if len(files) == 0 {
		utils.Error(w, http.StatusBadRequest, "No photos attached")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	item, err := scrapbook.GetEntry(ctx, entryID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Entry not found")
		return
	}

	batch := len(files) > 1
	ts := time.Now().UnixMilli()

	var uploaded []string
	var saveErr error
	for i, fh := range files {
		file, err := fh.Open()
		if err != nil {
			saveErr = fmt.Errorf("open %s: %w", fh.Filename, err)
			break
		}
		name := buildPhotoName(entryID, ts, fh.Filename, i, batch)
		stored, err := filemgr.SavePhoto(file, fh, name+filepath.Ext(fh.Filename))
		if err != nil {
			saveErr = fmt.Errorf("save %s: %w", fh.Filename, err)
			break
		}
		uploaded = append(uploaded, filemgr.PublicURL(stored))
	}

	// photos already stored stay appended even when a later one fails
	if len(uploaded) > 0 {
		newList := append(append([]string{}, item.PhotoURLs...), uploaded...)
		if err := scrapbook.UpdateField(ctx, entryID, "photo_urls", newList); err != nil {
			log.Println("append photos:", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to attach photos")
			return
		}
		item.PhotoURLs = newList
	}

	if saveErr != nil {
		log.Println("photo upload:", saveErr)
		utils.Error(w, http.StatusBadRequest, saveErr.Error())
		return
	}

	utils.JSON(w, http.StatusOK, utils.M{
		"photo_urls": item.PhotoURLs,
		"uploaded":   uploaded,
	})
}
