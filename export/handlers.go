package export

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"keepsake/scrapbook"
	"keepsake/utils"

	"github.com/julienschmidt/httprouter"
)

// one export at a time; the flag is always released so a failed run can
// be retried from scratch
var (
	exportMu   sync.Mutex
	inProgress bool
)

func beginExport() bool {
	exportMu.Lock()
	defer exportMu.Unlock()
	if inProgress {
		return false
	}
	inProgress = true
	return true
}

func endExport() {
	exportMu.Lock()
	inProgress = false
	exportMu.Unlock()
}

// GET /api/scrapbook/export/bundle
func ExportBundle(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !beginExport() {
		utils.Error(w, http.StatusConflict, "Export already in progress")
		return
	}
	defer endExport()

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	entries, err := scrapbook.FetchSorted(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error fetching entries")
		return
	}
	settings, err := scrapbook.LoadSettings(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error fetching settings")
		return
	}

	data, err := BuildBundle(entries, settings)
	if err != nil {
		log.Println("bundle export:", err)
		utils.Error(w, http.StatusInternalServerError, "Export failed: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="scrapbook-bundle.zip"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// GET /api/scrapbook/export/pdf
func ExportPDF(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	entries, err := scrapbook.FetchSorted(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error fetching entries")
		return
	}
	settings, err := scrapbook.LoadSettings(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error fetching settings")
		return
	}

	data, err := BuildPDF(entries, settings)
	if err != nil {
		log.Println("pdf export:", err)
		utils.Error(w, http.StatusInternalServerError, "Export failed: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="scrapbook.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
