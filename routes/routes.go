package routes

import (
	"net/http"

	"keepsake/collab"
	"keepsake/export"
	"keepsake/filedrop"
	"keepsake/filemgr"
	"keepsake/ratelim"
	"keepsake/scrapbook"

	"github.com/julienschmidt/httprouter"
)

func AddScrapbookRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/scrapbook/entries", scrapbook.GetEntries)
	router.POST("/api/scrapbook/entries", rateLimiter.Limit(scrapbook.CreateEntry))
	router.GET("/api/scrapbook/entries/:id", scrapbook.GetOneEntry)
	router.PUT("/api/scrapbook/entries/:id/field/:field", rateLimiter.Limit(scrapbook.UpdateEntryField))

	router.GET("/api/scrapbook/settings", scrapbook.GetSettings)
	router.PUT("/api/scrapbook/settings/:type", rateLimiter.Limit(scrapbook.UpdateSetting))
}

func AddDraftRoutes(router *httprouter.Router) {
	router.POST("/api/scrapbook/entries/:id/drafts/:field", scrapbook.OpenDraft)
	router.POST("/api/scrapbook/drafts/:draftid/command", scrapbook.ApplyDraftCommand)
	router.POST("/api/scrapbook/drafts/:draftid/save", scrapbook.SaveDraft)
	router.DELETE("/api/scrapbook/drafts/:draftid", scrapbook.DismissDraft)
}

func AddUploadRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/scrapbook/entries/:id/photos", rateLimiter.Limit(filedrop.UploadEntryPhotos))
}

func AddExportRoutes(router *httprouter.Router) {
	router.GET("/api/scrapbook/export/pdf", export.ExportPDF)
	router.GET("/api/scrapbook/export/bundle", export.ExportBundle)
}

func AddSyncRoutes(router *httprouter.Router, hub *collab.Hub) {
	router.GET("/ws/scrapbook/:room", collab.WebSocketHandler(hub))
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/uploads/*filepath", http.Dir(filemgr.UploadRoot()))
}
