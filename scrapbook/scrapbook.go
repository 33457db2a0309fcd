package scrapbook

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"keepsake/chrono"
	"keepsake/db"
	"keepsake/models"
	"keepsake/mq"
	"keepsake/rdx"
	"keepsake/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const entriesCacheKey = "scrapbook:entries"

// allowedFields is the full updatable field set of an entry. The entry id
// is immutable and has no business being here.
var allowedFields = map[string]bool{
	"day_number":      true,
	"date":            true,
	"time_slot":       true,
	"title":           true,
	"guideline":       true,
	"thoughts":        true,
	"photo_urls":      true,
	"google_maps_url": true,
}

// UpdateField is the single update path every field mutation goes through:
// drop the cached sorted view, persist the one-field $set, then emit the
// update event for connected sessions. A failed remote write is reported,
// never reconciled; the invalidated cache means the next read re-sorts
// whatever state the store is in.
func UpdateField(ctx context.Context, entryID, field string, value any) error {
	if !allowedFields[field] {
		return fmt.Errorf("invalid field %q", field)
	}

	rdx.RemoveCache(entriesCacheKey)

	_, err := db.EntriesCollection.UpdateOne(ctx,
		bson.M{"entryid": entryID},
		bson.M{"$set": bson.M{field: value}},
	)
	if err != nil {
		return fmt.Errorf("update %s.%s: %w", entryID, field, err)
	}

	mq.Emit(ctx, models.UpdateEvent{
		EntryID:   entryID,
		Field:     field,
		Value:     value,
		Timestamp: time.Now().UnixMilli(),
	})
	return nil
}

// FetchSorted returns every entry in display order.
func FetchSorted(ctx context.Context) ([]models.ItineraryItem, error) {
	entries, err := utils.FindAndDecode[models.ItineraryItem](ctx, db.EntriesCollection, bson.M{})
	if err != nil {
		return nil, err
	}
	return chrono.SortEntries(entries), nil
}

// GetEntry loads one entry by id.
func GetEntry(ctx context.Context, entryID string) (models.ItineraryItem, error) {
	var item models.ItineraryItem
	err := db.EntriesCollection.FindOne(ctx, bson.M{"entryid": entryID}).Decode(&item)
	return item, err
}

// GET /api/scrapbook/entries
func GetEntries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if cached := rdx.GetCache(entriesCacheKey); cached != nil {
		w.Header().Set("Content-Type", "application/json")
		w.Write(cached)
		return
	}

	entries, err := FetchSorted(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error fetching entries")
		return
	}

	if data, err := json.Marshal(entries); err == nil {
		rdx.SetCache(entriesCacheKey, data, 60*time.Second)
	}
	utils.JSON(w, http.StatusOK, entries)
}

// GET /api/scrapbook/entries/:id
func GetOneEntry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := GetEntry(ctx, ps.ByName("id"))
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Entry not found")
		return
	}
	utils.JSON(w, http.StatusOK, item)
}

// POST /api/scrapbook/entries
func CreateEntry(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// best-effort ordering hint, not authoritative
	count, err := db.EntriesCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		count = 0
	}

	item := models.ItineraryItem{
		EntryID:   utils.GetUUID(),
		DayNumber: int(count) + 1,
		PhotoURLs: []string{},
	}

	if _, err := db.EntriesCollection.InsertOne(ctx, item); err != nil {
		log.Println("insert entry:", err)
		utils.Error(w, http.StatusInternalServerError, "Error creating entry")
		return
	}

	rdx.RemoveCache(entriesCacheKey)
	utils.JSON(w, http.StatusCreated, item)
}

// PUT /api/scrapbook/entries/:id/field/:field
func UpdateEntryField(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	entryID := ps.ByName("id")
	field := ps.ByName("field")

	if !allowedFields[field] {
		utils.Error(w, http.StatusBadRequest, "Invalid field name")
		return
	}

	var body struct {
		Value any `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := UpdateField(ctx, entryID, field, body.Value); err != nil {
		log.Println("update field:", err)
		utils.Error(w, http.StatusInternalServerError, "Failed to update field")
		return
	}

	utils.JSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Field updated successfully",
		"field":   field,
		"value":   body.Value,
	})
}
