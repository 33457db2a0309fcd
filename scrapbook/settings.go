package scrapbook

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"keepsake/db"
	"keepsake/models"
	"keepsake/mq"
	"keepsake/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const settingsDocID = "scrapbook"

// Defaults if the settings document doesn't exist yet
func defaultSettings() models.ScrapbookSettings {
	return models.ScrapbookSettings{
		Title:           "TRAVEL BUDDIES",
		BackgroundColor: "#ffd9b6",
		CoverURL:        "/uploads/cover.png",
	}
}

var validSettings = map[string]bool{
	"title":            true,
	"background_color": true,
	"cover_url":        true,
}

// LoadSettings returns the shared scrapbook settings, initializing the
// document with defaults on first use.
func LoadSettings(ctx context.Context) (models.ScrapbookSettings, error) {
	var settings models.ScrapbookSettings
	err := db.SettingsCollection.FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		settings = defaultSettings()
		_, _ = db.SettingsCollection.InsertOne(ctx, bson.M{
			"_id":              settingsDocID,
			"title":            settings.Title,
			"background_color": settings.BackgroundColor,
			"cover_url":        settings.CoverURL,
		})
		return settings, nil
	}
	return settings, err
}

// GET /api/scrapbook/settings
func GetSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	settings, err := LoadSettings(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error fetching settings")
		return
	}
	utils.JSON(w, http.StatusOK, settings)
}

// PUT /api/scrapbook/settings/:type
func UpdateSetting(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	settingType := ps.ByName("type")
	if !validSettings[settingType] {
		utils.Error(w, http.StatusBadRequest, "Invalid setting type")
		return
	}

	var update struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	_, err := db.SettingsCollection.UpdateOne(ctx,
		bson.M{"_id": settingsDocID},
		bson.M{"$set": bson.M{settingType: update.Value}},
		opts,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to update setting")
		return
	}

	mq.Emit(ctx, models.UpdateEvent{
		EntryID:   settingsDocID,
		Field:     settingType,
		Value:     update.Value,
		Timestamp: time.Now().UnixMilli(),
	})

	utils.JSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Setting updated successfully",
		"type":    settingType,
		"value":   update.Value,
	})
}
