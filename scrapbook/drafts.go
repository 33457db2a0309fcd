package scrapbook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"keepsake/designer"
	"keepsake/utils"

	"github.com/julienschmidt/httprouter"
)

// Drafts holds the open editing sessions of this process. A draft is the
// isolated live copy of one entry field; nothing reaches the store until
// its Save.
var Drafts = designer.NewRegistry()

// richFields are the entry fields the designer can be opened on. Labels
// feed the idle-view placeholder.
var richFields = map[string]string{
	"date":      "date",
	"time_slot": "time",
	"title":     "title",
	"guideline": "guideline",
	"thoughts":  "diary",
}

// POST /api/scrapbook/entries/:id/drafts/:field
func OpenDraft(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	entryID := ps.ByName("id")
	field := ps.ByName("field")

	label, ok := richFields[field]
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Field is not editable")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := GetEntry(ctx, entryID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Entry not found")
		return
	}

	committed := ""
	switch field {
	case "date":
		committed = item.Date
	case "time_slot":
		committed = item.TimeSlot
	case "title":
		committed = item.Title
	case "guideline":
		committed = item.Guideline
	case "thoughts":
		committed = item.Thoughts
	}

	draft := Drafts.OpenDraft(entryID, field, committed, func(html string) error {
		return UpdateField(context.Background(), entryID, field, html)
	})

	utils.JSON(w, http.StatusOK, utils.M{
		"draft_id": draft.ID,
		"live":     draft.Session.Live(),
		"display":  designer.Display(committed, label),
	})
}

// POST /api/scrapbook/drafts/:draftid/command
func ApplyDraftCommand(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	draft, ok := Drafts.Get(ps.ByName("draftid"))
	if !ok {
		utils.Error(w, http.StatusNotFound, "Draft not found")
		return
	}

	var body struct {
		Op        string             `json:"op"`
		Value     string             `json:"value"`
		Selection designer.Selection `json:"selection"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	cmd := designer.Command{Op: body.Op, Value: body.Value}
	if err := draft.Session.Apply(cmd, body.Selection); err != nil {
		if errors.Is(err, designer.ErrUnknownCommand) || errors.Is(err, designer.ErrBadValue) {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.Error(w, http.StatusConflict, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, utils.M{"live": draft.Session.Live()})
}

// POST /api/scrapbook/drafts/:draftid/save
func SaveDraft(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	draftID := ps.ByName("draftid")
	draft, ok := Drafts.Get(draftID)
	if !ok {
		utils.Error(w, http.StatusNotFound, "Draft not found")
		return
	}

	err := draft.Session.Save()
	Drafts.Remove(draftID)
	if err != nil {
		// the commit is already reflected locally; notify, don't reconcile
		utils.Error(w, http.StatusInternalServerError, "Failed to persist content")
		return
	}

	label := richFields[draft.Field]
	utils.JSON(w, http.StatusOK, utils.M{
		"content": draft.Session.Committed(),
		"display": designer.Display(draft.Session.Committed(), label),
	})
}

// DELETE /api/scrapbook/drafts/:draftid
func DismissDraft(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	draftID := ps.ByName("draftid")
	draft, ok := Drafts.Get(draftID)
	if !ok {
		utils.Error(w, http.StatusNotFound, "Draft not found")
		return
	}

	draft.Session.Dismiss()
	Drafts.Remove(draftID)
	utils.JSON(w, http.StatusOK, utils.M{"status": "dismissed"})
}
