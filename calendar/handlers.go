package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"veyra/db"
	"veyra/middleware"
	"veyra/models"
	"veyra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ownsVenue checks the requester against the venue record.
func ownsVenue(ctx context.Context, venueID, userID string) bool {
	if userID == "" {
		return false
	}
	count, err := db.VenuesCollection.CountDocuments(ctx, bson.M{"venueid": venueID, "ownerId": userID})
	return err == nil && count > 0
}

func ListBlockedDates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	venueID := ps.ByName("venueid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.BlockedDatesCollection.Find(ctx, bson.M{"venueid": venueID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer cur.Close(ctx)

	var blocked []models.BlockedDate
	if err := cur.All(ctx, &blocked); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	if blocked == nil {
		blocked = []models.BlockedDate{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"blockedDates": blocked})
}

func BlockDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	venueID := ps.ByName("venueid")

	var body struct {
		Date   string `json:"date"`
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid date")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !ownsVenue(ctx, venueID, middleware.UserIDFromContext(r.Context())) {
		utils.RespondWithError(w, http.StatusForbidden, "not the venue owner")
		return
	}

	bd := models.BlockedDate{
		VenueID:   venueID,
		Date:      body.Date,
		Reason:    body.Reason,
		CreatedAt: time.Now().Unix(),
	}
	_, err := db.BlockedDatesCollection.UpdateOne(ctx,
		bson.M{"venueid": venueID, "date": body.Date},
		bson.M{"$set": bd},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "blockedDate": bd})
}

func UnblockDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	venueID := ps.ByName("venueid")
	date := ps.ByName("date")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !ownsVenue(ctx, venueID, middleware.UserIDFromContext(r.Context())) {
		utils.RespondWithError(w, http.StatusForbidden, "not the venue owner")
		return
	}

	_, err := db.BlockedDatesCollection.DeleteOne(ctx, bson.M{"venueid": venueID, "date": date})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
