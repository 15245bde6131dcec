// Package venues manages venue profiles and their agent configuration.
package venues

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"veyra/db"
	"veyra/middleware"
	"veyra/models"
	"veyra/rdx"
	"veyra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateVenue registers a venue owned by the caller.
func CreateVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var venue models.VenueProfile
	if err := json.NewDecoder(r.Body).Decode(&venue); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if venue.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name is required")
		return
	}

	venue.VenueID = utils.GenerateRandomDigitString(22)
	venue.OwnerID = middleware.UserIDFromContext(r.Context())
	venue.CreatedAt = time.Now().Unix()

	if _, err := db.VenuesCollection.InsertOne(ctx, venue); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create venue")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, venue)
}

// GetVenue serves a venue profile, cache first.
func GetVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	venueID := ps.ByName("venueid")
	cacheKey := "venue:" + venueID

	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	var venue models.VenueProfile
	err := db.VenuesCollection.FindOne(ctx, bson.M{"venueid": venueID}).Decode(&venue)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "venue not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to fetch venue")
		return
	}

	if data, err := json.Marshal(venue); err == nil {
		rdx.RdxSet(cacheKey, string(data))
	}
	utils.RespondWithJSON(w, http.StatusOK, venue)
}

// GetVenues lists venues, optionally filtered by owner.
func GetVenues(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if owner := r.URL.Query().Get("ownerId"); owner != "" {
		filter["ownerId"] = owner
	}

	cursor, err := db.VenuesCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(100))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to fetch venues")
		return
	}
	defer cursor.Close(ctx)

	venues := []models.VenueProfile{}
	if err := cursor.All(ctx, &venues); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode venues")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, venues)
}

// UpdateVenue edits a profile. Only the owner may edit; the cached copy is
// dropped on success.
func UpdateVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	venueID := ps.ByName("venueid")
	userID := middleware.UserIDFromContext(r.Context())

	var body models.VenueProfile
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := bson.M{
		"name":         body.Name,
		"address":      body.Address,
		"description":  body.Description,
		"capacity":     body.Capacity,
		"amenities":    body.Amenities,
		"contact":      body.Contact,
		"priceHourly":  body.PriceHourly,
		"priceHalfDay": body.PriceHalfDay,
		"priceEvening": body.PriceEvening,
		"priceFullDay": body.PriceFullDay,
	}

	res, err := db.VenuesCollection.UpdateOne(ctx,
		bson.M{"venueid": venueID, "ownerId": userID},
		bson.M{"$set": update},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update venue")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "venue not found or not yours")
		return
	}

	rdx.RdxDel("venue:" + venueID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// DeleteVenue removes a venue and its agent configuration.
func DeleteVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	venueID := ps.ByName("venueid")
	userID := middleware.UserIDFromContext(r.Context())

	res, err := db.VenuesCollection.DeleteOne(ctx, bson.M{"venueid": venueID, "ownerId": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to delete venue")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "venue not found or not yours")
		return
	}

	if _, err := db.AgentConfigsCollection.DeleteOne(ctx, bson.M{"venueid": venueID}); err != nil {
		log.Printf("[venues] agent config cleanup failed for %s: %v", venueID, err)
	}
	rdx.RdxDel("venue:" + venueID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
