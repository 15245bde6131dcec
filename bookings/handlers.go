package bookings

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

func ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	venueID := r.URL.Query().Get("venueId")
	status := r.URL.Query().Get("status")

	filter := bson.M{}
	if venueID != "" {
		filter["venueid"] = venueID
	}
	if status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.BookingsCollection.Find(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer cur.Close(ctx)

	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookings": bookings})
}

// UpdateBookingStatus lets the owner of the booked venue accept or cancel a
// booking directly.
func UpdateBookingStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("bookingid")
	if bookingID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing id")
		return
	}
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		utils.RespondWithError(w, http.StatusForbidden, "not the venue owner")
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if body.Status != models.BookingPending && body.Status != models.BookingAccepted && body.Status != models.BookingCancelled {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.Booking
	if err := db.BookingsCollection.FindOne(ctx, bson.M{"id": bookingID}).Decode(&existing); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "not found")
		return
	}
	count, err := db.VenuesCollection.CountDocuments(ctx, bson.M{"venueid": existing.VenueID, "ownerId": userID})
	if err != nil || count == 0 {
		utils.RespondWithError(w, http.StatusForbidden, "not the venue owner")
		return
	}

	res := db.BookingsCollection.FindOneAndUpdate(ctx,
		bson.M{"id": bookingID},
		bson.M{"$set": bson.M{"status": body.Status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Booking
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "booking": updated})
}
