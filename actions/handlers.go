package actions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"veyra/bookings"
	"veyra/db"
	"veyra/middleware"
	"veyra/models"
	"veyra/realtime"
	"veyra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FeedEntry is an action plus the flag the owner dashboard keys its buttons
// on.
type FeedEntry struct {
	models.Action `bson:",inline"`
	Actionable    bool `json:"actionable"`
}

// GetActions returns the owner's action feed for a venue, newest first.
func GetActions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	venueID := r.URL.Query().Get("venueId")
	if venueID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "venueId is required")
		return
	}
	if !ownsVenue(ctx, venueID, middleware.UserIDFromContext(r.Context())) {
		utils.RespondWithError(w, http.StatusForbidden, "not your venue")
		return
	}

	filter := bson.M{"venueid": venueID}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	cursor, err := db.ActionsCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(100))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to fetch actions")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Action
	if err := cursor.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode actions")
		return
	}

	feed := make([]FeedEntry, 0, len(list))
	for i := range list {
		feed = append(feed, FeedEntry{Action: list[i], Actionable: Actionable(&list[i])})
	}
	utils.RespondWithJSON(w, http.StatusOK, feed)
}

// GetAction returns a single action by id.
func GetAction(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	a, err := loadAction(ctx, ps.ByName("actionid"))
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, FeedEntry{Action: *a, Actionable: Actionable(a)})
}

// ApproveAction resolves a booking_approval and creates the booking.
func ApproveAction(hub *realtime.Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		var body struct {
			Note string `json:"note"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		resolveForOwner(w, r, ps, func(ctx context.Context, a *models.Action) error {
			return Approve(ctx, hub, a, body.Note)
		})
	}
}

// DeclineAction resolves any pending action with an optional reason.
func DeclineAction(hub *realtime.Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		var body struct {
			Reason string `json:"reason"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		resolveForOwner(w, r, ps, func(ctx context.Context, a *models.Action) error {
			return Decline(ctx, hub, a, body.Reason)
		})
	}
}

// ReplyToAction answers an escalation and hands the conversation back to the
// agent.
func ReplyToAction(hub *realtime.Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Message == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "message is required")
			return
		}
		resolveForOwner(w, r, ps, func(ctx context.Context, a *models.Action) error {
			return Reply(ctx, hub, a, body.Message)
		})
	}
}

// ModifyAction opens a counter-offer with the owner's adjusted terms.
func ModifyAction(hub *realtime.Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var body struct {
			Date       string   `json:"date"`
			StartTime  string   `json:"startTime"`
			EndTime    string   `json:"endTime"`
			GuestCount int      `json:"guestCount"`
			EventType  string   `json:"eventType"`
			Price      float64  `json:"price"`
			Extras     []string `json:"extras"`
			Note       string   `json:"note"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.Date == "" || body.StartTime == "" || body.EndTime == "" || body.Price <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "date, startTime, endTime and price are required")
			return
		}

		a, err := loadAction(ctx, ps.ByName("actionid"))
		if err != nil {
			respondWorkflowError(w, err)
			return
		}
		if !ownsVenue(ctx, a.VenueID, middleware.UserIDFromContext(r.Context())) {
			utils.RespondWithError(w, http.StatusForbidden, "not your venue")
			return
		}

		terms := models.BookingSummary{
			Date:       body.Date,
			StartTime:  body.StartTime,
			EndTime:    body.EndTime,
			GuestCount: body.GuestCount,
			EventType:  body.EventType,
			Price:      body.Price,
			Extras:     body.Extras,
		}
		if orig := a.Summary.Booking; orig != nil {
			if terms.GuestCount == 0 {
				terms.GuestCount = orig.GuestCount
			}
			if terms.EventType == "" {
				terms.EventType = orig.EventType
			}
		}

		counter, err := Modify(ctx, hub, a, terms, body.Note)
		if err != nil {
			respondWorkflowError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusCreated, counter)
	}
}

// RespondCounterOffer records the customer's accept/decline on a
// counter-offer. The conversation's customer, when known, must match the
// caller; anonymous conversations stay open.
func RespondCounterOffer(hub *realtime.Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var body struct {
			Accept bool   `json:"accept"`
			Note   string `json:"note"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		a, err := loadAction(ctx, ps.ByName("actionid"))
		if err != nil {
			respondWorkflowError(w, err)
			return
		}
		if owner := customerOf(ctx, a.ConversationID); owner != "" && owner != middleware.UserIDFromContext(r.Context()) {
			utils.RespondWithError(w, http.StatusForbidden, "not your conversation")
			return
		}

		if err := RespondToCounter(ctx, hub, a, body.Accept, body.Note); err != nil {
			respondWorkflowError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "actionId": a.ID})
	}
}

func resolveForOwner(w http.ResponseWriter, r *http.Request, ps httprouter.Params, fn func(context.Context, *models.Action) error) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	a, err := loadAction(ctx, ps.ByName("actionid"))
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	if !ownsVenue(ctx, a.VenueID, middleware.UserIDFromContext(r.Context())) {
		utils.RespondWithError(w, http.StatusForbidden, "not your venue")
		return
	}

	if err := fn(ctx, a); err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "actionId": a.ID})
}

func respondWorkflowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "action not found")
	case errors.Is(err, ErrAlreadyResolved):
		utils.RespondWithError(w, http.StatusConflict, "action already resolved")
	case errors.Is(err, ErrCounterOpen):
		utils.RespondWithError(w, http.StatusConflict, "a counter-offer is awaiting the customer")
	case errors.Is(err, ErrWrongType):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, bookings.ErrDateConflict):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to resolve action")
	}
}

func ownsVenue(ctx context.Context, venueID, userID string) bool {
	if userID == "" {
		return false
	}
	count, err := db.VenuesCollection.CountDocuments(ctx, bson.M{"venueid": venueID, "ownerId": userID})
	return err == nil && count > 0
}
