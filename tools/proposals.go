package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"veyra/availability"
	"veyra/db"
	"veyra/models"
	"veyra/notify"
	"veyra/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// Proposal tools. Both persist a pending action, flip the conversation to
// waiting_for_owner and notify the owner. The notification is best-effort;
// the action insert is the commit point.

func proposeBooking(ctx context.Context, args json.RawMessage, tc *Context) (map[string]any, error) {
	var in struct {
		Date       string   `json:"date"`
		StartTime  string   `json:"startTime"`
		EndTime    string   `json:"endTime"`
		GuestCount int      `json:"guestCount"`
		EventType  string   `json:"eventType"`
		Price      float64  `json:"price"`
		Extras     []string `json:"extras"`
		Note       string   `json:"note"`
	}
	if err := parseArgs(args, &in); err != nil {
		return nil, err
	}
	if err := validateProposal(tc, in.Date, in.StartTime, in.EndTime, in.GuestCount, in.EventType); err != nil {
		return nil, err
	}

	action := models.Action{
		ID:             utils.GenerateRandomDigitString(22),
		ConversationID: tc.ConversationID,
		VenueID:        tc.VenueID,
		ActionType:     models.ActionBookingApproval,
		Status:         models.ActionPending,
		Summary: models.ActionSummary{
			Booking: &models.BookingSummary{
				Date:       in.Date,
				StartTime:  in.StartTime,
				EndTime:    in.EndTime,
				GuestCount: in.GuestCount,
				EventType:  in.EventType,
				Price:      in.Price,
				Extras:     in.Extras,
				Note:       in.Note,
			},
		},
		CreatedAt: time.Now().Unix(),
	}
	return createAction(ctx, tc, action)
}

func escalateToOwner(ctx context.Context, args json.RawMessage, tc *Context) (map[string]any, error) {
	var in struct {
		Reason          string `json:"reason"`
		CustomerRequest string `json:"customerRequest"`
		Context         string `json:"context"`
	}
	if err := parseArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Reason == "" || in.CustomerRequest == "" {
		return nil, fmt.Errorf("reason and customerRequest are required")
	}

	action := models.Action{
		ID:             utils.GenerateRandomDigitString(22),
		ConversationID: tc.ConversationID,
		VenueID:        tc.VenueID,
		ActionType:     models.ActionEscalation,
		Status:         models.ActionPending,
		Summary: models.ActionSummary{
			Escalation: &models.EscalationSummary{
				Reason:          in.Reason,
				CustomerRequest: in.CustomerRequest,
				Context:         in.Context,
			},
		},
		CreatedAt: time.Now().Unix(),
	}
	return createAction(ctx, tc, action)
}

func createAction(ctx context.Context, tc *Context, action models.Action) (map[string]any, error) {
	if _, err := db.ActionsCollection.InsertOne(ctx, action); err != nil {
		log.Printf("[tools] action insert failed: %v", err)
		return map[string]any{"success": false}, nil
	}

	set := bson.M{"status": models.ConversationWaitingForOwner, "updatedAt": time.Now().Unix()}
	if b := action.Summary.Booking; b != nil {
		set["collected"] = models.CollectedBooking{
			Date:       b.Date,
			StartTime:  b.StartTime,
			EndTime:    b.EndTime,
			GuestCount: b.GuestCount,
			EventType:  b.EventType,
			Extras:     b.Extras,
			Price:      b.Price,
		}
	}
	_, err := db.ConversationsCollection.UpdateOne(ctx,
		bson.M{"id": tc.ConversationID},
		bson.M{"$set": set},
	)
	if err != nil {
		log.Printf("[tools] conversation status update failed for %s: %v", tc.ConversationID, err)
	}

	notify.Dispatch(ctx, notify.ForAction(action, tc.Venue.OwnerID))

	return map[string]any{"success": true, "actionId": action.ID}, nil
}

// validateProposal applies the configured booking parameters before anything
// is persisted. Violations surface as tool error results.
func validateProposal(tc *Context, date, startTime, endTime string, guests int, eventType string) error {
	day, err := time.Parse(availability.DateLayout, date)
	if err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	start, err := time.Parse("15:04", startTime)
	if err != nil {
		return fmt.Errorf("startTime must be HH:MM")
	}
	end, err := time.Parse("15:04", endTime)
	if err != nil {
		return fmt.Errorf("endTime must be HH:MM")
	}
	if !end.After(start) {
		return fmt.Errorf("endTime must be after startTime")
	}
	if guests <= 0 {
		return fmt.Errorf("guestCount must be positive")
	}

	p := tc.Config.BookingParams
	if p.MinGuests > 0 && guests < p.MinGuests {
		return fmt.Errorf("guest count %d is below the venue minimum of %d", guests, p.MinGuests)
	}
	if p.MaxGuests > 0 && guests > p.MaxGuests {
		return fmt.Errorf("guest count %d exceeds the venue maximum of %d", guests, p.MaxGuests)
	}

	hours := end.Sub(start).Hours()
	if p.MinDurationHours > 0 && hours < p.MinDurationHours {
		return fmt.Errorf("duration %.1fh is below the venue minimum of %.1fh", hours, p.MinDurationHours)
	}
	if p.MaxDurationHours > 0 && hours > p.MaxDurationHours {
		return fmt.Errorf("duration %.1fh exceeds the venue maximum of %.1fh", hours, p.MaxDurationHours)
	}

	today := time.Date(tc.Now.Year(), tc.Now.Month(), tc.Now.Day(), 0, 0, 0, 0, tc.Now.Location())
	advance := int(day.Sub(today).Hours() / 24)
	if advance < 0 {
		return fmt.Errorf("date is in the past")
	}
	if p.MinAdvanceDays > 0 && advance < p.MinAdvanceDays {
		return fmt.Errorf("bookings require at least %d days advance notice", p.MinAdvanceDays)
	}
	if p.MaxAdvanceDays > 0 && advance > p.MaxAdvanceDays {
		return fmt.Errorf("bookings can be made at most %d days in advance", p.MaxAdvanceDays)
	}

	for _, wd := range p.BlockedWeekdays {
		if int(day.Weekday()) == wd {
			return fmt.Errorf("the venue does not take bookings on %ss", day.Weekday())
		}
	}

	if eventType != "" && tc.Config.PolicyFor(eventType) == models.EventPolicyDeclined {
		return fmt.Errorf("event type %q is not accepted at this venue", eventType)
	}
	return nil
}
