package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"veyra/availability"
	"veyra/calendar"
	"veyra/db"
	"veyra/models"
	"veyra/utils"
)

// ErrDateConflict means the date was taken between the availability check the
// agent ran and the owner's approval. Callers surface it distinctly from
// other failures.
var ErrDateConflict = errors.New("date no longer available")

// CreateFromSummary turns an approved booking proposal into an accepted
// booking. The availability re-check and the insert happen here, at write
// time, because the resolver's earlier answer may be stale.
func CreateFromSummary(ctx context.Context, venueID string, s *models.BookingSummary, conversationID, actionID, customerID string) (*models.Booking, error) {
	if s == nil {
		return nil, fmt.Errorf("booking summary missing")
	}

	snap, err := calendar.LoadSnapshot(ctx, venueID, s.Date, s.Date)
	if err != nil {
		return nil, err
	}
	res := availability.Check(snap, time.Now(), s.Date, s.StartTime, s.EndTime)
	if !res.Available {
		return nil, fmt.Errorf("%w: %s", ErrDateConflict, res.Reason)
	}

	b := models.Booking{
		ID:             utils.GenerateRandomDigitString(22),
		VenueID:        venueID,
		ConversationID: conversationID,
		ActionID:       actionID,
		CustomerID:     customerID,
		Date:           s.Date,
		Start:          s.StartTime,
		End:            s.EndTime,
		GuestCount:     s.GuestCount,
		EventType:      s.EventType,
		Price:          s.Price,
		Status:         models.BookingAccepted,
		CreatedAt:      time.Now().Unix(),
	}
	if _, err := db.BookingsCollection.InsertOne(ctx, b); err != nil {
		return nil, err
	}
	return &b, nil
}
