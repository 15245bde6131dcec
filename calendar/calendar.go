package calendar

import (
	"context"
	"time"

	"veyra/availability"
	"veyra/db"
	"veyra/models"

	"go.mongodb.org/mongo-driver/bson"
)

// LoadSnapshot fetches the blocked dates and pending/accepted bookings for a
// venue between from and to (inclusive, YYYY-MM-DD) in two range queries.
// Callers hand the result to the availability resolver; the alternative
// search never goes back to the store.
func LoadSnapshot(ctx context.Context, venueID, from, to string) (*availability.Snapshot, error) {
	snap := &availability.Snapshot{
		Blocked: make(map[string]string),
		Booked:  make(map[string][]availability.TimeRange),
	}

	dateFilter := bson.M{"$gte": from, "$lte": to}

	cur, err := db.BlockedDatesCollection.Find(ctx, bson.M{"venueid": venueID, "date": dateFilter})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var bd models.BlockedDate
		if err := cur.Decode(&bd); err != nil {
			continue
		}
		snap.Blocked[bd.Date] = bd.Reason
	}

	bcur, err := db.BookingsCollection.Find(ctx, bson.M{
		"venueid": venueID,
		"date":    dateFilter,
		"status":  bson.M{"$in": []string{models.BookingPending, models.BookingAccepted}},
	})
	if err != nil {
		return nil, err
	}
	defer bcur.Close(ctx)
	for bcur.Next(ctx) {
		var b models.Booking
		if err := bcur.Decode(&b); err != nil {
			continue
		}
		snap.Booked[b.Date] = append(snap.Booked[b.Date], availability.TimeRange{Start: b.Start, End: b.End})
	}

	return snap, nil
}

// LoadSnapshotAround covers the availability check plus its alternative scan
// for a single target date.
func LoadSnapshotAround(ctx context.Context, venueID string, target time.Time) (*availability.Snapshot, error) {
	from, to := availability.SearchRange(target)
	return LoadSnapshot(ctx, venueID, from, to)
}

// LoadPromptWindow returns the 3-month forward window included in the agent's
// instruction document.
func LoadPromptWindow(ctx context.Context, venueID string, today time.Time) (*availability.Snapshot, error) {
	from := today.Format(availability.DateLayout)
	to := today.AddDate(0, 3, 0).Format(availability.DateLayout)
	return LoadSnapshot(ctx, venueID, from, to)
}
