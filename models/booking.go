package models

// Booking statuses. pending and accepted both occupy calendar time.
const (
	BookingPending   = "pending"
	BookingAccepted  = "accepted"
	BookingCancelled = "cancelled"
)

// Booking is a confirmed or requested reservation of a venue date.
type Booking struct {
	ID             string  `json:"id" bson:"id"`
	VenueID        string  `json:"venueid" bson:"venueid"`
	ConversationID string  `json:"conversationId,omitempty" bson:"conversationId,omitempty"`
	ActionID       string  `json:"actionId,omitempty" bson:"actionId,omitempty"`
	CustomerID     string  `json:"customerId,omitempty" bson:"customerId,omitempty"`
	Date           string  `json:"date" bson:"date"` // YYYY-MM-DD
	Start          string  `json:"start" bson:"start"`
	End            string  `json:"end,omitempty" bson:"end,omitempty"`
	GuestCount     int     `json:"guestCount,omitempty" bson:"guestCount,omitempty"`
	EventType      string  `json:"eventType,omitempty" bson:"eventType,omitempty"`
	Price          float64 `json:"price,omitempty" bson:"price,omitempty"`
	Status         string  `json:"status" bson:"status"` // pending, accepted, cancelled
	CreatedAt      int64   `json:"createdAt" bson:"createdAt"`
}
