package models

import "fmt"

// Action types.
const (
	ActionBookingApproval = "booking_approval"
	ActionEscalation      = "escalation"
	ActionCounterOffer    = "counter_offer"
)

// Action statuses. pending is the only non-terminal state.
const (
	ActionPending  = "pending"
	ActionApproved = "approved"
	ActionDeclined = "declined"
	ActionModified = "modified"
	ActionExpired  = "expired"
)

// Action is a persisted proposal awaiting resolution: booking approvals and
// escalations by the owner, counter-offers by the customer.
type Action struct {
	ID             string `json:"id" bson:"id"`
	ConversationID string `json:"conversationId" bson:"conversationId"`
	VenueID        string `json:"venueid" bson:"venueid"`
	ActionType     string `json:"actionType" bson:"actionType"`
	Status         string `json:"status" bson:"status"`

	Summary ActionSummary `json:"summary" bson:"summary"`

	// Counter-offer linkage. A modify resolution leaves the original pending
	// and opens a counter_offer pointing back at it; the original carries the
	// open counter's id until that counter resolves.
	OriginalActionID string `json:"originalActionId,omitempty" bson:"originalActionId,omitempty"`
	CounterActionID  string `json:"counterActionId,omitempty" bson:"counterActionId,omitempty"`

	OwnerResponse string `json:"ownerResponse,omitempty" bson:"ownerResponse,omitempty"`
	CreatedAt     int64  `json:"createdAt" bson:"createdAt"`
	ResolvedAt    int64  `json:"resolvedAt,omitempty" bson:"resolvedAt,omitempty"`
}

// ActionSummary is the per-type payload. Go has no sum types; exactly the
// field matching ActionType is set, enforced by Validate.
type ActionSummary struct {
	Booking      *BookingSummary      `json:"booking,omitempty" bson:"booking,omitempty"`
	Escalation   *EscalationSummary   `json:"escalation,omitempty" bson:"escalation,omitempty"`
	CounterOffer *CounterOfferSummary `json:"counterOffer,omitempty" bson:"counterOffer,omitempty"`
}

// BookingSummary carries a proposed booking's terms.
type BookingSummary struct {
	Date       string   `json:"date" bson:"date"`
	StartTime  string   `json:"startTime" bson:"startTime"`
	EndTime    string   `json:"endTime" bson:"endTime"`
	GuestCount int      `json:"guestCount" bson:"guestCount"`
	EventType  string   `json:"eventType,omitempty" bson:"eventType,omitempty"`
	Price      float64  `json:"price" bson:"price"`
	Extras     []string `json:"extras,omitempty" bson:"extras,omitempty"`
	Note       string   `json:"note,omitempty" bson:"note,omitempty"`
}

type EscalationSummary struct {
	Reason          string `json:"reason" bson:"reason"`
	CustomerRequest string `json:"customerRequest" bson:"customerRequest"`
	Context         string `json:"context,omitempty" bson:"context,omitempty"`
}

// CounterOfferSummary is the owner's adjusted terms, awaiting the customer.
type CounterOfferSummary struct {
	BookingSummary `bson:",inline"`
	OwnerNote      string `json:"ownerNote,omitempty" bson:"ownerNote,omitempty"`
}

// Validate checks that the summary shape matches the action type.
func (a *Action) Validate() error {
	s := a.Summary
	switch a.ActionType {
	case ActionBookingApproval:
		if s.Booking == nil || s.Escalation != nil || s.CounterOffer != nil {
			return fmt.Errorf("booking_approval action requires a booking summary")
		}
	case ActionEscalation:
		if s.Escalation == nil || s.Booking != nil || s.CounterOffer != nil {
			return fmt.Errorf("escalation action requires an escalation summary")
		}
	case ActionCounterOffer:
		if s.CounterOffer == nil || s.Booking != nil || s.Escalation != nil {
			return fmt.Errorf("counter_offer action requires a counter-offer summary")
		}
	default:
		return fmt.Errorf("unknown action type %q", a.ActionType)
	}
	return nil
}
