package models

// Notification categories.
const (
	NotifyBookingApproval = "booking_approval"
	NotifyEscalation      = "escalation"
	NotifyCounterOffer    = "counter_offer"
)

// Notification is handed to the delivery collaborator (email/push) and kept
// for the in-app feed. Dispatch is best-effort.
type Notification struct {
	ID          string            `json:"id" bson:"id"`
	RecipientID string            `json:"recipientId" bson:"recipientId"`
	Category    string            `json:"category" bson:"category"`
	Headline    string            `json:"headline" bson:"headline"`
	Body        string            `json:"body" bson:"body"`
	Reference   NotificationRef   `json:"reference" bson:"reference"`
	Extra       map[string]string `json:"extra,omitempty" bson:"extra,omitempty"`
	Read        bool              `json:"read" bson:"read"`
	CreatedAt   int64             `json:"createdAt" bson:"createdAt"`
}

type NotificationRef struct {
	Kind string `json:"kind" bson:"kind"` // "agent_action"
	ID   string `json:"id" bson:"id"`
}
