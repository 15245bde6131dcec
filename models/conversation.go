package models

// Conversation statuses.
const (
	ConversationActive          = "active"
	ConversationWaitingForOwner = "waiting_for_owner"
	ConversationCompleted       = "completed"
	ConversationExpired         = "expired"
)

// Message roles.
const (
	RoleUser   = "user"
	RoleAgent  = "agent"
	RoleSystem = "system"
)

// Conversation is one customer-venue interaction session.
type Conversation struct {
	ID         string `json:"id" bson:"id"`
	VenueID    string `json:"venueid" bson:"venueid"`
	CustomerID string `json:"customerId,omitempty" bson:"customerId,omitempty"` // empty for anonymous
	Status     string `json:"status" bson:"status"`

	// Booking slots accumulated across turns.
	Collected CollectedBooking `json:"collected" bson:"collected"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// CollectedBooking is the partially filled booking data for a conversation.
type CollectedBooking struct {
	Date       string   `json:"date,omitempty" bson:"date,omitempty"`
	StartTime  string   `json:"startTime,omitempty" bson:"startTime,omitempty"`
	EndTime    string   `json:"endTime,omitempty" bson:"endTime,omitempty"`
	GuestCount int      `json:"guestCount,omitempty" bson:"guestCount,omitempty"`
	EventType  string   `json:"eventType,omitempty" bson:"eventType,omitempty"`
	Extras     []string `json:"extras,omitempty" bson:"extras,omitempty"`
	Price      float64  `json:"price,omitempty" bson:"price,omitempty"`
}

// Message is one entry in a conversation's append-only log.
type Message struct {
	ID             string           `json:"id" bson:"id"`
	ConversationID string           `json:"conversationId" bson:"conversationId"`
	Role           string           `json:"role" bson:"role"` // user, agent, system
	Content        string           `json:"content" bson:"content"`
	ToolCalls      []ToolCallRecord `json:"toolCalls,omitempty" bson:"toolCalls,omitempty"`
	Timestamp      int64            `json:"timestamp" bson:"timestamp"` // nanoseconds, strictly increasing per process
}

// ToolCallRecord keeps what the agent invoked during a turn, for audit.
type ToolCallRecord struct {
	Tool   string `json:"tool" bson:"tool"`
	Args   string `json:"args" bson:"args"`
	Result string `json:"result" bson:"result"`
}
