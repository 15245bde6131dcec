package models

// Event-type policies. "ask_owner" means the agent must escalate before
// engaging with that kind of event.
const (
	EventPolicyWelcome  = "welcome"
	EventPolicyDeclined = "declined"
	EventPolicyAskOwner = "ask_owner"
)

// AgentConfig is the per-venue configuration for the booking agent. Edited by
// the owner through the venue surface; read-only at conversation time.
type AgentConfig struct {
	VenueID  string `json:"venueid" bson:"venueid"`
	Enabled  bool   `json:"enabled" bson:"enabled"`
	Language string `json:"language" bson:"language"` // "en" or "sv"

	PricingRules  PricingRules      `json:"pricingRules" bson:"pricingRules"`
	BookingParams BookingParams     `json:"bookingParams" bson:"bookingParams"`
	EventTypes    []EventTypePolicy `json:"eventTypes,omitempty" bson:"eventTypes,omitempty"`
	Policies      PolicyConfig      `json:"policies" bson:"policies"`
	FAQ           []FAQEntry        `json:"faq,omitempty" bson:"faq,omitempty"`

	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// PricingRules drives the first two pricing tiers. Zero values mean "not
// configured" and push calculation down to the venue's bracket rates.
type PricingRules struct {
	BasePrice     float64          `json:"basePrice,omitempty" bson:"basePrice,omitempty"`
	PerPersonRate float64          `json:"perPersonRate,omitempty" bson:"perPersonRate,omitempty"`
	MinimumSpend  float64          `json:"minimumSpend,omitempty" bson:"minimumSpend,omitempty"`
	Packages      []PricingPackage `json:"packages,omitempty" bson:"packages,omitempty"`
}

type PricingPackage struct {
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	PerPerson bool    `json:"perPerson,omitempty" bson:"perPerson,omitempty"`
}

// BookingParams bounds what the agent may propose. Zero bounds are unset.
type BookingParams struct {
	MinGuests        int     `json:"minGuests,omitempty" bson:"minGuests,omitempty"`
	MaxGuests        int     `json:"maxGuests,omitempty" bson:"maxGuests,omitempty"`
	MinDurationHours float64 `json:"minDurationHours,omitempty" bson:"minDurationHours,omitempty"`
	MaxDurationHours float64 `json:"maxDurationHours,omitempty" bson:"maxDurationHours,omitempty"`
	MinAdvanceDays   int     `json:"minAdvanceDays,omitempty" bson:"minAdvanceDays,omitempty"`
	MaxAdvanceDays   int     `json:"maxAdvanceDays,omitempty" bson:"maxAdvanceDays,omitempty"`
	BlockedWeekdays  []int   `json:"blockedWeekdays,omitempty" bson:"blockedWeekdays,omitempty"` // 0=Sun..6=Sat
}

type EventTypePolicy struct {
	EventType string `json:"eventType" bson:"eventType"`
	Policy    string `json:"policy" bson:"policy"` // welcome, declined, ask_owner
}

type PolicyConfig struct {
	Cancellation string `json:"cancellation,omitempty" bson:"cancellation,omitempty"`
	Deposit      string `json:"deposit,omitempty" bson:"deposit,omitempty"`
	HouseRules   string `json:"houseRules,omitempty" bson:"houseRules,omitempty"`
}

type FAQEntry struct {
	Question string `json:"question" bson:"question"`
	Answer   string `json:"answer" bson:"answer"`
}

// PolicyFor returns the configured policy for an event type, defaulting to
// welcome when the type is not listed.
func (c *AgentConfig) PolicyFor(eventType string) string {
	for _, p := range c.EventTypes {
		if p.EventType == eventType {
			return p.Policy
		}
	}
	return EventPolicyWelcome
}
