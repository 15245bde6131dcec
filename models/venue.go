package models

// VenueProfile holds the descriptive and fallback pricing data for a venue.
// Owned by the venue operator; the agent core only reads it.
type VenueProfile struct {
	VenueID     string   `json:"venueid" bson:"venueid"`
	OwnerID     string   `json:"ownerId" bson:"ownerId"`
	Name        string   `json:"name" bson:"name"`
	Address     string   `json:"address" bson:"address"`
	Description string   `json:"description" bson:"description"`
	Capacity    int      `json:"capacity" bson:"capacity"`
	Amenities   []string `json:"amenities,omitempty" bson:"amenities,omitempty"`
	Contact     string   `json:"contact,omitempty" bson:"contact,omitempty"`

	// Duration-bracket fallback rates, used when the agent config has no
	// pricing rules of its own. Zero means the bracket is not offered.
	PriceHourly  float64 `json:"priceHourly,omitempty" bson:"priceHourly,omitempty"`
	PriceHalfDay float64 `json:"priceHalfDay,omitempty" bson:"priceHalfDay,omitempty"`
	PriceEvening float64 `json:"priceEvening,omitempty" bson:"priceEvening,omitempty"`
	PriceFullDay float64 `json:"priceFullDay,omitempty" bson:"priceFullDay,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
}

// BlockedDate is an owner-maintained calendar block.
type BlockedDate struct {
	VenueID   string `json:"venueid" bson:"venueid"`
	Date      string `json:"date" bson:"date"` // YYYY-MM-DD
	Reason    string `json:"reason,omitempty" bson:"reason,omitempty"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
}
