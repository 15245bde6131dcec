package knowledge

import (
	"testing"

	"veyra/models"

	"github.com/stretchr/testify/assert"
)

func testVenue() models.VenueProfile {
	return models.VenueProfile{
		VenueID:   "v1",
		Name:      "Harbor Hall",
		Address:   "Strandgatan 12, Gothenburg",
		Capacity:  120,
		Amenities: []string{"Free parking", "Catering kitchen", "AV equipment", "Wheelchair accessibility"},
	}
}

func testConfig() models.AgentConfig {
	return models.AgentConfig{
		VenueID: "v1",
		PricingRules: models.PricingRules{
			BasePrice:     4000,
			PerPersonRate: 150,
			MinimumSpend:  6000,
		},
		Policies: models.PolicyConfig{
			Cancellation: "Free cancellation up to 14 days before the event.",
			HouseRules:   "Music off by midnight.",
		},
		FAQ: []models.FAQEntry{
			{Question: "Can we bring our own wine?", Answer: "Yes, corkage fee applies."},
			{Question: "Is there a stage for live bands?", Answer: "A 20sqm stage is included."},
		},
	}
}

func TestLookupFAQContainment(t *testing.T) {
	a := Lookup("own wine", testVenue(), testConfig())
	assert.True(t, a.Found)
	assert.Equal(t, "Yes, corkage fee applies.", a.Answer)
}

func TestLookupFAQWordOverlap(t *testing.T) {
	// "stage live music bands" shares 3 of 4 significant FAQ words.
	a := Lookup("do you have a stage for live bands", testVenue(), testConfig())
	assert.True(t, a.Found)
	assert.Equal(t, "A 20sqm stage is included.", a.Answer)
}

func TestLookupTopicHandlers(t *testing.T) {
	venue := testVenue()
	cfg := testConfig()

	tests := []struct {
		topic string
		want  string
	}{
		{"parking", "Harbor Hall offers: Free parking."},
		{"parkering", "Harbor Hall offers: Free parking."},
		{"capacity", "Harbor Hall holds up to 120 guests."},
		{"kapacitet", "Harbor Hall holds up to 120 guests."},
		{"cancellation", "Cancellation policy: Free cancellation up to 14 days before the event."},
		{"avbokning", "Cancellation policy: Free cancellation up to 14 days before the event."},
		{"location", "Harbor Hall is located at Strandgatan 12, Gothenburg."},
	}
	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			a := Lookup(tt.topic, venue, cfg)
			assert.True(t, a.Found)
			assert.Equal(t, tt.want, a.Answer)
		})
	}
}

func TestLookupSubstringTopic(t *testing.T) {
	a := Lookup("what about parking near the venue", testVenue(), testConfig())
	assert.True(t, a.Found)
	assert.Equal(t, "Harbor Hall offers: Free parking.", a.Answer)
}

func TestLookupPricing(t *testing.T) {
	a := Lookup("pris", testVenue(), testConfig())
	assert.True(t, a.Found)
	assert.Contains(t, a.Answer, "Base price 4000")
	assert.Contains(t, a.Answer, "150 per guest")
	assert.Contains(t, a.Answer, "Minimum spend 6000")
}

func TestLookupMissFallsBack(t *testing.T) {
	a := Lookup("helicopter landing pad", testVenue(), testConfig())
	assert.False(t, a.Found)
	assert.Contains(t, a.Answer, "check with the venue owner")
}

func TestLookupKnownTopicWithoutData(t *testing.T) {
	// Venue has no amenities: the parking handler has nothing to compose.
	a := Lookup("parking", models.VenueProfile{Name: "Bare Hall"}, models.AgentConfig{})
	assert.False(t, a.Found)
}
