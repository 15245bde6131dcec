package prompt

import (
	"strings"
	"testing"
	"time"

	"veyra/availability"
	"veyra/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedToday = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func fullConfig() (models.VenueProfile, models.AgentConfig, *availability.Snapshot) {
	venue := models.VenueProfile{
		VenueID:     "v1",
		Name:        "Harbor Hall",
		Address:     "Strandgatan 12",
		Capacity:    120,
		Description: "Waterfront event space.",
		Amenities:   []string{"Free parking", "Stage"},
	}
	cfg := models.AgentConfig{
		Language: "en",
		PricingRules: models.PricingRules{
			BasePrice:     4000,
			PerPersonRate: 150,
			MinimumSpend:  6000,
			Packages:      []models.PricingPackage{{Name: "Deluxe", Price: 450, PerPerson: true}},
		},
		BookingParams: models.BookingParams{
			MinGuests:       10,
			MaxGuests:       120,
			MinAdvanceDays:  3,
			BlockedWeekdays: []int{1},
		},
		EventTypes: []models.EventTypePolicy{
			{EventType: "wedding", Policy: models.EventPolicyWelcome},
			{EventType: "student party", Policy: models.EventPolicyDeclined},
			{EventType: "concert", Policy: models.EventPolicyAskOwner},
		},
		Policies: models.PolicyConfig{Cancellation: "14 days notice."},
		FAQ:      []models.FAQEntry{{Question: "Own wine?", Answer: "Corkage applies."}},
	}
	snap := &availability.Snapshot{
		Blocked: map[string]string{"2026-06-20": "Semester"},
		Booked:  map[string][]availability.TimeRange{"2026-07-04": {{Start: "18:00", End: "23:00"}}},
	}
	return venue, cfg, snap
}

func TestCompileDeterministic(t *testing.T) {
	venue, cfg, snap := fullConfig()

	a := Compile(venue, cfg, snap, fixedToday)
	b := Compile(venue, cfg, snap, fixedToday)

	assert.Equal(t, a, b, "same inputs and today must produce byte-identical output")
}

func TestCompileNeverConfirmRule(t *testing.T) {
	venue, cfg, snap := fullConfig()
	out := Compile(venue, cfg, snap, fixedToday)
	assert.Contains(t, out, "NEVER confirm a booking yourself")
}

func TestCompileSectionOrder(t *testing.T) {
	venue, cfg, snap := fullConfig()
	out := Compile(venue, cfg, snap, fixedToday)

	headers := []string{"## Role", "## Venue", "## Pricing", "## Booking parameters",
		"## Event types", "## Policies", "## FAQ", "## Calendar", "## Escalation"}
	prev := -1
	for _, h := range headers {
		idx := strings.Index(out, h)
		require.GreaterOrEqual(t, idx, 0, "missing section %s", h)
		assert.Greater(t, idx, prev, "section %s out of order", h)
		prev = idx
	}
}

func TestCompileEventPolicyPartitions(t *testing.T) {
	venue, cfg, snap := fullConfig()
	out := Compile(venue, cfg, snap, fixedToday)

	assert.Contains(t, out, "Welcome: wedding")
	assert.Contains(t, out, "Politely decline: student party")
	assert.Contains(t, out, "Escalate to the owner before engaging: concert")
}

func TestCompileCalendarWindow(t *testing.T) {
	venue, cfg, snap := fullConfig()
	// Outside the 3-month window: must not appear.
	snap.Blocked["2026-12-24"] = "holiday"

	out := Compile(venue, cfg, snap, fixedToday)

	assert.Contains(t, out, "2026-06-20")
	assert.Contains(t, out, "2026-07-04")
	assert.NotContains(t, out, "2026-12-24")
	assert.Contains(t, out, "re-verify a specific date with the check_availability tool")
}

func TestCompileWithoutCalendarData(t *testing.T) {
	venue, cfg, _ := fullConfig()

	var out string
	require.NotPanics(t, func() {
		out = Compile(venue, cfg, nil, fixedToday)
	})

	assert.Contains(t, out, "## Calendar")
	assert.Contains(t, out, "Today is 2026-06-01.")
	assert.Contains(t, out, "Calendar data is unavailable right now")
	assert.Contains(t, out, "check_availability")
}

func TestCompileOmitsEmptySections(t *testing.T) {
	venue := models.VenueProfile{Name: "Bare Hall"}
	snap := &availability.Snapshot{Blocked: map[string]string{}, Booked: map[string][]availability.TimeRange{}}

	out := Compile(venue, models.AgentConfig{}, snap, fixedToday)

	assert.NotContains(t, out, "## Booking parameters")
	assert.NotContains(t, out, "## Event types")
	assert.NotContains(t, out, "## Policies")
	assert.NotContains(t, out, "## FAQ")
	assert.Contains(t, out, "No known conflicts")
}
