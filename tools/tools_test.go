package tools

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"veyra/models"

	"github.com/stretchr/testify/assert"
)

func testToolContext() *Context {
	return &Context{
		VenueID:        "v1",
		ConversationID: "c1",
		Venue:          models.VenueProfile{VenueID: "v1", Name: "Harbor Hall", Capacity: 120},
		Config: models.AgentConfig{
			PricingRules: models.PricingRules{BasePrice: 5000, PerPersonRate: 100},
			BookingParams: models.BookingParams{
				MinGuests:       10,
				MaxGuests:       120,
				MinAdvanceDays:  3,
				BlockedWeekdays: []int{1}, // Mondays
			},
			EventTypes: []models.EventTypePolicy{
				{EventType: "student party", Policy: models.EventPolicyDeclined},
			},
		},
		Now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	res := Execute(context.Background(), "send_invoice", json.RawMessage(`{}`), testToolContext())
	assert.Equal(t, "unknown tool: send_invoice", res["error"])
}

func TestExecuteMalformedArgs(t *testing.T) {
	res := Execute(context.Background(), "calculate_price", json.RawMessage(`{not json`), testToolContext())
	assert.Contains(t, res["error"], "invalid arguments")
}

func TestExecuteMissingArgs(t *testing.T) {
	res := Execute(context.Background(), "lookup_info", nil, testToolContext())
	assert.Equal(t, "missing arguments", res["error"])
}

func TestExecuteRecoversPanic(t *testing.T) {
	registry["explode"] = func(ctx context.Context, args json.RawMessage, tc *Context) (map[string]any, error) {
		panic("boom")
	}
	defer delete(registry, "explode")

	res := Execute(context.Background(), "explode", json.RawMessage(`{}`), testToolContext())
	assert.Equal(t, "tool explode failed unexpectedly", res["error"])
}

func TestCalculatePriceTool(t *testing.T) {
	args := json.RawMessage(`{"guestCount":50,"durationHours":4}`)
	res := Execute(context.Background(), "calculate_price", args, testToolContext())

	assert.Nil(t, res["error"])
	assert.Equal(t, 10000.0, res["totalBeforeFee"])
	assert.Equal(t, 1200.0, res["platformFee"])
	assert.Equal(t, 11200.0, res["totalPrice"])
}

func TestCalculatePriceToolValidation(t *testing.T) {
	args := json.RawMessage(`{"guestCount":0,"durationHours":4}`)
	res := Execute(context.Background(), "calculate_price", args, testToolContext())
	assert.Equal(t, "guestCount must be positive", res["error"])
}

func TestLookupInfoTool(t *testing.T) {
	args := json.RawMessage(`{"topic":"capacity"}`)
	res := Execute(context.Background(), "lookup_info", args, testToolContext())

	assert.Equal(t, true, res["found"])
	assert.Contains(t, res["answer"], "120 guests")
}

func TestValidateProposal(t *testing.T) {
	tc := testToolContext()

	tests := []struct {
		name       string
		date       string
		start, end string
		guests     int
		eventType  string
		wantErr    string
	}{
		{"valid proposal", "2026-06-10", "18:00", "23:00", 50, "wedding", ""},
		{"bad date format", "10/06/2026", "18:00", "23:00", 50, "", "date must be YYYY-MM-DD"},
		{"end before start", "2026-06-10", "23:00", "18:00", 50, "", "endTime must be after startTime"},
		{"below guest minimum", "2026-06-10", "18:00", "23:00", 5, "", "below the venue minimum"},
		{"above guest maximum", "2026-06-10", "18:00", "23:00", 500, "", "exceeds the venue maximum"},
		{"insufficient notice", "2026-06-02", "18:00", "23:00", 50, "", "advance notice"},
		{"past date", "2026-05-20", "18:00", "23:00", 50, "", "date is in the past"},
		{"blocked weekday", "2026-06-08", "18:00", "23:00", 50, "", "Mondays"},
		{"declined event type", "2026-06-10", "18:00", "23:00", 50, "student party", "not accepted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProposal(tc, tt.date, tt.start, tt.end, tt.guests, tt.eventType)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestResultJSON(t *testing.T) {
	s := ResultJSON(map[string]any{"available": true})
	assert.JSONEq(t, `{"available":true}`, s)
}
