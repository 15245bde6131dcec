package tools

// Definition describes one tool to the language model. Parameters is a JSON
// Schema object.
type Definition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Definitions lists every dispatchable tool in a stable order.
func Definitions() []Definition {
	return []Definition{
		{
			Name:        "check_availability",
			Description: "Check whether a date (optionally a time window) is open at this venue. Returns availability, a reason when unavailable, and up to 3 alternative dates.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"date":      map[string]any{"type": "string", "description": "Requested date, YYYY-MM-DD"},
					"startTime": map[string]any{"type": "string", "description": "Window start, HH:MM (optional)"},
					"endTime":   map[string]any{"type": "string", "description": "Window end, HH:MM (optional)"},
				},
				"required": []string{"date"},
			},
		},
		{
			Name:        "calculate_price",
			Description: "Calculate the price for a booking, including the platform fee. Use before quoting any total.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"guestCount":    map[string]any{"type": "integer"},
					"durationHours": map[string]any{"type": "number"},
					"package":       map[string]any{"type": "string", "description": "Configured package name (optional)"},
				},
				"required": []string{"guestCount", "durationHours"},
			},
		},
		{
			Name:        "lookup_info",
			Description: "Look up venue facts (parking, capacity, pricing, policies, cancellation, catering, equipment, accessibility, location) and FAQ answers. Never guess; use this.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"topic": map[string]any{"type": "string"},
				},
				"required": []string{"topic"},
			},
		},
		{
			Name:        "propose_booking",
			Description: "Submit a booking proposal for owner approval once date, time, guest count and price are agreed with the customer. Does not confirm the booking.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"date":       map[string]any{"type": "string"},
					"startTime":  map[string]any{"type": "string"},
					"endTime":    map[string]any{"type": "string"},
					"guestCount": map[string]any{"type": "integer"},
					"eventType":  map[string]any{"type": "string"},
					"price":      map[string]any{"type": "number"},
					"extras":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"note":       map[string]any{"type": "string"},
				},
				"required": []string{"date", "startTime", "endTime", "guestCount", "price"},
			},
		},
		{
			Name:        "escalate_to_owner",
			Description: "Hand the conversation to the venue owner when the customer needs something you cannot resolve or the event type requires owner sign-off.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"reason":          map[string]any{"type": "string"},
					"customerRequest": map[string]any{"type": "string"},
					"context":         map[string]any{"type": "string"},
				},
				"required": []string{"reason", "customerRequest"},
			},
		},
	}
}
