// Package tools is the boundary between the language-model loop and the
// rest of the system. Every tool invocation goes through Execute, which
// converts any failure into an error result so a bad tool call never aborts
// a conversation turn.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"veyra/models"
)

// Context bundles everything a tool may touch during one invocation.
type Context struct {
	VenueID        string
	ConversationID string
	CustomerID     string
	Venue          models.VenueProfile
	Config         models.AgentConfig
	Now            time.Time
}

type handler func(ctx context.Context, args json.RawMessage, tc *Context) (map[string]any, error)

var registry = map[string]handler{
	"check_availability": checkAvailability,
	"calculate_price":    calculatePrice,
	"lookup_info":        lookupInfo,
	"propose_booking":    proposeBooking,
	"escalate_to_owner":  escalateToOwner,
}

// Execute runs a named tool. Unknown names, handler errors and panics all
// come back as {"error": ...} results; the model loop treats them as data.
func Execute(ctx context.Context, name string, args json.RawMessage, tc *Context) (result map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[tools] %s panicked: %v", name, r)
			result = errorResult(fmt.Sprintf("tool %s failed unexpectedly", name))
		}
	}()

	h, ok := registry[name]
	if !ok {
		return errorResult("unknown tool: " + name)
	}

	out, err := h(ctx, args, tc)
	if err != nil {
		return errorResult(err.Error())
	}
	return out
}

func errorResult(msg string) map[string]any {
	return map[string]any{"error": msg}
}

func parseArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return fmt.Errorf("missing arguments")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %v", err)
	}
	return nil
}

// ResultJSON renders a tool result for the model and the audit log.
func ResultJSON(result map[string]any) string {
	data, err := json.Marshal(result)
	if err != nil {
		return `{"error":"unencodable tool result"}`
	}
	return string(data)
}
