package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"veyra/availability"
	"veyra/calendar"
	"veyra/knowledge"
	"veyra/pricing"
)

// Read-only tools. None of these mutate state.

func checkAvailability(ctx context.Context, args json.RawMessage, tc *Context) (map[string]any, error) {
	var in struct {
		Date      string `json:"date"`
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	}
	if err := parseArgs(args, &in); err != nil {
		return nil, err
	}
	target, err := time.Parse(availability.DateLayout, in.Date)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD")
	}

	snap, err := calendar.LoadSnapshotAround(ctx, tc.VenueID, target)
	if err != nil {
		return nil, fmt.Errorf("calendar unavailable: %v", err)
	}

	res := availability.Check(snap, tc.Now, in.Date, in.StartTime, in.EndTime)
	out := map[string]any{"available": res.Available}
	if res.Reason != "" {
		out["reason"] = res.Reason
	}
	if len(res.Alternatives) > 0 {
		out["alternatives"] = res.Alternatives
	}
	return out, nil
}

func calculatePrice(ctx context.Context, args json.RawMessage, tc *Context) (map[string]any, error) {
	var in struct {
		GuestCount    int     `json:"guestCount"`
		DurationHours float64 `json:"durationHours"`
		Package       string  `json:"package"`
	}
	if err := parseArgs(args, &in); err != nil {
		return nil, err
	}
	if in.GuestCount <= 0 {
		return nil, fmt.Errorf("guestCount must be positive")
	}
	if in.DurationHours <= 0 {
		return nil, fmt.Errorf("durationHours must be positive")
	}

	b := pricing.Calculate(in.GuestCount, in.DurationHours, in.Package, tc.Venue, tc.Config.PricingRules)
	out := map[string]any{
		"basePrice":      b.BasePrice,
		"totalBeforeFee": b.TotalBeforeFee,
		"platformFee":    b.PlatformFee,
		"totalPrice":     b.TotalPrice,
	}
	if b.PerPersonCost > 0 {
		out["perPersonCost"] = b.PerPersonCost
	}
	if b.PackageCost > 0 {
		out["packageCost"] = b.PackageCost
		out["package"] = b.PackageName
	}
	return out, nil
}

func lookupInfo(ctx context.Context, args json.RawMessage, tc *Context) (map[string]any, error) {
	var in struct {
		Topic string `json:"topic"`
	}
	if err := parseArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Topic == "" {
		return nil, fmt.Errorf("topic is required")
	}

	a := knowledge.Lookup(in.Topic, tc.Venue, tc.Config)
	return map[string]any{"found": a.Found, "answer": a.Answer}, nil
}
