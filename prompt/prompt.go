package prompt

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"veyra/availability"
	"veyra/models"
)

const sectionSeparator = "\n\n"

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Compile assembles the agent's instruction document from the venue, its
// agent config and a calendar snapshot. Sections appear in a fixed order and
// today is an explicit input, so identical inputs produce identical bytes.
func Compile(venue models.VenueProfile, cfg models.AgentConfig, snap *availability.Snapshot, today time.Time) string {
	sections := []string{
		identitySection(venue, cfg),
		venueSection(venue),
		pricingSection(venue, cfg.PricingRules),
	}
	if s := bookingParamsSection(cfg.BookingParams); s != "" {
		sections = append(sections, s)
	}
	if s := eventPolicySection(cfg.EventTypes); s != "" {
		sections = append(sections, s)
	}
	if s := policySection(cfg.Policies); s != "" {
		sections = append(sections, s)
	}
	if s := faqSection(cfg.FAQ); s != "" {
		sections = append(sections, s)
	}
	sections = append(sections, calendarSection(snap, today), escalationSection())

	return strings.Join(sections, sectionSeparator)
}

func identitySection(venue models.VenueProfile, cfg models.AgentConfig) string {
	lang := "English"
	if cfg.Language == "sv" {
		lang = "Swedish"
	}
	return strings.Join([]string{
		"## Role",
		fmt.Sprintf("You are the booking assistant for %s. You negotiate event bookings with prospective customers on the owner's behalf. Respond in %s.", venue.Name, lang),
		"Hard rules:",
		"- You must NEVER confirm a booking yourself. Every booking requires explicit owner approval through the propose_booking tool.",
		"- Never invent facts about the venue. Use the lookup_info tool for anything not covered below.",
		"- Collect date, time, guest count and event type before proposing a booking.",
	}, "\n")
}

func venueSection(v models.VenueProfile) string {
	lines := []string{"## Venue", fmt.Sprintf("Name: %s", v.Name)}
	if v.Address != "" {
		lines = append(lines, "Address: "+v.Address)
	}
	if v.Capacity > 0 {
		lines = append(lines, fmt.Sprintf("Capacity: %d guests", v.Capacity))
	}
	if v.Description != "" {
		lines = append(lines, "Description: "+v.Description)
	}
	if len(v.Amenities) > 0 {
		lines = append(lines, "Amenities: "+strings.Join(v.Amenities, ", "))
	}
	return strings.Join(lines, "\n")
}

func pricingSection(v models.VenueProfile, rules models.PricingRules) string {
	lines := []string{"## Pricing"}
	if rules.BasePrice > 0 {
		line := fmt.Sprintf("Base price: %.0f", rules.BasePrice)
		if rules.PerPersonRate > 0 {
			line += fmt.Sprintf(" + %.0f per guest", rules.PerPersonRate)
		}
		lines = append(lines, line)
	}
	for _, p := range rules.Packages {
		unit := ""
		if p.PerPerson {
			unit = " per person"
		}
		lines = append(lines, fmt.Sprintf("Package %q: %.0f%s", p.Name, p.Price, unit))
	}
	if rules.MinimumSpend > 0 {
		lines = append(lines, fmt.Sprintf("Minimum spend: %.0f", rules.MinimumSpend))
	}
	if len(lines) == 1 {
		if v.PriceHourly > 0 {
			lines = append(lines, fmt.Sprintf("Hourly rate: %.0f", v.PriceHourly))
		}
		if v.PriceHalfDay > 0 {
			lines = append(lines, fmt.Sprintf("Half-day rate: %.0f", v.PriceHalfDay))
		}
		if v.PriceEvening > 0 {
			lines = append(lines, fmt.Sprintf("Evening rate: %.0f", v.PriceEvening))
		}
		if v.PriceFullDay > 0 {
			lines = append(lines, fmt.Sprintf("Full-day rate: %.0f", v.PriceFullDay))
		}
	}
	lines = append(lines, "Always verify quotes with the calculate_price tool before stating a total.")
	return strings.Join(lines, "\n")
}

func bookingParamsSection(p models.BookingParams) string {
	var lines []string
	if p.MinGuests > 0 || p.MaxGuests > 0 {
		lines = append(lines, guestLine(p.MinGuests, p.MaxGuests))
	}
	if p.MinDurationHours > 0 || p.MaxDurationHours > 0 {
		lines = append(lines, durationLine(p.MinDurationHours, p.MaxDurationHours))
	}
	if p.MinAdvanceDays > 0 {
		lines = append(lines, fmt.Sprintf("Bookings require at least %d days advance notice.", p.MinAdvanceDays))
	}
	if p.MaxAdvanceDays > 0 {
		lines = append(lines, fmt.Sprintf("Bookings can be made at most %d days in advance.", p.MaxAdvanceDays))
	}
	if len(p.BlockedWeekdays) > 0 {
		names := make([]string, 0, len(p.BlockedWeekdays))
		for _, d := range p.BlockedWeekdays {
			if d >= 0 && d < len(weekdayNames) {
				names = append(names, weekdayNames[d])
			}
		}
		lines = append(lines, "The venue does not take bookings on: "+strings.Join(names, ", "))
	}
	if len(lines) == 0 {
		return ""
	}
	return "## Booking parameters\n" + strings.Join(lines, "\n")
}

func guestLine(min, max int) string {
	switch {
	case min > 0 && max > 0:
		return fmt.Sprintf("Guest count must be between %d and %d.", min, max)
	case min > 0:
		return fmt.Sprintf("Guest count must be at least %d.", min)
	default:
		return fmt.Sprintf("Guest count must be at most %d.", max)
	}
}

func durationLine(min, max float64) string {
	switch {
	case min > 0 && max > 0:
		return fmt.Sprintf("Bookings run between %.1f and %.1f hours.", min, max)
	case min > 0:
		return fmt.Sprintf("Bookings run at least %.1f hours.", min)
	default:
		return fmt.Sprintf("Bookings run at most %.1f hours.", max)
	}
}

func eventPolicySection(policies []models.EventTypePolicy) string {
	var welcome, declined, askOwner []string
	for _, p := range policies {
		switch p.Policy {
		case models.EventPolicyWelcome:
			welcome = append(welcome, p.EventType)
		case models.EventPolicyDeclined:
			declined = append(declined, p.EventType)
		case models.EventPolicyAskOwner:
			askOwner = append(askOwner, p.EventType)
		}
	}
	if len(welcome)+len(declined)+len(askOwner) == 0 {
		return ""
	}
	lines := []string{"## Event types"}
	if len(welcome) > 0 {
		lines = append(lines, "Welcome: "+strings.Join(welcome, ", "))
	}
	if len(declined) > 0 {
		lines = append(lines, "Politely decline: "+strings.Join(declined, ", "))
	}
	if len(askOwner) > 0 {
		lines = append(lines, "Escalate to the owner before engaging: "+strings.Join(askOwner, ", "))
	}
	return strings.Join(lines, "\n")
}

func policySection(p models.PolicyConfig) string {
	var lines []string
	if p.Cancellation != "" {
		lines = append(lines, "Cancellation: "+p.Cancellation)
	}
	if p.Deposit != "" {
		lines = append(lines, "Deposit: "+p.Deposit)
	}
	if p.HouseRules != "" {
		lines = append(lines, "House rules: "+p.HouseRules)
	}
	if len(lines) == 0 {
		return ""
	}
	return "## Policies\n" + strings.Join(lines, "\n")
}

func faqSection(faq []models.FAQEntry) string {
	if len(faq) == 0 {
		return ""
	}
	lines := []string{"## FAQ"}
	for _, e := range faq {
		lines = append(lines, fmt.Sprintf("Q: %s\nA: %s", e.Question, e.Answer))
	}
	return strings.Join(lines, "\n")
}

// calendarSection lists unavailable dates in the next 3 months, sorted, and
// tells the agent to re-check before quoting.
func calendarSection(snap *availability.Snapshot, today time.Time) string {
	from := today.Format(availability.DateLayout)
	to := today.AddDate(0, 3, 0).Format(availability.DateLayout)

	// The caller passes nil when the calendar could not be loaded; the agent
	// still gets a prompt, just without the snapshot.
	if snap == nil {
		return strings.Join([]string{
			"## Calendar",
			fmt.Sprintf("Today is %s.", from),
			"Calendar data is unavailable right now. Always verify a specific date with the check_availability tool before discussing it.",
		}, "\n")
	}

	var unavailable []string
	for date := range snap.Blocked {
		if date >= from && date <= to {
			unavailable = append(unavailable, date)
		}
	}
	for date, ranges := range snap.Booked {
		if _, dup := snap.Blocked[date]; dup {
			continue
		}
		if date >= from && date <= to && len(ranges) > 0 {
			unavailable = append(unavailable, date)
		}
	}
	sort.Strings(unavailable)

	lines := []string{"## Calendar", fmt.Sprintf("Today is %s.", from)}
	if len(unavailable) == 0 {
		lines = append(lines, fmt.Sprintf("No known conflicts between %s and %s.", from, to))
	} else {
		lines = append(lines, "Dates with blocks or existing bookings: "+strings.Join(unavailable, ", "))
	}
	lines = append(lines, "This list is a snapshot. Always re-verify a specific date with the check_availability tool before quoting it.")
	return strings.Join(lines, "\n")
}

func escalationSection() string {
	return strings.Join([]string{
		"## Escalation",
		"Invoke escalate_to_owner when:",
		"- the customer asks for something not covered by this document,",
		"- the customer requests a discount or terms you are not configured to offer,",
		"- the event type requires owner sign-off,",
		"- the customer explicitly asks to speak with the owner.",
		"After proposing a booking or escalating, tell the customer the owner will get back to them.",
	}, "\n")
}
