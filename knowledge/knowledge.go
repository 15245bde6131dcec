package knowledge

import (
	"fmt"
	"strings"

	"veyra/models"
)

// Answer is the lookup result. Found is false when nothing in the venue data
// covers the topic; Answer then carries the canned escalation suggestion.
type Answer struct {
	Found  bool   `json:"found"`
	Answer string `json:"answer"`
}

// Topic handler keys, reachable through the English and Swedish aliases
// below or by substring match.
var topicAliases = map[string]string{
	"parking":        "parking",
	"parkering":      "parking",
	"capacity":       "capacity",
	"kapacitet":      "capacity",
	"pricing":        "pricing",
	"price":          "pricing",
	"pris":           "pricing",
	"policies":       "policies",
	"regler":         "policies",
	"cancellation":   "cancellation",
	"avbokning":      "cancellation",
	"catering":       "catering",
	"equipment":      "equipment",
	"utrustning":     "equipment",
	"accessibility":  "accessibility",
	"tillganglighet": "accessibility",
	"tillgänglighet": "accessibility",
	"location":       "location",
	"plats":          "location",
}

// Lookup answers a free-text topic strictly from stored venue and config
// data. FAQ entries win over the built-in topic handlers. Deterministic, no
// model or network access.
func Lookup(topic string, venue models.VenueProfile, cfg models.AgentConfig) Answer {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return notFound()
	}

	if a, ok := matchFAQ(topic, cfg.FAQ); ok {
		return Answer{Found: true, Answer: a}
	}

	key, ok := topicAliases[topic]
	if !ok {
		for alias, k := range topicAliases {
			if strings.Contains(topic, alias) {
				key = k
				ok = true
				break
			}
		}
	}
	if !ok {
		return notFound()
	}

	if a := answerTopic(key, venue, cfg); a != "" {
		return Answer{Found: true, Answer: a}
	}
	return notFound()
}

func notFound() Answer {
	return Answer{
		Found:  false,
		Answer: "I don't have that information on file. Would you like me to check with the venue owner?",
	}
}

// matchFAQ returns the answer of the first FAQ entry whose question contains
// the topic, is contained by it, or shares at least half of its significant
// words with it.
func matchFAQ(topic string, faq []models.FAQEntry) (string, bool) {
	topicWords := significantWords(topic)
	for _, entry := range faq {
		q := strings.ToLower(entry.Question)
		if strings.Contains(q, topic) || strings.Contains(topic, q) {
			return entry.Answer, true
		}
		qWords := significantWords(q)
		if len(qWords) == 0 {
			continue
		}
		shared := 0
		for w := range qWords {
			if topicWords[w] {
				shared++
			}
		}
		if shared*2 >= len(qWords) {
			return entry.Answer, true
		}
	}
	return "", false
}

func significantWords(s string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r > 127)
	}) {
		if len(w) > 2 {
			out[w] = true
		}
	}
	return out
}

// answerTopic composes a reply from fields already on record; empty when the
// venue has nothing to say about the topic.
func answerTopic(key string, venue models.VenueProfile, cfg models.AgentConfig) string {
	switch key {
	case "parking", "catering", "equipment", "accessibility":
		if a := amenityMatch(venue.Amenities, key); a != "" {
			return fmt.Sprintf("%s offers: %s.", venue.Name, a)
		}
		return ""
	case "capacity":
		if venue.Capacity > 0 {
			return fmt.Sprintf("%s holds up to %d guests.", venue.Name, venue.Capacity)
		}
		return ""
	case "pricing":
		return pricingAnswer(venue, cfg)
	case "policies":
		var parts []string
		if cfg.Policies.HouseRules != "" {
			parts = append(parts, "House rules: "+cfg.Policies.HouseRules)
		}
		if cfg.Policies.Deposit != "" {
			parts = append(parts, "Deposit: "+cfg.Policies.Deposit)
		}
		return strings.Join(parts, " ")
	case "cancellation":
		if cfg.Policies.Cancellation != "" {
			return "Cancellation policy: " + cfg.Policies.Cancellation
		}
		return ""
	case "location":
		if venue.Address != "" {
			return fmt.Sprintf("%s is located at %s.", venue.Name, venue.Address)
		}
		return ""
	}
	return ""
}

func amenityMatch(amenities []string, key string) string {
	var hits []string
	for _, a := range amenities {
		if strings.Contains(strings.ToLower(a), key) {
			hits = append(hits, a)
		}
	}
	return strings.Join(hits, ", ")
}

func pricingAnswer(venue models.VenueProfile, cfg models.AgentConfig) string {
	rules := cfg.PricingRules
	var parts []string
	if rules.BasePrice > 0 {
		p := fmt.Sprintf("Base price %.0f", rules.BasePrice)
		if rules.PerPersonRate > 0 {
			p += fmt.Sprintf(" plus %.0f per guest", rules.PerPersonRate)
		}
		parts = append(parts, p+".")
	}
	for _, pkg := range rules.Packages {
		unit := ""
		if pkg.PerPerson {
			unit = " per person"
		}
		parts = append(parts, fmt.Sprintf("Package %q: %.0f%s.", pkg.Name, pkg.Price, unit))
	}
	if len(parts) == 0 && venue.PriceFullDay > 0 {
		parts = append(parts, fmt.Sprintf("Full-day rate %.0f.", venue.PriceFullDay))
	}
	if rules.MinimumSpend > 0 {
		parts = append(parts, fmt.Sprintf("Minimum spend %.0f.", rules.MinimumSpend))
	}
	return strings.Join(parts, " ")
}
