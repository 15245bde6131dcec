package venues

import (
	"testing"

	"veyra/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfigDefaultsLanguage(t *testing.T) {
	cfg := models.AgentConfig{}
	assert.NoError(t, validateConfig(&cfg))
	assert.Equal(t, "en", cfg.Language)
}

func TestValidateConfigRejectsUnknownLanguage(t *testing.T) {
	cfg := models.AgentConfig{Language: "de"}
	assert.Error(t, validateConfig(&cfg))
}

func TestValidateConfigEventPolicies(t *testing.T) {
	cfg := models.AgentConfig{
		EventTypes: []models.EventTypePolicy{
			{EventType: "wedding", Policy: models.EventPolicyWelcome},
			{EventType: "student party", Policy: models.EventPolicyDeclined},
			{EventType: "concert", Policy: models.EventPolicyAskOwner},
		},
	}
	assert.NoError(t, validateConfig(&cfg))

	cfg.EventTypes = append(cfg.EventTypes, models.EventTypePolicy{EventType: "rave", Policy: "maybe"})
	assert.Error(t, validateConfig(&cfg))
}

func TestValidateConfigGuestBounds(t *testing.T) {
	cfg := models.AgentConfig{
		BookingParams: models.BookingParams{MinGuests: 50, MaxGuests: 20},
	}
	assert.Error(t, validateConfig(&cfg))

	cfg.BookingParams = models.BookingParams{MinGuests: 10, MaxGuests: 120}
	assert.NoError(t, validateConfig(&cfg))
}

func TestValidateConfigBlockedWeekdays(t *testing.T) {
	cfg := models.AgentConfig{
		BookingParams: models.BookingParams{BlockedWeekdays: []int{0, 6}},
	}
	assert.NoError(t, validateConfig(&cfg))

	cfg.BookingParams.BlockedWeekdays = []int{7}
	assert.Error(t, validateConfig(&cfg))
}

func TestValidateConfigTrimsFAQ(t *testing.T) {
	cfg := models.AgentConfig{
		FAQ: []models.FAQEntry{{Question: "  Is parking free?  ", Answer: " Yes. "}},
	}
	assert.NoError(t, validateConfig(&cfg))
	assert.Equal(t, "Is parking free?", cfg.FAQ[0].Question)
	assert.Equal(t, "Yes.", cfg.FAQ[0].Answer)
}
