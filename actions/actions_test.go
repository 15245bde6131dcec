package actions

import (
	"testing"

	"veyra/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingBooking() *models.Action {
	return &models.Action{
		ID:             "1000000000000000000001",
		ConversationID: "conv1",
		VenueID:        "venue1",
		ActionType:     models.ActionBookingApproval,
		Status:         models.ActionPending,
		Summary: models.ActionSummary{
			Booking: &models.BookingSummary{
				Date: "2026-06-15", StartTime: "18:00", EndTime: "23:00",
				GuestCount: 50, EventType: "corporate", Price: 11200,
			},
		},
	}
}

func pendingEscalation() *models.Action {
	return &models.Action{
		ID:         "1000000000000000000002",
		ActionType: models.ActionEscalation,
		Status:     models.ActionPending,
		Summary: models.ActionSummary{
			Escalation: &models.EscalationSummary{Reason: "discount request"},
		},
	}
}

func pendingCounter() *models.Action {
	return &models.Action{
		ID:               "1000000000000000000003",
		ActionType:       models.ActionCounterOffer,
		Status:           models.ActionPending,
		OriginalActionID: "1000000000000000000001",
		Summary: models.ActionSummary{
			CounterOffer: &models.CounterOfferSummary{
				BookingSummary: models.BookingSummary{Date: "2026-06-16", StartTime: "18:00", EndTime: "23:00", Price: 9000},
				OwnerNote:      "Sunday works better for us",
			},
		},
	}
}

func TestValidateResolutionVerbTypeMatrix(t *testing.T) {
	cases := []struct {
		name   string
		action *models.Action
		verb   Verb
		want   error
	}{
		{"approve booking", pendingBooking(), VerbApprove, nil},
		{"decline booking", pendingBooking(), VerbDecline, nil},
		{"modify booking", pendingBooking(), VerbModify, nil},
		{"reply on booking", pendingBooking(), VerbReply, ErrWrongType},
		{"respond on booking", pendingBooking(), VerbRespond, ErrWrongType},

		{"reply escalation", pendingEscalation(), VerbReply, nil},
		{"decline escalation", pendingEscalation(), VerbDecline, nil},
		{"approve escalation", pendingEscalation(), VerbApprove, ErrWrongType},
		{"modify escalation", pendingEscalation(), VerbModify, ErrWrongType},

		{"respond counter", pendingCounter(), VerbRespond, nil},
		{"decline counter", pendingCounter(), VerbDecline, nil},
		{"approve counter", pendingCounter(), VerbApprove, ErrWrongType},
		{"reply counter", pendingCounter(), VerbReply, ErrWrongType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateResolution(tc.action, tc.verb)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestValidateResolutionResolvedStates(t *testing.T) {
	for _, status := range []string{
		models.ActionApproved,
		models.ActionDeclined,
		models.ActionModified,
		models.ActionExpired,
	} {
		t.Run(status, func(t *testing.T) {
			a := pendingBooking()
			a.Status = status
			assert.ErrorIs(t, ValidateResolution(a, VerbApprove), ErrAlreadyResolved)
			assert.ErrorIs(t, ValidateResolution(a, VerbDecline), ErrAlreadyResolved)
		})
	}
}

func TestValidateResolutionOpenCounterBlocksOriginal(t *testing.T) {
	a := pendingBooking()
	a.CounterActionID = "1000000000000000000003"

	assert.ErrorIs(t, ValidateResolution(a, VerbApprove), ErrCounterOpen)
	assert.ErrorIs(t, ValidateResolution(a, VerbModify), ErrCounterOpen)

	// Declining stays possible; the owner can withdraw the whole thread.
	assert.NoError(t, ValidateResolution(a, VerbDecline))
}

func TestValidateResolutionUnknownVerb(t *testing.T) {
	err := ValidateResolution(pendingBooking(), Verb("archive"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAlreadyResolved)
}

func TestActionable(t *testing.T) {
	a := pendingBooking()
	assert.True(t, Actionable(a))

	a.CounterActionID = "x"
	assert.False(t, Actionable(a), "original with open counter is on hold")

	a.CounterActionID = ""
	a.Status = models.ActionApproved
	assert.False(t, Actionable(a))

	esc := pendingEscalation()
	assert.True(t, Actionable(esc))

	counter := pendingCounter()
	assert.True(t, Actionable(counter))
}

func TestSummaryValidateMatchesType(t *testing.T) {
	a := pendingBooking()
	require.NoError(t, a.Validate())

	a.Summary.Escalation = &models.EscalationSummary{Reason: "two variants set"}
	assert.Error(t, a.Validate())

	a.Summary = models.ActionSummary{}
	assert.Error(t, a.Validate(), "missing summary for declared type")
}
