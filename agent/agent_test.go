package agent

import (
	"context"
	"testing"
	"time"

	"veyra/models"
	"veyra/tools"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fallbackToolContext() *tools.Context {
	return &tools.Context{
		VenueID:        "v1",
		ConversationID: "c1",
		Venue: models.VenueProfile{
			VenueID:  "v1",
			Name:     "Harbor Hall",
			Capacity: 120,
			Amenities: []string{
				"parking", "stage", "sound system",
			},
		},
		Config: models.AgentConfig{VenueID: "v1", Enabled: true, Language: "en"},
		Now:    time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFallbackAnswersKnowledgeQuestions(t *testing.T) {
	tc := fallbackToolContext()
	history := []models.Message{
		{Role: models.RoleAgent, Content: "Hi, how can I help?"},
		{Role: models.RoleUser, Content: "Is there parking at the venue?"},
	}

	reply := fallbackReply(context.Background(), tc, history)
	require.NotNil(t, reply)
	assert.Contains(t, reply.Content, "parking")
	require.Len(t, reply.ToolCalls, 1)
	assert.Equal(t, "lookup_info", reply.ToolCalls[0].Tool)
}

func TestFallbackDefersWhenNoAnswer(t *testing.T) {
	tc := fallbackToolContext()
	history := []models.Message{
		{Role: models.RoleUser, Content: "Can we negotiate a bulk discount for ten events?"},
	}

	reply := fallbackReply(context.Background(), tc, history)
	require.NotNil(t, reply)
	assert.Contains(t, reply.Content, "owner")
	assert.Empty(t, reply.ToolCalls)
}

func TestFallbackSwedishOfflineNote(t *testing.T) {
	tc := fallbackToolContext()
	tc.Config.Language = "sv"

	reply := fallbackReply(context.Background(), tc, nil)
	require.NotNil(t, reply)
	assert.Contains(t, reply.Content, "Agaren")
}

func TestBuildMessagesOrderAndRoles(t *testing.T) {
	history := []models.Message{
		{Role: models.RoleUser, Content: "hello"},
		{Role: models.RoleAgent, Content: "hi there"},
		{Role: models.RoleSystem, Content: "Owner reply: yes"},
		{Role: models.RoleUser, Content: "great"},
	}

	msgs := buildMessages("system prompt", history)
	require.Len(t, msgs, 5)
	require.NotNil(t, msgs[0].OfSystem)
	assert.NotNil(t, msgs[1].OfUser)
	assert.NotNil(t, msgs[2].OfAssistant)
	assert.NotNil(t, msgs[3].OfSystem)
	assert.NotNil(t, msgs[4].OfUser)
}

func TestBuildMessagesTruncatesLongHistory(t *testing.T) {
	history := make([]models.Message, historyLimit+10)
	for i := range history {
		history[i] = models.Message{Role: models.RoleUser, Content: "m"}
	}

	msgs := buildMessages("system prompt", history)
	assert.Len(t, msgs, historyLimit+1)
}

func TestToolParamsCoverEveryTool(t *testing.T) {
	params := toolParams()
	require.Len(t, params, len(tools.Definitions()))
}
