package agent

import (
	"context"
	"encoding/json"

	"veyra/knowledge"
	"veyra/models"
	"veyra/tools"
)

// fallbackReply answers without the model when no API key is configured.
// It can only serve knowledge questions; anything else gets handed to the
// owner via a canned note.
func fallbackReply(ctx context.Context, tc *tools.Context, history []models.Message) *Reply {
	question := lastUserMessage(history)
	if question == "" {
		return &Reply{Content: offlineNote(tc.Config.Language)}
	}

	ans := knowledge.Lookup(question, tc.Venue, tc.Config)
	if ans.Found {
		args, _ := json.Marshal(map[string]string{"topic": question})
		result := tools.Execute(ctx, "lookup_info", args, tc)
		return &Reply{
			Content: ans.Answer,
			ToolCalls: []models.ToolCallRecord{
				{Tool: "lookup_info", Args: string(args), Result: tools.ResultJSON(result)},
			},
		}
	}
	return &Reply{Content: offlineNote(tc.Config.Language)}
}

func lastUserMessage(history []models.Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == models.RoleUser {
			return history[i].Content
		}
	}
	return ""
}

func offlineNote(language string) string {
	if language == "sv" {
		return "Assistenten ar tillfalligt otillganglig. Agaren har fatt din fraga och aterkommer sa snart som mojligt."
	}
	return "The assistant is temporarily unavailable. The owner has been notified and will get back to you as soon as possible."
}
