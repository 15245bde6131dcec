// Package agent runs the LLM conversation loop: compile the system prompt,
// send the history, execute requested tool calls, and feed results back until
// the model produces a customer-facing reply.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"veyra/calendar"
	"veyra/db"
	"veyra/models"
	"veyra/prompt"
	"veyra/tools"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	model         = openai.ChatModelGPT4o
	maxToolRounds = 5
	historyLimit  = 40
)

// Reply is one agent turn: the text for the customer plus the tool calls
// that produced it.
type Reply struct {
	Content   string
	ToolCalls []models.ToolCallRecord
}

// Respond produces the agent's next message for a conversation. The caller
// has already stored the user's message; history is the full transcript
// including it.
func Respond(ctx context.Context, conv *models.Conversation, history []models.Message) (*Reply, error) {
	venue, cfg, err := loadVenueAndConfig(ctx, conv.VenueID)
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, fmt.Errorf("agent is not enabled for venue %s", conv.VenueID)
	}

	now := time.Now()
	snap, err := calendar.LoadPromptWindow(ctx, conv.VenueID, now)
	if err != nil {
		log.Printf("[agent] calendar window load failed for %s: %v", conv.VenueID, err)
		snap = nil
	}

	systemPrompt := prompt.Compile(*venue, *cfg, snap, now)

	tc := &tools.Context{
		VenueID:        conv.VenueID,
		ConversationID: conv.ID,
		CustomerID:     conv.CustomerID,
		Venue:          *venue,
		Config:         *cfg,
		Now:            now,
	}

	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return fallbackReply(ctx, tc, history), nil
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))
	return runLoop(ctx, &client, systemPrompt, history, tc)
}

func runLoop(ctx context.Context, client *openai.Client, systemPrompt string, history []models.Message, tc *tools.Context) (*Reply, error) {
	params := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: buildMessages(systemPrompt, history),
		Tools:    toolParams(),
	}

	reply := &Reply{}

	for round := 0; round < maxToolRounds; round++ {
		completion, err := client.Chat.Completions.New(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("completion request failed: %w", err)
		}
		if len(completion.Choices) == 0 {
			return nil, fmt.Errorf("completion returned no choices")
		}

		msg := completion.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			reply.Content = msg.Content
			return reply, nil
		}

		params.Messages = append(params.Messages, msg.ToParam())

		for _, call := range msg.ToolCalls {
			name := call.Function.Name
			args := json.RawMessage(call.Function.Arguments)

			result := tools.Execute(ctx, name, args, tc)
			resultJSON := tools.ResultJSON(result)
			reply.ToolCalls = append(reply.ToolCalls, models.ToolCallRecord{
				Tool:   name,
				Args:   string(args),
				Result: resultJSON,
			})
			params.Messages = append(params.Messages, openai.ToolMessage(resultJSON, call.ID))
		}
	}

	// The model kept asking for tools; close the turn with a plain request
	// instead of looping forever.
	params.Tools = nil
	completion, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("final completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("final completion returned no choices")
	}
	reply.Content = completion.Choices[0].Message.Content
	return reply, nil
}

func buildMessages(systemPrompt string, history []models.Message) []openai.ChatCompletionMessageParamUnion {
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	msgs = append(msgs, openai.SystemMessage(systemPrompt))
	for _, m := range history {
		switch m.Role {
		case models.RoleUser:
			msgs = append(msgs, openai.UserMessage(m.Content))
		case models.RoleAgent:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		case models.RoleSystem:
			msgs = append(msgs, openai.SystemMessage(m.Content))
		}
	}
	return msgs
}

func toolParams() []openai.ChatCompletionToolUnionParam {
	defs := tools.Definitions()
	out := make([]openai.ChatCompletionToolUnionParam, 0, len(defs))
	for _, d := range defs {
		out = append(out, openai.ChatCompletionFunctionTool(shared.FunctionDefinitionParam{
			Name:        d.Name,
			Description: openai.String(d.Description),
			Parameters:  shared.FunctionParameters(d.Parameters),
		}))
	}
	return out
}

func loadVenueAndConfig(ctx context.Context, venueID string) (*models.VenueProfile, *models.AgentConfig, error) {
	var venue models.VenueProfile
	err := db.VenuesCollection.FindOne(ctx, bson.M{"venueid": venueID}).Decode(&venue)
	if err == mongo.ErrNoDocuments {
		return nil, nil, fmt.Errorf("venue %s not found", venueID)
	}
	if err != nil {
		return nil, nil, err
	}

	var cfg models.AgentConfig
	err = db.AgentConfigsCollection.FindOne(ctx, bson.M{"venueid": venueID}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return nil, nil, fmt.Errorf("agent config for venue %s not found", venueID)
	}
	if err != nil {
		return nil, nil, err
	}
	return &venue, &cfg, nil
}
