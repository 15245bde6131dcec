// Package conversations exposes the customer chat surface: start a
// conversation with a venue's agent, read the transcript, and post messages
// that drive agent turns.
package conversations

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"veyra/agent"
	"veyra/db"
	"veyra/middleware"
	"veyra/models"
	"veyra/realtime"
	"veyra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateConversation starts a chat with a venue's agent. Anonymous customers
// are allowed; a logged-in caller gets linked for later notifications.
func CreateConversation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		VenueID string `json:"venueId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.VenueID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "venueId is required")
		return
	}

	var cfg models.AgentConfig
	err := db.AgentConfigsCollection.FindOne(ctx, bson.M{"venueid": body.VenueID}).Decode(&cfg)
	if err == mongo.ErrNoDocuments || (err == nil && !cfg.Enabled) {
		utils.RespondWithError(w, http.StatusNotFound, "no agent is available for this venue")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load agent config")
		return
	}

	now := time.Now().Unix()
	conv := models.Conversation{
		ID:         utils.GenerateRandomDigitString(22),
		VenueID:    body.VenueID,
		CustomerID: middleware.UserIDFromContext(r.Context()),
		Status:     models.ConversationActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := db.ConversationsCollection.InsertOne(ctx, conv); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create conversation")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, conv)
}

// GetConversation returns a conversation together with its transcript.
func GetConversation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	conv, err := loadConversation(ctx, ps.ByName("conversationid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "conversation not found")
		return
	}

	messages, err := loadMessages(ctx, conv.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load messages")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"conversation": conv,
		"messages":     messages,
	})
}

// GetMessages returns just the transcript, oldest first.
func GetMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := loadConversation(ctx, ps.ByName("conversationid")); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "conversation not found")
		return
	}

	messages, err := loadMessages(ctx, ps.ByName("conversationid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load messages")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, messages)
}

// PostMessage stores the customer's message and runs one agent turn. While
// the conversation waits on the owner the agent stays out of it and the
// customer gets a holding note instead.
func PostMessage(hub *realtime.Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		// Agent turns can chain several tool calls and one or two model
		// round trips; give them room.
		ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
		defer cancel()

		var body struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Content) == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "content is required")
			return
		}

		conv, err := loadConversation(ctx, ps.ByName("conversationid"))
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "conversation not found")
			return
		}
		if conv.Status == models.ConversationCompleted || conv.Status == models.ConversationExpired {
			utils.RespondWithError(w, http.StatusConflict, "conversation is closed")
			return
		}

		userMsg := storeMessage(ctx, hub, conv.ID, models.RoleUser, strings.TrimSpace(body.Content), nil)

		if conv.Status == models.ConversationWaitingForOwner {
			note := storeMessage(ctx, hub, conv.ID, models.RoleSystem,
				"Your request is with the venue owner. We will get back to you as soon as they respond.", nil)
			utils.RespondWithJSON(w, http.StatusOK, utils.M{
				"userMessage": userMsg,
				"reply":       note,
				"status":      conv.Status,
			})
			return
		}

		history, err := loadMessages(ctx, conv.ID)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "failed to load history")
			return
		}

		reply, err := agent.Respond(ctx, conv, history)
		if err != nil {
			log.Printf("[conversations] agent turn failed for %s: %v", conv.ID, err)
			utils.RespondWithError(w, http.StatusBadGateway, "the assistant could not respond, please try again")
			return
		}

		agentMsg := storeMessage(ctx, hub, conv.ID, models.RoleAgent, reply.Content, reply.ToolCalls)
		touchConversation(ctx, conv.ID)

		// A proposal tool may have parked the conversation during the turn.
		status := conv.Status
		if fresh, err := loadConversation(ctx, conv.ID); err == nil {
			status = fresh.Status
		}

		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"userMessage": userMsg,
			"reply":       agentMsg,
			"status":      status,
		})
	}
}

// GetVenueConversations lists a venue's conversations for the owner
// dashboard, newest first.
func GetVenueConversations(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	venueID := ps.ByName("venueid")
	userID := middleware.UserIDFromContext(r.Context())
	count, err := db.VenuesCollection.CountDocuments(ctx, bson.M{"venueid": venueID, "ownerId": userID})
	if err != nil || count == 0 {
		utils.RespondWithError(w, http.StatusForbidden, "not your venue")
		return
	}

	filter := bson.M{"venueid": venueID}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	cursor, err := db.ConversationsCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"updatedAt": -1}).SetLimit(100))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to fetch conversations")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Conversation
	if err := cursor.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode conversations")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func loadConversation(ctx context.Context, id string) (*models.Conversation, error) {
	var conv models.Conversation
	if err := db.ConversationsCollection.FindOne(ctx, bson.M{"id": id}).Decode(&conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func loadMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	cursor, err := db.MessagesCollection.Find(ctx,
		bson.M{"conversationId": conversationID},
		options.Find().SetSort(bson.M{"timestamp": 1}).SetLimit(500))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []models.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func storeMessage(ctx context.Context, hub *realtime.Hub, conversationID, role, content string, toolCalls []models.ToolCallRecord) models.Message {
	msg := models.Message{
		ID:             utils.GetUUID(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		ToolCalls:      toolCalls,
		Timestamp:      utils.NextTimestamp(),
	}
	if _, err := db.MessagesCollection.InsertOne(ctx, msg); err != nil {
		log.Printf("[conversations] message insert failed for %s: %v", conversationID, err)
	}
	if hub != nil {
		hub.Broadcast(conversationID, utils.M{"type": "message", "message": msg})
	}
	return msg
}

func touchConversation(ctx context.Context, id string) {
	_, err := db.ConversationsCollection.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"updatedAt": time.Now().Unix()}},
	)
	if err != nil {
		log.Printf("[conversations] touch failed for %s: %v", id, err)
	}
}
