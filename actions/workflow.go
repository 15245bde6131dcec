// Package actions holds the approval workflow for agent proposals. Every
// resolution is guarded by a conditional update on status "pending", so an
// action leaves pending exactly once even under concurrent attempts.
package actions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"veyra/bookings"
	"veyra/db"
	"veyra/models"
	"veyra/notify"
	"veyra/realtime"
	"veyra/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound        = errors.New("action not found")
	ErrAlreadyResolved = errors.New("action already resolved")
	ErrWrongType       = errors.New("operation not valid for this action type")
	ErrCounterOpen     = errors.New("a counter-offer for this action is awaiting the customer")
)

// Resolution verbs.
type Verb string

const (
	VerbApprove Verb = "approve" // booking_approval
	VerbDecline Verb = "decline" // any type
	VerbReply   Verb = "reply"   // escalation
	VerbModify  Verb = "modify"  // booking_approval -> new counter_offer
	VerbRespond Verb = "respond" // counter_offer, by the customer
)

// ValidateResolution checks a verb against an action's type and current
// state. It does not touch the store; the conditional update remains the
// authority under concurrency.
func ValidateResolution(a *models.Action, verb Verb) error {
	switch verb {
	case VerbApprove, VerbModify:
		if a.ActionType != models.ActionBookingApproval {
			return ErrWrongType
		}
	case VerbReply:
		if a.ActionType != models.ActionEscalation {
			return ErrWrongType
		}
	case VerbRespond:
		if a.ActionType != models.ActionCounterOffer {
			return ErrWrongType
		}
	case VerbDecline:
		// allowed for every type
	default:
		return fmt.Errorf("unknown verb %q", verb)
	}

	if a.Status != models.ActionPending {
		return ErrAlreadyResolved
	}
	if a.ActionType == models.ActionBookingApproval && a.CounterActionID != "" && verb != VerbDecline {
		return ErrCounterOpen
	}
	return nil
}

// Actionable reports whether an owner feed should offer resolution buttons.
func Actionable(a *models.Action) bool {
	if a.Status != models.ActionPending {
		return false
	}
	if a.ActionType == models.ActionBookingApproval && a.CounterActionID != "" {
		return false
	}
	return true
}

func loadAction(ctx context.Context, actionID string) (*models.Action, error) {
	var a models.Action
	err := db.ActionsCollection.FindOne(ctx, bson.M{"id": actionID}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// markResolved is the single write that takes an action out of pending. The
// filter re-reads the status atomically; a second concurrent resolution
// matches zero documents and reports the conflict.
func markResolved(ctx context.Context, actionID, status string, set bson.M) error {
	if set == nil {
		set = bson.M{}
	}
	set["status"] = status
	set["resolvedAt"] = time.Now().Unix()

	res, err := db.ActionsCollection.UpdateOne(ctx,
		bson.M{"id": actionID, "status": models.ActionPending},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAlreadyResolved
	}
	return nil
}

// Approve resolves a booking_approval and hands the summary to the booking
// collaborator. A write-time date conflict comes back as
// bookings.ErrDateConflict; the action is still consumed.
func Approve(ctx context.Context, hub *realtime.Hub, a *models.Action, note string) error {
	if err := ValidateResolution(a, VerbApprove); err != nil {
		return err
	}
	if err := markResolved(ctx, a.ID, models.ActionApproved, bson.M{"ownerResponse": note}); err != nil {
		return err
	}

	broadcastUpdate(hub, a.ConversationID, a.ID, models.ActionApproved, note)

	booking, err := bookings.CreateFromSummary(ctx, a.VenueID, a.Summary.Booking, a.ConversationID, a.ID, customerOf(ctx, a.ConversationID))
	if err != nil {
		appendSystemMessage(ctx, hub, a.ConversationID,
			"The owner approved the booking, but the date is no longer available. Please pick a new date.")
		setConversationStatus(ctx, a.ConversationID, models.ConversationActive)
		return err
	}

	appendSystemMessage(ctx, hub, a.ConversationID,
		fmt.Sprintf("The owner approved the booking for %s %s-%s. Booking reference %s.",
			booking.Date, booking.Start, booking.End, booking.ID))
	setConversationStatus(ctx, a.ConversationID, models.ConversationCompleted)
	return nil
}

// Decline resolves any pending action with an optional reason. For
// escalations this is a refusal to engage; for a counter_offer it withdraws
// the offer and reopens the original proposal.
func Decline(ctx context.Context, hub *realtime.Hub, a *models.Action, reason string) error {
	if err := ValidateResolution(a, VerbDecline); err != nil {
		return err
	}
	if err := markResolved(ctx, a.ID, models.ActionDeclined, bson.M{"ownerResponse": reason}); err != nil {
		return err
	}

	if a.ActionType == models.ActionCounterOffer && a.OriginalActionID != "" {
		reopenOriginal(ctx, a.OriginalActionID)
	}

	// Declining an original with an open counter withdraws the whole thread;
	// the counter must not stay acceptable for a request the owner refused.
	if a.ActionType == models.ActionBookingApproval && a.CounterActionID != "" {
		_, err := db.ActionsCollection.UpdateOne(ctx,
			bson.M{"id": a.CounterActionID, "status": models.ActionPending},
			bson.M{"$set": bson.M{
				"status":     models.ActionDeclined,
				"resolvedAt": time.Now().Unix(),
			}},
		)
		if err != nil {
			log.Printf("[actions] withdrawing counter %s failed: %v", a.CounterActionID, err)
		}
		broadcastUpdate(hub, a.ConversationID, a.CounterActionID, models.ActionDeclined, "")
	}

	broadcastUpdate(hub, a.ConversationID, a.ID, models.ActionDeclined, reason)

	msg := "The owner declined the request."
	if reason != "" {
		msg = "The owner declined the request: " + reason
	}
	appendSystemMessage(ctx, hub, a.ConversationID, msg)
	setConversationStatus(ctx, a.ConversationID, models.ConversationActive)
	return nil
}

// Reply resolves an escalation with the owner's answer. The reply lands in
// the conversation as a system message and the conversation goes back to the
// agent.
func Reply(ctx context.Context, hub *realtime.Hub, a *models.Action, message string) error {
	if message == "" {
		return fmt.Errorf("reply message is required")
	}
	if err := ValidateResolution(a, VerbReply); err != nil {
		return err
	}
	if err := markResolved(ctx, a.ID, models.ActionApproved, bson.M{"ownerResponse": message}); err != nil {
		return err
	}

	appendSystemMessage(ctx, hub, a.ConversationID, "Owner reply: "+message)
	setConversationStatus(ctx, a.ConversationID, models.ConversationActive)
	broadcastUpdate(hub, a.ConversationID, a.ID, models.ActionApproved, message)
	return nil
}

// Modify opens a counter_offer with adjusted terms, reviewed by the
// customer. The original action stays pending but carries the open counter's
// id, which blocks approve/modify until the counter resolves.
func Modify(ctx context.Context, hub *realtime.Hub, a *models.Action, terms models.BookingSummary, ownerNote string) (*models.Action, error) {
	if err := ValidateResolution(a, VerbModify); err != nil {
		return nil, err
	}

	counterID := utils.GenerateRandomDigitString(22)

	// Claim the original first so a concurrent approve/decline cannot slip
	// in after the counter exists.
	res, err := db.ActionsCollection.UpdateOne(ctx,
		bson.M{"id": a.ID, "status": models.ActionPending, "counterActionId": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"counterActionId": counterID}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrAlreadyResolved
	}

	counter := models.Action{
		ID:             counterID,
		ConversationID: a.ConversationID,
		VenueID:        a.VenueID,
		ActionType:     models.ActionCounterOffer,
		Status:         models.ActionPending,
		Summary: models.ActionSummary{
			CounterOffer: &models.CounterOfferSummary{BookingSummary: terms, OwnerNote: ownerNote},
		},
		OriginalActionID: a.ID,
		CreatedAt:        time.Now().Unix(),
	}
	if _, err := db.ActionsCollection.InsertOne(ctx, counter); err != nil {
		reopenOriginal(ctx, a.ID)
		return nil, err
	}

	msg := fmt.Sprintf("The owner made a counter-offer: %s %s-%s at %.0f.",
		terms.Date, terms.StartTime, terms.EndTime, terms.Price)
	if ownerNote != "" {
		msg += " Note: " + ownerNote
	}
	appendSystemMessage(ctx, hub, a.ConversationID, msg)
	broadcastUpdate(hub, a.ConversationID, counter.ID, models.ActionPending, "")

	// The counter awaits the customer, not the owner. Anonymous
	// conversations only see the chat message above.
	if customerID := customerOf(ctx, a.ConversationID); customerID != "" {
		notify.Dispatch(ctx, notify.ForAction(counter, customerID))
	}
	return &counter, nil
}

// RespondToCounter records the customer's decision on a counter_offer.
// Accepting books the counter's terms and supersedes the original proposal;
// declining reopens the original for the owner.
func RespondToCounter(ctx context.Context, hub *realtime.Hub, a *models.Action, accept bool, note string) error {
	if err := ValidateResolution(a, VerbRespond); err != nil {
		return err
	}

	if !accept {
		if err := markResolved(ctx, a.ID, models.ActionDeclined, bson.M{"ownerResponse": note}); err != nil {
			return err
		}
		if a.OriginalActionID != "" {
			reopenOriginal(ctx, a.OriginalActionID)
		}
		broadcastUpdate(hub, a.ConversationID, a.ID, models.ActionDeclined, note)
		appendSystemMessage(ctx, hub, a.ConversationID, "The customer declined the counter-offer.")
		return nil
	}

	if err := markResolved(ctx, a.ID, models.ActionApproved, bson.M{"ownerResponse": note}); err != nil {
		return err
	}

	// The original proposal is superseded, not independently resolved.
	if a.OriginalActionID != "" {
		_, err := db.ActionsCollection.UpdateOne(ctx,
			bson.M{"id": a.OriginalActionID, "status": models.ActionPending},
			bson.M{"$set": bson.M{"status": models.ActionModified, "resolvedAt": time.Now().Unix()}},
		)
		if err != nil {
			log.Printf("[actions] superseding original %s failed: %v", a.OriginalActionID, err)
		}
		broadcastUpdate(hub, a.ConversationID, a.OriginalActionID, models.ActionModified, "")
	}

	broadcastUpdate(hub, a.ConversationID, a.ID, models.ActionApproved, note)

	co := a.Summary.CounterOffer
	if co == nil {
		return fmt.Errorf("counter-offer summary missing")
	}
	booking, err := bookings.CreateFromSummary(ctx, a.VenueID, &co.BookingSummary, a.ConversationID, a.ID, customerOf(ctx, a.ConversationID))
	if err != nil {
		appendSystemMessage(ctx, hub, a.ConversationID,
			"The counter-offer was accepted, but the date is no longer available. The owner will follow up.")
		return err
	}

	appendSystemMessage(ctx, hub, a.ConversationID,
		fmt.Sprintf("Counter-offer accepted. Booking confirmed for %s %s-%s, reference %s.",
			booking.Date, booking.Start, booking.End, booking.ID))
	setConversationStatus(ctx, a.ConversationID, models.ConversationCompleted)
	return nil
}

// reopenOriginal clears the counter linkage so the original proposal becomes
// actionable again.
func reopenOriginal(ctx context.Context, originalID string) {
	_, err := db.ActionsCollection.UpdateOne(ctx,
		bson.M{"id": originalID, "status": models.ActionPending},
		bson.M{"$unset": bson.M{"counterActionId": ""}},
	)
	if err != nil {
		log.Printf("[actions] reopening original %s failed: %v", originalID, err)
	}
}

func broadcastUpdate(hub *realtime.Hub, conversationID, actionID, status, response string) {
	if hub == nil {
		return
	}
	hub.Broadcast(conversationID, realtime.ActionUpdate{
		ActionID:      actionID,
		Status:        status,
		OwnerResponse: response,
	})
}

func appendSystemMessage(ctx context.Context, hub *realtime.Hub, conversationID, content string) {
	msg := models.Message{
		ID:             utils.GetUUID(),
		ConversationID: conversationID,
		Role:           models.RoleSystem,
		Content:        content,
		Timestamp:      utils.NextTimestamp(),
	}
	if _, err := db.MessagesCollection.InsertOne(ctx, msg); err != nil {
		log.Printf("[actions] system message insert failed for %s: %v", conversationID, err)
		return
	}
	if hub != nil {
		hub.Broadcast(conversationID, utils.M{"type": "message", "message": msg})
	}
}

func setConversationStatus(ctx context.Context, conversationID, status string) {
	_, err := db.ConversationsCollection.UpdateOne(ctx,
		bson.M{"id": conversationID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().Unix()}},
	)
	if err != nil {
		log.Printf("[actions] conversation status update failed for %s: %v", conversationID, err)
	}
}

func customerOf(ctx context.Context, conversationID string) string {
	var conv models.Conversation
	if err := db.ConversationsCollection.FindOne(ctx, bson.M{"id": conversationID}).Decode(&conv); err != nil {
		return ""
	}
	return conv.CustomerID
}
