// Package notify persists owner notifications and fans them out over a
// Redis channel for the delivery collaborator (email/push). Dispatch is
// best-effort: a failure here never rolls back the state change that
// triggered it.
package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"veyra/db"
	"veyra/models"
	"veyra/rdx"
	"veyra/utils"
)

const channel = "notification-events"

// Dispatch stores the notification and publishes it. Errors are logged and
// swallowed.
func Dispatch(ctx context.Context, n models.Notification) {
	if n.ID == "" {
		n.ID = utils.GetUUID()
	}
	if n.CreatedAt == 0 {
		n.CreatedAt = time.Now().Unix()
	}

	if _, err := db.NotificationsCollection.InsertOne(ctx, n); err != nil {
		log.Printf("[notify] insert failed for action %s: %v", n.Reference.ID, err)
	}

	data, err := json.Marshal(n)
	if err != nil {
		log.Printf("[notify] marshal failed: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[notify] publish failed for action %s: %v", n.Reference.ID, err)
	}
}

// ForAction builds the notification for a freshly created action. Booking
// approvals and escalations go to the owner; counter-offers go to the
// customer who must respond.
func ForAction(a models.Action, recipientID string) models.Notification {
	n := models.Notification{
		RecipientID: recipientID,
		Reference:   models.NotificationRef{Kind: "agent_action", ID: a.ID},
		Extra: map[string]string{
			"conversationId": a.ConversationID,
			"venueId":        a.VenueID,
		},
	}
	switch a.ActionType {
	case models.ActionBookingApproval:
		n.Category = models.NotifyBookingApproval
		n.Headline = "New booking request"
		if b := a.Summary.Booking; b != nil {
			n.Body = "Booking request for " + b.Date + " (" + b.StartTime + "-" + b.EndTime + ") awaiting your approval."
		}
	case models.ActionEscalation:
		n.Category = models.NotifyEscalation
		n.Headline = "Customer question needs you"
		if e := a.Summary.Escalation; e != nil {
			n.Body = e.Reason
		}
	case models.ActionCounterOffer:
		n.Category = models.NotifyCounterOffer
		n.Headline = "The owner made a counter-offer"
		if c := a.Summary.CounterOffer; c != nil {
			n.Body = "New proposed terms for " + c.Date + " (" + c.StartTime + "-" + c.EndTime + ") await your response."
		}
	}
	return n
}

// StartNotificationWorker consumes the channel and hands each notification
// to the delivery side. Delivery itself is out of process; here we log.
func StartNotificationWorker() {
	sub := rdx.Conn.Subscribe(context.Background(), channel)
	ch := sub.Channel()

	log.Println("[notify] worker listening for notification events")

	go func() {
		for msg := range ch {
			var n models.Notification
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
				log.Printf("[notify] bad payload: %v", err)
				continue
			}
			log.Printf("[notify] deliver %s to %s: %s", n.Category, n.RecipientID, n.Headline)
		}
	}()
}
