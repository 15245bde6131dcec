package actions

import (
	"context"
	"log"
	"time"

	"veyra/db"
	"veyra/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ExpiryWindow is how long a pending action waits for the owner before a
// sweep expires it.
const ExpiryWindow = 7 * 24 * time.Hour

// StartExpirySweep expires stale pending actions on an interval until the
// context is cancelled. The update is guarded on status pending, so a sweep
// never overwrites a resolution that lands at the same moment.
func StartExpirySweep(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				ExpireStale(ctx)
			}
		}
	}()
}

// ExpireStale runs one sweep pass and returns how many actions expired.
func ExpireStale(ctx context.Context) int64 {
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-ExpiryWindow).Unix()
	res, err := db.ActionsCollection.UpdateMany(opCtx,
		bson.M{"status": models.ActionPending, "createdAt": bson.M{"$lt": cutoff}},
		bson.M{"$set": bson.M{"status": models.ActionExpired, "resolvedAt": time.Now().Unix()}},
	)
	if err != nil {
		log.Printf("[actions] expiry sweep failed: %v", err)
		return 0
	}
	if res.ModifiedCount > 0 {
		log.Printf("[actions] expired %d stale pending actions", res.ModifiedCount)
	}
	return res.ModifiedCount
}
