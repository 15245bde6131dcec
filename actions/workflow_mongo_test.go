package actions

import (
	"context"
	"strings"
	"testing"

	"veyra/db"
	"veyra/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func updateResponse(matched, modified int32) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: matched},
		bson.E{Key: "nModified", Value: modified},
	)
}

// The conditional update is the at-most-once guard: the first resolution
// matches the pending document, the second matches nothing and must surface
// the conflict.
func TestMarkResolvedSecondAttemptConflicts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("second resolution sees zero matches", func(mt *mtest.T) {
		db.ActionsCollection = mt.Coll
		mt.AddMockResponses(
			updateResponse(1, 1),
			updateResponse(0, 0),
		)

		require.NoError(t, markResolved(context.Background(), "a1", models.ActionApproved, nil))

		err := markResolved(context.Background(), "a1", models.ActionDeclined, nil)
		assert.ErrorIs(t, err, ErrAlreadyResolved)

		ev := mt.GetStartedEvent()
		require.NotNil(t, ev)
		assert.Equal(t, "update", ev.CommandName)
		assert.Contains(t, ev.Command.String(), `"pending"`, "resolution filter must re-check status")
	})
}

func TestReplyResolvesAndReactivatesConversation(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("owner reply", func(mt *mtest.T) {
		db.ActionsCollection = mt.Coll
		db.MessagesCollection = mt.Coll
		db.ConversationsCollection = mt.Coll
		mt.AddMockResponses(
			updateResponse(1, 1),               // action -> approved
			mtest.CreateSuccessResponse(),      // system message insert
			updateResponse(1, 1),               // conversation -> active
		)

		a := pendingEscalation()
		a.ConversationID = "conv1"
		require.NoError(t, Reply(context.Background(), nil, a, "Yes, outside catering is fine."))

		resolve := mt.GetStartedEvent()
		require.NotNil(t, resolve)
		assert.Equal(t, "update", resolve.CommandName)
		assert.Contains(t, resolve.Command.String(), `"approved"`)
		assert.Contains(t, resolve.Command.String(), "Yes, outside catering is fine.")

		msg := mt.GetStartedEvent()
		require.NotNil(t, msg)
		assert.Equal(t, "insert", msg.CommandName)
		assert.Contains(t, msg.Command.String(), "Owner reply: Yes, outside catering is fine.")
		assert.Contains(t, msg.Command.String(), `"system"`)

		conv := mt.GetStartedEvent()
		require.NotNil(t, conv)
		assert.Equal(t, "update", conv.CommandName)
		assert.Contains(t, conv.Command.String(), `"active"`)
	})
}

func TestDeclineWithdrawsOpenCounter(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("declining the original also declines the counter", func(mt *mtest.T) {
		db.ActionsCollection = mt.Coll
		db.MessagesCollection = mt.Coll
		db.ConversationsCollection = mt.Coll
		mt.AddMockResponses(
			updateResponse(1, 1),          // original -> declined
			updateResponse(1, 1),          // counter -> declined
			mtest.CreateSuccessResponse(), // system message insert
			updateResponse(1, 1),          // conversation -> active
		)

		a := pendingBooking()
		a.CounterActionID = "1000000000000000000003"
		require.NoError(t, Decline(context.Background(), nil, a, "double booked"))

		first := mt.GetStartedEvent()
		require.NotNil(t, first)
		assert.Equal(t, "update", first.CommandName)
		assert.Contains(t, first.Command.String(), a.ID)

		cascade := mt.GetStartedEvent()
		require.NotNil(t, cascade)
		assert.Equal(t, "update", cascade.CommandName)
		cmd := cascade.Command.String()
		assert.Contains(t, cmd, a.CounterActionID, "linked counter must be resolved too")
		assert.Contains(t, cmd, `"pending"`)
		assert.True(t, strings.Contains(cmd, `"declined"`))
	})
}
