package service

import (
	"circlenet_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRequiresConnection(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	_, err := env.messages.Send(alice.ID, bob.ID, "hello?")
	assert.ErrorIs(t, err, util.ErrNotConnected)
}

func TestConversationFlow(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	conn := env.connect(t, alice.ID, bob.ID)

	_, err := env.messages.Send(alice.ID, bob.ID, "Hello")
	require.NoError(t, err)

	// Visible from both ends of the pair.
	fromAlice, err := env.messages.Conversation(alice.ID, conn.ID)
	require.NoError(t, err)
	require.Len(t, fromAlice, 1)
	assert.Equal(t, "Hello", fromAlice[0].Text)

	fromBob, err := env.messages.Conversation(bob.ID, *conn.OppositeID)
	require.NoError(t, err)
	require.Len(t, fromBob, 1)
	assert.Equal(t, conn.ID, fromBob[0].ConnectionID, "incoming message hangs off the sender's side")
}

func TestConvosUnreadAndMarkRead(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	conn := env.connect(t, alice.ID, bob.ID)

	_, err := env.messages.Send(alice.ID, bob.ID, "Hello")
	require.NoError(t, err)
	_, err = env.messages.Send(alice.ID, bob.ID, "you there?")
	require.NoError(t, err)

	convos, err := env.messages.Convos(bob.ID)
	require.NoError(t, err)
	require.Len(t, convos, 1)
	assert.EqualValues(t, 2, convos[0].UnreadCount)
	require.NotNil(t, convos[0].LastMessage)

	// The sender's own overview shows nothing unread.
	aliceConvos, err := env.messages.Convos(alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceConvos, 1)
	assert.EqualValues(t, 0, aliceConvos[0].UnreadCount)

	require.NoError(t, env.messages.MarkRead(bob.ID, *conn.OppositeID))

	convos, err = env.messages.Convos(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, convos[0].UnreadCount)
}

func TestSendOnConnection(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	conn := env.connect(t, alice.ID, bob.ID)

	msg, err := env.messages.SendOn(alice.ID, conn.ID, "over the edge")
	require.NoError(t, err)
	assert.Equal(t, conn.ID, msg.ConnectionID)

	// A connection owned by someone else reads as missing.
	_, err = env.messages.SendOn(carol.ID, conn.ID, "nope")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestConversationScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	conn := env.connect(t, alice.ID, bob.ID)

	_, err := env.messages.Conversation(carol.ID, conn.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)
}
