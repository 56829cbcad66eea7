package service

import (
	"circlenet_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCircleRejectsDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	_, err := env.circles.Create(alice.ID, "Work", "")
	require.NoError(t, err)

	_, err = env.circles.Create(alice.ID, "Work", "")
	assert.ErrorIs(t, err, util.ErrDuplicateCircle)

	// Uniqueness is per owner.
	_, err = env.circles.Create(bob.ID, "Work", "")
	assert.NoError(t, err)
}

func TestCreateCircleValidatesColor(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	for _, color := range []string{"", "#fff", "#00AA00", "rebeccapurple", "Tomato"} {
		_, err := env.circles.Create(alice.ID, "c-"+color, color)
		assert.NoError(t, err, color)
	}

	for _, color := range []string{"#ffff", "#zzz", "notacolor", "# fff"} {
		_, err := env.circles.Create(alice.ID, "bad-"+color, color)
		assert.Error(t, err, color)
	}
}

func TestCircleMembers(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	circle := env.createCircle(t, alice.ID, "Friends")
	connBob := env.connect(t, alice.ID, bob.ID)
	env.connect(t, alice.ID, carol.ID)
	require.NoError(t, env.circles.AddMember(alice.ID, circle.ID, connBob.ID))

	members, err := env.circles.Members(alice.ID, circle.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, bob.ID, members[0].ID)
}

func TestAddMemberIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	circle := env.createCircle(t, alice.ID, "Friends")
	conn := env.connect(t, alice.ID, bob.ID)

	require.NoError(t, env.circles.AddMember(alice.ID, circle.ID, conn.ID))
	require.NoError(t, env.circles.AddMember(alice.ID, circle.ID, conn.ID))

	members, err := env.circles.Members(alice.ID, circle.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestAddMemberRejectsForeignPieces(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	aliceCircle := env.createCircle(t, alice.ID, "Friends")
	carolConn := env.connect(t, carol.ID, bob.ID)

	// A connection owned by someone else reads as missing.
	err := env.circles.AddMember(alice.ID, aliceCircle.ID, carolConn.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)

	// So does a circle owned by someone else.
	conn := env.connect(t, alice.ID, bob.ID)
	carolCircle := env.createCircle(t, carol.ID, "Friends")
	err = env.circles.AddMember(alice.ID, carolCircle.ID, conn.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestDeleteCircleKeepsConnections(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	circle := env.createCircle(t, alice.ID, "Friends")
	conn := env.connect(t, alice.ID, bob.ID)
	require.NoError(t, env.circles.AddMember(alice.ID, circle.ID, conn.ID))

	require.NoError(t, env.circles.Delete(alice.ID, circle.ID))

	connected, err := env.connections.IsConnected(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, connected)
}

func TestUpdateCircle(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	circle := env.createCircle(t, alice.ID, "Wrok")
	_, err := env.circles.Create(alice.ID, "Family", "")
	require.NoError(t, err)

	updated, err := env.circles.Update(alice.ID, circle.ID, "Work", "#333333")
	require.NoError(t, err)
	assert.Equal(t, "Work", updated.Name)
	assert.Equal(t, "#333333", updated.Color)

	_, err = env.circles.Update(alice.ID, circle.ID, "Family", "")
	assert.ErrorIs(t, err, util.ErrDuplicateCircle)
}
