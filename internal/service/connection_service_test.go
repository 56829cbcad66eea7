package service

import (
	"circlenet_backend/internal/model"
	"circlenet_backend/internal/util"
	"circlenet_backend/pkg/monitoring"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectCreatesMirroredPair(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	conn := env.connect(t, alice.ID, bob.ID)
	require.NotNil(t, conn.OppositeID)

	opposite, err := env.connRepo.FindByID(*conn.OppositeID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, opposite.OwnerID)
	assert.Equal(t, alice.ID, opposite.OtherUserID)
	require.NotNil(t, opposite.OppositeID)
	assert.Equal(t, conn.ID, *opposite.OppositeID)
}

func TestConnectCountsPairCreations(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	before := testutil.ToFloat64(monitoring.PairCreations)
	env.connect(t, alice.ID, bob.ID)
	assert.Equal(t, before+1, testutil.ToFloat64(monitoring.PairCreations))

	// Rejected attempts do not count.
	_, err := env.connections.Connect(alice.ID, bob.ID)
	require.Error(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(monitoring.PairCreations))
}

func TestConnectRejectsSelf(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := env.connections.Connect(alice.ID, alice.ID)
	assert.ErrorIs(t, err, util.ErrSelfConnection)
}

func TestConnectRejectsDuplicate(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	env.connect(t, alice.ID, bob.ID)

	_, err := env.connections.Connect(alice.ID, bob.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyConnected)

	// The mirror row already exists too.
	_, err = env.connections.Connect(bob.ID, alice.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyConnected)
}

func TestConnectionLimitBothSides(t *testing.T) {
	env := newTestEnv(t)
	env.setMaxConnections(1)

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	env.connect(t, alice.ID, bob.ID)

	// Initiator full.
	_, err := env.connections.Connect(alice.ID, carol.ID)
	assert.ErrorIs(t, err, util.ErrConnectionLimit)

	// Other side full: carol has room but alice does not.
	_, err = env.connections.Connect(carol.ID, alice.ID)
	assert.ErrorIs(t, err, util.ErrConnectionLimit)

	var count int64
	require.NoError(t, env.db.Model(&model.Connection{}).Count(&count).Error)
	assert.EqualValues(t, 2, count, "failed attempts must not leave partial rows")
}

func TestDeleteRemovesBothSides(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	conn := env.connect(t, alice.ID, bob.ID)

	require.NoError(t, env.connections.Delete(alice.ID, conn.ID))

	var count int64
	require.NoError(t, env.db.Model(&model.Connection{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeleteFromMirrorSideRemovesBoth(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	conn := env.connect(t, alice.ID, bob.ID)

	require.NoError(t, env.connections.Delete(bob.ID, *conn.OppositeID))

	var count int64
	require.NoError(t, env.db.Model(&model.Connection{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeleteForeignConnectionLooksMissing(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	conn := env.connect(t, alice.ID, bob.ID)

	err := env.connections.Delete(carol.ID, conn.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestSetCirclesReplacesMembershipSet(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	conn := env.connect(t, alice.ID, bob.ID)

	family := env.createCircle(t, alice.ID, "Family")
	friends := env.createCircle(t, alice.ID, "Friends")

	require.NoError(t, env.connections.SetCircles(alice.ID, conn.ID, []string{family.ID}))
	require.NoError(t, env.connections.SetCircles(alice.ID, conn.ID, []string{friends.ID}))

	var memberships []model.CircleMembership
	require.NoError(t, env.db.Where("connection_id = ?", conn.ID).Find(&memberships).Error)
	require.Len(t, memberships, 1)
	assert.Equal(t, friends.ID, memberships[0].CircleID)
}

func TestSetCirclesRejectsForeignCircle(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	conn := env.connect(t, alice.ID, bob.ID)
	bobs := env.createCircle(t, bob.ID, "Work")

	err := env.connections.SetCircles(alice.ID, conn.ID, []string{bobs.ID})
	assert.ErrorIs(t, err, util.ErrForeignCircle)
}
