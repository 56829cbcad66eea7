package service

import (
	"circlenet_backend/internal/model"
	"circlenet_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntroCreatesMirroredPair(t *testing.T) {
	env := newTestEnv(t)
	sender := env.createUser(t, "sender")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	intro, err := env.intros.Create(sender.ID, bob.ID, carol.ID)
	require.NoError(t, err)
	require.NotNil(t, intro.OppositeID)

	var opposite model.Intro
	require.NoError(t, env.db.First(&opposite, "id = ?", *intro.OppositeID).Error)
	assert.Equal(t, carol.ID, opposite.ReceiverID)
	assert.Equal(t, bob.ID, opposite.IntroducedID)
	assert.Equal(t, sender.ID, opposite.SenderID)
	require.NotNil(t, opposite.OppositeID)
	assert.Equal(t, intro.ID, *opposite.OppositeID)
}

func TestIntroRejectsIntroducingToSelf(t *testing.T) {
	env := newTestEnv(t)
	sender := env.createUser(t, "sender")
	bob := env.createUser(t, "bob")

	_, err := env.intros.Create(sender.ID, bob.ID, bob.ID)
	assert.ErrorIs(t, err, util.ErrSelfIntro)
}

func TestIntroSingleAcceptDoesNotConnect(t *testing.T) {
	env := newTestEnv(t)
	sender := env.createUser(t, "sender")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	intro, err := env.intros.Create(sender.ID, bob.ID, carol.ID)
	require.NoError(t, err)

	_, err = env.intros.Accept(bob.ID, intro.ID)
	require.NoError(t, err)

	connected, err := env.connections.IsConnected(bob.ID, carol.ID)
	require.NoError(t, err)
	assert.False(t, connected)
}

func TestIntroBothAcceptConnects(t *testing.T) {
	// The connection must appear regardless of which side accepts second.
	for _, firstIsReceiver := range []bool{true, false} {
		env := newTestEnv(t)
		sender := env.createUser(t, "sender")
		bob := env.createUser(t, "bob")
		carol := env.createUser(t, "carol")

		intro, err := env.intros.Create(sender.ID, bob.ID, carol.ID)
		require.NoError(t, err)

		first, second := bob.ID, carol.ID
		firstIntro, secondIntro := intro.ID, *intro.OppositeID
		if !firstIsReceiver {
			first, second = carol.ID, bob.ID
			firstIntro, secondIntro = *intro.OppositeID, intro.ID
		}

		_, err = env.intros.Accept(first, firstIntro)
		require.NoError(t, err)
		_, err = env.intros.Accept(second, secondIntro)
		require.NoError(t, err)

		connected, err := env.connections.IsConnected(bob.ID, carol.ID)
		require.NoError(t, err)
		assert.True(t, connected)
		connected, err = env.connections.IsConnected(carol.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, connected)
	}
}

func TestIntroAcceptForeignIntroLooksMissing(t *testing.T) {
	env := newTestEnv(t)
	sender := env.createUser(t, "sender")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	intro, err := env.intros.Create(sender.ID, bob.ID, carol.ID)
	require.NoError(t, err)

	_, err = env.intros.Accept(sender.ID, intro.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestListOpenSkipsAlreadyConnected(t *testing.T) {
	env := newTestEnv(t)
	sender := env.createUser(t, "sender")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	_, err := env.intros.Create(sender.ID, bob.ID, carol.ID)
	require.NoError(t, err)

	open, err := env.intros.ListOpen(bob.ID)
	require.NoError(t, err)
	require.Len(t, open, 1)

	// They connect through another channel; the intro stops being offered.
	env.connect(t, bob.ID, carol.ID)

	open, err = env.intros.ListOpen(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, open)
}
