package service

import (
	"circlenet_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSeedsStarterCircles(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.Register(RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	circles, err := env.circles.List(user.ID)
	require.NoError(t, err)
	require.Len(t, circles, 2)

	byName := map[string]string{}
	for _, c := range circles {
		byName[c.Name] = c.Color
	}
	assert.Equal(t, "#008800", byName["Family"])
	assert.Equal(t, "#000088", byName["Friends"])
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = env.auth.Register(RegisterInput{Username: "other", Email: "alice@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	_, err = env.auth.Register(RegisterInput{Username: "alice", Email: "new@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.JWT.ExpireTime = time.Hour

	_, err := env.auth.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	token, user, err := env.auth.Login("alice@example.com", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice", user.Username)

	claims, err := util.ParseJWT(token, env.cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, _, err = env.auth.Login("alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = env.auth.Login("nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
