package config

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPublicSettingsExposesOnlyEnumeratedKeys(t *testing.T) {
	cfg := &Config{}
	cfg.SetSocialLimits(SocialConfig{MaxConnectionsPerUser: 150, InviteLifespanDays: 7})
	cfg.JWT.Secret = "must-never-leak"

	settings := cfg.PublicSettings()

	assert.Equal(t, 150, settings["max_connections_per_user"])
	assert.Equal(t, 7, settings["invite_lifespan_days"])
	assert.Len(t, settings, 2, "only the enumerated keys may be exposed")
	for k := range settings {
		assert.NotContains(t, k, "secret")
	}
}

func TestInviteLifespan(t *testing.T) {
	s := SocialConfig{InviteLifespanDays: 7}
	assert.Equal(t, 7*24*time.Hour, s.InviteLifespan())
}

// The config watcher swaps social limits while request handlers read them.
// Hammering both sides keeps the race detector honest about the accessors.
func TestSocialLimitsReloadIsSynchronized(t *testing.T) {
	cfg := &Config{}
	cfg.SetSocialLimits(SocialConfig{MaxConnectionsPerUser: 150, InviteLifespanDays: 7})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(base int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cfg.SetSocialLimits(SocialConfig{
					MaxConnectionsPerUser: base + j,
					InviteLifespanDays:    7,
				})
			}
		}(i * 1000)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = cfg.SocialLimits().MaxConnectionsPerUser
				_ = cfg.PublicSettings()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 7, cfg.SocialLimits().InviteLifespanDays)
}
