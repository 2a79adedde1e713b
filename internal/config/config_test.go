package config

import (
	"testing"

	"durak_server/internal/game"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "STRICT_TURN_ORDER", "TRUMP_PLACEMENT", "REDACT_HANDS", "ROOM_IDLE_TTL_SECONDS", "WS_EVENT_RATE", "REDIS_DB"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "3001", cfg.AppPort)
	assert.False(t, cfg.StrictTurnOrder)
	assert.Equal(t, game.TrumpBottom, cfg.TrumpPlacement)
	assert.False(t, cfg.RedactHands)
	assert.Equal(t, 3600, cfg.RoomIdleTTL)
	assert.Equal(t, 20.0, cfg.WSEventRate)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("STRICT_TURN_ORDER", "true")
	t.Setenv("TRUMP_PLACEMENT", "TOP")
	t.Setenv("REDACT_HANDS", "1")
	t.Setenv("ROOM_IDLE_TTL_SECONDS", "120")
	t.Setenv("ROOM_CLEANUP_INTERVAL_SECONDS", "-5")
	t.Setenv("WS_EVENT_RATE", "2.5")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	assert.Equal(t, "9000", cfg.AppPort)
	assert.True(t, cfg.StrictTurnOrder)
	assert.Equal(t, game.TrumpTop, cfg.TrumpPlacement)
	assert.True(t, cfg.RedactHands)
	assert.Equal(t, 120, cfg.RoomIdleTTL)
	assert.Equal(t, 600, cfg.RoomCleanupInterval)
	assert.Equal(t, 2.5, cfg.WSEventRate)
	assert.Equal(t, 3, cfg.RedisDB)
}
