package config

import (
	"os"
	"strconv"
	"strings"

	"durak_server/internal/game"
	"durak_server/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort       string
	LogLevel      string
	LogJSON       bool
	AllowedOrigin string

	// Game rules
	StrictTurnOrder bool
	TrumpPlacement  game.TrumpPlacement
	RedactHands     bool

	// Room lifecycle
	RoomIdleTTL         int
	RoomCleanupInterval int

	// Per-connection inbound limiter
	WSEventRate  float64
	WSEventBurst int

	// Optional backends
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DatabaseURL   string

	APIRateLimit  int
	APIRateWindow int
}

// Load reads the config from env, falling back to .env and defaults.
func Load() *Config {
	_ = godotenv.Load()

	trump := game.TrumpPlacement(strings.ToLower(getString("TRUMP_PLACEMENT", string(game.TrumpBottom))))
	if trump != game.TrumpBottom && trump != game.TrumpTop {
		logger.Fatal("TRUMP_PLACEMENT must be bottom or top", "value", trump)
	}

	return &Config{
		AppPort:       getString("APP_PORT", "3001"),
		LogLevel:      getString("LOG_LEVEL", "info"),
		LogJSON:       getBool("LOG_JSON", false),
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),

		StrictTurnOrder: getBool("STRICT_TURN_ORDER", false),
		TrumpPlacement:  trump,
		RedactHands:     getBool("REDACT_HANDS", false),

		RoomIdleTTL:         getPositiveInt("ROOM_IDLE_TTL_SECONDS", 3600),
		RoomCleanupInterval: getPositiveInt("ROOM_CLEANUP_INTERVAL_SECONDS", 600),

		WSEventRate:  getPositiveFloat("WS_EVENT_RATE", 20),
		WSEventBurst: getPositiveInt("WS_EVENT_BURST", 40),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getNonNegativeInt("REDIS_DB", 0),
		DatabaseURL:   os.Getenv("DATABASE_URL"),

		APIRateLimit:  getPositiveInt("API_RATE_LIMIT", 60),
		APIRateWindow: getPositiveInt("API_RATE_WINDOW_SECONDS", 60),
	}
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logger.Fatal("invalid boolean in env", "key", key, "value", v)
	}
	return b
}

// malformed or out-of-range numbers keep the default
func getPositiveInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getNonNegativeInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func getPositiveFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}
