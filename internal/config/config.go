// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all server and simulation settings.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// SIMULATION CONFIGURATION
// =============================================================================

// SimConfig holds the per-lobby simulation settings.
// These values are shared between the lobby manager and the tick engine.
type SimConfig struct {
	TickRate      int     // Simulation ticks per second
	MapSize       float64 // Square map extent in world units
	LobbyCapacity int     // Maximum players per lobby
	InitialItems  int     // Items seeded into a freshly created lobby
	ItemFloor     int     // Replenish items when the count drops below this
}

// DefaultSim returns the default simulation configuration.
func DefaultSim() SimConfig {
	return SimConfig{
		TickRate:      20, // Authoritative rate - clients interpolate between snapshots
		MapSize:       5000,
		LobbyCapacity: 30,
		InitialItems:  80,
		ItemFloor:     50,
	}
}

// SimFromEnv returns simulation configuration with environment variable overrides.
// Environment variables take precedence over defaults.
func SimFromEnv() SimConfig {
	cfg := DefaultSim()

	if tr := getEnvInt("TICK_RATE", 0); tr > 0 {
		cfg.TickRate = tr
	}
	if ms := getEnvInt("MAP_SIZE", 0); ms > 0 {
		cfg.MapSize = float64(ms)
	}
	if lc := getEnvInt("LOBBY_CAPACITY", 0); lc > 0 {
		cfg.LobbyCapacity = lc
	}
	if ii := getEnvInt("INITIAL_ITEMS", 0); ii > 0 {
		cfg.InitialItems = ii
	}
	if fl := getEnvInt("ITEM_FLOOR", 0); fl > 0 {
		cfg.ItemFloor = fl
	}

	return cfg
}

// =============================================================================
// RESOURCE LIMITS
// =============================================================================

// ResourceLimits controls DoS protection and performance limits.
type ResourceLimits struct {
	MaxConnections      int // Hard cap on total WebSocket connections
	MaxConnectionsPerIP int // Concurrent WebSocket connections per IP
	MaxProjectiles      int // Active projectiles per lobby
	MaxLobbies          int // Hard cap on concurrently running lobbies
	MaxNameLength       int // Player name length cap (bytes)
}

// DefaultLimits returns the default resource limits.
func DefaultLimits() ResourceLimits {
	return ResourceLimits{
		MaxConnections:      500,
		MaxConnectionsPerIP: 10,
		MaxProjectiles:      64,
		MaxLobbies:          100,
		MaxNameLength:       24,
	}
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int
	EventLogPath string // Append-only JSONL audit log ("" disables it)
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:         3000,
		EventLogPath: "events.jsonl",
	}
}

// ServerFromEnv returns server configuration with environment variable overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if path, ok := os.LookupEnv("EVENT_LOG_PATH"); ok {
		cfg.EventLogPath = path
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Sim    SimConfig
	Server ServerConfig
	Limits ResourceLimits
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Sim:    SimFromEnv(),
		Server: ServerFromEnv(),
		Limits: DefaultLimits(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
