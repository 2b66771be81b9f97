package config

import (
	"testing"
)

// TestDefaultSim verifies the baseline simulation settings.
func TestDefaultSim(t *testing.T) {
	cfg := DefaultSim()

	if cfg.TickRate != 20 {
		t.Errorf("Expected tick rate 20, got %d", cfg.TickRate)
	}
	if cfg.MapSize != 5000 {
		t.Errorf("Expected map size 5000, got %v", cfg.MapSize)
	}
	if cfg.LobbyCapacity != 30 {
		t.Errorf("Expected lobby capacity 30, got %d", cfg.LobbyCapacity)
	}
	if cfg.ItemFloor > cfg.InitialItems {
		t.Error("item floor above the initial population would replenish forever")
	}
}

// TestSimFromEnv verifies environment overrides and their validation.
func TestSimFromEnv(t *testing.T) {
	t.Setenv("TICK_RATE", "30")
	t.Setenv("MAP_SIZE", "8000")
	t.Setenv("LOBBY_CAPACITY", "not-a-number")

	cfg := SimFromEnv()

	if cfg.TickRate != 30 {
		t.Errorf("Expected tick rate 30, got %d", cfg.TickRate)
	}
	if cfg.MapSize != 8000 {
		t.Errorf("Expected map size 8000, got %v", cfg.MapSize)
	}
	// Unparseable values fall back to the default
	if cfg.LobbyCapacity != 30 {
		t.Errorf("Expected default capacity 30, got %d", cfg.LobbyCapacity)
	}
}

// TestSimFromEnvRejectsNonPositive verifies zero and negative overrides are
// ignored rather than producing a stalled or inverted simulation.
func TestSimFromEnvRejectsNonPositive(t *testing.T) {
	t.Setenv("TICK_RATE", "0")
	t.Setenv("MAP_SIZE", "-100")

	cfg := SimFromEnv()

	if cfg.TickRate != 20 || cfg.MapSize != 5000 {
		t.Errorf("non-positive overrides applied: %+v", cfg)
	}
}

// TestServerFromEnv verifies port and event log path overrides.
func TestServerFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("EVENT_LOG_PATH", "")

	cfg := ServerFromEnv()

	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Port)
	}
	// An explicitly empty path disables the event log
	if cfg.EventLogPath != "" {
		t.Errorf("Expected empty log path, got %q", cfg.EventLogPath)
	}
}

// TestLoad verifies the composite configuration assembles all sections.
func TestLoad(t *testing.T) {
	app := Load()

	if app.Sim.TickRate <= 0 {
		t.Error("missing simulation config")
	}
	if app.Server.Port <= 0 {
		t.Error("missing server config")
	}
	if app.Limits.MaxConnections <= 0 || app.Limits.MaxLobbies <= 0 {
		t.Error("missing resource limits")
	}
}
