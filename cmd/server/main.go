package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"spider-kingdom/internal/api"
	"spider-kingdom/internal/config"
	"spider-kingdom/internal/game"
	"spider-kingdom/internal/lobby"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from parent directory
	if err := godotenv.Load("../.env"); err != nil {
		// Try current directory as fallback
		if err := godotenv.Load(".env"); err != nil {
			log.Println("💡 No .env file found, using environment variables only")
		}
	} else {
		log.Println("✅ Loaded environment from ../.env")
	}

	log.Println("🕸️ ================================")
	log.Println("🕸️  SPIDER KINGDOM - GAME SERVER")
	log.Println("🕸️ ================================")

	// Load centralized configuration (SSOT - Single Source of Truth)
	appConfig := config.Load()
	simCfg := appConfig.Sim
	serverCfg := appConfig.Server
	limits := appConfig.Limits

	log.Printf("🎮 Simulation: %d TPS, %.0fx%.0f map, %d players/lobby",
		simCfg.TickRate, simCfg.MapSize, simCfg.MapSize, simCfg.LobbyCapacity)
	log.Printf("🛡️ Resource limits: %d connections (%d per IP), %d lobbies, %d projectiles/lobby",
		limits.MaxConnections, limits.MaxConnectionsPerIP, limits.MaxLobbies, limits.MaxProjectiles)

	// Start event log
	events := game.NewEventLog()
	if err := events.Start(serverCfg.EventLogPath); err != nil {
		log.Printf("⚠️ Event log disabled: %v", err)
	} else if serverCfg.EventLogPath != "" {
		log.Printf("📝 Event log: %s", serverCfg.EventLogPath)
	}

	// Start debug server (pprof + prometheus, localhost only)
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(api.DefaultObservabilityConfig()); err != nil {
			log.Printf("⚠️ Debug server disabled: %v", err)
		}
	}

	manager := lobby.NewManager(simCfg, limits, events, lobby.Options{
		Hooks: lobby.Hooks{
			TickDuration:    api.RecordTick,
			BroadcastSent:   api.RecordSnapshotsSent,
			PlayerCount:     api.UpdatePlayerCount,
			LobbyCount:      api.UpdateLobbyCount,
			CommandRejected: api.RecordCommandRejected,
		},
	})

	router := api.NewRouter(api.RouterConfig{
		Manager:   manager,
		Events:    events,
		Sim:       simCfg,
		Limits:    limits,
		RateLimit: api.DefaultRateLimitConfig,
	})

	addr := ":" + strconv.Itoa(serverCfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router.Mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🌐 Listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("🛑 Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("⚠️ HTTP shutdown: %v", err)
	}

	router.Stop()
	manager.Shutdown()
	events.Stop()

	log.Println("👋 Goodbye")
}
