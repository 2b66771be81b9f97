package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"spider-kingdom/internal/config"
	"spider-kingdom/internal/game"
	"spider-kingdom/internal/lobby"
)

// RouterConfig carries the dependencies the router wires together.
type RouterConfig struct {
	Manager   *lobby.Manager
	Events    *game.EventLog
	Sim       config.SimConfig
	Limits    config.ResourceLimits
	RateLimit RateLimitConfig
}

// Router bundles the chi mux with the limiters it owns so the caller
// can stop their background goroutines on shutdown.
type Router struct {
	Mux       *chi.Mux
	ipLimiter *IPRateLimiter
}

// NewRouter builds the HTTP surface: REST endpoints plus the /ws upgrade.
func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	ipLimiter := NewIPRateLimiter(cfg.RateLimit)
	r.Use(ipLimiter.Middleware)

	handlers := NewHandlers(cfg.Manager, cfg.Events, cfg.Sim)
	wsHandler := NewWebSocketHandler(cfg.Manager, cfg.Limits.MaxConnections, cfg.Limits.MaxConnectionsPerIP)

	r.Get("/health", handlers.HandleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", handlers.HandleStats)
		r.Get("/lobbies", handlers.HandleLobbies)
		r.Get("/lobbies/{id}/leaderboard", handlers.HandleLeaderboard)
		r.Get("/lobbies/{id}/map.png", handlers.HandleMinimap)
	})
	r.Handle("/ws", wsHandler)

	// Static client, if one is deployed alongside the binary
	r.Handle("/*", http.FileServer(http.Dir("./public")))

	return &Router{Mux: r, ipLimiter: ipLimiter}
}

// Stop shuts down the router's background goroutines.
func (rt *Router) Stop() {
	rt.ipLimiter.Stop()
}
