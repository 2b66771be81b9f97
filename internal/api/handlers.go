package api

import (
	"encoding/json"
	"image/png"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"spider-kingdom/internal/config"
	"spider-kingdom/internal/game"
	"spider-kingdom/internal/lobby"
	"spider-kingdom/internal/render"
)

// Handlers serves the read-only HTTP API over lobby snapshots.
type Handlers struct {
	manager *lobby.Manager
	events  *game.EventLog
	sim     config.SimConfig
	started time.Time
}

// NewHandlers creates the HTTP API handlers.
func NewHandlers(manager *lobby.Manager, events *game.EventLog, sim config.SimConfig) *Handlers {
	return &Handlers{
		manager: manager,
		events:  events,
		sim:     sim,
		started: time.Now(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// HandleHealth returns a liveness response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleLobbies lists active lobbies with their player counts.
func (h *Handlers) HandleLobbies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lobbies": h.manager.Lobbies(),
	})
}

// LeaderboardEntry is one row of a lobby leaderboard.
type LeaderboardEntry struct {
	Rank   int     `json:"rank"`
	Name   string  `json:"name"`
	Kills  int     `json:"kills"`
	Radius float64 `json:"radius"`
	Dead   bool    `json:"dead"`
}

// HandleLeaderboard returns the kill ranking for one lobby,
// built from its latest snapshot.
func (h *Handlers) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	l, ok := h.lobbyFromURL(w, r)
	if !ok {
		return
	}

	snap := l.Snapshot()
	if snap == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"leaderboard": []LeaderboardEntry{}})
		return
	}

	entries := make([]LeaderboardEntry, 0, len(snap.Players))
	for _, p := range snap.Players {
		entries = append(entries, LeaderboardEntry{
			Name:   p.Name,
			Kills:  p.Kills,
			Radius: p.R,
			Dead:   p.Dead,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Kills != entries[j].Kills {
			return entries[i].Kills > entries[j].Kills
		}
		return entries[i].Name < entries[j].Name
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lobby":       l.ID,
		"tick":        snap.Tick,
		"leaderboard": entries,
	})
}

// HandleMinimap renders a PNG overview of one lobby's current state.
func (h *Handlers) HandleMinimap(w http.ResponseWriter, r *http.Request) {
	l, ok := h.lobbyFromURL(w, r)
	if !ok {
		return
	}

	snap := l.Snapshot()
	img := render.Minimap(snap, h.sim.MapSize)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	png.Encode(w, img)
}

// HandleStats returns server-wide statistics.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	infos := h.manager.Lobbies()
	players := 0
	for _, info := range infos {
		players += info.Players
	}

	stats := map[string]interface{}{
		"uptime_seconds": int(time.Since(h.started).Seconds()),
		"lobbies":        len(infos),
		"players":        players,
		"tick_rate":      h.sim.TickRate,
		"map_size":       h.sim.MapSize,
	}
	if h.events != nil {
		stats["events"] = h.events.Stats()
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *Handlers) lobbyFromURL(w http.ResponseWriter, r *http.Request) (*lobby.Lobby, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid lobby id"})
		return nil, false
	}

	l := h.manager.Lobby(id)
	if l == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "lobby not found"})
		return nil, false
	}
	return l, true
}
