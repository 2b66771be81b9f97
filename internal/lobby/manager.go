// Package lobby owns the set of running lobbies: capacity-based auto-join,
// command routing, and teardown of lobbies whose last player left.
package lobby

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"spider-kingdom/internal/config"
	"spider-kingdom/internal/game"
	"spider-kingdom/internal/protocol"
)

// ErrServerFull is returned when the lobby cap is reached and no lobby has room.
var ErrServerFull = errors.New("lobby: server full")

// Info describes one running lobby for the HTTP API.
type Info struct {
	ID      int `json:"id"`
	Players int `json:"players"`
}

// Manager owns every lobby. There is no ambient state: all lobby and player
// bookkeeping lives on this object and is handed to operations explicitly.
type Manager struct {
	mu       sync.Mutex
	sim      config.SimConfig
	limits   config.ResourceLimits
	lobbies  []*Lobby // Creation order; Assign scans front to back
	nextID   int
	nextSeat int // Monotonic player id counter, never reused

	events *game.EventLog
	hooks  Hooks

	// seedFor derives a world seed per lobby; tests inject a fixed one.
	seedFor func(lobbyID int) int64
}

// Options tunes manager construction.
type Options struct {
	Hooks Hooks
	// SeedFor overrides world seeding for reproducible tests.
	SeedFor func(lobbyID int) int64
}

// NewManager creates a manager with no lobbies; the first connection creates
// lobby 1.
func NewManager(sim config.SimConfig, limits config.ResourceLimits, events *game.EventLog, opts Options) *Manager {
	seedFor := opts.SeedFor
	if seedFor == nil {
		seedFor = func(int) int64 { return time.Now().UnixNano() }
	}
	if events == nil {
		events = game.NewEventLog()
	}
	return &Manager{
		sim:     sim,
		limits:  limits,
		events:  events,
		hooks:   opts.Hooks,
		seedFor: seedFor,
	}
}

// Session binds one connection to its lobby and player id.
type Session struct {
	manager  *Manager
	lobby    *Lobby
	PlayerID string

	closeOnce sync.Once
}

// LobbyID returns the id of the lobby this session was assigned to.
func (s *Session) LobbyID() int { return s.lobby.ID }

// Deliver routes one parsed command to the owning lobby. Commands for
// players that vanished in a disconnect race are dropped inside the lobby.
func (s *Session) Deliver(cmd protocol.Command) {
	s.lobby.enqueue(commandMsg{playerID: s.PlayerID, cmd: cmd})
}

// Close unbinds the connection: the player entity is removed before the
// lobby's next tick, and an emptied lobby is shut down and forgotten.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.lobby.enqueue(disconnectMsg{playerID: s.PlayerID})
		s.manager.release(s.lobby)
	})
}

// Assign finds the first lobby (in creation order) with a free slot, creating
// a new one when all are full, and binds the connection to a fresh player id.
func (m *Manager) Assign(conn Conn) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var target *Lobby
	for _, l := range m.lobbies {
		if l.Members() < m.sim.LobbyCapacity {
			target = l
			break
		}
	}
	if target == nil {
		if len(m.lobbies) >= m.limits.MaxLobbies {
			return nil, ErrServerFull
		}
		target = m.createLobbyLocked()
	}

	m.nextSeat++
	playerID := fmt.Sprintf("p%d", m.nextSeat)
	target.members.Add(1)
	target.enqueue(connectMsg{playerID: playerID, conn: conn})

	m.hooks.playerCount(m.totalMembersLocked())

	return &Session{manager: m, lobby: target, PlayerID: playerID}, nil
}

func (m *Manager) createLobbyLocked() *Lobby {
	m.nextID++
	l := newLobby(m.nextID, game.Config{
		MapSize:        m.sim.MapSize,
		InitialItems:   m.sim.InitialItems,
		ItemFloor:      m.sim.ItemFloor,
		MaxProjectiles: m.limits.MaxProjectiles,
		Seed:           m.seedFor(m.nextID),
	}, m.sim.TickRate, m.limits.MaxNameLength, m.events, m.hooks)

	m.lobbies = append(m.lobbies, l)
	go l.Run()

	m.events.Emit(game.NewEvent(game.EventTypeLobbyCreated, l.ID, 0, "", nil))
	m.hooks.lobbyCount(len(m.lobbies))
	log.Printf("🕸️ Created lobby %d", l.ID)
	return l
}

// release drops one member from a lobby and tears the lobby down when it was
// the last one. Empty lobbies are not kept around.
func (m *Manager) release(l *Lobby) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l.members.Add(-1) > 0 {
		m.hooks.playerCount(m.totalMembersLocked())
		return
	}

	for i, cur := range m.lobbies {
		if cur == l {
			m.lobbies = append(m.lobbies[:i], m.lobbies[i+1:]...)
			break
		}
	}
	l.stop()
	m.events.Emit(game.NewEvent(game.EventTypeLobbyClosed, l.ID, 0, "", nil))
	m.hooks.lobbyCount(len(m.lobbies))
	m.hooks.playerCount(m.totalMembersLocked())
	log.Printf("🕸️ Closed empty lobby %d", l.ID)
}

func (m *Manager) totalMembersLocked() int {
	total := 0
	for _, l := range m.lobbies {
		total += l.Members()
	}
	return total
}

// Lobbies lists running lobbies in creation order.
func (m *Manager) Lobbies() []Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Info, 0, len(m.lobbies))
	for _, l := range m.lobbies {
		out = append(out, Info{ID: l.ID, Players: l.Members()})
	}
	return out
}

// Lobby returns the running lobby with the given id, or nil.
func (m *Manager) Lobby(id int) *Lobby {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range m.lobbies {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// Shutdown stops every lobby. Connections are left to the transport layer.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range m.lobbies {
		l.stop()
	}
	m.lobbies = nil
}
