package lobby

import (
	"time"

	"spider-kingdom/internal/protocol"
)

// Conn is the outbound half of one client connection as the lobby sees it.
// The transport layer (internal/api) adapts its WebSocket connections to
// this interface; the simulation never touches gorilla types directly.
type Conn interface {
	// Send writes one frame. Best-effort: an error marks the channel bad
	// but the player is only removed when the read side observes the close.
	Send(data []byte) error
	// IsOpen reports whether the underlying channel is still usable.
	IsOpen() bool
}

// Inbox messages. The lobby goroutine is the single scheduling domain for
// its world: connects, commands, disconnects and ticks are serialized by the
// actor loop, so the world needs no locks.

type connectMsg struct {
	playerID string
	conn     Conn
}

type commandMsg struct {
	playerID string
	cmd      protocol.Command
}

type disconnectMsg struct {
	playerID string
}

// Hooks are optional observability callbacks, wired to the metrics layer by
// main. Nil funcs are skipped.
type Hooks struct {
	TickDuration    func(d time.Duration)
	BroadcastSent   func(messages int)
	PlayerCount     func(total int)
	LobbyCount      func(n int)
	CommandRejected func(reason string)
}

func (h Hooks) tickDuration(d time.Duration) {
	if h.TickDuration != nil {
		h.TickDuration(d)
	}
}

func (h Hooks) broadcastSent(n int) {
	if h.BroadcastSent != nil {
		h.BroadcastSent(n)
	}
}

func (h Hooks) playerCount(n int) {
	if h.PlayerCount != nil {
		h.PlayerCount(n)
	}
}

func (h Hooks) lobbyCount(n int) {
	if h.LobbyCount != nil {
		h.LobbyCount(n)
	}
}

func (h Hooks) commandRejected(reason string) {
	if h.CommandRejected != nil {
		h.CommandRejected(reason)
	}
}
