package game

import (
	"encoding/json"
	"time"
)

// EventType enum for audit event classification.
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypePlayerJoin
	EventTypePlayerLeave
	EventTypeKill
	EventTypePickup
	EventTypeRespawn
	EventTypeLobbyCreated
	EventTypeLobbyClosed
)

// String returns the human-readable event type.
func (t EventType) String() string {
	switch t {
	case EventTypePlayerJoin:
		return "player_join"
	case EventTypePlayerLeave:
		return "player_leave"
	case EventTypeKill:
		return "kill"
	case EventTypePickup:
		return "pickup"
	case EventTypeRespawn:
		return "respawn"
	case EventTypeLobbyCreated:
		return "lobby_created"
	case EventTypeLobbyClosed:
		return "lobby_closed"
	default:
		return "unknown"
	}
}

// Event is one append-only audit record. The payload is pre-encoded JSON so
// the writer goroutine never touches domain types.
type Event struct {
	Type      EventType       `json:"type"`
	Name      string          `json:"name"`
	Timestamp int64           `json:"timestamp"` // Unix nano
	Lobby     int             `json:"lobby"`
	Tick      uint64          `json:"tick"`
	PlayerID  string          `json:"playerId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// KillPayload details one predation event.
type KillPayload struct {
	KillerID    string `json:"killerId"`
	VictimID    string `json:"victimId"`
	KillerKills int    `json:"killerKills"`
}

// PickupPayload details one consumed item.
type PickupPayload struct {
	PlayerID string `json:"playerId"`
	Item     string `json:"item"`
}

// JoinPayload details a player entering the world.
type JoinPayload struct {
	PlayerID string  `json:"playerId"`
	Name     string  `json:"name"`
	SpawnX   float64 `json:"spawnX"`
	SpawnY   float64 `json:"spawnY"`
}

// NewEvent builds an event with the current timestamp. Marshal failures drop
// the payload, never the event.
func NewEvent(typ EventType, lobby int, tick uint64, playerID string, payload any) Event {
	var raw json.RawMessage
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			raw = data
		}
	}
	return Event{
		Type:      typ,
		Name:      typ.String(),
		Timestamp: time.Now().UnixNano(),
		Lobby:     lobby,
		Tick:      tick,
		PlayerID:  playerID,
		Payload:   raw,
	}
}
