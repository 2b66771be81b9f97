// Package protocol defines the JSON wire format spoken over the WebSocket:
// inbound client intents and outbound server messages. Parsing is an explicit
// (command, error) result so malformed input is an observable branch, not a
// silent swallow.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Inbound message kinds.
const (
	KindJoin    = "join"
	KindMove    = "move"
	KindAction  = "action"
	KindEmoji   = "emoji"
	KindRespawn = "respawn"
)

// Action names carried by KindAction messages.
const (
	ActionWeb  = "web"
	ActionRope = "rope"
)

var (
	// ErrMalformed indicates the payload was not valid JSON or had the wrong shape.
	ErrMalformed = errors.New("protocol: malformed message")
	// ErrUnknownKind indicates a syntactically valid message with an unrecognized type.
	ErrUnknownKind = errors.New("protocol: unknown message kind")
)

// Command is one parsed client intent. Exactly one concrete type per kind.
type Command interface {
	Kind() string
}

// Join asks the server to create the player entity for this connection.
type Join struct {
	Name string `json:"name"`
	Skin string `json:"skin"`
	VIP  bool   `json:"vip"`
}

// Move carries a movement direction and the cosmetic biting state.
type Move struct {
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Attack bool    `json:"atk"`
}

// Action triggers an ability cast ("web" or "rope").
type Action struct {
	Action string `json:"action"`
}

// Emoji displays an emoji above the player for a fixed time.
type Emoji struct {
	Index int `json:"index"`
}

// Respawn brings a dead player back into the world.
type Respawn struct{}

func (Join) Kind() string    { return KindJoin }
func (Move) Kind() string    { return KindMove }
func (Action) Kind() string  { return KindAction }
func (Emoji) Kind() string   { return KindEmoji }
func (Respawn) Kind() string { return KindRespawn }

// envelope peels off the discriminator before the second-stage unmarshal.
type envelope struct {
	Type string `json:"type"`
}

// Parse decodes one inbound frame into a Command.
// Callers drop the message on error; the connection stays open either way.
func Parse(data []byte) (Command, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch env.Type {
	case KindJoin:
		var c Join
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return c, nil
	case KindMove:
		var c Move
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return c, nil
	case KindAction:
		var c Action
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return c, nil
	case KindEmoji:
		var c Emoji
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return c, nil
	case KindRespawn:
		return Respawn{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, env.Type)
	}
}
