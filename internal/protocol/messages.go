package protocol

import "encoding/json"

// Outbound message types.
const (
	TypeInit     = "init"
	TypeCooldown = "cooldown"
	TypeUpdate   = "update"
)

// Init is sent once to the joining connection only, acknowledging the
// assigned id and spawn coordinates.
type Init struct {
	Type string  `json:"type"`
	ID   string  `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// NewInit builds an init acknowledgment.
func NewInit(id string, x, y float64) Init {
	return Init{Type: TypeInit, ID: id, X: x, Y: y}
}

// Cooldown notifies the casting connection that an ability is on cooldown.
type Cooldown struct {
	Type  string `json:"type"`
	Skill string `json:"skill"`
}

// NewCooldown builds a cooldown notification for the given skill.
func NewCooldown(skill string) Cooldown {
	return Cooldown{Type: TypeCooldown, Skill: skill}
}

// PlayerState is one player entry in an update broadcast. It carries every
// field clients need for rendering and prediction reconciliation.
type PlayerState struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Skin     string  `json:"skin,omitempty"`
	VIP      bool    `json:"vip,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	R        float64 `json:"r"`
	Angle    float64 `json:"angle"`
	Anim     float64 `json:"anim"`
	Attack   bool    `json:"atk"`
	Dead     bool    `json:"dead"`
	HP       int     `json:"hp"`
	MaxHP    int     `json:"maxHp"`
	Kills    int     `json:"kills"`
	Emoji    int     `json:"emoji,omitempty"`
	Stunned  bool    `json:"stunned"`
	Boosted  bool    `json:"boosted"`
	Shielded bool    `json:"shielded"`
	Tethered bool    `json:"tethered"`
	WebAmmo  int     `json:"webAmmo"`
	RopeAmmo int     `json:"ropeAmmo"`
}

// ItemState is one item entry in an update broadcast.
type ItemState struct {
	ID   uint64  `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Type int     `json:"t"`
}

// ProjectileState is one projectile entry in an update broadcast.
type ProjectileState struct {
	ID    uint64  `json:"id"`
	Owner string  `json:"owner"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Type  string  `json:"t"`
}

// Update is the per-tick snapshot broadcast to every connection in a lobby.
// Items is nil on ticks where the item set is unchanged and off the resend
// interval; clients retain their last-known item set in that case.
type Update struct {
	Type        string            `json:"type"`
	Tick        uint64            `json:"tick"`
	Players     []PlayerState     `json:"players"`
	Items       []ItemState       `json:"items,omitempty"`
	Projectiles []ProjectileState `json:"projs"`
}

// Encode marshals any outbound message to a JSON frame.
func Encode(msg any) ([]byte, error) {
	return json.Marshal(msg)
}
