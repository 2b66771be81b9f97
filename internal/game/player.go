package game

import "math"

// Player is the authoritative entity record for one connected client.
// All simulation truth (position, size, health, kills) lives here; clients
// only ever see it through snapshots.
type Player struct {
	ID    string
	Name  string
	Skin  string
	VIP   bool
	X, Y  float64
	R     float64 // Radius, representing mass
	Angle float64 // Facing, radians
	Anim  float64 // Animation phase, advanced on movement
	Dead  bool
	HP    int
	Kills int

	// Cosmetic attack (biting) state, synced from move commands
	Attack bool

	// Emoji display
	Emoji      int
	EmojiTimer int

	// Ability charges
	WebAmmo  int
	RopeAmmo int

	// Status tick countdowns; behavior gated or modified while > 0
	StunTimer   int
	BoostTimer  int
	ShieldTimer int

	// Rope tether: target player id while active
	TetherTarget string
	TetherActive bool
}

// Alive reports whether the player participates in pickups, tethers and combat.
func (p *Player) Alive() bool { return !p.Dead }

// Stunned reports whether the player is locked out of move and action commands.
func (p *Player) Stunned() bool { return p.StunTimer > 0 }

// MoveSpeed returns the per-tick step length: bigger spiders are slower,
// floored at MinSpeed, multiplied while a speed boost is active.
func (p *Player) MoveSpeed() float64 {
	speed := math.Max(MinSpeed, BaseSpeed-(p.R-MinRadius)*SpeedFalloff)
	if p.BoostTimer > 0 {
		speed *= BoostMultiplier
	}
	return speed
}

// Heal restores hit points toward MaxHP.
func (p *Player) Heal(amount int) {
	p.HP += amount
	if p.HP > MaxHP {
		p.HP = MaxHP
	}
}

// Grow absorbs a fraction of the victim's radius, capped at MaxRadius.
func (p *Player) Grow(victimRadius float64) {
	p.R = math.Min(MaxRadius, p.R+victimRadius*AbsorbFraction)
}

// ClearTether drops any active rope tether.
func (p *Player) ClearTether() {
	p.TetherTarget = ""
	p.TetherActive = false
}

func (p *Player) distanceTo(other *Player) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}
