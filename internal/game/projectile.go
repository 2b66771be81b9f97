package game

import "math"

// ProjectileType distinguishes web shots (stun on hit) from rope shots
// (tether on hit).
type ProjectileType int

const (
	ProjectileWeb ProjectileType = iota
	ProjectileRope
)

// String returns the wire name of the projectile type.
func (t ProjectileType) String() string {
	if t == ProjectileRope {
		return "rope"
	}
	return "web"
}

// Projectile travels in a straight line for a bounded number of ticks and is
// destroyed on its first qualifying hit or on expiry, whichever comes first.
type Projectile struct {
	ID     uint64
	Type   ProjectileType
	Owner  string // Player id credited with the hit
	X, Y   float64
	VX, VY float64
	Life   int // Remaining lifetime in ticks
}

// newProjectile spawns a projectile from the caster's position along their
// facing angle.
func newProjectile(id uint64, typ ProjectileType, caster *Player) *Projectile {
	speed := WebSpeed
	life := WebLifetimeTicks
	if typ == ProjectileRope {
		speed = RopeSpeed
		life = RopeLifetimeTicks
	}
	return &Projectile{
		ID:    id,
		Type:  typ,
		Owner: caster.ID,
		X:     caster.X,
		Y:     caster.Y,
		VX:    math.Cos(caster.Angle) * speed,
		VY:    math.Sin(caster.Angle) * speed,
		Life:  life,
	}
}

// advance moves the projectile one tick and decrements its lifetime.
func (pr *Projectile) advance() {
	pr.X += pr.VX
	pr.Y += pr.VY
	pr.Life--
}

// hits tests collision against a player: inside the target's body radius,
// never the owner, never a dead player.
func (pr *Projectile) hits(target *Player) bool {
	if target.Dead || target.ID == pr.Owner {
		return false
	}
	return math.Hypot(target.X-pr.X, target.Y-pr.Y) < target.R
}
