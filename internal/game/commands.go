package game

import "math"

// Command processor: one pure-mutation entry point per intent kind. Every
// entry point is a no-op when the referenced player does not exist, which
// absorbs the disconnect race without error paths.

// InitReply acknowledges a successful join to the originating connection.
type InitReply struct {
	ID   string
	X, Y float64
}

// ApplyJoin initializes the player slot for id. It is a no-op (ok=false) if
// the slot is already initialized.
func (w *World) ApplyJoin(id, name, skin string, vip bool) (InitReply, bool) {
	if _, exists := w.players[id]; exists {
		return InitReply{}, false
	}
	if name == "" {
		name = "Spider"
	}

	x, y := w.randomSpawnPos()
	p := &Player{
		ID:   id,
		Name: name,
		Skin: skin,
		VIP:  vip,
		X:    x,
		Y:    y,
		R:    MinRadius,
		HP:   MaxHP,
	}
	w.players[id] = p
	w.order = append(w.order, id)

	return InitReply{ID: id, X: x, Y: y}, true
}

// ApplyMove steps the player along the requested direction. Rejected while
// dead or stunned. The direction is normalized server-side so clients cannot
// scale their own speed.
func (w *World) ApplyMove(id string, dx, dy float64, attack bool) {
	p := w.players[id]
	if p == nil || p.Dead || p.Stunned() {
		return
	}

	p.Attack = attack

	if dx == 0 && dy == 0 {
		return
	}
	length := math.Hypot(dx, dy)
	dx /= length
	dy /= length

	p.Angle = math.Atan2(dy, dx)
	speed := p.MoveSpeed()
	p.X = w.clampToMap(p.X + dx*speed)
	p.Y = w.clampToMap(p.Y + dy*speed)
	p.Anim += AnimStep
}

// ActionOutcome tells the caller what an action command did, so the lobby
// can send the rope cooldown notification on a successful cast.
type ActionOutcome int

const (
	ActionRejected ActionOutcome = iota
	ActionFiredWeb
	ActionFiredRope
	ActionTetherCancelled
)

// ApplyAction resolves a web or rope cast. Rejected while dead or stunned.
// A rope cast while already tethered cancels the tether instead of firing.
// Spiders at FreeCastRadius or larger cast without spending ammo.
func (w *World) ApplyAction(id, action string) ActionOutcome {
	p := w.players[id]
	if p == nil || p.Dead || p.Stunned() {
		return ActionRejected
	}

	switch action {
	case "web":
		if p.WebAmmo <= 0 && p.R < FreeCastRadius {
			return ActionRejected
		}
		if p.R < FreeCastRadius {
			p.WebAmmo--
		}
		w.fireProjectile(ProjectileWeb, p)
		return ActionFiredWeb

	case "rope":
		if p.TetherActive {
			p.ClearTether()
			return ActionTetherCancelled
		}
		if p.RopeAmmo <= 0 && p.R < FreeCastRadius {
			return ActionRejected
		}
		if p.R < FreeCastRadius {
			p.RopeAmmo--
		}
		w.fireProjectile(ProjectileRope, p)
		return ActionFiredRope
	}
	return ActionRejected
}

func (w *World) fireProjectile(typ ProjectileType, caster *Player) {
	if len(w.Projectiles) >= w.cfg.MaxProjectiles {
		return // Cap reached; the cast still consumed ammo
	}
	w.Projectiles = append(w.Projectiles, newProjectile(w.projSeq, typ, caster))
	w.projSeq++
}

// ApplyEmoji sets the emoji display. Works while dead; it is purely cosmetic.
func (w *World) ApplyEmoji(id string, index int) {
	p := w.players[id]
	if p == nil {
		return
	}
	p.Emoji = index
	p.EmojiTimer = EmojiTicks
}

// ApplyRespawn brings a dead player back at a fresh position with full hit
// points. Radius and kills deliberately persist across death.
func (w *World) ApplyRespawn(id string) {
	p := w.players[id]
	if p == nil {
		return
	}
	p.Dead = false
	p.HP = MaxHP
	p.X, p.Y = w.randomSpawnPos()
	p.StunTimer = 0
	p.ClearTether()
}
