package game

import "spider-kingdom/internal/protocol"

// Snapshot encoder: serializes the world's visible state into the per-tick
// update broadcast. The full player and projectile lists go out every tick;
// the item list is low-churn and is included only when includeItems is set
// (the lobby passes true when the set changed or on the resend interval).
func BuildUpdate(w *World, includeItems bool) protocol.Update {
	u := protocol.Update{
		Type:        protocol.TypeUpdate,
		Tick:        w.Tick,
		Players:     make([]protocol.PlayerState, 0, len(w.players)),
		Projectiles: make([]protocol.ProjectileState, 0, len(w.Projectiles)),
	}

	for _, p := range w.PlayersInOrder() {
		u.Players = append(u.Players, protocol.PlayerState{
			ID:       p.ID,
			Name:     p.Name,
			Skin:     p.Skin,
			VIP:      p.VIP,
			X:        p.X,
			Y:        p.Y,
			R:        p.R,
			Angle:    p.Angle,
			Anim:     p.Anim,
			Attack:   p.Attack,
			Dead:     p.Dead,
			HP:       p.HP,
			MaxHP:    MaxHP,
			Kills:    p.Kills,
			Emoji:    p.Emoji,
			Stunned:  p.StunTimer > 0,
			Boosted:  p.BoostTimer > 0,
			Shielded: p.ShieldTimer > 0,
			Tethered: p.TetherActive,
			WebAmmo:  p.WebAmmo,
			RopeAmmo: p.RopeAmmo,
		})
	}

	if includeItems {
		u.Items = make([]protocol.ItemState, 0, len(w.Items))
		for _, it := range w.Items {
			u.Items = append(u.Items, protocol.ItemState{
				ID:   it.ID,
				X:    it.X,
				Y:    it.Y,
				Type: int(it.Type),
			})
		}
	}

	for _, pr := range w.Projectiles {
		u.Projectiles = append(u.Projectiles, protocol.ProjectileState{
			ID:    pr.ID,
			Owner: pr.Owner,
			X:     pr.X,
			Y:     pr.Y,
			Type:  pr.Type.String(),
		})
	}

	return u
}
