package game

import "math"

// Tick engine. Step advances one lobby's world by one tick. Phases run in a
// fixed order because later phases depend on earlier ones completing within
// the same tick: a web hit in phase 2 must gate movement resolution through
// the stun it set, the tether pulled in phase 4 can bring a pair into eating
// range for phase 6, and so on.

// Kill records one predation event for the audit log and broadcast hooks.
type Kill struct {
	Killer      string
	Victim      string
	KillerKills int
}

// Pickup records one consumed item.
type Pickup struct {
	Player string
	Item   ItemType
}

// StepSummary reports what a tick changed, for event logging and for the
// snapshot encoder's item throttling.
type StepSummary struct {
	Kills        []Kill
	Pickups      []Pickup
	ItemsChanged bool
}

// Step runs one full simulation tick.
func (w *World) Step() StepSummary {
	w.Tick++
	var sum StepSummary

	w.replenishItems(&sum)
	w.advanceProjectiles()
	w.decayTimers()
	w.resolveTethers()
	w.collectItems(&sum)
	w.resolveCombat(&sum)

	return sum
}

// replenishItems tops the item population back up toward the floor, one item
// per tick so a feeding frenzy refills gradually instead of all at once.
func (w *World) replenishItems(sum *StepSummary) {
	if len(w.Items) < w.cfg.ItemFloor {
		w.spawnItem()
		sum.ItemsChanged = true
	}
}

// advanceProjectiles moves every projectile, then tests it against living
// players in join order. At most one hit is honored per projectile per tick.
func (w *World) advanceProjectiles() {
	players := w.PlayersInOrder()

	n := 0
	for _, pr := range w.Projectiles {
		pr.advance()

		hit := false
		for _, target := range players {
			if !pr.hits(target) {
				continue
			}
			switch pr.Type {
			case ProjectileWeb:
				target.StunTimer = WebStunTicks
			case ProjectileRope:
				// The tether belongs to the caster. If they died or left
				// while the rope was in flight, the shot fizzles.
				if owner := w.players[pr.Owner]; owner != nil && owner.Alive() {
					owner.TetherTarget = target.ID
					owner.TetherActive = true
				}
			}
			hit = true
			break
		}

		if hit || pr.Life <= 0 {
			continue
		}
		w.Projectiles[n] = pr
		n++
	}
	w.Projectiles = w.Projectiles[:n]
}

// decayTimers counts down every status timer. Dead players decay too; they
// only stop acting, not existing.
func (w *World) decayTimers() {
	for _, p := range w.players {
		if p.StunTimer > 0 {
			p.StunTimer--
		}
		if p.BoostTimer > 0 {
			p.BoostTimer--
		}
		if p.ShieldTimer > 0 {
			p.ShieldTimer--
		}
		if p.EmojiTimer > 0 {
			p.EmojiTimer--
			if p.EmojiTimer == 0 {
				p.Emoji = 0
			}
		}
	}
}

// resolveTethers validates and advances every active tether. The lighter
// party is pulled toward the heavier one until the pair touches, at which
// point the tether resolves exactly once: a bigger puller stuns its catch.
func (w *World) resolveTethers() {
	for _, p := range w.PlayersInOrder() {
		if p.Dead || !p.TetherActive {
			continue
		}

		target := w.players[p.TetherTarget]
		if target == nil || target.Dead {
			p.ClearTether()
			continue
		}

		dist := p.distanceTo(target)
		reach := p.R + target.R

		if dist > reach {
			step := math.Min(TetherPullPerTick, dist-reach)
			nx := (target.X - p.X) / dist
			ny := (target.Y - p.Y) / dist
			switch {
			case p.R > target.R:
				target.X -= nx * step
				target.Y -= ny * step
			case target.R > p.R:
				p.X += nx * step
				p.Y += ny * step
			default:
				p.X += nx * step / 2
				p.Y += ny * step / 2
				target.X -= nx * step / 2
				target.Y -= ny * step / 2
			}
			dist = p.distanceTo(target)
		}

		if dist <= reach {
			if p.R > target.R {
				target.StunTimer = TetherStunTicks
			}
			p.ClearTether()
		}
	}
}

// collectItems consumes every item inside a living player's pickup radius.
// Players are visited in join order, so a contested item goes to the earlier
// joiner; each player may consume multiple items in one tick.
func (w *World) collectItems(sum *StepSummary) {
	for _, p := range w.PlayersInOrder() {
		if p.Dead {
			continue
		}
		reach := p.R + PickupMargin

		n := 0
		for _, it := range w.Items {
			if math.Hypot(p.X-it.X, p.Y-it.Y) < reach {
				applyItem(p, it.Type)
				sum.Pickups = append(sum.Pickups, Pickup{Player: p.ID, Item: it.Type})
				sum.ItemsChanged = true
				continue
			}
			w.Items[n] = it
			n++
		}
		w.Items = w.Items[:n]
	}
}

// resolveCombat runs pairwise predation in join order. A victim is marked
// dead the instant it is eaten, so a later predator in the same tick sees a
// corpse and cannot double-claim the kill.
func (w *World) resolveCombat(sum *StepSummary) {
	players := w.PlayersInOrder()

	for _, a := range players {
		if a.Dead {
			continue
		}
		for _, b := range players {
			if b == a || b.Dead || b.ShieldTimer > 0 {
				continue
			}
			if a.distanceTo(b) >= a.R || a.R <= b.R*EatSizeFactor {
				continue
			}

			b.Dead = true
			b.ClearTether()
			a.Grow(b.R)
			a.Kills++
			a.Heal(KillHeal)
			sum.Kills = append(sum.Kills, Kill{Killer: a.ID, Victim: b.ID, KillerKills: a.Kills})
		}
	}
}
