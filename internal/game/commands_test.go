package game

import (
	"math"
	"testing"
)

// TestMoveNormalizesDirection verifies the server ignores client-supplied
// vector magnitudes.
func TestMoveNormalizesDirection(t *testing.T) {
	w := newTestWorld()
	p := addPlayer(w, "p1", 2500, 2500, MinRadius)

	w.ApplyMove("p1", 1000, 0, false)

	if got := p.X - 2500; math.Abs(got-BaseSpeed) > 1e-9 {
		t.Errorf("Expected step %v, got %v", BaseSpeed, got)
	}
	if p.Y != 2500 {
		t.Errorf("Y moved unexpectedly: %v", p.Y)
	}
	if p.Angle != 0 {
		t.Errorf("Expected angle 0, got %v", p.Angle)
	}
}

// TestMoveSpeedScalesWithSize verifies the inverse size-speed law.
func TestMoveSpeedScalesWithSize(t *testing.T) {
	tests := []struct {
		name  string
		r     float64
		boost bool
		want  float64
	}{
		{"minimum size", MinRadius, false, BaseSpeed},
		{"mid size", 160, false, BaseSpeed - 100*SpeedFalloff},
		{"speed floor", MaxRadius + 1000, false, MinSpeed},
		{"boosted", MinRadius, true, BaseSpeed * BoostMultiplier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Player{R: tt.r}
			if tt.boost {
				p.BoostTimer = 10
			}
			if got := p.MoveSpeed(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

// TestMoveRejectedWhileStunnedOrDead verifies movement gating.
func TestMoveRejectedWhileStunnedOrDead(t *testing.T) {
	w := newTestWorld()
	p := addPlayer(w, "p1", 2500, 2500, MinRadius)

	p.StunTimer = 5
	w.ApplyMove("p1", 1, 0, true)
	if p.X != 2500 || p.Attack {
		t.Error("stunned player processed a move")
	}

	p.StunTimer = 0
	p.Dead = true
	w.ApplyMove("p1", 1, 0, false)
	if p.X != 2500 {
		t.Error("dead player moved")
	}
}

// TestMoveClampsToWalls verifies positions never leave the interior.
func TestMoveClampsToWalls(t *testing.T) {
	w := newTestWorld()
	p := addPlayer(w, "p1", WallMargin+1, 2500, MinRadius)

	for i := 0; i < 10; i++ {
		w.ApplyMove("p1", -1, 0, false)
	}
	if p.X != WallMargin {
		t.Errorf("Expected clamp at %v, got %v", WallMargin, p.X)
	}
}

// TestWebCastConsumesAmmo verifies the ammo ledger and the rejection path.
func TestWebCastConsumesAmmo(t *testing.T) {
	w := newTestWorld()
	p := addPlayer(w, "p1", 2500, 2500, MinRadius)
	p.WebAmmo = 1

	if got := w.ApplyAction("p1", "web"); got != ActionFiredWeb {
		t.Fatalf("Expected ActionFiredWeb, got %v", got)
	}
	if p.WebAmmo != 0 {
		t.Errorf("Expected 0 ammo, got %d", p.WebAmmo)
	}
	if len(w.Projectiles) != 1 {
		t.Fatalf("Expected 1 projectile, got %d", len(w.Projectiles))
	}
	if w.Projectiles[0].Type != ProjectileWeb || w.Projectiles[0].Owner != "p1" {
		t.Error("projectile type or owner wrong")
	}

	if got := w.ApplyAction("p1", "web"); got != ActionRejected {
		t.Errorf("Expected rejection with no ammo, got %v", got)
	}
	if len(w.Projectiles) != 1 {
		t.Error("rejected cast still spawned a projectile")
	}
}

// TestFreeCastAtSize verifies large spiders cast without ammo.
func TestFreeCastAtSize(t *testing.T) {
	w := newTestWorld()
	p := addPlayer(w, "p1", 2500, 2500, FreeCastRadius)
	p.WebAmmo = 2

	if got := w.ApplyAction("p1", "web"); got != ActionFiredWeb {
		t.Fatalf("Expected ActionFiredWeb, got %v", got)
	}
	if p.WebAmmo != 2 {
		t.Errorf("free cast consumed ammo: %d", p.WebAmmo)
	}
}

// TestRopeCastTogglesTether verifies a rope cast while tethered cancels
// instead of firing.
func TestRopeCastTogglesTether(t *testing.T) {
	w := newTestWorld()
	p := addPlayer(w, "p1", 2500, 2500, MinRadius)
	p.RopeAmmo = 1

	if got := w.ApplyAction("p1", "rope"); got != ActionFiredRope {
		t.Fatalf("Expected ActionFiredRope, got %v", got)
	}

	p.TetherActive = true
	p.TetherTarget = "p2"
	if got := w.ApplyAction("p1", "rope"); got != ActionTetherCancelled {
		t.Fatalf("Expected ActionTetherCancelled, got %v", got)
	}
	if p.TetherActive {
		t.Error("tether still active after cancel")
	}
	if len(w.Projectiles) != 1 {
		t.Error("cancel should not fire a projectile")
	}
}

// TestActionRejectedCases covers the gating table for casts.
func TestActionRejectedCases(t *testing.T) {
	tests := []struct {
		name  string
		setup func(p *Player)
	}{
		{"dead", func(p *Player) { p.Dead = true }},
		{"stunned", func(p *Player) { p.StunTimer = 1 }},
		{"no ammo", func(p *Player) { p.WebAmmo = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			p := addPlayer(w, "p1", 2500, 2500, MinRadius)
			tt.setup(p)
			if got := w.ApplyAction("p1", "web"); got != ActionRejected {
				t.Errorf("Expected rejection, got %v", got)
			}
		})
	}

	// Unknown action strings and unknown players reject silently
	w := newTestWorld()
	addPlayer(w, "p1", 2500, 2500, MinRadius)
	if got := w.ApplyAction("p1", "laser"); got != ActionRejected {
		t.Error("unknown action accepted")
	}
	if got := w.ApplyAction("ghost", "web"); got != ActionRejected {
		t.Error("unknown player accepted")
	}
}

// TestProjectileCap verifies the per-lobby projectile budget.
func TestProjectileCap(t *testing.T) {
	w := NewWorld(Config{MapSize: 5000, MaxProjectiles: 2, Seed: 1})
	p := addPlayer(w, "p1", 2500, 2500, FreeCastRadius)
	p.WebAmmo = 0

	for i := 0; i < 5; i++ {
		w.ApplyAction("p1", "web")
	}
	if len(w.Projectiles) != 2 {
		t.Errorf("Expected 2 projectiles at cap, got %d", len(w.Projectiles))
	}
}

// TestEmojiWorksWhileDead verifies emoji is cosmetic only.
func TestEmojiWorksWhileDead(t *testing.T) {
	w := newTestWorld()
	p := addPlayer(w, "p1", 2500, 2500, MinRadius)
	p.Dead = true

	w.ApplyEmoji("p1", 3)

	if p.Emoji != 3 {
		t.Errorf("Expected emoji 3, got %d", p.Emoji)
	}
	if p.EmojiTimer != EmojiTicks {
		t.Errorf("Expected timer %d, got %d", EmojiTicks, p.EmojiTimer)
	}
}

// TestRespawnPreservesProgress verifies size and kills survive death while
// transient state resets.
func TestRespawnPreservesProgress(t *testing.T) {
	w := newTestWorld()
	p := addPlayer(w, "p1", 2500, 2500, 150)
	p.Kills = 4
	p.Dead = true
	p.HP = 0
	p.StunTimer = 50
	p.TetherActive = true
	p.TetherTarget = "p2"

	w.ApplyRespawn("p1")

	if p.Dead {
		t.Fatal("still dead after respawn")
	}
	if p.HP != MaxHP {
		t.Errorf("Expected HP %d, got %d", MaxHP, p.HP)
	}
	if p.R != 150 || p.Kills != 4 {
		t.Error("radius or kills did not persist across respawn")
	}
	if p.StunTimer != 0 || p.TetherActive {
		t.Error("transient state not cleared on respawn")
	}
}
