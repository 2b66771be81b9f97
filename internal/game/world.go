package game

import (
	"math/rand"
)

// Config carries the simulation parameters a World needs. The lobby manager
// builds it from the central configuration.
type Config struct {
	MapSize        float64
	InitialItems   int
	ItemFloor      int
	MaxProjectiles int
	Seed           int64 // Seeds the world's random source for reproducible spawns
}

// World is the per-lobby entity store: players, items and projectiles plus
// the monotonic id counters. It is pure data with query helpers; mutation
// happens through the command processor and the tick engine, both running on
// the owning lobby's single goroutine, so no locking exists here.
type World struct {
	Tick uint64

	players map[string]*Player
	order   []string // Join order; all per-tick iteration follows it

	Items       []*Item
	Projectiles []*Projectile

	itemSeq uint64
	projSeq uint64

	cfg Config
	rng *rand.Rand
}

// NewWorld creates an empty world and seeds the initial item population.
func NewWorld(cfg Config) *World {
	if cfg.MaxProjectiles <= 0 {
		cfg.MaxProjectiles = 64
	}
	w := &World{
		players: make(map[string]*Player),
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
	}
	for i := 0; i < cfg.InitialItems; i++ {
		w.spawnItem()
	}
	return w
}

// Player returns the entity record for id, or nil.
func (w *World) Player(id string) *Player {
	return w.players[id]
}

// PlayersInOrder yields players in join order. The deterministic order is
// what makes first-predator-wins and first-pickup-wins reproducible.
func (w *World) PlayersInOrder() []*Player {
	out := make([]*Player, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.players[id])
	}
	return out
}

// PlayerCount returns the number of live entity records.
func (w *World) PlayerCount() int { return len(w.players) }

// AliveCount returns the number of players currently alive.
func (w *World) AliveCount() int {
	n := 0
	for _, p := range w.players {
		if p.Alive() {
			n++
		}
	}
	return n
}

// RemovePlayer deletes a player's entity record. Any tether pointing at it is
// cleared on the next tick's validation pass.
func (w *World) RemovePlayer(id string) {
	if _, ok := w.players[id]; !ok {
		return
	}
	delete(w.players, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// spawnItem appends one item at a random map position with a weighted type.
func (w *World) spawnItem() {
	x, y := w.randomItemPos()
	w.Items = append(w.Items, &Item{
		ID:   w.itemSeq,
		X:    x,
		Y:    y,
		Type: rollItemType(w.rng.Intn(itemWeightTotal)),
	})
	w.itemSeq++
}

// randomItemPos picks a position with a 100-unit border margin.
func (w *World) randomItemPos() (float64, float64) {
	span := w.cfg.MapSize - 200
	return w.rng.Float64()*span + 100, w.rng.Float64()*span + 100
}

// randomSpawnPos picks a player spawn point well inside the map so fresh
// spawns never start against a wall.
func (w *World) randomSpawnPos() (float64, float64) {
	span := w.cfg.MapSize - 1000
	return w.rng.Float64()*span + 500, w.rng.Float64()*span + 500
}

// clampToMap keeps a position inside the playable interior.
func (w *World) clampToMap(v float64) float64 {
	if v < WallMargin {
		return WallMargin
	}
	if max := w.cfg.MapSize - WallMargin; v > max {
		return max
	}
	return v
}
