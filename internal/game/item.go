package game

// ItemType identifies the pickup effect.
type ItemType int

const (
	ItemHealth ItemType = iota
	ItemSpeedBoost
	ItemShield
	ItemWebAmmo
	ItemRopeAmmo
)

// String returns a human-readable item type name.
func (t ItemType) String() string {
	switch t {
	case ItemHealth:
		return "health"
	case ItemSpeedBoost:
		return "speed_boost"
	case ItemShield:
		return "shield"
	case ItemWebAmmo:
		return "web_ammo"
	case ItemRopeAmmo:
		return "rope_ammo"
	default:
		return "unknown"
	}
}

// Item is a consumable pickup on the map. Removal and effect application are
// atomic: the first living player to overlap it gets the effect, nobody else.
type Item struct {
	ID   uint64
	X, Y float64
	Type ItemType
}

// itemWeight is one entry of the fixed spawn distribution.
type itemWeight struct {
	typ    ItemType
	weight int
}

// Weighted spawn distribution, out of 100. Health is the most common drop;
// defensive and ammo pickups are rarer.
var itemWeights = []itemWeight{
	{ItemHealth, 30},
	{ItemSpeedBoost, 20},
	{ItemShield, 15},
	{ItemWebAmmo, 20},
	{ItemRopeAmmo, 15},
}

var itemWeightTotal = func() int {
	total := 0
	for _, w := range itemWeights {
		total += w.weight
	}
	return total
}()

// rollItemType picks an item type from the weighted distribution given a
// roll in [0, itemWeightTotal).
func rollItemType(roll int) ItemType {
	for _, w := range itemWeights {
		if roll < w.weight {
			return w.typ
		}
		roll -= w.weight
	}
	return itemWeights[len(itemWeights)-1].typ
}

// applyItem consumes the item's effect on a living player.
func applyItem(p *Player, t ItemType) {
	switch t {
	case ItemHealth:
		p.Heal(HealthItemHeal)
	case ItemSpeedBoost:
		p.BoostTimer = SpeedBoostTicks
	case ItemShield:
		p.ShieldTimer = ShieldTicks
	case ItemWebAmmo:
		p.WebAmmo += WebAmmoPerPickup
	case ItemRopeAmmo:
		p.RopeAmmo += RopeAmmoPerPickup
	}
}
