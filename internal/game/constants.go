package game

// Simulation tuning. Durations are expressed in ticks at the reference
// 20 TPS rate; the tick engine consumes them as plain countdowns.
const (
	// Player size and health
	MinRadius      = 60.0
	MaxRadius      = 300.0
	FreeCastRadius = 200.0 // At this size ability casts no longer consume ammo
	MaxHP          = 100

	// Movement
	BaseSpeed       = 8.0
	MinSpeed        = 4.0
	SpeedFalloff    = 0.01 // Speed lost per unit of radius above MinRadius
	BoostMultiplier = 1.5
	AnimStep        = 0.35
	WallMargin      = 60.0 // Positions clamp to [WallMargin, mapSize-WallMargin]

	// Combat
	EatSizeFactor  = 1.2 // Predator must be 20% bigger
	AbsorbFraction = 0.4 // Share of the victim's radius gained on a kill
	KillHeal       = 30

	// Projectiles
	WebSpeed          = 25.0
	RopeSpeed         = 30.0
	WebLifetimeTicks  = 60 // 3 s
	RopeLifetimeTicks = 40 // 2 s

	// Status durations
	WebStunTicks    = 100 // 5 s
	TetherStunTicks = 60  // 3 s
	SpeedBoostTicks = 100 // 5 s
	ShieldTicks     = 100 // 5 s
	EmojiTicks      = 100 // 5 s

	// Tether physics
	TetherPullPerTick = 12.0

	// Items
	PickupMargin      = 30.0 // Pickup radius is player radius + this
	HealthItemHeal    = 25
	WebAmmoPerPickup  = 3
	RopeAmmoPerPickup = 2
)

// ItemBroadcastInterval is the tick interval at which the item list is
// rebroadcast even when unchanged, letting late or lossy clients resync.
const ItemBroadcastInterval = 5
