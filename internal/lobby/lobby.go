package lobby

import (
	"log"
	"sync/atomic"
	"time"

	"spider-kingdom/internal/game"
	"spider-kingdom/internal/protocol"
)

// Lobby is one independent simulation instance: an actor owning a World,
// the connections bound to it, and the fixed-rate tick loop. Everything in
// Run executes on a single goroutine; outside code talks to it through the
// inbox and reads state through the atomically published snapshot.
type Lobby struct {
	ID int

	inbox chan any
	quit  chan struct{}

	world *game.World
	conns map[string]Conn

	tickEvery time.Duration
	events    *game.EventLog
	hooks     Hooks
	maxName   int

	// members counts bound connections for capacity accounting. Owned by
	// the manager's mutex, not the actor loop.
	members atomic.Int32

	// latest is the most recent full snapshot (items always included),
	// published once per tick for the HTTP API and the minimap renderer.
	latest atomic.Pointer[protocol.Update]
}

const inboxSize = 256

func newLobby(id int, cfg game.Config, tickRate, maxName int, events *game.EventLog, hooks Hooks) *Lobby {
	return &Lobby{
		ID:        id,
		inbox:     make(chan any, inboxSize),
		quit:      make(chan struct{}),
		world:     game.NewWorld(cfg),
		conns:     make(map[string]Conn),
		tickEvery: time.Second / time.Duration(tickRate),
		events:    events,
		hooks:     hooks,
		maxName:   maxName,
	}
}

// Run is the actor loop. Commands are applied in arrival order, interleaved
// with ticks as the timer fires; a command arriving between two ticks is
// visible starting at the next tick.
func (l *Lobby) Run() {
	ticker := time.NewTicker(l.tickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-l.quit:
			return
		case msg := <-l.inbox:
			l.handle(msg)
		case <-ticker.C:
			l.tick()
		}
	}
}

func (l *Lobby) stop() {
	close(l.quit)
}

// enqueue delivers a message to the actor without ever blocking the caller.
// A full inbox drops the message; there is no backpressure.
func (l *Lobby) enqueue(msg any) {
	select {
	case l.inbox <- msg:
	case <-l.quit:
	default:
		l.hooks.commandRejected("inbox_full")
	}
}

func (l *Lobby) handle(msg any) {
	switch m := msg.(type) {
	case connectMsg:
		l.conns[m.playerID] = m.conn

	case commandMsg:
		// A command can race a disconnect; a vanished binding is a silent drop.
		conn, ok := l.conns[m.playerID]
		if !ok {
			l.hooks.commandRejected("stale_player")
			return
		}
		l.apply(m.playerID, m.cmd, conn)

	case disconnectMsg:
		delete(l.conns, m.playerID)
		if l.world.Player(m.playerID) != nil {
			l.world.RemovePlayer(m.playerID)
			l.events.Emit(game.NewEvent(game.EventTypePlayerLeave, l.ID, l.world.Tick, m.playerID, nil))
		}
	}
}

// apply routes one parsed command into the command processor and sends the
// direct replies (init, cooldown) that live outside the broadcast cycle.
func (l *Lobby) apply(playerID string, cmd protocol.Command, conn Conn) {
	switch c := cmd.(type) {
	case protocol.Join:
		name := c.Name
		if l.maxName > 0 && len(name) > l.maxName {
			name = name[:l.maxName]
		}
		reply, ok := l.world.ApplyJoin(playerID, name, c.Skin, c.VIP)
		if !ok {
			return
		}
		l.events.Emit(game.NewEvent(game.EventTypePlayerJoin, l.ID, l.world.Tick, playerID,
			game.JoinPayload{PlayerID: playerID, Name: name, SpawnX: reply.X, SpawnY: reply.Y}))
		l.reply(conn, protocol.NewInit(reply.ID, reply.X, reply.Y))

	case protocol.Move:
		l.world.ApplyMove(playerID, c.DX, c.DY, c.Attack)

	case protocol.Action:
		if l.world.ApplyAction(playerID, c.Action) == game.ActionFiredRope {
			l.reply(conn, protocol.NewCooldown(protocol.ActionRope))
		}

	case protocol.Emoji:
		l.world.ApplyEmoji(playerID, c.Index)

	case protocol.Respawn:
		l.world.ApplyRespawn(playerID)
		l.events.Emit(game.NewEvent(game.EventTypeRespawn, l.ID, l.world.Tick, playerID, nil))
	}
}

func (l *Lobby) reply(conn Conn, msg any) {
	data, err := protocol.Encode(msg)
	if err != nil {
		return
	}
	if conn.IsOpen() {
		_ = conn.Send(data)
	}
}

// tick advances the simulation one step and broadcasts the result. A lobby
// tick must never take down its goroutine: an invariant violation is a bug
// to log and skip, not a process-ending fault.
func (l *Lobby) tick() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️ lobby %d: tick panic recovered: %v", l.ID, r)
		}
	}()

	start := time.Now()
	summary := l.world.Step()
	l.hooks.tickDuration(time.Since(start))

	for _, k := range summary.Kills {
		l.events.Emit(game.NewEvent(game.EventTypeKill, l.ID, l.world.Tick, k.Killer,
			game.KillPayload{KillerID: k.Killer, VictimID: k.Victim, KillerKills: k.KillerKills}))
	}
	for _, pk := range summary.Pickups {
		l.events.Emit(game.NewEvent(game.EventTypePickup, l.ID, l.world.Tick, pk.Player,
			game.PickupPayload{PlayerID: pk.Player, Item: pk.Item.String()}))
	}

	l.broadcast(summary)
}

// broadcast fans the snapshot out to every open connection. Items ride along
// only when the set changed or on the periodic resend tick; the published
// API snapshot always carries them.
func (l *Lobby) broadcast(summary game.StepSummary) {
	full := game.BuildUpdate(l.world, true)
	l.latest.Store(&full)

	if len(l.conns) == 0 {
		return
	}

	wire := full
	if !summary.ItemsChanged && l.world.Tick%game.ItemBroadcastInterval != 0 {
		wire.Items = nil
	}
	data, err := protocol.Encode(wire)
	if err != nil {
		log.Printf("⚠️ lobby %d: snapshot encode failed: %v", l.ID, err)
		return
	}

	sent := 0
	for _, conn := range l.conns {
		if !conn.IsOpen() {
			continue // Half-open or closed channels are skipped, not errors
		}
		if conn.Send(data) == nil {
			sent++
		}
	}
	l.hooks.broadcastSent(sent)
}

// Snapshot returns the most recent published update, or nil before the
// first tick. Safe from any goroutine.
func (l *Lobby) Snapshot() *protocol.Update {
	return l.latest.Load()
}

// Members returns the number of connections bound to the lobby.
func (l *Lobby) Members() int {
	return int(l.members.Load())
}
