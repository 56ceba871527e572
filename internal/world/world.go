package world

import (
	"fmt"
	"time"
)

// NoPlayer is the local player id of a world the client has not yet joined.
const NoPlayer = -1

// World is the live simulation state of one game session. It is owned by a
// single client and mutated only from that client's frame loop, so it does no
// locking of its own.
type World struct {
	players []*Player
	gameMap *Map
	teams   [NumTeams]Team

	localPlayerId int
	listener      Listener

	time time.Duration
}

// New creates a world with numSlots empty player slots.
func New(numSlots int, m *Map, teams []Team) (*World, error) {
	if numSlots <= 0 {
		return nil, fmt.Errorf("slot count must be positive, got %d", numSlots)
	}
	if len(teams) != NumTeams {
		return nil, ErrInvalidTeams
	}

	w := &World{
		players:       make([]*Player, numSlots),
		gameMap:       m,
		localPlayerId: NoPlayer,
	}
	copy(w.teams[:], teams)

	return w, nil
}

func (w *World) NumPlayerSlots() int {
	return len(w.players)
}

// Player returns the occupant of slot, or nil for an empty or out of range slot.
func (w *World) Player(slot int) *Player {
	if slot < 0 || slot >= len(w.players) {
		return nil
	}
	return w.players[slot]
}

// LocalPlayer returns the player controlled by this client, if it has joined.
func (w *World) LocalPlayer() *Player {
	return w.Player(w.localPlayerId)
}

func (w *World) LocalPlayerId() int {
	return w.localPlayerId
}

func (w *World) SetLocalPlayerId(id int) {
	w.localPlayerId = id
}

func (w *World) Map() *Map {
	return w.gameMap
}

// Team returns the team with the given id. Spectators get a neutral team.
func (w *World) Team(id int) Team {
	if !IsPlayingTeam(id) {
		return Team{Name: "Spectator", Color: White}
	}
	return w.teams[id]
}

// Time is the simulated time elapsed since the world was created.
func (w *World) Time() time.Duration {
	return w.time
}

func (w *World) RegisterListener(l Listener) {
	w.listener = l
}

func (w *World) UnregisterListener() {
	w.listener = nil
}

func (w *World) Listener() Listener {
	return w.listener
}

// SetPlayer places p into slot, replacing any previous occupant.
func (w *World) SetPlayer(slot int, p *Player) error {
	if slot < 0 || slot >= len(w.players) {
		return fmt.Errorf("setting slot %d: %w", slot, ErrInvalidSlot)
	}
	if p != nil {
		p.Id = slot
	}
	w.players[slot] = p

	if w.listener != nil {
		w.listener.OnPlayerSlotChanged(slot)
	}
	return nil
}

// RemovePlayer empties slot.
func (w *World) RemovePlayer(slot int) error {
	if w.Player(slot) == nil {
		return fmt.Errorf("removing slot %d: %w", slot, ErrSlotEmpty)
	}
	return w.SetPlayer(slot, nil)
}

// UpdatePlayer applies fn to the occupant of slot.
func (w *World) UpdatePlayer(slot int, fn func(*Player)) error {
	p := w.Player(slot)
	if p == nil {
		return fmt.Errorf("updating slot %d: %w", slot, ErrSlotEmpty)
	}
	fn(p)
	return nil
}

// Chat delivers a chat line sent by the occupant of slot.
func (w *World) Chat(slot int, global bool, msg string) error {
	p := w.Player(slot)
	if p == nil {
		return fmt.Errorf("chat from slot %d: %w", slot, ErrSlotEmpty)
	}
	if w.listener != nil {
		w.listener.OnPlayerChat(p, global, msg)
	}
	return nil
}

// ServerMessage delivers a message from the server itself.
func (w *World) ServerMessage(msg string) {
	if w.listener != nil {
		w.listener.OnServerMessage(msg)
	}
}

// KillPlayer marks the victim dead. The killer may be an empty slot (falls,
// team changes).
func (w *World) KillPlayer(victimSlot, killerSlot int) error {
	victim := w.Player(victimSlot)
	if victim == nil {
		return fmt.Errorf("killing slot %d: %w", victimSlot, ErrSlotEmpty)
	}
	victim.Alive = false
	victim.Health = 0
	victim.Velocity = Vec3{}

	if w.listener != nil {
		w.listener.OnPlayerDied(victim, w.Player(killerSlot))
	}
	return nil
}

// Update advances the simulation by dt.
func (w *World) Update(dt time.Duration) {
	w.time += dt

	secs := dt.Seconds()
	for _, p := range w.players {
		if p == nil || !p.Alive {
			continue
		}
		p.Position = p.Position.Add(p.Velocity.Scale(secs))
	}
}
