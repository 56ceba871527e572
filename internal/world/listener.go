package world

// Listener is the set of world events a client reacts to. A world has at most
// one listener, attached with RegisterListener and detached with
// UnregisterListener.
type Listener interface {
	OnPlayerChat(p *Player, global bool, msg string)
	OnServerMessage(msg string)
	OnPlayerDied(victim *Player, killer *Player)
	OnPlayerSlotChanged(slot int)
}
