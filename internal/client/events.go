package client

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-spades/internal/netclient"
	"github.com/pixil98/go-spades/internal/world"
)

const defaultPlayerHealth = 100

func (s *Session) handleEvent(ev netclient.Event) error {
	switch e := ev.(type) {
	case netclient.MapLoaded:
		return s.onMapLoaded(e)
	case netclient.ServerMessage:
		if s.world != nil {
			s.world.ServerMessage(e.Text)
		} else {
			s.OnServerMessage(e.Text)
		}
		return nil
	}

	if s.world == nil {
		return fmt.Errorf("handling %s: %w", ev.Type(), ErrNoWorld)
	}

	switch e := ev.(type) {
	case netclient.PlayerJoined:
		return s.onPlayerJoined(e)
	case netclient.PlayerLeft:
		return s.world.RemovePlayer(e.Slot)
	case netclient.PlayerState:
		return s.onPlayerState(e)
	case netclient.Chat:
		return s.world.Chat(e.Slot, e.Global, e.Text)
	case netclient.Kill:
		return s.world.KillPlayer(e.Victim, e.Killer)
	default:
		slog.Debug("ignoring network event", "type", ev.Type())
		return nil
	}
}

func (s *Session) onMapLoaded(e netclient.MapLoaded) error {
	teams := make([]world.Team, len(e.Teams))
	for i, t := range e.Teams {
		teams[i] = world.Team{
			Name:  t.Name,
			Color: world.Color{R: t.Color[0], G: t.Color[1], B: t.Color[2]},
		}
	}

	m := world.NewMap(e.Width, e.Height, e.Depth, e.Data)
	w, err := world.New(e.Slots, m, teams)
	if err != nil {
		return fmt.Errorf("creating world: %w", err)
	}

	s.BindWorld(w)
	return nil
}

func (s *Session) onPlayerJoined(e netclient.PlayerJoined) error {
	team := e.Team
	if team == netclient.SpectatorTeamWire {
		team = world.TeamSpectator
	}

	p := &world.Player{
		Name:   e.Name,
		TeamId: team,
		Weapon: e.Weapon,
		Health: defaultPlayerHealth,
	}
	p.Alive = !p.IsSpectator()

	if e.Local {
		s.world.SetLocalPlayerId(e.Slot)
		s.followingPlayerId = e.Slot
		s.lastHealth = p.Health
	}

	if err := s.world.SetPlayer(e.Slot, p); err != nil {
		return err
	}

	s.netLog(fmt.Sprintf("%s joined the %s team", p.Name, s.world.Team(p.TeamId).Name))
	return nil
}

func (s *Session) onPlayerState(e netclient.PlayerState) error {
	err := s.world.UpdatePlayer(e.Slot, func(p *world.Player) {
		p.Position = e.Position
		p.Front = e.Front
		p.Velocity = e.Velocity
		p.Alive = e.Alive
		p.Health = e.Health
	})
	if err != nil {
		return err
	}

	if e.Slot == s.world.LocalPlayerId() {
		s.trackLocalHealth(e.Health)
	}
	return nil
}

func (s *Session) trackLocalHealth(health int) {
	if health < s.lastHealth {
		s.lastHurtTime = s.time
		s.hurtRing.Add(float64(s.lastHealth-health) / defaultPlayerHealth)
	}
	s.lastHealth = health
}

// OnPlayerSlotChanged rebuilds the proxy of a slot whose occupant changed.
func (s *Session) OnPlayerSlotChanged(slot int) {
	if s.proxies != nil {
		s.proxies.Replace(slot)
	}
}

// OnPlayerDied updates the killfeed and the spectator camera.
func (s *Session) OnPlayerDied(victim, killer *world.Player) {
	var line string
	switch {
	case killer == nil || killer == victim:
		line = fmt.Sprintf("%s died", victim.Name)
	default:
		line = fmt.Sprintf("%s killed %s", killer.Name, victim.Name)
	}
	s.killfeed.AddMessage(line)
	s.netLog(line)
	s.addCorpse(victim)

	if s.world == nil {
		return
	}
	local := s.world.LocalPlayerId()
	if killer != nil && killer != victim && killer.Id == local {
		s.lastKills++
	}
	if victim.Id == local {
		s.followingPlayerId = local
	}
}
