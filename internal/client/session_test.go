package client

import (
	"testing"

	"github.com/pixil98/go-spades/internal/netclient"
	"github.com/pixil98/go-spades/internal/settings"
	"github.com/pixil98/go-spades/internal/world"
	"github.com/pixil98/go-testutil"
)

func TestNewSession_PlayerName(t *testing.T) {
	tests := map[string]struct {
		name string
		exp  string
	}{
		"default":   {name: "Deuce", exp: "Deuce"},
		"truncated": {name: "abcdefghijklmnopqrstuvwxyz", exp: "abcdefghijklmno"},
		"blank":     {name: "   ", exp: "Deuce"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newTestHarness(withSnapshot(func(s *settings.Snapshot) {
				s.PlayerName = tt.name
			}))
			testutil.AssertEqual(t, "player name", h.s.PlayerName(), tt.exp)
		})
	}
}

func TestSession_Spawn(t *testing.T) {
	tests := map[string]struct {
		local     *world.Player
		team      int
		weapon    world.WeaponType
		expIntent []sentIntent
	}{
		"join when absent": {
			team:   1,
			weapon: world.WeaponSMG,
			expIntent: []sentIntent{
				{kind: "join", team: 1, weapon: world.WeaponSMG, name: "Deuce"},
			},
		},
		"join as spectator uses default weapon": {
			team:   world.TeamSpectator,
			weapon: world.WeaponShotgun,
			expIntent: []sentIntent{
				{kind: "join", team: netclient.SpectatorTeamWire, weapon: world.WeaponRifle, name: "Deuce"},
			},
		},
		"spectator joins team": {
			local:  &world.Player{TeamId: world.TeamSpectator},
			team:   0,
			weapon: world.WeaponRifle,
			expIntent: []sentIntent{
				{kind: "join", team: 0, weapon: world.WeaponRifle, name: "Deuce"},
			},
		},
		"change team only": {
			local:  &world.Player{TeamId: 0, Weapon: world.WeaponRifle},
			team:   1,
			weapon: world.WeaponRifle,
			expIntent: []sentIntent{
				{kind: "team", team: 1},
			},
		},
		"change weapon only": {
			local:  &world.Player{TeamId: 0, Weapon: world.WeaponRifle},
			team:   0,
			weapon: world.WeaponSMG,
			expIntent: []sentIntent{
				{kind: "weapon", weapon: world.WeaponSMG},
			},
		},
		"nothing to change": {
			local:  &world.Player{TeamId: 0, Weapon: world.WeaponRifle},
			team:   0,
			weapon: world.WeaponRifle,
		},
		"player to spectator": {
			local:  &world.Player{TeamId: 1, Weapon: world.WeaponRifle},
			team:   world.TeamSpectator,
			weapon: world.WeaponSMG,
			expIntent: []sentIntent{
				{kind: "team", team: netclient.SpectatorTeamWire},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newTestHarness()
			w := newTestWorld(4)
			h.s.BindWorld(w)
			if tt.local != nil {
				if err := w.SetPlayer(0, tt.local); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				w.SetLocalPlayerId(0)
			}

			if err := h.s.Spawn(tt.team, tt.weapon); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "intent count", len(h.net.sent), len(tt.expIntent))
			for i := range tt.expIntent {
				testutil.AssertEqual(t, "intent", h.net.sent[i], tt.expIntent[i])
			}
		})
	}
}

func TestSession_Spawn_NoWorld(t *testing.T) {
	h := newTestHarness()
	testutil.AssertErrorContains(t, h.s.Spawn(0, world.WeaponRifle), "no world loaded")
}

func TestSession_OnPlayerDied(t *testing.T) {
	h := newLoggedHarness(t)
	w := newTestWorld(4)
	h.s.BindWorld(w)

	me := newTestPlayer("me", 0, true)
	foe := newTestPlayer("foe", 1, true)
	for slot, p := range map[int]*world.Player{0: me, 1: foe} {
		if err := w.SetPlayer(slot, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	w.SetLocalPlayerId(0)

	if err := w.KillPlayer(1, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "last kills", h.s.lastKills, 1)
	testutil.AssertEqual(t, "killfeed", h.s.killfeed.Lines()[0], "me killed foe")

	if err := w.KillPlayer(0, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "last kills", h.s.lastKills, 1)
	testutil.AssertEqual(t, "follow target", h.s.FollowingPlayerId(), 0)
	testutil.AssertEqual(t, "corpses", len(h.s.corpses), 2)

	// Score hint goes out with the next join.
	me.TeamId = world.TeamSpectator
	if err := h.s.Spawn(1, world.WeaponRifle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "score hint", h.net.sent[0].score, 1)
}
