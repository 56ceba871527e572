package client

import (
	"testing"

	"github.com/pixil98/go-spades/internal/settings"
	"github.com/pixil98/go-spades/internal/world"
	"github.com/pixil98/go-testutil"
)

type slotSetup struct {
	team  int
	alive bool
	// noFront leaves the orientation uninitialised.
	noFront bool
}

func setupFollowWorld(t *testing.T, h *testHarness, slots map[int]slotSetup, numSlots, local int) *world.World {
	t.Helper()
	w := newTestWorld(numSlots)
	h.s.BindWorld(w)
	for slot, su := range slots {
		p := newTestPlayer("p", su.team, su.alive)
		if su.noFront {
			p.Front = world.Vec3{}
		}
		if err := w.SetPlayer(slot, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	w.SetLocalPlayerId(local)
	return w
}

func TestSession_FollowNextPlayer(t *testing.T) {
	tests := map[string]struct {
		slots    map[int]slotSetup
		local    int
		skipDead bool
		start    int
		reverse  bool
		exp      int
	}{
		"all slots empty": {
			slots: map[int]slotSetup{},
			local: world.NoPlayer,
			start: 3,
			exp:   3,
		},
		"spectator follows any team": {
			slots: map[int]slotSetup{
				0: {team: world.TeamSpectator},
				2: {team: 1, alive: true},
				5: {team: 0, alive: true},
			},
			local: 0,
			start: 2,
			exp:   5,
		},
		"wraps around": {
			slots: map[int]slotSetup{
				0: {team: world.TeamSpectator},
				2: {team: 1, alive: true},
				5: {team: 0, alive: true},
			},
			local: 0,
			start: 5,
			exp:   2,
		},
		"reverse": {
			slots: map[int]slotSetup{
				0: {team: world.TeamSpectator},
				2: {team: 1, alive: true},
				5: {team: 0, alive: true},
			},
			local:   0,
			start:   5,
			reverse: true,
			exp:     2,
		},
		"only own team": {
			slots: map[int]slotSetup{
				1: {team: 0, alive: false},
				2: {team: 1, alive: true},
				4: {team: 0, alive: true},
			},
			local: 1,
			start: 1,
			exp:   4,
		},
		"skips spectators": {
			slots: map[int]slotSetup{
				0: {team: world.TeamSpectator},
				1: {team: world.TeamSpectator},
				3: {team: 1, alive: true},
			},
			local: 0,
			start: 0,
			exp:   3,
		},
		"skips uninitialised orientation": {
			slots: map[int]slotSetup{
				0: {team: world.TeamSpectator},
				1: {team: 1, alive: true, noFront: true},
				3: {team: 1, alive: true},
			},
			local: 0,
			start: 0,
			exp:   3,
		},
		// Dead teammates are only skipped while the local player is dead too.
		"dead allowed while alive": {
			slots: map[int]slotSetup{
				0: {team: 0, alive: true},
				1: {team: 0, alive: false},
				3: {team: 0, alive: true},
			},
			local:    0,
			skipDead: true,
			start:    0,
			exp:      1,
		},
		"skips dead while dead": {
			slots: map[int]slotSetup{
				0: {team: 0, alive: false},
				1: {team: 0, alive: false},
				3: {team: 0, alive: true},
			},
			local:    0,
			skipDead: true,
			start:    0,
			exp:      3,
		},
		"dead allowed without policy": {
			slots: map[int]slotSetup{
				0: {team: 0, alive: false},
				1: {team: 0, alive: false},
				3: {team: 0, alive: true},
			},
			local: 0,
			start: 0,
			exp:   1,
		},
		"no candidate keeps target": {
			slots: map[int]slotSetup{
				0: {team: 0, alive: false},
				2: {team: 1, alive: true},
			},
			local: 0,
			start: 0,
			exp:   0,
		},
		"invalid start forward": {
			slots: map[int]slotSetup{
				0: {team: world.TeamSpectator},
				7: {team: 1, alive: true},
			},
			local: 0,
			start: world.NoPlayer,
			exp:   7,
		},
		"invalid start reverse": {
			slots: map[int]slotSetup{
				1: {team: world.TeamSpectator},
				0: {team: 1, alive: true},
			},
			local:   1,
			start:   world.NoPlayer,
			reverse: true,
			exp:     0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newTestHarness(withSnapshot(func(s *settings.Snapshot) {
				s.SkipDeadPlayersWhenDead = tt.skipDead
			}))
			setupFollowWorld(t, h, tt.slots, 8, tt.local)
			h.s.followingPlayerId = tt.start

			h.s.FollowNextPlayer(tt.reverse)

			testutil.AssertEqual(t, "follow target", h.s.FollowingPlayerId(), tt.exp)
		})
	}
}

func TestSession_FollowNextPlayer_RoundTrip(t *testing.T) {
	h := newTestHarness()
	setupFollowWorld(t, h, map[int]slotSetup{
		0: {team: world.TeamSpectator},
		2: {team: 0, alive: true},
		3: {team: 1, alive: true},
		6: {team: 1, alive: true},
	}, 8, 0)

	for _, start := range []int{2, 3, 6} {
		h.s.followingPlayerId = start
		h.s.FollowNextPlayer(false)
		h.s.FollowNextPlayer(true)
		testutil.AssertEqual(t, "round trip", h.s.FollowingPlayerId(), start)
	}
}

func TestSession_IsFollowing(t *testing.T) {
	tests := map[string]struct {
		bind  bool
		local *world.Player
		exp   bool
	}{
		"no world": {
			exp: false,
		},
		"no local player": {
			bind: true,
			exp:  false,
		},
		"alive on team": {
			bind:  true,
			local: newTestPlayer("me", 0, true),
			exp:   false,
		},
		"dead on team": {
			bind:  true,
			local: newTestPlayer("me", 0, false),
			exp:   true,
		},
		"spectator": {
			bind:  true,
			local: newTestPlayer("me", world.TeamSpectator, false),
			exp:   true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newTestHarness()
			if tt.bind {
				w := newTestWorld(4)
				h.s.BindWorld(w)
				if tt.local != nil {
					if err := w.SetPlayer(1, tt.local); err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
					w.SetLocalPlayerId(1)
				}
			}
			testutil.AssertEqual(t, "following", h.s.IsFollowing(), tt.exp)
		})
	}
}
