package client

import "github.com/pixil98/go-spades/internal/world"

// Players facing a near zero vector have not received their first state yet.
const minFrontPoweredLength = 0.01

// FollowNextPlayer moves the spectator camera to the next eligible player,
// wrapping around the slot table. The target is left alone when nobody is
// eligible.
func (s *Session) FollowNextPlayer(reverse bool) {
	if s.world == nil {
		return
	}

	n := s.world.NumPlayerSlots()
	if n == 0 {
		return
	}
	start := s.followingPlayerId
	clamped := start < 0 || start >= n
	if clamped {
		if reverse {
			start = 0
		} else {
			start = n - 1
		}
	}

	lp := s.world.LocalPlayer()
	localTeam := world.TeamSpectator
	skipDead := false
	if lp != nil && !lp.IsSpectator() {
		localTeam = lp.TeamId
		skipDead = !lp.Alive && s.cfg.SkipDeadPlayersWhenDead
	}

	next := start
	for {
		if reverse {
			next = (next - 1 + n) % n
		} else {
			next = (next + 1) % n
		}
		if next == start {
			// Wrapped around. A clamped start was never a real target, so it
			// still gets its turn.
			if clamped && s.canFollow(s.world.Player(start), localTeam, skipDead) {
				s.followingPlayerId = start
			}
			return
		}

		if s.canFollow(s.world.Player(next), localTeam, skipDead) {
			s.followingPlayerId = next
			return
		}
	}
}

func (s *Session) canFollow(p *world.Player, localTeam int, skipDead bool) bool {
	if p == nil || p.IsSpectator() {
		return false
	}
	if world.IsPlayingTeam(localTeam) && p.TeamId != localTeam {
		return false
	}
	if skipDead && !p.Alive {
		return false
	}
	return p.Front.PoweredLength() >= minFrontPoweredLength
}

// IsFollowing reports whether the camera follows another player instead of
// the local one.
func (s *Session) IsFollowing() bool {
	if s.world == nil {
		return false
	}
	lp := s.world.LocalPlayer()
	if lp == nil {
		return false
	}
	return lp.IsSpectator() || !lp.Alive
}
