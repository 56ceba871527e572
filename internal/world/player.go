package world

// Player is an occupant of a player slot. Its identity is the slot index, which
// stays fixed for the whole session even when the slot contents are replaced.
type Player struct {
	Id     int
	Name   string
	TeamId int
	Weapon WeaponType

	Position Vec3
	Front    Vec3
	Velocity Vec3

	Alive  bool
	Health int

	// Muted suppresses the chat chime for this player's messages.
	Muted bool
}

// IsSpectator reports whether the player is not on a playing team.
func (p *Player) IsSpectator() bool {
	return !IsPlayingTeam(p.TeamId)
}

// EyePosition returns the camera origin for a first person view of the player.
func (p *Player) EyePosition() Vec3 {
	// Z grows downwards in voxel space.
	return p.Position.Add(Vec3{Z: -0.45})
}

type WeaponType int

const (
	WeaponRifle WeaponType = iota
	WeaponSMG
	WeaponShotgun
)

func (w WeaponType) String() string {
	switch w {
	case WeaponRifle:
		return "rifle"
	case WeaponSMG:
		return "smg"
	case WeaponShotgun:
		return "shotgun"
	default:
		return "unknown"
	}
}
