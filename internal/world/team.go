package world

const (
	// TeamSpectator is the team id used for players not on either playing team.
	TeamSpectator = 2

	NumTeams = 2
)

type Color struct {
	R, G, B uint8
}

// White is used for anything not tied to a playing team.
var White = Color{R: 255, G: 255, B: 255}

type Team struct {
	Name  string
	Color Color
}

// IsPlayingTeam reports whether id names one of the two playing teams.
func IsPlayingTeam(id int) bool {
	return id >= 0 && id < NumTeams
}
