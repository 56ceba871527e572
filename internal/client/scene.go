package client

import (
	"slices"
	"time"

	"github.com/pixil98/go-spades/internal/world"
)

const (
	// Distance the spectator camera keeps behind the followed player.
	followCameraDistance = 5.0

	defaultFovY = 68.0
)

var (
	// Z grows downwards in voxel space.
	worldUp      = world.Vec3{Z: -1}
	defaultFront = world.Vec3{X: 1}
)

// SceneDefinition is the camera for one frame, shared by the renderer and the
// audio listener.
type SceneDefinition struct {
	Origin world.Vec3
	Front  world.Vec3
	Right  world.Vec3
	Up     world.Vec3
	FovY   float64
	Time   time.Duration

	// SkipWorld is set while in limbo.
	SkipWorld bool

	// Corpses are drawn on top of the world, oldest first.
	Corpses []Corpse
}

func (s *Session) createSceneDefinition() SceneDefinition {
	def := SceneDefinition{
		FovY: defaultFovY,
		Time: s.time,
	}

	var origin, front world.Vec3
	switch {
	case s.world == nil:
		def.SkipWorld = true
		front = defaultFront
	case s.IsFollowing() && s.world.Player(s.followingPlayerId) != nil:
		p := s.world.Player(s.followingPlayerId)
		front = p.Front
		origin = p.EyePosition().Sub(safeNormalize(front).Scale(followCameraDistance))
	case s.world.LocalPlayer() != nil:
		p := s.world.LocalPlayer()
		front = p.Front
		origin = p.EyePosition()
	case s.world.Map() != nil:
		front = defaultFront
		origin = s.world.Map().Center()
	default:
		front = defaultFront
	}

	if s.world != nil {
		def.Corpses = slices.Clone(s.corpses)
	}

	def.Origin = origin
	def.Front = safeNormalize(front)
	def.Right = def.Front.Cross(worldUp)
	if def.Right.PoweredLength() < 1e-6 {
		// Looking straight up or down.
		def.Right = world.Vec3{Y: 1}
	}
	def.Right = def.Right.Normalize()
	def.Up = def.Right.Cross(def.Front).Normalize()

	return def
}

func safeNormalize(v world.Vec3) world.Vec3 {
	if v.PoweredLength() < 1e-12 {
		return defaultFront
	}
	return v.Normalize()
}
