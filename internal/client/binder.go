package client

import (
	"log/slog"
	"time"

	"github.com/pixil98/go-spades/internal/world"
)

// Corpses beyond this count are dropped oldest first.
const corpseHardLimit = 16

// LocalEntity is a client side effect living in the current world, such as a
// tracer or a particle burst. Update returns false once it should be removed.
type LocalEntity interface {
	Update(dt time.Duration) bool
}

// Corpse is the body a player left behind in the slot they died in.
type Corpse struct {
	Slot     int
	Position world.Vec3
}

// BindWorld makes w the world the session shows. A nil world puts the client
// in limbo. Binding the world that is already bound does nothing.
func (s *Session) BindWorld(w *world.World) {
	if w == s.world {
		return
	}

	s.ui.CloseUI()
	s.clearWorldState()
	s.releaseWorld()

	s.world = w
	if w != nil {
		s.proxies = newProxyTable(w)
		w.RegisterListener(s)
		s.renderer.SetGameMap(w.Map())
		s.audio.SetGameMap(w.Map())
		s.netLog("------ World Loaded ------")
	} else {
		s.netLog("------ World Unloaded ------")
		s.ui.EnterLimbo()
	}

	s.worldSubFrame = 0
	s.worldSetTime = s.time
}

// releaseWorld detaches the bound world from every subsystem at once.
func (s *Session) releaseWorld() {
	if s.proxies != nil {
		s.proxies.InvalidateAll()
		s.proxies = nil
	}
	if s.world == nil {
		return
	}

	slog.Debug("releasing world")
	s.world.UnregisterListener()
	s.renderer.SetGameMap(nil)
	s.audio.SetGameMap(nil)
	s.world = nil
}

func (s *Session) clearWorldState() {
	s.lastHealth = 0
	s.lastHurtTime = -100 * time.Second
	s.hurtRing.intensity = 0
	s.scoreboardVisible = false
	s.flashlightOn = false
	s.localEntities = nil
	s.corpses = nil
	s.mapView.reset()
	s.followingPlayerId = world.NoPlayer
}

func (s *Session) addCorpse(p *world.Player) {
	s.corpses = append(s.corpses, Corpse{Slot: p.Id, Position: p.Position})
	if over := len(s.corpses) - corpseHardLimit; over > 0 {
		s.corpses = s.corpses[over:]
	}
}

func (s *Session) updateLocalEntities(dt time.Duration) {
	kept := s.localEntities[:0]
	for _, e := range s.localEntities {
		if e.Update(dt) {
			kept = append(kept, e)
		}
	}
	s.localEntities = kept
}
