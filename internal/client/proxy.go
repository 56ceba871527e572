package client

import (
	"math"
	"time"

	"github.com/pixil98/go-spades/internal/world"
)

// How quickly a proxy's view angles catch up with the player's, per second.
const viewSmoothingRate = 12.0

// PlayerProxy is the presentation side of one occupied player slot. Proxies
// outlive the world they were created for; once invalidated every accessor
// reports ErrProxyStale instead of touching the old world.
type PlayerProxy struct {
	slot   int
	player *world.Player
	stale  bool

	yaw       float64
	pitch     float64
	wasAlive  bool
	deathTime time.Duration
	age       time.Duration
}

func newPlayerProxy(slot int, p *world.Player) *PlayerProxy {
	pp := &PlayerProxy{
		slot:     slot,
		player:   p,
		wasAlive: p.Alive,
	}
	pp.yaw, pp.pitch = viewAngles(p.Front)
	return pp
}

func (pp *PlayerProxy) Slot() int {
	return pp.slot
}

// Player returns the mirrored player.
func (pp *PlayerProxy) Player() (*world.Player, error) {
	if pp.stale {
		return nil, ErrProxyStale
	}
	return pp.player, nil
}

// ViewAngles returns the smoothed yaw and pitch in radians.
func (pp *PlayerProxy) ViewAngles() (yaw, pitch float64, err error) {
	if pp.stale {
		return 0, 0, ErrProxyStale
	}
	return pp.yaw, pp.pitch, nil
}

// TimeSinceDeath is zero while the player is alive.
func (pp *PlayerProxy) TimeSinceDeath() (time.Duration, error) {
	if pp.stale {
		return 0, ErrProxyStale
	}
	if pp.wasAlive {
		return 0, nil
	}
	return pp.age - pp.deathTime, nil
}

func (pp *PlayerProxy) IsStale() bool {
	return pp.stale
}

// Invalidate detaches the proxy from its world. Calling it again is harmless.
func (pp *PlayerProxy) Invalidate() {
	pp.stale = true
	pp.player = nil
}

func (pp *PlayerProxy) update(dt time.Duration) {
	if pp.stale {
		return
	}
	pp.age += dt

	if pp.wasAlive && !pp.player.Alive {
		pp.deathTime = pp.age
	}
	pp.wasAlive = pp.player.Alive

	yaw, pitch := viewAngles(pp.player.Front)
	k := math.Min(1, dt.Seconds()*viewSmoothingRate)
	pp.yaw += angleDelta(pp.yaw, yaw) * k
	pp.pitch += (pitch - pp.pitch) * k
}

func viewAngles(front world.Vec3) (yaw, pitch float64) {
	yaw = math.Atan2(front.Y, front.X)
	// Z points down.
	pitch = math.Atan2(-front.Z, math.Hypot(front.X, front.Y))
	return yaw, pitch
}

// angleDelta is the shortest signed rotation from a to b.
func angleDelta(a, b float64) float64 {
	d := math.Mod(b-a+math.Pi, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d - math.Pi
}

// ProxyTable holds one proxy slot per world player slot.
type ProxyTable struct {
	world   *world.World
	proxies []*PlayerProxy
}

func newProxyTable(w *world.World) *ProxyTable {
	t := &ProxyTable{
		world:   w,
		proxies: make([]*PlayerProxy, w.NumPlayerSlots()),
	}
	for i := range t.proxies {
		t.Replace(i)
	}
	return t
}

// World is the world the table mirrors.
func (t *ProxyTable) World() *world.World {
	return t.world
}

func (t *ProxyTable) Len() int {
	return len(t.proxies)
}

// Get returns the proxy for slot, or nil for an empty slot.
func (t *ProxyTable) Get(slot int) *PlayerProxy {
	if slot < 0 || slot >= len(t.proxies) {
		return nil
	}
	return t.proxies[slot]
}

// Replace rebuilds the proxy of a single slot after its occupant changed.
func (t *ProxyTable) Replace(slot int) {
	if slot < 0 || slot >= len(t.proxies) {
		return
	}
	if old := t.proxies[slot]; old != nil {
		old.Invalidate()
	}
	t.proxies[slot] = nil

	if p := t.world.Player(slot); p != nil {
		t.proxies[slot] = newPlayerProxy(slot, p)
	}
}

// InvalidateAll marks every proxy stale and empties the table.
func (t *ProxyTable) InvalidateAll() {
	for i, pp := range t.proxies {
		if pp != nil {
			pp.Invalidate()
		}
		t.proxies[i] = nil
	}
}

func (t *ProxyTable) Update(dt time.Duration) {
	for _, pp := range t.proxies {
		if pp != nil {
			pp.update(dt)
		}
	}
}
