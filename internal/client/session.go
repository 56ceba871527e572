package client

import (
	"log/slog"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-spades/internal/netclient"
	"github.com/pixil98/go-spades/internal/netlog"
	"github.com/pixil98/go-spades/internal/settings"
	"github.com/pixil98/go-spades/internal/world"
	"golang.org/x/time/rate"
)

const (
	defaultRendererInitFrames = 5

	// Transport faults are retried every frame; only log a few of them.
	transportFaultLogRate  = rate.Limit(1)
	transportFaultLogBurst = 5
)

// Session is a connection to one game server together with the world it is
// currently showing. It is driven by RunFrame from a single goroutine; none of
// its methods may be called concurrently.
type Session struct {
	renderer Renderer
	audio    AudioDevice
	ui       ScriptedUI
	net      NetSession
	presence PresenceLink

	settings settings.Source
	cfg      settings.Snapshot

	address    string
	playerName string
	dataDir    string
	clock      func() time.Time

	world   *world.World
	proxies *ProxyTable

	chatWindow     *chatWindow
	killfeed       *chatWindow
	centerMessages *centerMessageView
	hurtRing       *hurtRingView
	mapView        *mapView

	netLogFile     *netlog.Log
	presenceLinked bool
	faultLogLimit  *rate.Limiter

	alert Alert

	framesToInit  int
	time          time.Duration
	timeSinceInit time.Duration
	worldSubFrame time.Duration
	worldSetTime  time.Duration

	followingPlayerId int
	lastHealth        int
	lastHurtTime      time.Duration
	scoreboardVisible bool
	flashlightOn      bool
	localEntities     []LocalEntity
	corpses           []Corpse
	lastKills         int

	hasDelayedReload bool
	readyToClose     bool
	closed           bool

	lastSceneDef     SceneDefinition
	nextMapShotIndex int
}

// NewSession creates a session that will connect to address once the
// renderer has had a few frames to start up.
func NewSession(r Renderer, a AudioDevice, ui ScriptedUI, net NetSession, address string, opts ...SessionOpt) *Session {
	s := &Session{
		renderer:          r,
		audio:             a,
		ui:                ui,
		net:               net,
		settings:          settings.Static(settings.Defaults()),
		address:           address,
		dataDir:           ".",
		clock:             time.Now,
		framesToInit:      defaultRendererInitFrames,
		followingPlayerId: world.NoPlayer,
		lastHurtTime:      -100 * time.Second,
		faultLogLimit:     rate.NewLimiter(transportFaultLogRate, transportFaultLogBurst),

		chatWindow:     newChatWindow(chatWindowLines, chatLineLifetime),
		killfeed:       newChatWindow(killfeedLines, killfeedLineLifetime),
		centerMessages: newCenterMessageView(),
		hurtRing:       newHurtRingView(),
		mapView:        newMapView(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.cfg = s.settings.Snapshot()
	s.playerName = settings.NormalizePlayerName(s.cfg.PlayerName)

	slog.Info("initializing client session", "address", address, "player", s.playerName)
	s.renderer.SetGameMap(nil)

	return s
}

// TimeSinceInit is the session clock with every frame capped at 30ms, so a
// stall never shows up as a jump in the startup fade.
func (s *Session) TimeSinceInit() time.Duration {
	return s.timeSinceInit
}

// World returns the bound world, or nil while in limbo.
func (s *Session) World() *world.World {
	return s.world
}

// Time is the session clock, advanced by every completed frame.
func (s *Session) Time() time.Duration {
	return s.time
}

func (s *Session) PlayerName() string {
	return s.playerName
}

// ReadyToClose reports whether the UI asked for the session to end.
func (s *Session) ReadyToClose() bool {
	return s.readyToClose
}

// FollowingPlayerId returns the slot the spectator camera follows.
func (s *Session) FollowingPlayerId() int {
	return s.followingPlayerId
}

// PlayerProxy returns the proxy for slot, or nil.
func (s *Session) PlayerProxy(slot int) *PlayerProxy {
	if s.proxies == nil {
		return nil
	}
	return s.proxies.Get(slot)
}

// LastSceneDefinition is the camera used for the most recent frame.
func (s *Session) LastSceneDefinition() SceneDefinition {
	return s.lastSceneDef
}

// RequestReload defers a reload until the weapon is ready. The request only
// lives for the current frame.
func (s *Session) RequestReload() {
	s.hasDelayedReload = true
}

func (s *Session) HasDelayedReload() bool {
	return s.hasDelayedReload
}

func (s *Session) ToggleScoreboard() {
	s.scoreboardVisible = !s.scoreboardVisible
}

func (s *Session) ToggleFlashlight() {
	s.flashlightOn = !s.flashlightOn
}

// AddLocalEntity attaches a client-side effect to the current world.
func (s *Session) AddLocalEntity(e LocalEntity) {
	s.localEntities = append(s.localEntities, e)
}

// Spawn joins the game or changes team and weapon. Team 2 means spectator.
func (s *Session) Spawn(teamId int, weapon world.WeaponType) error {
	if s.world == nil {
		return ErrNoWorld
	}

	team := teamId
	if team == world.TeamSpectator {
		team = netclient.SpectatorTeamWire
	}

	lp := s.world.LocalPlayer()
	if lp == nil || lp.IsSpectator() {
		if team == netclient.SpectatorTeamWire {
			// The weapon is irrelevant for spectators but must still be valid.
			weapon = world.WeaponRifle
		}
		return s.net.SendJoin(team, weapon, s.playerName, s.lastKills)
	}

	el := errors.NewErrorList()
	if lp.TeamId != team {
		el.Add(s.net.SendTeamChange(team))
	}
	if team != netclient.SpectatorTeamWire && lp.Weapon != weapon {
		el.Add(s.net.SendWeaponChange(weapon))
	}
	return el.Err()
}

// SendChat sends a chat line to everyone or to the local player's team.
func (s *Session) SendChat(global bool, text string) error {
	return s.net.SendChat(global, text)
}

// Close tears the session down: log the disconnect, release the world, close
// the network session and close the net log. Every step runs even when an
// earlier one fails.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	el := errors.NewErrorList()

	s.netLog("Disconnecting")
	s.renderer.DrawDisconnectScreen()

	s.clearWorldState()
	s.releaseWorld()

	if s.presenceLinked {
		el.Add(s.presence.Close())
		s.presenceLinked = false
	}

	slog.Info("disconnecting")
	el.Add(s.net.Disconnect())

	if s.netLogFile != nil {
		slog.Info("closing netlog")
		el.Add(s.netLogFile.Close())
		s.netLogFile = nil
	}

	s.ui.ClientDestroyed()
	slog.Info("disconnected")

	return el.Err()
}
