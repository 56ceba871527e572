package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-spades/internal/netclient"
	"github.com/pixil98/go-spades/internal/world"
)

const (
	// Poll budget while the connection is still being established. Once
	// connected polling never blocks.
	connectingPollWait = 10 * time.Millisecond

	maxTimeSinceInitStep = 30 * time.Millisecond

	// The world advances in fixed steps; a stalled frame catches up by at
	// most maxWorldStepsPerFrame of them.
	worldStep             = time.Second / 60
	maxWorldStepsPerFrame = 4
)

var (
	limboFogColor   = world.Color{}
	defaultFogColor = world.Color{R: 128, G: 232, B: 255}
)

// RunFrame runs one tick of the session. The first few calls only draw the
// startup screen; the last of them performs the heavy initialization. An
// error means the session cannot continue and must be closed.
func (s *Session) RunFrame(ctx context.Context, dt time.Duration) error {
	if s.closed {
		return ErrSessionClosed
	}

	// One shot requests never outlive the frame they were made in.
	defer func() {
		s.hasDelayedReload = false
	}()

	s.cfg = s.settings.Snapshot()

	if s.framesToInit > 0 {
		s.renderer.DrawStartupScreen()
		s.renderer.FrameDone()

		s.framesToInit--
		if s.framesToInit > 0 {
			return nil
		}
		return s.doInit()
	}

	defer func() {
		s.time += dt
	}()

	s.timeSinceInit += min(dt, maxTimeSinceInitStep)

	if err := s.pollNetwork(ctx); err != nil {
		return err
	}

	s.hurtRing.Update(dt)
	s.centerMessages.Update(dt)
	s.mapView.Update(dt)

	if s.world != nil {
		s.updateWorld(dt)
	} else {
		s.renderer.SetFogColor(limboFogColor)
	}

	s.chatWindow.Update(dt)
	s.killfeed.Update(dt)

	def := s.createSceneDefinition()
	s.lastSceneDef = def

	if err := s.audio.Respatialize(def.Origin, def.Front, def.Up); err != nil {
		slog.Warn("audio respatialize failed", "error", err)
	}

	s.renderer.RenderScene(def)
	s.renderer.Draw2D(s.buildOverlay())

	s.ui.RunFrame(dt)
	if s.ui.WantsClientToBeClosed() {
		s.readyToClose = true
	}

	s.renderer.FrameDone()
	return nil
}

// pollNetwork reads and dispatches pending events. Only a lost connection is
// returned; anything else is logged and retried next frame.
func (s *Session) pollNetwork(ctx context.Context) error {
	wait := connectingPollWait
	if s.net.Status() == netclient.StatusConnected {
		wait = 0
	}

	events, pollErr := s.net.PollEvents(ctx, wait)

	el := errors.NewErrorList()
	for _, ev := range events {
		el.Add(s.handleEvent(ev))
	}
	if err := el.Err(); err != nil {
		s.logTransportFault("applying network events failed", err)
	}

	if pollErr == nil {
		return nil
	}

	if s.net.Status() == netclient.StatusNotConnected {
		slog.Error("connection lost", "error", pollErr)
		s.netLog(fmt.Sprintf("Disconnected because of error:\n%s", pollErr))
		return fmt.Errorf("%w: %w", ErrConnectionLost, pollErr)
	}

	s.logTransportFault("network poll failed", pollErr)
	return nil
}

func (s *Session) logTransportFault(msg string, err error) {
	if s.faultLogLimit.Allow() {
		slog.Warn(msg, "error", err)
	}
}

func (s *Session) updateWorld(dt time.Duration) {
	s.worldSubFrame += dt
	steps := 0
	for s.worldSubFrame >= worldStep {
		s.worldSubFrame -= worldStep
		if steps < maxWorldStepsPerFrame {
			s.world.Update(worldStep)
			steps++
		}
	}

	s.proxies.Update(dt)
	s.updateLocalEntities(dt)
	s.renderer.SetFogColor(defaultFogColor)

	if s.presenceLinked {
		if lp := s.world.LocalPlayer(); lp != nil {
			if err := s.presence.Update(lp); err != nil {
				slog.Debug("presence update failed", "error", err)
			}
		}
	}
}

// doInit is the heavy initialization deferred until the renderer has drawn a
// few frames.
func (s *Session) doInit() error {
	slog.Info("initializing renderer")
	if err := s.renderer.Init(); err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	s.openNetLog()
	s.registerAssets()
	s.initPresence()

	s.netLog(fmt.Sprintf("Connecting to %s", s.address))
	if err := s.net.Connect(s.address); err != nil {
		s.netLog(fmt.Sprintf("Disconnected because of error:\n%s", err))
		return fmt.Errorf("%w: connecting to %s: %w", ErrConnectionLost, s.address, err)
	}

	s.ui.EnterLimbo()
	return nil
}

func (s *Session) initPresence() {
	if s.presence == nil {
		return
	}

	if err := s.presence.Init(); err != nil {
		slog.Warn("presence link unavailable", "error", err)
		return
	}
	s.presenceLinked = true

	if err := s.presence.SetContext(s.address); err != nil {
		slog.Warn("setting presence context failed", "error", err)
	}
	if err := s.presence.SetIdentity(s.playerName); err != nil {
		slog.Warn("setting presence identity failed", "error", err)
	}
}
