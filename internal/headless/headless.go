// Package headless runs a client session without a display. Chat and alerts
// go to the process log, which makes it useful for bots and soak tests.
package headless

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pixil98/go-spades/internal/client"
	"github.com/pixil98/go-spades/internal/world"
)

// Frontend stands in for the renderer, audio device and scripted UI.
type Frontend struct {
	lastAlert  string
	lastCenter string
	frames     int
	maxFrames  int
	stop       atomic.Bool
}

// NewFrontend creates a frontend that asks to close after maxFrames frames.
// Zero runs until Stop is called.
func NewFrontend(maxFrames int) *Frontend {
	return &Frontend{maxFrames: maxFrames}
}

// Stop asks the session to close at the end of the next frame.
func (f *Frontend) Stop() {
	f.stop.Store(true)
}

func (f *Frontend) Frames() int {
	return f.frames
}

func (f *Frontend) Init() error                        { return nil }
func (f *Frontend) RegisterImage(string) error         { return nil }
func (f *Frontend) RegisterModel(string) error         { return nil }
func (f *Frontend) RegisterSound(string) error         { return nil }
func (f *Frontend) SetFogColor(world.Color)            {}
func (f *Frontend) DrawStartupScreen()                 {}
func (f *Frontend) RenderScene(client.SceneDefinition) {}
func (f *Frontend) FrameDone()                         {}
func (f *Frontend) PlayLocal(string)                   {}
func (f *Frontend) CloseUI()                           {}

func (f *Frontend) Respatialize(origin, front, up world.Vec3) error {
	return nil
}

func (f *Frontend) SetGameMap(m *world.Map) {
	if m != nil {
		slog.Info("map loaded", "width", m.Width, "height", m.Height, "depth", m.Depth)
	}
}

func (f *Frontend) DrawDisconnectScreen() {
	slog.Info("disconnected")
}

// Draw2D logs alerts and center messages once each.
func (f *Frontend) Draw2D(o client.Overlay) {
	if o.Alert != nil && o.Alert.Contents != f.lastAlert {
		slog.Info("alert", "type", o.Alert.Type, "contents", o.Alert.Contents)
		f.lastAlert = o.Alert.Contents
	}
	if o.Alert == nil {
		f.lastAlert = ""
	}
	if o.CenterMessage != f.lastCenter {
		if o.CenterMessage != "" {
			slog.Info("center message", "contents", o.CenterMessage)
		}
		f.lastCenter = o.CenterMessage
	}
}

func (f *Frontend) EnterLimbo() {
	slog.Info("waiting for a map")
}

func (f *Frontend) RunFrame(time.Duration) {
	f.frames++
}

func (f *Frontend) WantsClientToBeClosed() bool {
	return f.stop.Load() || (f.maxFrames > 0 && f.frames >= f.maxFrames)
}

func (f *Frontend) RecordChatLog(msg string, _ world.Color) {
	slog.Info("chat", "message", msg)
}

func (f *Frontend) ClientDestroyed() {
	slog.Info("client destroyed", "frames", f.frames)
}

var _ client.Renderer = (*Frontend)(nil)
var _ client.AudioDevice = (*Frontend)(nil)
var _ client.ScriptedUI = (*Frontend)(nil)
