package client

import (
	"context"
	"time"

	"github.com/pixil98/go-spades/internal/netclient"
	"github.com/pixil98/go-spades/internal/world"
)

// Renderer draws the scene and the 2D overlay.
type Renderer interface {
	Init() error
	RegisterImage(path string) error
	RegisterModel(path string) error
	SetGameMap(m *world.Map)
	SetFogColor(c world.Color)
	DrawStartupScreen()
	DrawDisconnectScreen()
	RenderScene(def SceneDefinition)
	Draw2D(o Overlay)
	FrameDone()
}

// AudioDevice plays sounds and positions the listener.
type AudioDevice interface {
	RegisterSound(path string) error
	SetGameMap(m *world.Map)
	PlayLocal(path string)
	Respatialize(origin, front, up world.Vec3) error
}

// ScriptedUI is the menu layer drawn on top of the game.
type ScriptedUI interface {
	CloseUI()
	EnterLimbo()
	RunFrame(dt time.Duration)
	WantsClientToBeClosed() bool
	RecordChatLog(msg string, c world.Color)
	ClientDestroyed()
}

// NetSession is the connection to the game server.
type NetSession interface {
	Connect(address string) error
	PollEvents(ctx context.Context, wait time.Duration) ([]netclient.Event, error)
	Status() netclient.Status
	Disconnect() error

	SendJoin(team int, weapon world.WeaponType, name string, score int) error
	SendTeamChange(team int) error
	SendWeaponChange(weapon world.WeaponType) error
	SendChat(global bool, text string) error
}

// PresenceLink broadcasts the local player to an external presence service.
type PresenceLink interface {
	Init() error
	SetContext(context string) error
	SetIdentity(identity string) error
	Update(p *world.Player) error
	Close() error
}
