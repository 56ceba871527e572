package client

import (
	"context"
	"time"

	"github.com/pixil98/go-spades/internal/netclient"
	"github.com/pixil98/go-spades/internal/settings"
	"github.com/pixil98/go-spades/internal/world"
)

// callLog records collaborator calls across fakes, in order.
type callLog []string

func (l *callLog) add(call string) {
	if l != nil {
		*l = append(*l, call)
	}
}

type fakeRenderer struct {
	calls           *callLog
	initErr         error
	gameMap         *world.Map
	fog             world.Color
	startupDraws    int
	disconnectDrawn bool
	scenes          []SceneDefinition
	overlays        []Overlay
	framesDone      int
	images          []string
}

func (r *fakeRenderer) Init() error { return r.initErr }
func (r *fakeRenderer) RegisterImage(path string) error {
	r.images = append(r.images, path)
	return nil
}
func (r *fakeRenderer) RegisterModel(string) error { return nil }
func (r *fakeRenderer) SetGameMap(m *world.Map)    { r.gameMap = m }
func (r *fakeRenderer) SetFogColor(c world.Color) {
	r.calls.add("fog")
	r.fog = c
}
func (r *fakeRenderer) DrawStartupScreen()    { r.startupDraws++ }
func (r *fakeRenderer) DrawDisconnectScreen() { r.disconnectDrawn = true }
func (r *fakeRenderer) RenderScene(def SceneDefinition) {
	r.calls.add("render")
	r.scenes = append(r.scenes, def)
}
func (r *fakeRenderer) Draw2D(o Overlay) {
	r.calls.add("draw2d")
	r.overlays = append(r.overlays, o)
}
func (r *fakeRenderer) FrameDone() {
	r.calls.add("done")
	r.framesDone++
}

type fakeAudio struct {
	calls          *callLog
	gameMap        *world.Map
	played         []string
	respatialErr   error
	respatialCalls int
}

func (a *fakeAudio) RegisterSound(string) error { return nil }
func (a *fakeAudio) SetGameMap(m *world.Map)    { a.gameMap = m }
func (a *fakeAudio) PlayLocal(path string)      { a.played = append(a.played, path) }
func (a *fakeAudio) Respatialize(origin, front, up world.Vec3) error {
	a.calls.add("respatialize")
	a.respatialCalls++
	return a.respatialErr
}

type chatLogEntry struct {
	msg   string
	color world.Color
}

type fakeUI struct {
	calls      *callLog
	closeCalls int
	limboCalls int
	frames     int
	wantsClose bool
	chatLog    []chatLogEntry
	destroyed  bool
}

func (u *fakeUI) CloseUI()    { u.closeCalls++ }
func (u *fakeUI) EnterLimbo() { u.limboCalls++ }
func (u *fakeUI) RunFrame(time.Duration) {
	u.calls.add("ui")
	u.frames++
}
func (u *fakeUI) WantsClientToBeClosed() bool { return u.wantsClose }
func (u *fakeUI) RecordChatLog(msg string, c world.Color) {
	u.chatLog = append(u.chatLog, chatLogEntry{msg: msg, color: c})
}
func (u *fakeUI) ClientDestroyed() { u.destroyed = true }

type sentIntent struct {
	kind   string
	team   int
	weapon world.WeaponType
	name   string
	score  int
}

type fakeNet struct {
	calls      *callLog
	status     netclient.Status
	connectErr error
	connected  string

	// Each poll pops one batch; pollErr is returned with it.
	batches     [][]netclient.Event
	pollErr     error
	statusOnErr netclient.Status
	waits       []time.Duration

	sent          []sentIntent
	disconnectErr error
	disconnected  bool
}

func (n *fakeNet) Connect(address string) error {
	n.connected = address
	if n.connectErr == nil {
		n.status = netclient.StatusConnecting
	}
	return n.connectErr
}

func (n *fakeNet) PollEvents(_ context.Context, wait time.Duration) ([]netclient.Event, error) {
	n.calls.add("poll")
	n.waits = append(n.waits, wait)

	var events []netclient.Event
	if len(n.batches) > 0 {
		events = n.batches[0]
		n.batches = n.batches[1:]
	}

	if n.pollErr != nil {
		err := n.pollErr
		n.pollErr = nil
		n.status = n.statusOnErr
		return events, err
	}
	return events, nil
}

func (n *fakeNet) Status() netclient.Status { return n.status }

func (n *fakeNet) Disconnect() error {
	n.disconnected = true
	n.status = netclient.StatusNotConnected
	return n.disconnectErr
}

func (n *fakeNet) SendJoin(team int, weapon world.WeaponType, name string, score int) error {
	n.sent = append(n.sent, sentIntent{kind: "join", team: team, weapon: weapon, name: name, score: score})
	return nil
}

func (n *fakeNet) SendTeamChange(team int) error {
	n.sent = append(n.sent, sentIntent{kind: "team", team: team})
	return nil
}

func (n *fakeNet) SendWeaponChange(weapon world.WeaponType) error {
	n.sent = append(n.sent, sentIntent{kind: "weapon", weapon: weapon})
	return nil
}

func (n *fakeNet) SendChat(bool, string) error {
	n.sent = append(n.sent, sentIntent{kind: "chat"})
	return nil
}

type fakePresence struct {
	calls    *callLog
	initErr  error
	context  string
	identity string
	updates  int
	closed   bool
}

func (p *fakePresence) Init() error                 { return p.initErr }
func (p *fakePresence) SetContext(c string) error   { p.context = c; return nil }
func (p *fakePresence) SetIdentity(id string) error { p.identity = id; return nil }
func (p *fakePresence) Update(*world.Player) error {
	p.calls.add("presence")
	p.updates++
	return nil
}
func (p *fakePresence) Close() error { p.closed = true; return nil }

type testHarness struct {
	s        *Session
	renderer *fakeRenderer
	audio    *fakeAudio
	ui       *fakeUI
	net      *fakeNet
}

func newTestHarness(opts ...SessionOpt) *testHarness {
	h := &testHarness{
		renderer: &fakeRenderer{},
		audio:    &fakeAudio{},
		ui:       &fakeUI{},
		net:      &fakeNet{},
	}
	h.s = NewSession(h.renderer, h.audio, h.ui, h.net, "nats://127.0.0.1:4222/test", opts...)
	return h
}

func withSnapshot(fn func(*settings.Snapshot)) SessionOpt {
	snap := settings.Defaults()
	fn(&snap)
	return WithSettings(settings.Static(snap))
}

var testTeams = []world.Team{
	{Name: "Blue", Color: world.Color{B: 255}},
	{Name: "Green", Color: world.Color{G: 255}},
}

func newTestWorld(slots int) *world.World {
	m := world.NewMap(4, 4, 4, []byte{1, 2, 3, 4})
	w, err := world.New(slots, m, testTeams)
	if err != nil {
		panic(err)
	}
	return w
}

func newTestPlayer(name string, team int, alive bool) *world.Player {
	return &world.Player{
		Name:   name,
		TeamId: team,
		Alive:  alive,
		Health: 100,
		Front:  world.Vec3{X: 1},
	}
}
