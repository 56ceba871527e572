package hud

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-spades/internal/client"
	"github.com/pixil98/go-spades/internal/world"
	"github.com/rivo/tview"
)

type screenMode int

const (
	modeStartup screenMode = iota
	modeGame
	modeDisconnected
)

// frameState is what the frame loop has told the renderer this frame.
type frameState struct {
	mode    screenMode
	gameMap *world.Map
	fog     world.Color
	scene   client.SceneDefinition
	overlay client.Overlay
}

// frameText is a finished frame, ready for the terminal goroutine.
type frameText struct {
	status string
	scene  string
	chat   string
	fog    world.Color
}

func (h *HUD) Init() error {
	h.frame.mode = modeGame
	return nil
}

func (h *HUD) RegisterImage(path string) error {
	h.assets++
	return nil
}

func (h *HUD) RegisterModel(path string) error {
	h.assets++
	return nil
}

func (h *HUD) SetGameMap(m *world.Map) {
	h.frame.gameMap = m
}

func (h *HUD) SetFogColor(c world.Color) {
	h.frame.fog = c
}

func (h *HUD) DrawStartupScreen() {
	h.frame.mode = modeStartup
}

func (h *HUD) DrawDisconnectScreen() {
	h.frame.mode = modeDisconnected
	h.FrameDone()
}

func (h *HUD) RenderScene(def client.SceneDefinition) {
	h.frame.scene = def
}

func (h *HUD) Draw2D(o client.Overlay) {
	h.frame.overlay = o
}

// FrameDone publishes the frame. A frame is skipped when the terminal has not
// drawn the previous one yet.
func (h *HUD) FrameDone() {
	if !h.running.Load() {
		return
	}
	if !h.drawQueued.CompareAndSwap(false, true) {
		return
	}

	text := composeFrame(h.frame)
	h.app.QueueUpdateDraw(func() {
		h.drawQueued.Store(false)
		h.status.SetText(text.status)
		h.scene.SetText(text.scene)
		h.scene.SetBackgroundColor(tcell.NewRGBColor(int32(text.fog.R), int32(text.fog.G), int32(text.fog.B)))
		h.chat.SetText(text.chat)
	})
}

func composeFrame(f frameState) frameText {
	t := frameText{fog: fadeColor(f.fog, f.overlay.Fade)}

	switch f.mode {
	case modeStartup:
		t.status = "[yellow]Connecting...[-]"
		return t
	case modeDisconnected:
		t.status = "[red]Disconnected[-]"
		return t
	}

	o := f.overlay
	var status []string
	if o.Alert != nil {
		status = append(status, fmt.Sprintf("[%s]%s[-]", alertColor(o.Alert.Type), tview.Escape(o.Alert.Contents)))
	}
	if o.CenterMessage != "" {
		status = append(status, "[::b]"+tview.Escape(o.CenterMessage)+"[::-]")
	}
	t.status = strings.Join(status, "\n")

	var scene strings.Builder
	if o.Limbo || f.scene.SkipWorld {
		scene.WriteString("Waiting for the server to send a map.\n")
		scene.WriteString("1/2 join a team, 3 spectate, q quits.\n")
	} else {
		if f.gameMap != nil {
			fmt.Fprintf(&scene, "map %dx%dx%d\n", f.gameMap.Width, f.gameMap.Height, f.gameMap.Depth)
		}
		d := f.scene
		fmt.Fprintf(&scene, "camera (%.1f, %.1f, %.1f) facing (%.2f, %.2f, %.2f)\n",
			d.Origin.X, d.Origin.Y, d.Origin.Z, d.Front.X, d.Front.Y, d.Front.Z)
		if o.Following >= 0 {
			fmt.Fprintf(&scene, "following player #%d\n", o.Following)
		}
		if n := len(d.Corpses); n > 0 {
			fmt.Fprintf(&scene, "%d bodies on the ground\n", n)
		}
		if o.HurtFlash {
			scene.WriteString("[red::b]HIT[-::-]\n")
		}
		if o.HurtIntensity > 0 {
			fmt.Fprintf(&scene, "[red]%s[-]\n", strings.Repeat("!", 1+int(o.HurtIntensity*9)))
		}
		if o.MapZoom > 0.5 {
			scene.WriteString("full map open\n")
		}
		if o.ScoreboardVisible {
			scene.WriteString("scoreboard open\n")
		}
		if o.FlashlightOn {
			scene.WriteString("flashlight on\n")
		}
	}
	t.scene = scene.String()

	lines := append([]string{}, o.KillfeedLines...)
	lines = append(lines, o.ChatLines...)
	t.chat = strings.Join(lines, "\n")

	return t
}

// fadeColor darkens c towards black by amount.
func fadeColor(c world.Color, amount float64) world.Color {
	keep := 1 - min(1, max(0, amount))
	return world.Color{
		R: uint8(float64(c.R) * keep),
		G: uint8(float64(c.G) * keep),
		B: uint8(float64(c.B) * keep),
	}
}

func alertColor(t client.AlertType) string {
	switch t {
	case client.AlertError:
		return "red"
	case client.AlertWarning:
		return "yellow"
	default:
		return "white"
	}
}
