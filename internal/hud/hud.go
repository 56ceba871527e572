package hud

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-spades/internal/client"
	"github.com/pixil98/go-spades/internal/world"
	"github.com/rivo/tview"
)

const defaultCommandBuffer = 32

// Controls are the session actions bound to keys.
type Controls interface {
	FollowNextPlayer(reverse bool)
	TakeMapShot()
	ToggleMap()
	ToggleScoreboard()
	ToggleFlashlight()
	RequestReload()
	Spawn(team int, weapon world.WeaponType) error
	SendChat(global bool, text string) error
}

type command func(Controls)

// HUD is a terminal front end for a client session. It acts as the session's
// renderer, audio device and scripted UI.
//
// The frame loop and the terminal event loop run on different goroutines. The
// frame loop owns the frame state and hands finished text to the terminal with
// QueueUpdateDraw; key presses travel the other way as queued commands that
// RunFrame applies.
type HUD struct {
	app    *tview.Application
	screen tcell.Screen

	status *tview.TextView
	scene  *tview.TextView
	chat   *tview.TextView
	input  *tview.InputField
	layout *tview.Flex

	controls Controls
	commands chan command

	running    atomic.Bool
	drawQueued atomic.Bool
	wantsClose atomic.Bool

	frame    frameState
	chatLog  []string
	sounds   map[string]bool
	assets   int
	chatMode chatMode

	commandBuffer int
}

// NewHUD creates the terminal UI. It does not take over the terminal until
// Start is called.
func NewHUD(opts ...HUDOpt) (*HUD, error) {
	h := &HUD{
		app:           tview.NewApplication(),
		sounds:        map[string]bool{},
		commandBuffer: defaultCommandBuffer,
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("creating screen: %w", err)
		}
		h.screen = s
	}
	h.commands = make(chan command, h.commandBuffer)

	h.status = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
	h.scene = tview.NewTextView().SetDynamicColors(true)
	h.scene.SetBorder(true).SetTitle(" go-spades ")
	h.chat = tview.NewTextView().SetDynamicColors(true)
	h.input = tview.NewInputField().SetLabel("say: ")
	h.input.SetDoneFunc(h.onChatDone)

	h.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(h.status, 2, 0, false).
		AddItem(h.scene, 0, 3, false).
		AddItem(h.chat, 0, 1, false).
		AddItem(h.input, 1, 0, false)

	h.app.SetScreen(h.screen).
		SetRoot(h.layout, true).
		SetInputCapture(h.handleKey)

	return h, nil
}

// Bind attaches the session the keys act on.
func (h *HUD) Bind(c Controls) {
	h.controls = c
}

// Start runs the terminal event loop until ctx ends or the session is
// destroyed.
func (h *HUD) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		h.app.Stop()
	}()

	h.running.Store(true)
	defer h.running.Store(false)

	slog.InfoContext(ctx, "starting terminal ui")
	if err := h.app.Run(); err != nil {
		return fmt.Errorf("running terminal ui: %w", err)
	}
	return nil
}

// enqueue hands a command to the frame loop. Commands are dropped while the
// frame loop is behind.
func (h *HUD) enqueue(c command) {
	select {
	case h.commands <- c:
	default:
		slog.Debug("dropping input command, frame loop is behind")
	}
}

func (h *HUD) runCommands() {
	for {
		select {
		case c := <-h.commands:
			if h.controls != nil {
				c(h.controls)
			}
		default:
			return
		}
	}
}

var _ client.Renderer = (*HUD)(nil)
var _ client.AudioDevice = (*HUD)(nil)
var _ client.ScriptedUI = (*HUD)(nil)
