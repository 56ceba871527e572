package hud

import (
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-spades/internal/world"
)

const maxChatLog = 200

type chatMode int

const (
	chatClosed chatMode = iota
	chatGlobal
	chatTeam
)

// CloseUI dismisses the chat prompt.
func (h *HUD) CloseUI() {
	if !h.running.Load() {
		return
	}
	h.app.QueueUpdate(h.closeChat)
}

func (h *HUD) EnterLimbo() {
	slog.Debug("entering limbo")
	h.CloseUI()
}

// RunFrame applies the commands queued by key presses since the last frame.
func (h *HUD) RunFrame(dt time.Duration) {
	h.runCommands()
}

func (h *HUD) WantsClientToBeClosed() bool {
	return h.wantsClose.Load()
}

// RecordChatLog keeps a plain text history of chat and server messages.
func (h *HUD) RecordChatLog(msg string, c world.Color) {
	h.chatLog = append(h.chatLog, msg)
	if over := len(h.chatLog) - maxChatLog; over > 0 {
		h.chatLog = h.chatLog[over:]
	}
}

// ChatLog returns the recorded history, oldest first.
func (h *HUD) ChatLog() []string {
	return append([]string{}, h.chatLog...)
}

// ClientDestroyed stops the terminal once the session is gone.
func (h *HUD) ClientDestroyed() {
	if !h.running.Load() {
		return
	}
	slog.Info("client destroyed, stopping terminal ui")
	h.app.Stop()
}

// handleKey runs on the terminal goroutine.
func (h *HUD) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	if h.app.GetFocus() == h.input {
		return ev
	}

	if c := keyCommand(ev); c != nil {
		h.enqueue(c)
		return nil
	}

	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		h.wantsClose.Store(true)
		return nil
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			h.wantsClose.Store(true)
			return nil
		case 't':
			h.openChat(chatGlobal)
			return nil
		case 'y':
			h.openChat(chatTeam)
			return nil
		}
	}
	return ev
}

// keyCommand maps a key to a session action.
func keyCommand(ev *tcell.EventKey) command {
	switch ev.Key() {
	case tcell.KeyLeft:
		return func(c Controls) { c.FollowNextPlayer(true) }
	case tcell.KeyRight:
		return func(c Controls) { c.FollowNextPlayer(false) }
	case tcell.KeyTab:
		return func(c Controls) { c.ToggleScoreboard() }
	case tcell.KeyF5:
		return func(c Controls) { c.TakeMapShot() }
	case tcell.KeyRune:
	default:
		return nil
	}

	switch ev.Rune() {
	case 'm':
		return func(c Controls) { c.ToggleMap() }
	case 'f':
		return func(c Controls) { c.ToggleFlashlight() }
	case 'r':
		return func(c Controls) { c.RequestReload() }
	case '1':
		return spawnCommand(0)
	case '2':
		return spawnCommand(1)
	case '3':
		return spawnCommand(world.TeamSpectator)
	}
	return nil
}

func spawnCommand(team int) command {
	return func(c Controls) {
		if err := c.Spawn(team, world.WeaponRifle); err != nil {
			slog.Warn("spawn request failed", "team", team, "error", err)
		}
	}
}

func (h *HUD) openChat(mode chatMode) {
	label := "say: "
	if mode == chatTeam {
		label = "team: "
	}
	h.chatMode = mode
	h.input.SetLabel(label)
	h.app.SetFocus(h.input)
}

func (h *HUD) closeChat() {
	h.chatMode = chatClosed
	h.input.SetText("")
	h.app.SetFocus(h.layout)
}

func (h *HUD) onChatDone(key tcell.Key) {
	text := h.input.GetText()
	global := h.chatMode != chatTeam
	h.closeChat()

	if key != tcell.KeyEnter || text == "" {
		return
	}
	h.enqueue(func(c Controls) {
		if err := c.SendChat(global, text); err != nil {
			slog.Warn("sending chat failed", "error", err)
		}
	})
}
