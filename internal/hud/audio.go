package hud

import (
	"log/slog"

	"github.com/pixil98/go-spades/internal/world"
)

func (h *HUD) RegisterSound(path string) error {
	h.sounds[path] = true
	return nil
}

// PlayLocal rings the terminal bell. Every sound sounds the same.
func (h *HUD) PlayLocal(path string) {
	if !h.sounds[path] {
		slog.Debug("playing unregistered sound", "path", path)
	}
	if !h.running.Load() {
		return
	}
	if err := h.screen.Beep(); err != nil {
		slog.Debug("terminal bell failed", "error", err)
	}
}

// Respatialize has nothing to position; a terminal has one speaker.
func (h *HUD) Respatialize(origin, front, up world.Vec3) error {
	return nil
}
