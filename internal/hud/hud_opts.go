package hud

import "github.com/gdamore/tcell/v2"

type HUDOpt func(*HUD)

// WithScreen draws on s instead of the controlling terminal.
func WithScreen(s tcell.Screen) HUDOpt {
	return func(h *HUD) {
		h.screen = s
	}
}

// WithCommandBuffer sets how many key commands may wait for the next frame.
func WithCommandBuffer(n int) HUDOpt {
	return func(h *HUD) {
		h.commandBuffer = n
	}
}
