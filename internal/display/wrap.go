package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// DefaultWidth is the chat window width in cells.
const DefaultWidth = 80

// Wrap word-wraps text to width, preserving ANSI escape sequences, and returns
// the resulting lines.
func Wrap(text string, width int) []string {
	if width <= 0 {
		width = DefaultWidth
	}
	return strings.Split(wordwrap.String(text, width), "\n")
}
