package client

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pixil98/go-spades/internal/display"
	"github.com/pixil98/go-spades/internal/world"
	"github.com/rivo/tview"
)

const chatSound = "Sounds/Feedback/Chat.opus"

var chatLogLine = display.MustParse("chat", "[{{ .Scope }}] {{ .Name }} ({{ .Team }}): {{ .Text }}")

type chatLogFields struct {
	Scope string
	Name  string
	Team  string
	Text  string
}

func chatScope(global bool) string {
	if global {
		return "Global"
	}
	return "Team"
}

// OnPlayerChat routes a chat line to the chat window, the chat log and the
// net log.
func (s *Session) OnPlayerChat(p *world.Player, global bool, msg string) {
	team := s.world.Team(p.TeamId)

	var b strings.Builder
	if global {
		b.WriteString(tview.Escape("[Global] "))
	}
	fmt.Fprintf(&b, "[%s]%s[-]", colorTag(team.Color), tview.Escape(p.Name))
	b.WriteString(tview.Escape(": " + msg))
	s.chatWindow.AddMessage(b.String())

	plain := p.Name + ": " + msg
	if global {
		plain = "[Global] " + plain
	}
	logColor := team.Color
	if p.IsSpectator() {
		logColor = world.White
	}
	s.ui.RecordChatLog(plain, logColor)

	line, err := chatLogLine.Expand(chatLogFields{
		Scope: chatScope(global),
		Name:  p.Name,
		Team:  team.Name,
		Text:  msg,
	})
	if err != nil {
		slog.Warn("formatting chat log line failed", "error", err)
	} else {
		s.netLog(line)
	}

	if !p.Muted && s.cfg.ChatBeep {
		s.audio.PlayLocal(chatSound)
	}
}

// server message prefixes, matched on the first three bytes
const (
	noticePrefix  = "N% "
	errorPrefix   = "!% "
	warningPrefix = "%% "
	centerPrefix  = "C% "
)

// OnServerMessage logs a server message and shows it as an alert, a center
// message or a chat line depending on its prefix.
func (s *Session) OnServerMessage(msg string) {
	s.netLog(msg)
	s.ui.RecordChatLog(msg, world.White)

	if s.cfg.ServerAlert {
		if rest, ok := strings.CutPrefix(msg, noticePrefix); ok {
			s.ShowAlert(rest, AlertNotice)
			return
		}
		if rest, ok := strings.CutPrefix(msg, errorPrefix); ok {
			s.ShowAlert(rest, AlertError)
			return
		}
		if rest, ok := strings.CutPrefix(msg, warningPrefix); ok {
			s.ShowAlert(rest, AlertWarning)
			return
		}
		if rest, ok := strings.CutPrefix(msg, centerPrefix); ok {
			s.centerMessages.AddMessage(rest)
			return
		}
	}

	s.chatWindow.AddMessage(tview.Escape(msg))
}

func colorTag(c world.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
