package client

import (
	"log/slog"

	"github.com/pixil98/go-spades/internal/netlog"
)

// openNetLog starts the net log for this connection. Failing to open it only
// costs the persistent record.
func (s *Session) openNetLog() {
	l, err := netlog.Open(s.dataDir, s.address, s.clock())
	if err != nil {
		slog.Error("failed to open netlog", "error", err)
		return
	}
	slog.Info("netlog started", "path", l.Path())
	s.netLogFile = l
}

// netLog echoes msg to the process log and appends it to the net log.
func (s *Session) netLog(msg string) {
	slog.Info(msg, "source", "netlog")

	if s.netLogFile == nil {
		return
	}
	if err := s.netLogFile.Record(s.clock(), msg); err != nil {
		slog.Warn("writing netlog failed", "error", err)
	}
}
