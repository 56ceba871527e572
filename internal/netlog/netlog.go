package netlog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	// Dir is the directory, relative to the data root, holding net logs.
	Dir = "NetLogs"

	fileTimeLayout = "20060102150405"
)

// Log is an append-only record of chat and game events for one session.
// Every entry is flushed as soon as it is written so a crash loses nothing.
type Log struct {
	path string

	mu   sync.Mutex
	file *os.File
	w    *bufio.Writer
}

// FileName returns the log file path, relative to the data root, for a
// session connected to target at time now.
func FileName(target string, now time.Time) string {
	return filepath.Join(Dir, fmt.Sprintf("%s_%s.log", now.Format(fileTimeLayout), Sanitize(target)))
}

// Sanitize replaces every character outside [A-Za-z0-9] with an underscore.
func Sanitize(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			sb.WriteByte(c)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// Open creates the log file for target under root.
func Open(root, target string, now time.Time) (*Log, error) {
	path := filepath.Join(root, FileName(target, now))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	return &Log{
		path: path,
		file: f,
		w:    bufio.NewWriter(f),
	}, nil
}

func (l *Log) Path() string {
	return l.path
}

// Record appends msg stamped with now.
func (l *Log) Record(now time.Time, msg string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return ErrClosed
	}

	if _, err := l.w.WriteString(Format(now, msg)); err != nil {
		return fmt.Errorf("writing log entry: %w", err)
	}
	if err := l.w.Flush(); err != nil {
		return fmt.Errorf("flushing log entry: %w", err)
	}
	return nil
}

// Close flushes and closes the file. Closing twice is a no-op.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}

	flushErr := l.w.Flush()
	closeErr := l.file.Close()
	l.file = nil

	if flushErr != nil {
		return fmt.Errorf("flushing log file: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing log file: %w", closeErr)
	}
	return nil
}

// Format renders a single log line: an asctime style timestamp, the message
// and a trailing newline, with control characters escaped.
func Format(now time.Time, msg string) string {
	return EscapeControlCharacters(now.Format(time.ANSIC)+" "+msg) + "\n"
}

// EscapeControlCharacters replaces control characters other than newline with
// a visible \xNN escape.
func EscapeControlCharacters(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r != '\n' && (r < 0x20 || r == 0x7f) {
			fmt.Fprintf(&sb, "\\x%02x", r)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
