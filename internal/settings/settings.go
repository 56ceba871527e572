package settings

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPlayerName = "Deuce"

	// MaxPlayerNameLength is the longest name the server accepts, in runes.
	MaxPlayerNameLength = 15

	defaultPollInterval = 2 * time.Second
)

// Snapshot is an immutable view of the client settings. Components receive a
// copy once per frame rather than reading settings as they go.
type Snapshot struct {
	PlayerName              string `yaml:"player_name"`
	ChatBeep                bool   `yaml:"chat_beep"`
	ServerAlert             bool   `yaml:"server_alert"`
	SkipDeadPlayersWhenDead bool   `yaml:"skip_dead_players_when_dead"`
}

// Defaults returns the settings used when no file overrides them.
func Defaults() Snapshot {
	return Snapshot{
		PlayerName:              DefaultPlayerName,
		ChatBeep:                true,
		ServerAlert:             true,
		SkipDeadPlayersWhenDead: true,
	}
}

// Source provides the current settings snapshot.
type Source interface {
	Snapshot() Snapshot
}

// Static is a Source that never changes.
type Static Snapshot

func (s Static) Snapshot() Snapshot {
	return Snapshot(s)
}

// Store is a Source backed by a YAML file that is reloaded when it changes.
type Store struct {
	path    string
	current atomic.Pointer[Snapshot]
	modTime time.Time

	pollInterval time.Duration
}

// Load reads the settings file at path. Fields missing from the file keep
// their defaults.
func Load(path string, opts ...StoreOpt) (*Store, error) {
	s := &Store{
		path:         path,
		pollInterval: defaultPollInterval,
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.reload(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) Snapshot() Snapshot {
	return *s.current.Load()
}

// Start polls the settings file for changes until ctx is done.
func (s *Store) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			changed, err := s.Refresh()
			if err != nil {
				slog.WarnContext(ctx, "reloading settings", "path", s.path, "error", err)
				continue
			}
			if changed {
				slog.InfoContext(ctx, "settings reloaded", "path", s.path)
			}
		}
	}
}

// Refresh reloads the file if its modification time moved. A failed reload
// keeps the previous snapshot.
func (s *Store) Refresh() (bool, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return false, fmt.Errorf("checking settings file: %w", err)
	}
	if !info.ModTime().After(s.modTime) {
		return false, nil
	}

	if err := s.reload(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) reload() error {
	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("checking settings file: %w", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading settings file: %w", err)
	}

	snap := Defaults()
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parsing settings file: %w", err)
	}
	snap.PlayerName = NormalizePlayerName(snap.PlayerName)

	s.current.Store(&snap)
	s.modTime = info.ModTime()
	return nil
}

// NormalizePlayerName returns name in NFC form, trimmed and cut to
// MaxPlayerNameLength runes. An empty name becomes DefaultPlayerName.
func NormalizePlayerName(name string) string {
	name = strings.TrimSpace(norm.NFC.String(name))
	if name == "" {
		return DefaultPlayerName
	}

	if utf8.RuneCountInString(name) > MaxPlayerNameLength {
		name = string([]rune(name)[:MaxPlayerNameLength])
	}
	return name
}
