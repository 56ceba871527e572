package client

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	mapShotDir  = "Mapshots"
	maxMapShots = 10000
)

// TakeMapShot saves the current map and reports the outcome as an alert.
func (s *Session) TakeMapShot() {
	path, err := s.saveMapShot()
	if err != nil {
		slog.Error("saving map failed", "error", err)
		s.ShowAlert("Saving map failed: "+shortMessage(err), AlertError)
		return
	}

	slog.Info("map saved", "path", path)
	s.ShowAlert("Map saved: "+path, AlertNotice)
}

// saveMapShot writes the map to the first free Mapshots/shotNNNN.vxl and
// returns its path relative to the data directory.
func (s *Session) saveMapShot() (string, error) {
	if s.world == nil || s.world.Map() == nil {
		return "", ErrNoMapLoaded
	}

	name, err := s.nextMapShotName()
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.dataDir, name)

	var buf bytes.Buffer
	if err := s.world.Map().Save(&buf); err != nil {
		return "", fmt.Errorf("encoding map: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating map shot directory: %w", err)
	}
	if err := atomicWrite(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	return name, nil
}

func (s *Session) nextMapShotName() (string, error) {
	for range maxMapShots {
		name := filepath.Join(mapShotDir, fmt.Sprintf("shot%04d.vxl", s.nextMapShotIndex))
		s.nextMapShotIndex = (s.nextMapShotIndex + 1) % maxMapShots

		_, err := os.Stat(filepath.Join(s.dataDir, name))
		if errors.Is(err, fs.ErrNotExist) {
			return name, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking %s: %w", name, err)
		}
	}
	return "", ErrNoFreeFileName
}

// atomicWrite writes data to a temp file then renames it to the target path.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
