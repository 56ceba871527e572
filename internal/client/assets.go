package client

import "log/slog"

var (
	preloadImages = []string{
		"Gfx/Fog.png",
		"Gfx/HurtRing.png",
		"Gfx/Map/Ring.png",
		"Gfx/Map/Player.png",
	}
	preloadModels = []string{
		"Models/Player/Dead.kv6",
		"Models/Weapons/Rifle/Weapon.kv6",
		"Models/Weapons/SMG/Weapon.kv6",
		"Models/Weapons/Shotgun/Weapon.kv6",
	}
	preloadSounds = []string{
		alertSound,
		chatSound,
		"Sounds/Feedback/Base.opus",
		"Sounds/Player/Death.opus",
	}
)

// registerAssets preloads everything the game view needs. A missing asset is
// logged and skipped.
func (s *Session) registerAssets() {
	for _, path := range preloadImages {
		if err := s.renderer.RegisterImage(path); err != nil {
			slog.Warn("failed to register image", "path", path, "error", err)
		}
	}
	for _, path := range preloadModels {
		if err := s.renderer.RegisterModel(path); err != nil {
			slog.Warn("failed to register model", "path", path, "error", err)
		}
	}
	for _, path := range preloadSounds {
		if err := s.audio.RegisterSound(path); err != nil {
			slog.Warn("failed to register sound", "path", path, "error", err)
		}
	}
}
