package client

import (
	"time"

	"github.com/pixil98/go-spades/internal/display"
)

const (
	chatWindowLines      = 8
	chatLineLifetime     = 15 * time.Second
	killfeedLines        = 5
	killfeedLineLifetime = 10 * time.Second

	centerMessageLifetime = 5 * time.Second

	// Fraction of the hurt ring that fades out per second.
	hurtRingFadeRate = 0.8

	mapZoomSpeed = 4.0

	// The frame fades in from black after startup and after a map change.
	startupFadeDuration = time.Second
	worldFadeDuration   = 500 * time.Millisecond

	hurtFlashDuration = 200 * time.Millisecond
)

type chatLine struct {
	text string
	age  time.Duration
}

// chatWindow is a scrolling list of lines that fade out after lifetime.
type chatWindow struct {
	maxLines int
	lifetime time.Duration
	width    int
	lines    []chatLine
}

func newChatWindow(maxLines int, lifetime time.Duration) *chatWindow {
	return &chatWindow{
		maxLines: maxLines,
		lifetime: lifetime,
		width:    display.DefaultWidth,
	}
}

// AddMessage appends a line of markup, wrapped to the window width.
func (cw *chatWindow) AddMessage(msg string) {
	for _, l := range display.Wrap(msg, cw.width) {
		cw.lines = append(cw.lines, chatLine{text: l})
	}
	if over := len(cw.lines) - cw.maxLines; over > 0 {
		cw.lines = cw.lines[over:]
	}
}

func (cw *chatWindow) Update(dt time.Duration) {
	kept := cw.lines[:0]
	for _, l := range cw.lines {
		l.age += dt
		if l.age < cw.lifetime {
			kept = append(kept, l)
		}
	}
	cw.lines = kept
}

// Lines returns the visible lines, oldest first.
func (cw *chatWindow) Lines() []string {
	out := make([]string, len(cw.lines))
	for i, l := range cw.lines {
		out[i] = l.text
	}
	return out
}

// centerMessageView shows one large message in the middle of the screen.
type centerMessageView struct {
	text string
	age  time.Duration
}

func newCenterMessageView() *centerMessageView {
	return &centerMessageView{}
}

func (v *centerMessageView) AddMessage(msg string) {
	v.text = msg
	v.age = 0
}

func (v *centerMessageView) Update(dt time.Duration) {
	if v.text == "" {
		return
	}
	v.age += dt
	if v.age >= centerMessageLifetime {
		v.text = ""
	}
}

func (v *centerMessageView) Current() string {
	return v.text
}

// hurtRingView is the red vignette drawn when the local player takes damage.
type hurtRingView struct {
	intensity float64
}

func newHurtRingView() *hurtRingView {
	return &hurtRingView{}
}

func (v *hurtRingView) Add(amount float64) {
	v.intensity = min(1, v.intensity+amount)
}

func (v *hurtRingView) Update(dt time.Duration) {
	v.intensity = max(0, v.intensity-dt.Seconds()*hurtRingFadeRate)
}

func (v *hurtRingView) Intensity() float64 {
	return v.intensity
}

// mapView is the overhead map. It zooms between the minimap and full screen.
type mapView struct {
	large bool
	zoom  float64
}

func newMapView() *mapView {
	return &mapView{}
}

func (v *mapView) ToggleLarge() {
	v.large = !v.large
}

func (v *mapView) Update(dt time.Duration) {
	step := dt.Seconds() * mapZoomSpeed
	if v.large {
		v.zoom = min(1, v.zoom+step)
	} else {
		v.zoom = max(0, v.zoom-step)
	}
}

// Zoom is 0 for the minimap and 1 for the full screen map.
func (v *mapView) Zoom() float64 {
	return v.zoom
}

func (v *mapView) reset() {
	v.large = false
	v.zoom = 0
}

// Overlay is everything drawn in 2D on top of the scene.
type Overlay struct {
	ChatLines         []string
	KillfeedLines     []string
	CenterMessage     string
	Alert             *Alert
	HurtIntensity     float64
	HurtFlash         bool
	MapZoom           float64
	ScoreboardVisible bool
	FlashlightOn      bool
	Limbo             bool
	Following         int

	// Fade is the amount of black laid over the whole frame, from 0 to 1.
	Fade float64
}

func (s *Session) buildOverlay() Overlay {
	o := Overlay{
		ChatLines:         s.chatWindow.Lines(),
		KillfeedLines:     s.killfeed.Lines(),
		CenterMessage:     s.centerMessages.Current(),
		HurtIntensity:     s.hurtRing.Intensity(),
		MapZoom:           s.mapView.Zoom(),
		ScoreboardVisible: s.scoreboardVisible,
		FlashlightOn:      s.flashlightOn,
		Limbo:             s.world == nil,
		Following:         -1,
		Fade: max(
			fadeRemaining(s.timeSinceInit, startupFadeDuration),
			fadeRemaining(s.time-s.worldSetTime, worldFadeDuration),
		),
	}
	if s.world != nil {
		o.HurtFlash = s.time-s.lastHurtTime < hurtFlashDuration
	}
	if a, ok := s.ActiveAlert(); ok {
		o.Alert = &a
	}
	if s.IsFollowing() {
		o.Following = s.followingPlayerId
	}
	return o
}

func fadeRemaining(elapsed, d time.Duration) float64 {
	return 1 - min(1, max(0, elapsed.Seconds()/d.Seconds()))
}

// ToggleMap switches between the minimap and the full screen map.
func (s *Session) ToggleMap() {
	s.mapView.ToggleLarge()
}
