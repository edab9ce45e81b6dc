// Package app wires the ad coordinator to a simulated player and the
// scripted SDK, and hosts it in a terminal UI.
package app

import (
	"errors"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/llehouerou/ssai-innovid/internal/adswrapper"
	"github.com/llehouerou/ssai-innovid/internal/config"
	"github.com/llehouerou/ssai-innovid/internal/ima"
	"github.com/llehouerou/ssai-innovid/internal/ima/scripted"
	"github.com/llehouerou/ssai-innovid/internal/interactive"
	"github.com/llehouerou/ssai-innovid/internal/player"
	"github.com/llehouerou/ssai-innovid/internal/uiloop"
)

// SeekStep is how far the left and right keys move the playhead.
const SeekStep = 10 * time.Second

// ErrNotStarted is returned when the stream was requested but no manager
// or fallback ever started playback.
var ErrNotStarted = errors.New("stream not started")

// Options configure a Runtime.
type Options struct {
	Config   *config.Config
	Request  ima.StreamRequest
	Timeline scripted.Timeline
	Clock    clock.Clock
	Logger   log.Logger
	Sink     adswrapper.Logger
	Poster   uiloop.Poster
}

type surface struct{}

func (surface) Name() string { return "terminal" }

// Runtime owns every collaborator of one playback run. Its methods must be
// called from the goroutine that owns the UI.
type Runtime struct {
	Player  *player.Sim
	Wrapper *adswrapper.Wrapper
	Video   *uiloop.Container
	AdUI    *uiloop.Container

	loader  *scripted.Loader
	started bool
}

// NewRuntime builds the wiring but does not request the stream.
func NewRuntime(opts Options) *Runtime {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	sim := player.NewSim(opts.Clock)
	sim.SetDuration(opts.Timeline.Duration)

	r := &Runtime{
		Player: sim,
		Video:  uiloop.NewContainer("video"),
		AdUI:   uiloop.NewContainer("ad-ui"),
	}

	r.Wrapper = adswrapper.New(adswrapper.Deps{
		Player:         sim,
		NewLoader:      scripted.NewLoaderFactory(opts.Timeline, opts.Logger, &r.loader),
		Settings:       cfg.Settings(),
		Request:        opts.Request,
		VideoContainer: r.Video,
		AdUIContainer:  r.AdUI,
		Surface:        surface{},
		Poster:         opts.Poster,
		SessionFactory: interactive.NewHeadless,
		Logger:         opts.Logger,
		Options: adswrapper.Options{
			DisposeOnUnmatchedStart: cfg.Interactive.DisposeOnUnmatchedStart,
		},
	})
	r.Wrapper.SetFallbackURL(cfg.FallbackURL)
	r.Wrapper.SetAdvertisingID(cfg.AdvertisingID)
	if opts.Sink != nil {
		r.Wrapper.SetLogger(opts.Sink)
	}
	return r
}

// Start requests the stream. The scripted SDK answers synchronously, so the
// player is either playing the stream or the fallback when it returns.
func (r *Runtime) Start() error {
	if err := r.Wrapper.RequestAndPlayAds(); err != nil {
		return err
	}
	r.started = true
	if r.Player.State() == player.Stopped {
		return ErrNotStarted
	}
	return nil
}

// Manager returns the active scripted stream manager.
func (r *Runtime) Manager() (*scripted.Manager, bool) {
	if r.loader == nil {
		return nil, false
	}
	return r.loader.Manager()
}

// Tick advances the SDK to the player's position.
func (r *Runtime) Tick() {
	if m, ok := r.Manager(); ok {
		m.Advance(r.Player.Position())
	}
}

// Done reports whether the run has nothing left to play.
func (r *Runtime) Done() bool {
	if !r.started {
		return false
	}
	return r.Player.Finished() || r.Player.State() == player.Stopped
}

// TogglePause pauses or resumes the player.
func (r *Runtime) TogglePause() {
	switch r.Player.State() {
	case player.Playing:
		r.Player.Pause()
	case player.Paused:
		r.Player.Resume()
	case player.Stopped:
	}
}

// Seek moves the playhead by delta through the player's seek interception.
func (r *Runtime) Seek(delta time.Duration) {
	target := min(max(r.Player.Position()+delta, 0), r.Player.Duration())
	r.Player.SimulateSeek(target)
}

func (r *Runtime) headless() (*interactive.Headless, bool) {
	s, ok := r.Wrapper.Session()
	if !ok {
		return nil, false
	}
	h, ok := s.(*interactive.Headless)
	return h, ok && h.Running()
}

// SessionRunning reports whether an interactive ad is on screen.
func (r *Runtime) SessionRunning() bool {
	_, ok := r.headless()
	return ok
}

// RequestSessionPause makes the active creative ask for a pause.
func (r *Runtime) RequestSessionPause() bool {
	h, ok := r.headless()
	if ok {
		h.RequestPause()
	}
	return ok
}

// RequestSessionResume makes the active creative ask for a resume.
func (r *Runtime) RequestSessionResume() bool {
	h, ok := r.headless()
	if ok {
		h.RequestResume()
	}
	return ok
}

// RequestSessionRestart makes the active creative ask for a restart.
func (r *Runtime) RequestSessionRestart() bool {
	h, ok := r.headless()
	if ok {
		h.RequestRestart()
	}
	return ok
}

// Release tears down the interactive ad.
func (r *Runtime) Release() {
	r.Wrapper.ReleaseInteractiveAd()
}

// AdProgress returns the SDK's progress for the current ad, if one plays.
func (r *Runtime) AdProgress() (ima.AdProgressInfo, bool) {
	m, ok := r.Manager()
	if !ok || !m.InBreak() {
		return ima.AdProgressInfo{}, false
	}
	return m.AdProgressInfo(), true
}
