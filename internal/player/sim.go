package player

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Sim is a stream player without a decoder. Its position advances with the
// injected clock while Playing, which is enough to drive an ad SDK timeline.
type Sim struct {
	clock clock.Clock

	url      string
	state    State
	duration time.Duration
	controls bool
	callback Callback

	// position at anchor, and the clock reading it was taken at
	offset time.Duration
	anchor time.Time
	window int
}

// NewSim creates a stopped simulated player. A nil clock uses the wall clock.
func NewSim(clk clock.Clock) *Sim {
	if clk == nil {
		clk = clock.New()
	}
	return &Sim{
		clock:    clk,
		state:    Stopped,
		controls: true,
	}
}

// SetDuration sets the length of the loaded stream.
func (s *Sim) SetDuration(d time.Duration) {
	s.duration = max(d, 0)
}

func (s *Sim) SetStreamURL(url string) {
	s.Stop()
	s.url = url
}

func (s *Sim) StreamURL() string { return s.url }

func (s *Sim) Play() {
	if s.url == "" {
		return
	}
	s.offset = 0
	s.window = 0
	s.anchor = s.clock.Now()
	s.state = Playing
}

func (s *Sim) Pause() {
	if !s.state.CanPause() {
		return
	}
	s.offset = s.Position()
	s.state = Paused
}

func (s *Sim) Resume() {
	if !s.state.CanResume() {
		return
	}
	s.anchor = s.clock.Now()
	s.state = Playing
}

func (s *Sim) Stop() {
	if s.state == Stopped {
		return
	}
	s.offset = 0
	s.state = Stopped
}

func (s *Sim) SeekTo(position time.Duration) {
	s.SeekToWindow(s.window, position)
}

func (s *Sim) SeekToWindow(windowIndex int, position time.Duration) {
	if s.state == Stopped {
		return
	}
	position = max(position, 0)
	if s.duration > 0 {
		position = min(position, s.duration)
	}
	s.window = windowIndex
	s.offset = position
	s.anchor = s.clock.Now()
}

func (s *Sim) EnableControls(enabled bool) { s.controls = enabled }

func (s *Sim) ControlsEnabled() bool { return s.controls }

func (s *Sim) State() State { return s.state }

func (s *Sim) Position() time.Duration {
	pos := s.offset
	if s.state == Playing {
		pos += s.clock.Since(s.anchor)
	}
	if s.duration > 0 && pos > s.duration {
		pos = s.duration
	}
	return pos
}

func (s *Sim) PeriodPosition() time.Duration { return s.Position() }

func (s *Sim) Duration() time.Duration { return s.duration }

// Finished reports whether playback has reached the end of the stream.
func (s *Sim) Finished() bool {
	return s.state == Playing && s.duration > 0 && s.Position() >= s.duration
}

func (s *Sim) SetCallback(cb Callback) { s.callback = cb }

// SimulateSeek behaves like the user dragging the scrub bar: the request
// goes to the callback, which owns the actual seek. Without a callback the
// player seeks directly. Ignored while controls are disabled.
func (s *Sim) SimulateSeek(position time.Duration) {
	if !s.controls {
		return
	}
	if s.callback == nil {
		s.SeekTo(position)
		return
	}
	s.callback.OnSeek(s.window, position)
}

// SimulateUserText forwards timed metadata to the callback.
func (s *Sim) SimulateUserText(text string) {
	if s.callback != nil {
		s.callback.OnUserTextReceived(text)
	}
}
