package interactive

import "time"

// Progress is one injected playback progress sample.
type Progress struct {
	State    PlaybackState
	Current  time.Duration
	Duration time.Duration
}

// Headless is a session without a renderer. It reports the lifecycle events
// a creative would and lets the host trigger playback requests by hand.
type Headless struct {
	params   Params
	events   EventListener
	requests PlaybackRequestListener

	started  bool
	stopped  bool
	progress *Progress
	samples  int
}

// NewHeadless creates a headless session. It satisfies Factory.
func NewHeadless(p Params) Session {
	return &Headless{params: p}
}

func (h *Headless) SetEventListener(l EventListener) { h.events = l }

func (h *Headless) SetPlaybackRequestListener(l PlaybackRequestListener) { h.requests = l }

func (h *Headless) Params() Params { return h.params }

func (h *Headless) Start() {
	if h.started || h.stopped {
		return
	}
	h.started = true
	h.emit(EventReady)
	h.emit(EventStarted)
}

func (h *Headless) RequestStop() { h.stop() }

func (h *Headless) EnforceStop() { h.stop() }

func (h *Headless) stop() {
	if h.stopped {
		return
	}
	h.stopped = true
	if h.started {
		h.emit(EventStopped)
	}
}

func (h *Headless) InjectPlaybackProgressInfo(state PlaybackState, current, duration time.Duration) {
	if !h.started || h.stopped {
		return
	}
	if h.samples == 0 {
		defer h.emit(EventImpression)
	}
	h.samples++
	h.progress = &Progress{State: state, Current: current, Duration: duration}
}

// LastProgress returns the last injected sample, if any.
func (h *Headless) LastProgress() (Progress, bool) {
	if h.progress == nil {
		return Progress{}, false
	}
	return *h.progress, true
}

// Running reports whether the session was started and not yet stopped.
func (h *Headless) Running() bool { return h.started && !h.stopped }

// RequestPause simulates the viewer engaging the creative.
func (h *Headless) RequestPause() {
	if !h.Running() || h.requests == nil {
		return
	}
	h.emit(EventEngaged)
	h.requests.OnPauseRequest()
}

// RequestResume simulates the viewer closing the expanded creative.
func (h *Headless) RequestResume() {
	if !h.Running() || h.requests == nil {
		return
	}
	h.emit(EventCollapsed)
	h.requests.OnResumeRequest()
}

// RequestRestart simulates a creative asking to restart on next resume.
func (h *Headless) RequestRestart() {
	if !h.Running() || h.requests == nil {
		return
	}
	h.requests.OnStopAndRestartOnNextResumeRequest()
}

func (h *Headless) emit(t EventType) {
	if h.events != nil {
		h.events.OnInteractiveAdEvent(t)
	}
}

var _ Session = (*Headless)(nil)
