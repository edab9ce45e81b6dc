// internal/player/mock.go
package player

import "time"

// SeekCall records a seek request made on the Mock.
type SeekCall struct {
	Window   int
	Position time.Duration
}

// Mock is a test double for Interface.
type Mock struct {
	state    State
	url      string
	urls     []string
	position time.Duration
	duration time.Duration
	controls bool
	callback Callback

	playCalls   int
	pauseCalls  int
	resumeCalls int
	seekCalls   []SeekCall
	controlLog  []bool
	calls       []string
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{
		state:    Stopped,
		controls: true,
	}
}

func (m *Mock) SetStreamURL(url string) {
	m.calls = append(m.calls, "SetStreamURL")
	m.url = url
	m.urls = append(m.urls, url)
}

func (m *Mock) StreamURL() string { return m.url }

func (m *Mock) Play() {
	m.calls = append(m.calls, "Play")
	m.playCalls++
	m.state = Playing
}

func (m *Mock) Pause() {
	m.calls = append(m.calls, "Pause")
	m.pauseCalls++
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Resume() {
	m.calls = append(m.calls, "Resume")
	m.resumeCalls++
	if m.state == Paused {
		m.state = Playing
	}
}

func (m *Mock) Stop() {
	m.calls = append(m.calls, "Stop")
	m.state = Stopped
}

func (m *Mock) SeekTo(position time.Duration) {
	m.SeekToWindow(0, position)
}

func (m *Mock) SeekToWindow(windowIndex int, position time.Duration) {
	m.calls = append(m.calls, "SeekTo")
	m.seekCalls = append(m.seekCalls, SeekCall{Window: windowIndex, Position: position})
	m.position = position
}

func (m *Mock) EnableControls(enabled bool) {
	m.calls = append(m.calls, "EnableControls")
	m.controls = enabled
	m.controlLog = append(m.controlLog, enabled)
}

func (m *Mock) ControlsEnabled() bool { return m.controls }

func (m *Mock) State() State { return m.state }

func (m *Mock) Position() time.Duration { return m.position }

func (m *Mock) PeriodPosition() time.Duration { return m.position }

func (m *Mock) Duration() time.Duration { return m.duration }

func (m *Mock) SetCallback(cb Callback) { m.callback = cb }

// Test helpers

func (m *Mock) SetState(s State) { m.state = s }

func (m *Mock) SetDuration(d time.Duration) { m.duration = d }

func (m *Mock) SetPosition(d time.Duration) { m.position = d }

func (m *Mock) PlayCalls() int { return m.playCalls }

func (m *Mock) PauseCalls() int { return m.pauseCalls }

func (m *Mock) ResumeCalls() int { return m.resumeCalls }

func (m *Mock) SeekCalls() []SeekCall { return m.seekCalls }

func (m *Mock) StreamURLs() []string { return m.urls }

// ControlChanges returns every value passed to EnableControls, in order.
func (m *Mock) ControlChanges() []bool { return m.controlLog }

// Calls returns the method names invoked on the mock, in order.
func (m *Mock) Calls() []string { return m.calls }

func (m *Mock) Callback() Callback { return m.callback }

// SimulateSeek invokes the registered callback as a user scrub would.
func (m *Mock) SimulateSeek(windowIndex int, position time.Duration) {
	if m.callback != nil {
		m.callback.OnSeek(windowIndex, position)
	}
}

// SimulateUserText invokes the registered callback with timed metadata.
func (m *Mock) SimulateUserText(text string) {
	if m.callback != nil {
		m.callback.OnUserTextReceived(text)
	}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
