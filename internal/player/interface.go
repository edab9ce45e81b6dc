// internal/player/interface.go
package player

import "time"

// Callback receives notifications raised by the player's own UI.
type Callback interface {
	// OnUserTextReceived is called when the stream carries timed user text
	// (ID3 / emsg metadata used by the ad SDK).
	OnUserTextReceived(text string)
	// OnSeek is called when the user scrubs. The player does not move on
	// its own; the callback decides the effective target and calls SeekTo.
	OnSeek(windowIndex int, position time.Duration)
}

// Interface defines the stream player contract for dependency injection and testing.
type Interface interface {
	SetStreamURL(url string)
	StreamURL() string
	Play()
	Pause()
	Resume()
	Stop()
	SeekTo(position time.Duration)
	SeekToWindow(windowIndex int, position time.Duration)
	EnableControls(enabled bool)
	ControlsEnabled() bool
	State() State
	// Position is the absolute stream time.
	Position() time.Duration
	// PeriodPosition is the position within the current period. For
	// single-period streams it equals Position.
	PeriodPosition() time.Duration
	Duration() time.Duration
	SetCallback(cb Callback)
}

// Verify Sim implements Interface at compile time.
var _ Interface = (*Sim)(nil)
