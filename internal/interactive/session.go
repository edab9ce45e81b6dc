// Package interactive defines the Innovid interactive-ad session that runs
// on top of an SSAI stream, and the events it reports back to the host.
package interactive

import (
	"fmt"
	"time"

	"github.com/llehouerou/ssai-innovid/internal/ima"
)

// PlaybackState is the SSAI playback state reported to the overlay.
type PlaybackState int

const (
	Playing PlaybackState = iota
	Paused
)

func (s PlaybackState) String() string {
	if s == Paused {
		return "PAUSED"
	}
	return "PLAYING"
}

// EventType is a generic event raised by the interactive creative.
type EventType int

const (
	EventReady EventType = iota
	EventStarted
	EventImpression
	EventEngaged
	EventCollapsed
	EventCompleted
	EventStopped
	EventFailed
)

var eventNames = [...]string{
	EventReady:      "READY",
	EventStarted:    "STARTED",
	EventImpression: "IMPRESSION",
	EventEngaged:    "ENGAGED",
	EventCollapsed:  "COLLAPSED",
	EventCompleted:  "COMPLETED",
	EventStopped:    "STOPPED",
	EventFailed:     "FAILED",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return fmt.Sprintf("EventType(%d)", int(t))
	}
	return eventNames[t]
}

// EventListener receives generic events from a session.
type EventListener interface {
	OnInteractiveAdEvent(t EventType)
}

// PlaybackRequestListener receives playback-control requests from a session.
// Requests may arrive at any time, independently of ad lifecycle events.
type PlaybackRequestListener interface {
	OnPauseRequest()
	OnResumeRequest()
	OnStopAndRestartOnNextResumeRequest()
}

// Surface is the rendering surface the creative draws into.
type Surface interface {
	Name() string
}

// Params are the construction parameters of a session.
type Params struct {
	Surface       Surface
	Companion     ima.CompanionAd
	AdvertisingID string
}

// Session is one interactive overlay.
type Session interface {
	SetEventListener(l EventListener)
	SetPlaybackRequestListener(l PlaybackRequestListener)
	Start()
	// RequestStop asks the creative to wind down; it may animate out and
	// reports EventStopped when done.
	RequestStop()
	// EnforceStop tears the creative down immediately.
	EnforceStop()
	InjectPlaybackProgressInfo(state PlaybackState, current, duration time.Duration)
}

// Factory creates a session.
type Factory func(p Params) Session

// EventListenerFunc adapts a function to EventListener.
type EventListenerFunc func(t EventType)

func (f EventListenerFunc) OnInteractiveAdEvent(t EventType) { f(t) }
