package ima

import (
	"errors"
	"fmt"
	"time"
)

// AdEventType identifies an ad lifecycle event.
type AdEventType int

const (
	AdBreakStarted AdEventType = iota
	AdBreakEnded
	AdPeriodStarted
	AdPeriodEnded
	Started
	FirstQuartile
	Midpoint
	ThirdQuartile
	Completed
	AdProgress
	Clicked
	Skipped
	CuepointsChanged
	Log
)

var adEventNames = [...]string{
	AdBreakStarted:   "AD_BREAK_STARTED",
	AdBreakEnded:     "AD_BREAK_ENDED",
	AdPeriodStarted:  "AD_PERIOD_STARTED",
	AdPeriodEnded:    "AD_PERIOD_ENDED",
	Started:          "STARTED",
	FirstQuartile:    "FIRST_QUARTILE",
	Midpoint:         "MIDPOINT",
	ThirdQuartile:    "THIRD_QUARTILE",
	Completed:        "COMPLETED",
	AdProgress:       "AD_PROGRESS",
	Clicked:          "CLICKED",
	Skipped:          "SKIPPED",
	CuepointsChanged: "CUEPOINTS_CHANGED",
	Log:              "LOG",
}

func (t AdEventType) String() string {
	if t < 0 || int(t) >= len(adEventNames) {
		return fmt.Sprintf("AdEventType(%d)", int(t))
	}
	return adEventNames[t]
}

// CompanionAd is a companion creative attached to a linear ad.
type CompanionAd struct {
	APIFramework  string `koanf:"api_framework"`
	ResourceValue string `koanf:"resource"`
	Width         int    `koanf:"width"`
	Height        int    `koanf:"height"`
}

// AdPodInfo locates an ad inside its break.
type AdPodInfo struct {
	PodIndex   int
	AdPosition int
	TotalAds   int
}

// Ad is the ad payload carried by lifecycle events.
type Ad struct {
	ID         string
	Title      string
	Duration   time.Duration
	PodInfo    *AdPodInfo
	Companions []CompanionAd

	// CompanionErr, when set, makes CompanionAds fail the way a partially
	// parsed VAST response does in the real SDK.
	CompanionErr error
}

// CompanionAds returns the companions attached to the ad.
func (a *Ad) CompanionAds() ([]CompanionAd, error) {
	if a == nil {
		return nil, nil
	}
	if a.CompanionErr != nil {
		return nil, a.CompanionErr
	}
	return a.Companions, nil
}

// AdEvent is a lifecycle notification. Ad is nil for stream-level events.
type AdEvent struct {
	Type AdEventType
	Ad   *Ad
}

// AdError is an ad request or playback failure reported by the SDK.
type AdError struct {
	Code    int
	Message string
}

func (e *AdError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("ad error %d: %s", e.Code, e.Message)
	}
	return "ad error: " + e.Message
}

// AsAdError extracts an *AdError from err.
func AsAdError(err error) (*AdError, bool) {
	var ae *AdError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// AdErrorEvent wraps an AdError.
type AdErrorEvent struct {
	Error *AdError
}

// Message returns the error message, tolerating a nil error.
func (e AdErrorEvent) Message() string {
	if e.Error == nil {
		return "unknown error"
	}
	return e.Error.Message
}

// AdProgressInfo is a progress snapshot of the playing ad.
type AdProgressInfo struct {
	AdPosition  int
	TotalAds    int
	CurrentTime time.Duration
	Duration    time.Duration
}

// CuePoint marks an ad break on the content timeline.
type CuePoint struct {
	Start  time.Duration
	End    time.Duration
	Played bool
}

// VideoProgressUpdate reports content progress back to the SDK.
type VideoProgressUpdate struct {
	Position time.Duration
	Duration time.Duration
}
