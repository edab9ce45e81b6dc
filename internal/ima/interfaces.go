package ima

import "time"

// AdEventListener receives ad lifecycle events.
type AdEventListener interface {
	OnAdEvent(event AdEvent)
}

// AdErrorListener receives ad errors.
type AdErrorListener interface {
	OnAdError(event AdErrorEvent)
}

// AdsManagerLoadedEvent carries the stream manager once a request resolves.
type AdsManagerLoadedEvent struct {
	StreamManager StreamManager
}

// AdsLoadedListener is notified when a stream request resolves.
type AdsLoadedListener interface {
	OnAdsManagerLoaded(event AdsManagerLoadedEvent)
}

// StreamManager controls one ad-enabled stream.
type StreamManager interface {
	AddAdErrorListener(l AdErrorListener)
	AddAdEventListener(l AdEventListener)
	// Init starts the stream; the SDK then calls LoadURL on the player.
	Init()
	AdProgressInfo() AdProgressInfo
	// PreviousCuePointForStreamTime returns the last break starting at or
	// before t.
	PreviousCuePointForStreamTime(t time.Duration) (CuePoint, bool)
}

// AdsLoader issues stream requests.
type AdsLoader interface {
	AddAdErrorListener(l AdErrorListener)
	AddAdsLoadedListener(l AdsLoadedListener)
	RequestStream(req StreamRequest) error
}

// VideoStreamPlayerCallback lets the SDK observe the player.
type VideoStreamPlayerCallback interface {
	OnUserTextReceived(text string)
}

// VideoStreamPlayer is the player surface the SDK drives.
type VideoStreamPlayer interface {
	LoadURL(url string, subtitles []map[string]string)
	Volume() int
	AddCallback(cb VideoStreamPlayerCallback)
	RemoveCallback(cb VideoStreamPlayerCallback)
	OnAdBreakStarted()
	OnAdBreakEnded()
	OnAdPeriodStarted()
	OnAdPeriodEnded()
	// Seek is issued by the SDK when an ad is skipped.
	Seek(t time.Duration)
	ContentProgress() VideoProgressUpdate
}

// LoaderFactory creates an AdsLoader bound to the player the SDK will drive.
type LoaderFactory func(settings Settings, player VideoStreamPlayer) AdsLoader
