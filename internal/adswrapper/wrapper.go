// Package adswrapper coordinates IMA DAI ad lifecycle events with Innovid
// interactive overlays on top of a stream player.
//
// All entry points (SDK listeners, player callbacks, session requests) are
// expected to be delivered serially by the host; the Wrapper holds no locks.
// View changes are posted to the host's UI queue.
package adswrapper

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/llehouerou/ssai-innovid/internal/ima"
	"github.com/llehouerou/ssai-innovid/internal/interactive"
	"github.com/llehouerou/ssai-innovid/internal/player"
	"github.com/llehouerou/ssai-innovid/internal/uiloop"
)

// Options tune behaviour that deployments disagree on.
type Options struct {
	// DisposeOnUnmatchedStart force-stops the active interactive ad when a
	// new ad starts without an interactive companion. Off by default: the
	// active overlay is left running.
	DisposeOnUnmatchedStart bool
}

// Deps are the collaborators of a Wrapper.
type Deps struct {
	Player         player.Interface
	NewLoader      ima.LoaderFactory
	Settings       ima.Settings
	Request        ima.StreamRequest
	VideoContainer uiloop.View
	AdUIContainer  uiloop.View
	Surface        interactive.Surface
	Poster         uiloop.Poster
	SessionFactory interactive.Factory
	Logger         log.Logger
	Options        Options
}

// activeSession is the single interactive ad owned by the wrapper.
type activeSession struct {
	id      uuid.UUID
	session interactive.Session
}

// Wrapper adds ad-serving support to a stream player. It implements
// ima.AdEventListener, ima.AdErrorListener and ima.AdsLoadedListener.
type Wrapper struct {
	player         player.Interface
	loader         ima.AdsLoader
	settings       ima.Settings
	request        ima.StreamRequest
	videoContainer uiloop.View
	adUIContainer  uiloop.View
	surface        interactive.Surface
	poster         uiloop.Poster
	newSession     interactive.Factory
	opts           Options

	diag *log.Helper
	sink Logger

	streamManager ima.StreamManager
	streamPlayer  *videoStreamPlayer
	callbacks     []ima.VideoStreamPlayerCallback

	fallbackURL   string
	advertisingID string

	active *activeSession
}

var (
	_ ima.AdEventListener   = (*Wrapper)(nil)
	_ ima.AdErrorListener   = (*Wrapper)(nil)
	_ ima.AdsLoadedListener = (*Wrapper)(nil)
)

// New creates a Wrapper, creates its ads loader, and installs seek
// interception on the player.
func New(d Deps) *Wrapper {
	logger := d.Logger
	if logger == nil {
		logger = quietLogger()
	}
	poster := d.Poster
	if poster == nil {
		poster = uiloop.Immediate
	}
	factory := d.SessionFactory
	if factory == nil {
		factory = interactive.NewHeadless
	}
	settings := d.Settings
	if settings.PlayerType == "" {
		settings.PlayerType = ima.DefaultPlayerType
	}

	w := &Wrapper{
		player:         d.Player,
		settings:       settings,
		request:        d.Request,
		videoContainer: d.VideoContainer,
		adUIContainer:  d.AdUIContainer,
		surface:        d.Surface,
		poster:         poster,
		newSession:     factory,
		opts:           d.Options,
		diag:           log.NewHelper(log.With(logger, "component", "adswrapper")),
	}
	w.streamPlayer = &videoStreamPlayer{w: w}
	w.loader = d.NewLoader(settings, w.streamPlayer)
	w.player.SetCallback(playerCallback{w: w})
	return w
}

// Settings returns the SDK settings in effect.
func (w *Wrapper) Settings() ima.Settings { return w.settings }

// VideoStreamPlayer returns the player surface to hand to the SDK.
func (w *Wrapper) VideoStreamPlayer() ima.VideoStreamPlayer { return w.streamPlayer }

// SetFallbackURL sets the URL played if the ad stream fails.
func (w *Wrapper) SetFallbackURL(url string) { w.fallbackURL = url }

// SetLogger sets the sink for on-screen event messages. Optional.
func (w *Wrapper) SetLogger(l Logger) { w.sink = l }

// SetAdvertisingID sets the id passed to interactive ads.
func (w *Wrapper) SetAdvertisingID(id string) { w.advertisingID = id }

// RequestAndPlayAds registers with the loader and requests the stream.
func (w *Wrapper) RequestAndPlayAds() error {
	w.loader.AddAdErrorListener(w)
	w.loader.AddAdsLoadedListener(w)
	if err := w.loader.RequestStream(w.request); err != nil {
		return fmt.Errorf("request stream %s: %w", w.request, err)
	}
	return nil
}

// OnAdsManagerLoaded implements ima.AdsLoadedListener.
func (w *Wrapper) OnAdsManagerLoaded(event ima.AdsManagerLoadedEvent) {
	w.streamManager = event.StreamManager
	if w.streamManager == nil {
		w.diag.Warn("ads manager loaded without a stream manager")
		return
	}
	w.streamManager.AddAdErrorListener(w)
	w.streamManager.AddAdEventListener(w)
	w.streamManager.Init()
}

// OnAdError implements ima.AdErrorListener. Playback falls back to the
// configured URL; there is no retry.
func (w *Wrapper) OnAdError(event ima.AdErrorEvent) {
	w.log(fmt.Sprintf("Error: %s\n", event.Message()))
	w.disposeCurrentInteractiveAd()

	w.log("Playing fallback Url\n")
	if w.fallbackURL == "" {
		w.diag.Warn("no fallback url configured")
	}
	w.player.SetStreamURL(w.fallbackURL)
	w.player.EnableControls(true)
	w.player.Play()
}

// OnAdEvent implements ima.AdEventListener.
func (w *Wrapper) OnAdEvent(event ima.AdEvent) {
	switch event.Type {
	case ima.AdProgress:
		w.checkAndInjectAdProgressInfo()
	case ima.Started:
		w.checkAndStartInteractiveAd(event.Ad)
	case ima.Completed:
		w.checkAndStopInteractiveAd()
	default:
		w.describeAd(event)
	}
}

func (w *Wrapper) describeAd(event ima.AdEvent) {
	ad := event.Ad
	if ad == nil {
		w.log(fmt.Sprintf("Event: %s\n", event.Type))
		return
	}

	hasCompanions := len(companionsOf(ad)) > 0
	if pod := ad.PodInfo; pod != nil {
		w.log(fmt.Sprintf("Event: %s, Pod %d, Ad(%d, %d)-- has companions: %t",
			event.Type, pod.PodIndex, pod.AdPosition, pod.TotalAds, hasCompanions))
		return
	}
	w.log(fmt.Sprintf("Event: %s, Ad %s -- has companions: %t", event.Type, ad.ID, hasCompanions))
}

// ReleaseInteractiveAd force-stops the active interactive ad, if any.
func (w *Wrapper) ReleaseInteractiveAd() {
	w.disposeCurrentInteractiveAd()
}

// Session returns the active interactive ad.
func (w *Wrapper) Session() (interactive.Session, bool) {
	if w.active == nil {
		return nil, false
	}
	return w.active.session, true
}

// StreamManager returns the stream manager of the current request, if loaded.
func (w *Wrapper) StreamManager() (ima.StreamManager, bool) {
	return w.streamManager, w.streamManager != nil
}
