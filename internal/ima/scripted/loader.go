package scripted

import (
	"errors"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/llehouerou/ssai-innovid/internal/ima"
)

// ErrInvalidRequest is returned for stream requests missing identifiers.
var ErrInvalidRequest = errors.New("invalid stream request")

// Loader is an ima.AdsLoader that resolves every request to the same timeline.
type Loader struct {
	settings ima.Settings
	player   ima.VideoStreamPlayer
	timeline Timeline
	log      *log.Helper

	errorListeners  []ima.AdErrorListener
	loadedListeners []ima.AdsLoadedListener

	manager *Manager
}

var _ ima.AdsLoader = (*Loader)(nil)

// NewLoaderFactory returns an ima.LoaderFactory producing Loaders for tl.
// The most recent Loader is stored in *last so hosts can drive its Manager.
func NewLoaderFactory(tl Timeline, logger log.Logger, last **Loader) ima.LoaderFactory {
	return func(settings ima.Settings, player ima.VideoStreamPlayer) ima.AdsLoader {
		l := NewLoader(settings, player, tl, logger)
		if last != nil {
			*last = l
		}
		return l
	}
}

// NewLoader creates a loader bound to player.
func NewLoader(settings ima.Settings, player ima.VideoStreamPlayer, tl Timeline, logger log.Logger) *Loader {
	if logger == nil {
		logger = log.NewFilter(log.DefaultLogger, log.FilterLevel(log.LevelWarn))
	}
	return &Loader{
		settings: settings,
		player:   player,
		timeline: tl,
		log:      log.NewHelper(log.With(logger, "component", "scripted-sdk")),
	}
}

func (l *Loader) AddAdErrorListener(li ima.AdErrorListener) {
	l.errorListeners = append(l.errorListeners, li)
}

func (l *Loader) AddAdsLoadedListener(li ima.AdsLoadedListener) {
	l.loadedListeners = append(l.loadedListeners, li)
}

// RequestStream validates req and resolves it. A timeline configured to
// fail at request time reports through the error listeners, the way the
// SDK reports ad request failures.
func (l *Loader) RequestStream(req ima.StreamRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	l.log.Infof("stream request %s (player type %s)", req, l.settings.PlayerType)

	if l.timeline.FailWith != "" && l.timeline.FailAt == 0 {
		event := ima.AdErrorEvent{Error: &ima.AdError{Code: l.timeline.FailCode, Message: l.timeline.FailWith}}
		for _, li := range l.errorListeners {
			li.OnAdError(event)
		}
		return nil
	}

	l.manager = newManager(req, l.player, l.timeline, l.log)
	event := ima.AdsManagerLoadedEvent{StreamManager: l.manager}
	for _, li := range l.loadedListeners {
		li.OnAdsManagerLoaded(event)
	}
	return nil
}

// Manager returns the manager created by the last successful request.
func (l *Loader) Manager() (*Manager, bool) {
	return l.manager, l.manager != nil
}

func validateRequest(req ima.StreamRequest) error {
	if req.IsLive() {
		return nil
	}
	if req.ContentSourceID() == "" || req.VideoID() == "" {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, req)
	}
	return nil
}
