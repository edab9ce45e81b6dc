package adswrapper

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/llehouerou/ssai-innovid/internal/ima"
	"github.com/llehouerou/ssai-innovid/internal/interactive"
	"github.com/llehouerou/ssai-innovid/internal/player"
	"github.com/llehouerou/ssai-innovid/internal/uiloop"
)

// checkAndStartInteractiveAd starts an interactive ad if the started ad
// carries a supported companion. The previous session is force-stopped
// before the new one is created.
func (w *Wrapper) checkAndStartInteractiveAd(ad *ima.Ad) {
	companion, ok := FindInteractiveCompanion(companionsOf(ad))
	if !ok {
		if w.opts.DisposeOnUnmatchedStart {
			w.disposeCurrentInteractiveAd()
		}
		return
	}

	w.disposeCurrentInteractiveAd()

	// remove default ad position indicator
	if w.adUIContainer != nil {
		view := w.adUIContainer
		w.poster.Post(func() { view.SetVisibility(uiloop.Gone) })
	}

	id := uuid.New()
	s := w.newSession(interactive.Params{
		Surface:       w.surface,
		Companion:     companion,
		AdvertisingID: w.advertisingID,
	})
	s.SetEventListener(sessionEvents{w: w, id: id})
	s.SetPlaybackRequestListener(playbackRequests{w: w, id: id})
	w.active = &activeSession{id: id, session: s}

	w.diag.Infof("interactive ad %s: %s", id, companion.ResourceValue)
	s.Start()
}

// checkAndStopInteractiveAd asks the active session to stop gracefully.
func (w *Wrapper) checkAndStopInteractiveAd() {
	if w.active == nil {
		return
	}
	s := w.active.session
	w.active = nil
	s.RequestStop()
}

// disposeCurrentInteractiveAd force-stops the active session.
func (w *Wrapper) disposeCurrentInteractiveAd() {
	if w.active == nil {
		return
	}
	s := w.active.session
	w.active = nil
	s.EnforceStop()
}

// checkAndInjectAdProgressInfo forwards ad progress to the active session
// unless the player is stopped.
func (w *Wrapper) checkAndInjectAdProgressInfo() {
	if w.active == nil || w.streamManager == nil {
		return
	}
	ps := w.player.State()
	if ps == player.Stopped {
		return
	}

	info := w.streamManager.AdProgressInfo()
	w.diag.Debugf("Ad(%d, %d) -- %s ____ %s", info.AdPosition, info.TotalAds, info.CurrentTime, info.Duration)

	w.active.session.InjectPlaybackProgressInfo(toSessionState(ps), info.CurrentTime, info.Duration)
}

func toSessionState(s player.State) interactive.PlaybackState {
	if s == player.Playing {
		return interactive.Playing
	}
	return interactive.Paused
}

type sessionEvents struct {
	w  *Wrapper
	id uuid.UUID
}

func (e sessionEvents) OnInteractiveAdEvent(t interactive.EventType) {
	e.w.log(fmt.Sprintf("onInteractiveAdEvent(%s)", t))
	e.w.diag.Debugf("interactive ad %s: event %s", e.id, t)
}

// playbackRequests forwards creative requests to the player. Requests are
// honoured whether or not their session is still the active one.
type playbackRequests struct {
	w  *Wrapper
	id uuid.UUID
}

func (r playbackRequests) OnPauseRequest() {
	w := r.w
	w.log("onPauseRequest()")
	w.diag.Debugf("interactive ad %s: pause request%s", r.id, r.staleSuffix())
	w.player.Pause()
	if view := w.videoContainer; view != nil {
		w.poster.Post(func() { view.SetVisibility(uiloop.Invisible) })
	}
}

func (r playbackRequests) OnResumeRequest() {
	w := r.w
	w.log("onResumeRequest()")
	w.diag.Debugf("interactive ad %s: resume request%s", r.id, r.staleSuffix())
	if view := w.videoContainer; view != nil {
		w.poster.Post(func() { view.SetVisibility(uiloop.Visible) })
	}
	w.player.Resume()
}

func (r playbackRequests) OnStopAndRestartOnNextResumeRequest() {
	r.w.log("onStopAndRestartOnNextResumeRequest()")
	r.w.diag.Debugf("interactive ad %s: restart request%s", r.id, r.staleSuffix())
}

// staleSuffix marks requests from a session that is no longer active.
func (r playbackRequests) staleSuffix() string {
	if a := r.w.active; a != nil && a.id == r.id {
		return ""
	}
	return " (inactive session)"
}
