package scripted

import (
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/llehouerou/ssai-innovid/internal/ima"
)

// quartile thresholds as fractions of ad duration
var quartiles = [...]struct {
	num, den int64
	event    ima.AdEventType
}{
	{1, 4, ima.FirstQuartile},
	{1, 2, ima.Midpoint},
	{3, 4, ima.ThirdQuartile},
}

type adState struct {
	started   bool
	quartiles int
	completed bool
}

type breakState struct {
	started bool
	played  bool
	ads     []adState
}

// Manager is an ima.StreamManager replaying a Timeline. Advance is called
// by the host with the current stream time; events are delivered on the
// caller's goroutine.
type Manager struct {
	request  ima.StreamRequest
	player   ima.VideoStreamPlayer
	timeline Timeline
	log      *log.Helper

	errorListeners []ima.AdErrorListener
	eventListeners []ima.AdEventListener

	initialized bool
	failed      bool
	breaks      []breakState
	progress    ima.AdProgressInfo
	now         time.Duration
}

var _ ima.StreamManager = (*Manager)(nil)

func newManager(req ima.StreamRequest, p ima.VideoStreamPlayer, tl Timeline, logger *log.Helper) *Manager {
	m := &Manager{
		request:  req,
		player:   p,
		timeline: tl,
		log:      logger,
		breaks:   make([]breakState, len(tl.Breaks)),
	}
	for i, b := range tl.Breaks {
		m.breaks[i].ads = make([]adState, len(b.Ads))
	}
	return m
}

func (m *Manager) AddAdErrorListener(l ima.AdErrorListener) {
	m.errorListeners = append(m.errorListeners, l)
}

func (m *Manager) AddAdEventListener(l ima.AdEventListener) {
	m.eventListeners = append(m.eventListeners, l)
}

// Init loads the stitched stream into the player.
func (m *Manager) Init() {
	if m.initialized {
		return
	}
	m.initialized = true
	m.player.LoadURL(m.timeline.StreamURL, nil)
	if !m.request.IsLive() {
		m.emit(ima.AdEvent{Type: ima.CuepointsChanged})
	}
}

// AdProgressInfo returns progress of the ad playing at the last Advance.
func (m *Manager) AdProgressInfo() ima.AdProgressInfo { return m.progress }

// PreviousCuePointForStreamTime returns the last break starting at or before t.
func (m *Manager) PreviousCuePointForStreamTime(t time.Duration) (ima.CuePoint, bool) {
	for i := len(m.timeline.Breaks) - 1; i >= 0; i-- {
		b := m.timeline.Breaks[i]
		if b.Start <= t {
			return ima.CuePoint{Start: b.Start, End: b.End(), Played: m.breaks[i].played}, true
		}
	}
	return ima.CuePoint{}, false
}

// CuePoints returns every break on the timeline.
func (m *Manager) CuePoints() []ima.CuePoint {
	out := make([]ima.CuePoint, len(m.timeline.Breaks))
	for i, b := range m.timeline.Breaks {
		out[i] = ima.CuePoint{Start: b.Start, End: b.End(), Played: m.breaks[i].played}
	}
	return out
}

// Done reports whether the stream reached its end or failed.
func (m *Manager) Done() bool {
	return m.failed || m.now >= m.timeline.Duration
}

// InBreak reports whether the last Advance landed inside an ad break.
func (m *Manager) InBreak() bool {
	for i := range m.breaks {
		if m.breaks[i].started && !m.breaks[i].played {
			return true
		}
	}
	return false
}

// Fail reports err to the error listeners and stops further events.
func (m *Manager) Fail(err *ima.AdError) {
	if m.failed {
		return
	}
	m.failed = true
	event := ima.AdErrorEvent{Error: err}
	for _, l := range m.errorListeners {
		l.OnAdError(event)
	}
}

// Advance emits every lifecycle event due at stream time t.
func (m *Manager) Advance(t time.Duration) {
	if !m.initialized || m.failed {
		return
	}
	m.now = t

	if tl := m.timeline; tl.FailWith != "" && tl.FailAt > 0 && t >= tl.FailAt {
		m.Fail(&ima.AdError{Code: tl.FailCode, Message: tl.FailWith})
		return
	}

	for i := range m.timeline.Breaks {
		if m.failed {
			return
		}
		m.advanceBreak(i, t)
	}
}

func (m *Manager) advanceBreak(i int, t time.Duration) {
	b := m.timeline.Breaks[i]
	st := &m.breaks[i]
	if st.played || t < b.Start {
		return
	}

	if !st.started {
		st.started = true
		m.player.OnAdBreakStarted()
		if m.request.Format() == ima.FormatDASH && !m.request.IsLive() {
			m.player.OnAdPeriodStarted()
		}
		m.emit(ima.AdEvent{Type: ima.AdBreakStarted})
	}

	adStart := b.Start
	for j, ad := range b.Ads {
		if t < adStart {
			break
		}
		m.advanceAd(i, j, ad, adStart, t)
		adStart += ad.Duration
	}

	if t >= b.End() {
		st.played = true
		m.emit(ima.AdEvent{Type: ima.AdBreakEnded})
		if m.request.Format() == ima.FormatDASH && !m.request.IsLive() {
			m.player.OnAdPeriodEnded()
		}
		m.player.OnAdBreakEnded()
	}
}

func (m *Manager) advanceAd(i, j int, def Ad, start, t time.Duration) {
	st := &m.breaks[i].ads[j]
	if st.completed {
		return
	}
	ad := &ima.Ad{
		ID:         def.ID,
		Title:      def.Title,
		Duration:   def.Duration,
		PodInfo:    &ima.AdPodInfo{PodIndex: i, AdPosition: j + 1, TotalAds: len(m.timeline.Breaks[i].Ads)},
		Companions: def.Companions,
	}
	elapsed := min(t-start, def.Duration)

	m.progress = ima.AdProgressInfo{
		AdPosition:  j + 1,
		TotalAds:    len(m.timeline.Breaks[i].Ads),
		CurrentTime: elapsed,
		Duration:    def.Duration,
	}

	if !st.started {
		st.started = true
		m.emit(ima.AdEvent{Type: ima.Started, Ad: ad})
	}
	for st.quartiles < len(quartiles) {
		q := quartiles[st.quartiles]
		if int64(elapsed)*q.den < int64(def.Duration)*q.num {
			break
		}
		st.quartiles++
		m.emit(ima.AdEvent{Type: q.event, Ad: ad})
	}
	if elapsed >= def.Duration {
		st.completed = true
		m.emit(ima.AdEvent{Type: ima.Completed, Ad: ad})
		return
	}
	m.emit(ima.AdEvent{Type: ima.AdProgress, Ad: ad})
}

func (m *Manager) emit(e ima.AdEvent) {
	m.log.Debugf("event %s", e.Type)
	for _, l := range m.eventListeners {
		l.OnAdEvent(e)
	}
}
