package adswrapper

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/ssai-innovid/internal/ima"
	"github.com/llehouerou/ssai-innovid/internal/ima/imatest"
	"github.com/llehouerou/ssai-innovid/internal/interactive"
	"github.com/llehouerou/ssai-innovid/internal/player"
	"github.com/llehouerou/ssai-innovid/internal/uiloop"
)

// diagLog records the messages written through the diagnostic logger.
type diagLog struct{ msgs []string }

func (d *diagLog) Log(_ log.Level, keyvals ...any) error {
	for i := 0; i+1 < len(keyvals); i += 2 {
		if keyvals[i] == log.DefaultMessageKey {
			d.msgs = append(d.msgs, fmt.Sprint(keyvals[i+1]))
		}
	}
	return nil
}

type testSurface struct{}

func (testSurface) Name() string { return "webview" }

type fixture struct {
	w        *Wrapper
	player   *player.Mock
	loader   *imatest.AdsLoader
	sm       *imatest.StreamManager
	sessions *[]*interactive.Recorder
	video    *uiloop.Container
	adUI     *uiloop.Container
	ui       *uiloop.Queue
	logs     []string
	diag     *diagLog

	loaderSettings ima.Settings
	loaderPlayer   ima.VideoStreamPlayer
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	factory, created := interactive.NewRecorderFactory()
	f := &fixture{
		player:   player.NewMock(),
		loader:   &imatest.AdsLoader{},
		sm:       &imatest.StreamManager{},
		sessions: created,
		video:    uiloop.NewContainer("video"),
		adUI:     uiloop.NewContainer("ad-ui"),
		ui:       uiloop.NewQueue(),
		diag:     &diagLog{},
	}
	req, err := ima.BuildStreamRequest(ima.VODHLS, ima.DefaultStreamIDs(), "")
	require.NoError(t, err)

	f.w = New(Deps{
		Player: f.player,
		NewLoader: func(s ima.Settings, vsp ima.VideoStreamPlayer) ima.AdsLoader {
			f.loaderSettings = s
			f.loaderPlayer = vsp
			return f.loader
		},
		Request:        req,
		VideoContainer: f.video,
		AdUIContainer:  f.adUI,
		Surface:        testSurface{},
		Poster:         f.ui,
		SessionFactory: factory,
		Logger:         f.diag,
		Options:        opts,
	})
	f.w.SetLogger(LoggerFunc(func(m string) { f.logs = append(f.logs, m) }))
	return f
}

// load simulates the SDK resolving the stream request.
func (f *fixture) load(t *testing.T) {
	t.Helper()
	f.sm.On("Init").Return().Once()
	f.w.OnAdsManagerLoaded(ima.AdsManagerLoadedEvent{StreamManager: f.sm})
	f.sm.AssertExpectations(t)
}

func innovidAd(url string) *ima.Ad {
	return &ima.Ad{
		ID:      "ad-1",
		PodInfo: &ima.AdPodInfo{PodIndex: 1, AdPosition: 1, TotalAds: 2},
		Companions: []ima.CompanionAd{
			{APIFramework: "INNOVID", ResourceValue: url},
		},
	}
}

func plainAd() *ima.Ad {
	return &ima.Ad{ID: "ad-2", PodInfo: &ima.AdPodInfo{PodIndex: 1, AdPosition: 2, TotalAds: 2}}
}

func (f *fixture) start(ad *ima.Ad) {
	f.w.OnAdEvent(ima.AdEvent{Type: ima.Started, Ad: ad})
}

func TestNew_CreatesLoaderAndInstallsPlayerCallback(t *testing.T) {
	f := newFixture(t, Options{})
	assert.NotNil(t, f.player.Callback())
	assert.Equal(t, ima.DefaultPlayerType, f.w.Settings().PlayerType)
	assert.Equal(t, ima.DefaultPlayerType, f.loaderSettings.PlayerType)
	assert.Same(t, f.w.VideoStreamPlayer(), f.loaderPlayer)
}

func TestRequestAndPlayAds(t *testing.T) {
	f := newFixture(t, Options{})
	f.loader.On("RequestStream", mock.AnythingOfType("ima.StreamRequest")).Return(nil).Once()

	require.NoError(t, f.w.RequestAndPlayAds())

	f.loader.AssertExpectations(t)
	assert.Len(t, f.loader.ErrorListeners, 1)
	assert.Len(t, f.loader.LoadedListeners, 1)
	req := f.loader.Calls[0].Arguments.Get(0).(ima.StreamRequest)
	assert.Equal(t, "googleio-highlights", req.VideoID())
}

func TestRequestAndPlayAds_WrapsError(t *testing.T) {
	f := newFixture(t, Options{})
	boom := errors.New("offline")
	f.loader.On("RequestStream", mock.Anything).Return(boom)

	err := f.w.RequestAndPlayAds()

	assert.ErrorIs(t, err, boom)
}

func TestOnAdsManagerLoaded_RegistersAndInits(t *testing.T) {
	f := newFixture(t, Options{})
	f.load(t)

	assert.Equal(t, []ima.AdErrorListener{f.w}, f.sm.ErrorListeners)
	assert.Equal(t, []ima.AdEventListener{f.w}, f.sm.EventListeners)
	sm, ok := f.w.StreamManager()
	assert.True(t, ok)
	assert.Same(t, f.sm, sm)
}

func TestStarted_InnovidCompanionCreatesSession(t *testing.T) {
	f := newFixture(t, Options{})
	f.w.SetAdvertisingID("ad-id-123")
	f.load(t)

	f.start(innovidAd("http://x/tag/get.php?tag=abc"))

	require.Len(t, *f.sessions, 1)
	s := (*f.sessions)[0]
	assert.Equal(t, "ad-id-123", s.Params.AdvertisingID)
	assert.Equal(t, "http://x/tag/get.php?tag=abc", s.Params.Companion.ResourceValue)
	assert.Equal(t, "webview", s.Params.Surface.Name())
	assert.NotNil(t, s.Events)
	assert.NotNil(t, s.Requests)
	assert.Equal(t, 1, s.Count("Start"))

	// default ad position indicator is hidden through the UI queue
	assert.Equal(t, uiloop.Visible, f.adUI.Visibility())
	f.ui.Drain()
	assert.Equal(t, uiloop.Gone, f.adUI.Visibility())

	active, ok := f.w.Session()
	assert.True(t, ok)
	assert.Same(t, s, active)
}

func TestStarted_ReplacesActiveSessionWithForcedStop(t *testing.T) {
	f := newFixture(t, Options{})
	factory, created := interactive.NewRecorderFactory()
	var stoppedBeforeCreate []bool
	f.w.newSession = func(p interactive.Params) interactive.Session {
		if n := len(*created); n > 0 {
			stoppedBeforeCreate = append(stoppedBeforeCreate, (*created)[n-1].Count("EnforceStop") == 1)
		}
		return factory(p)
	}

	f.start(innovidAd("https://a/ad.html?1"))
	f.start(innovidAd("https://b/ad.html?2"))

	require.Len(t, *created, 2)
	assert.Equal(t, []bool{true}, stoppedBeforeCreate)
	first, second := (*created)[0], (*created)[1]
	assert.Equal(t, 0, first.Count("RequestStop"))
	assert.Equal(t, 1, second.Count("Start"))
	assert.Equal(t, 0, second.Count("EnforceStop"))

	active, _ := f.w.Session()
	assert.Same(t, second, active)
}

func TestStarted_WithoutCompanionLeavesActiveSession(t *testing.T) {
	f := newFixture(t, Options{})
	f.start(innovidAd("https://a/ad.html?1"))

	f.start(plainAd())
	f.start(nil)

	require.Len(t, *f.sessions, 1)
	assert.Equal(t, 0, (*f.sessions)[0].Count("EnforceStop"))
	_, ok := f.w.Session()
	assert.True(t, ok)
}

func TestStarted_WithoutCompanionDisposesWhenConfigured(t *testing.T) {
	f := newFixture(t, Options{DisposeOnUnmatchedStart: true})
	f.start(innovidAd("https://a/ad.html?1"))

	f.start(plainAd())

	assert.Equal(t, 1, (*f.sessions)[0].Count("EnforceStop"))
	_, ok := f.w.Session()
	assert.False(t, ok)
}

func TestStarted_CompanionInspectionFailureMeansNoSession(t *testing.T) {
	f := newFixture(t, Options{})
	ad := innovidAd("https://a/ad.html?1")
	ad.CompanionErr = errors.New("companions unavailable")

	f.start(ad)

	assert.Empty(t, *f.sessions)
	f.ui.Drain()
	assert.Equal(t, uiloop.Visible, f.adUI.Visibility())
}

func TestCompleted_GracefulStopOnce(t *testing.T) {
	f := newFixture(t, Options{})
	f.start(innovidAd("https://a/ad.html?1"))

	f.w.OnAdEvent(ima.AdEvent{Type: ima.Completed})
	f.w.OnAdEvent(ima.AdEvent{Type: ima.Completed})

	s := (*f.sessions)[0]
	assert.Equal(t, 1, s.Count("RequestStop"))
	assert.Equal(t, 0, s.Count("EnforceStop"))
	_, ok := f.w.Session()
	assert.False(t, ok)
}

func TestCompleted_WithoutSessionIsNoop(t *testing.T) {
	f := newFixture(t, Options{})
	assert.NotPanics(t, func() {
		f.w.OnAdEvent(ima.AdEvent{Type: ima.Completed})
	})
}

func TestReleaseInteractiveAd_Idempotent(t *testing.T) {
	f := newFixture(t, Options{})
	f.w.ReleaseInteractiveAd()

	f.start(innovidAd("https://a/ad.html?1"))
	f.w.ReleaseInteractiveAd()
	f.w.ReleaseInteractiveAd()

	assert.Equal(t, 1, (*f.sessions)[0].Count("EnforceStop"))
	_, ok := f.w.Session()
	assert.False(t, ok)
}

func TestAdProgress_InjectsMappedState(t *testing.T) {
	tests := []struct {
		name  string
		state player.State
		want  interactive.PlaybackState
	}{
		{"playing", player.Playing, interactive.Playing},
		{"paused", player.Paused, interactive.Paused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Options{})
			f.load(t)
			f.sm.On("AdProgressInfo").Return(ima.AdProgressInfo{
				AdPosition:  1,
				TotalAds:    2,
				CurrentTime: 4 * time.Second,
				Duration:    15 * time.Second,
			})
			f.start(innovidAd("https://a/ad.html?1"))
			f.player.SetState(tt.state)

			f.w.OnAdEvent(ima.AdEvent{Type: ima.AdProgress})

			s := (*f.sessions)[0]
			require.Len(t, s.Progress, 1)
			assert.Equal(t, interactive.Progress{
				State:    tt.want,
				Current:  4 * time.Second,
				Duration: 15 * time.Second,
			}, s.Progress[0])
		})
	}
}

func TestAdProgress_SuppressedWhenStopped(t *testing.T) {
	f := newFixture(t, Options{})
	f.load(t)
	f.start(innovidAd("https://a/ad.html?1"))
	f.player.SetState(player.Stopped)

	f.w.OnAdEvent(ima.AdEvent{Type: ima.AdProgress})

	assert.Empty(t, (*f.sessions)[0].Progress)
	f.sm.AssertNotCalled(t, "AdProgressInfo")
}

func TestAdProgress_SuppressedWithoutSession(t *testing.T) {
	f := newFixture(t, Options{})
	f.load(t)
	f.player.SetState(player.Playing)

	f.w.OnAdEvent(ima.AdEvent{Type: ima.AdProgress})

	f.sm.AssertNotCalled(t, "AdProgressInfo")
}

func TestAdProgress_WithoutStreamManagerIsNoop(t *testing.T) {
	f := newFixture(t, Options{})
	f.start(innovidAd("https://a/ad.html?1"))
	f.player.SetState(player.Playing)

	assert.NotPanics(t, func() {
		f.w.OnAdEvent(ima.AdEvent{Type: ima.AdProgress})
	})
	assert.Empty(t, (*f.sessions)[0].Progress)
}

func TestOnAdError_PlaysFallback(t *testing.T) {
	f := newFixture(t, Options{})
	f.w.SetFallbackURL("https://fallback.example/video.m3u8")
	f.player.EnableControls(false)
	f.start(innovidAd("https://a/ad.html?1"))
	before := len(f.player.Calls())

	f.w.OnAdError(ima.AdErrorEvent{Error: &ima.AdError{Code: 1005, Message: "stream init failed"}})

	assert.Equal(t, "https://fallback.example/video.m3u8", f.player.StreamURL())
	assert.True(t, f.player.ControlsEnabled())
	assert.Equal(t, player.Playing, f.player.State())
	assert.Equal(t, []string{"SetStreamURL", "EnableControls", "Play"}, f.player.Calls()[before:])
	assert.Contains(t, f.logs, "Error: stream init failed\n")
	assert.Contains(t, f.logs, "Playing fallback Url\n")

	assert.Equal(t, 1, (*f.sessions)[0].Count("EnforceStop"))
	_, ok := f.w.Session()
	assert.False(t, ok)
}

func TestOnAdError_NilErrorTolerated(t *testing.T) {
	f := newFixture(t, Options{})
	assert.NotPanics(t, func() { f.w.OnAdError(ima.AdErrorEvent{}) })
	assert.Equal(t, 1, f.player.PlayCalls())
}

func TestDescribeAd(t *testing.T) {
	f := newFixture(t, Options{})

	f.w.OnAdEvent(ima.AdEvent{Type: ima.AdBreakStarted})
	f.w.OnAdEvent(ima.AdEvent{Type: ima.FirstQuartile, Ad: innovidAd("https://a/ad.html?1")})
	f.w.OnAdEvent(ima.AdEvent{Type: ima.Midpoint, Ad: &ima.Ad{ID: "x", CompanionErr: errors.New("boom")}})

	assert.Equal(t, []string{
		"Event: AD_BREAK_STARTED\n",
		"Event: FIRST_QUARTILE, Pod 1, Ad(1, 2)-- has companions: true",
		"Event: MIDPOINT, Ad x -- has companions: false",
	}, f.logs)
	assert.Empty(t, *f.sessions)
}

func TestDescribeAd_WithoutLoggerSink(t *testing.T) {
	f := newFixture(t, Options{})
	f.w.SetLogger(nil)
	assert.NotPanics(t, func() {
		f.w.OnAdEvent(ima.AdEvent{Type: ima.ThirdQuartile, Ad: plainAd()})
	})
}

func TestPlaybackRequests(t *testing.T) {
	f := newFixture(t, Options{})
	f.start(innovidAd("https://a/ad.html?1"))
	f.ui.Drain()
	f.player.SetState(player.Playing)
	req := (*f.sessions)[0].Requests

	req.OnPauseRequest()
	assert.Equal(t, player.Paused, f.player.State())
	assert.Equal(t, uiloop.Visible, f.video.Visibility(), "view change waits for the UI queue")
	f.ui.Drain()
	assert.Equal(t, uiloop.Invisible, f.video.Visibility())

	req.OnResumeRequest()
	f.ui.Drain()
	assert.Equal(t, uiloop.Visible, f.video.Visibility())
	assert.Equal(t, player.Playing, f.player.State())

	calls := len(f.player.Calls())
	req.OnStopAndRestartOnNextResumeRequest()
	assert.Len(t, f.player.Calls(), calls, "restart request is log-only")
	assert.Equal(t, 0, f.ui.Len())

	assert.Contains(t, f.logs, "onPauseRequest()")
	assert.Contains(t, f.logs, "onResumeRequest()")
	assert.Contains(t, f.logs, "onStopAndRestartOnNextResumeRequest()")
}

func TestPlaybackRequests_AfterSessionEnded(t *testing.T) {
	f := newFixture(t, Options{})
	f.start(innovidAd("https://a/ad.html?1"))
	req := (*f.sessions)[0].Requests
	f.w.OnAdEvent(ima.AdEvent{Type: ima.Completed})
	f.player.SetState(player.Playing)

	req.OnPauseRequest()

	assert.Equal(t, player.Paused, f.player.State())
}

func TestSessionEventsAreLogged(t *testing.T) {
	f := newFixture(t, Options{})
	f.start(innovidAd("https://a/ad.html?1"))

	(*f.sessions)[0].Events.OnInteractiveAdEvent(interactive.EventImpression)

	assert.Contains(t, f.logs, "onInteractiveAdEvent(IMPRESSION)")
}

func TestSessionDiagnosticsCarrySessionID(t *testing.T) {
	f := newFixture(t, Options{})
	f.start(innovidAd("https://a/ad.html?1"))
	active, ok := f.w.Session()
	require.True(t, ok)
	rec := (*f.sessions)[0]
	id := f.w.active.id.String()

	rec.Events.OnInteractiveAdEvent(interactive.EventImpression)
	rec.Requests.OnPauseRequest()
	f.w.OnAdEvent(ima.AdEvent{Type: ima.Completed})
	rec.Requests.OnResumeRequest()

	assert.Same(t, rec, active)
	assert.Contains(t, f.diag.msgs, "interactive ad "+id+": event IMPRESSION")
	assert.Contains(t, f.diag.msgs, "interactive ad "+id+": pause request")
	assert.Contains(t, f.diag.msgs, "interactive ad "+id+": resume request (inactive session)")
}
