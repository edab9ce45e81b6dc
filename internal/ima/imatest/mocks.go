// Package imatest provides testify mocks for the ima collaborator roles.
package imatest

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/llehouerou/ssai-innovid/internal/ima"
)

// StreamManager is a mock ima.StreamManager. Listener registrations are
// recorded and the Init/AdProgressInfo/PreviousCuePointForStreamTime calls
// go through mock.Mock.
type StreamManager struct {
	mock.Mock

	ErrorListeners []ima.AdErrorListener
	EventListeners []ima.AdEventListener
}

func (m *StreamManager) AddAdErrorListener(l ima.AdErrorListener) {
	m.ErrorListeners = append(m.ErrorListeners, l)
}

func (m *StreamManager) AddAdEventListener(l ima.AdEventListener) {
	m.EventListeners = append(m.EventListeners, l)
}

func (m *StreamManager) Init() {
	m.Called()
}

func (m *StreamManager) AdProgressInfo() ima.AdProgressInfo {
	args := m.Called()
	return args.Get(0).(ima.AdProgressInfo)
}

func (m *StreamManager) PreviousCuePointForStreamTime(t time.Duration) (ima.CuePoint, bool) {
	args := m.Called(t)
	return args.Get(0).(ima.CuePoint), args.Bool(1)
}

// AdsLoader is a mock ima.AdsLoader.
type AdsLoader struct {
	mock.Mock

	ErrorListeners  []ima.AdErrorListener
	LoadedListeners []ima.AdsLoadedListener
}

func (m *AdsLoader) AddAdErrorListener(l ima.AdErrorListener) {
	m.ErrorListeners = append(m.ErrorListeners, l)
}

func (m *AdsLoader) AddAdsLoadedListener(l ima.AdsLoadedListener) {
	m.LoadedListeners = append(m.LoadedListeners, l)
}

func (m *AdsLoader) RequestStream(req ima.StreamRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

var (
	_ ima.StreamManager = (*StreamManager)(nil)
	_ ima.AdsLoader     = (*AdsLoader)(nil)
)
