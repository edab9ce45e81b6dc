package adswrapper

import (
	"time"

	"github.com/llehouerou/ssai-innovid/internal/ima"
	"github.com/llehouerou/ssai-innovid/internal/player"
)

// SnapSeek returns the effective seek target for a user seek to t: the start
// of the latest unplayed break at or before t, or t itself.
func SnapSeek(sm ima.StreamManager, t time.Duration) time.Duration {
	if sm == nil {
		return t
	}
	cue, ok := sm.PreviousCuePointForStreamTime(t)
	if !ok || cue.Played || cue.Start > t {
		return t
	}
	return cue.Start
}

// playerCallback is installed on the player to intercept its UI callbacks.
type playerCallback struct {
	w *Wrapper
}

var _ player.Callback = playerCallback{}

func (c playerCallback) OnUserTextReceived(text string) {
	for _, cb := range c.w.callbacks {
		cb.OnUserTextReceived(text)
	}
}

// OnSeek keeps the viewer from skipping past an unplayed ad break.
func (c playerCallback) OnSeek(windowIndex int, position time.Duration) {
	target := SnapSeek(c.w.streamManager, position)
	if target != position {
		c.w.diag.Infof("seek to %s snapped back to ad break at %s", position, target)
	}
	c.w.player.SeekToWindow(windowIndex, target)
}
