package adswrapper

import (
	"reflect"
	"slices"
	"time"

	"github.com/llehouerou/ssai-innovid/internal/ima"
)

// fullVolume makes the stream play at the current device volume.
const fullVolume = 100

// videoStreamPlayer is the ima.VideoStreamPlayer handed to the SDK.
type videoStreamPlayer struct {
	w *Wrapper
}

var _ ima.VideoStreamPlayer = (*videoStreamPlayer)(nil)

func (p *videoStreamPlayer) LoadURL(url string, _ []map[string]string) {
	p.w.player.SetStreamURL(url)
	p.w.player.Play()
}

func (p *videoStreamPlayer) Volume() int { return fullVolume }

func (p *videoStreamPlayer) AddCallback(cb ima.VideoStreamPlayerCallback) {
	p.w.callbacks = append(p.w.callbacks, cb)
}

// RemoveCallback drops the first registration equal to cb. Callbacks whose
// dynamic type is not comparable cannot be identified and stay registered.
func (p *videoStreamPlayer) RemoveCallback(cb ima.VideoStreamPlayerCallback) {
	if !isComparable(cb) {
		return
	}
	i := slices.IndexFunc(p.w.callbacks, func(c ima.VideoStreamPlayerCallback) bool {
		return isComparable(c) && c == cb
	})
	if i >= 0 {
		p.w.callbacks = slices.Delete(p.w.callbacks, i, i+1)
	}
}

func (p *videoStreamPlayer) OnAdBreakStarted() {
	p.w.player.EnableControls(false)
	p.w.log("Ad Break Started\n")
}

func (p *videoStreamPlayer) OnAdBreakEnded() {
	p.w.player.EnableControls(true)
	p.w.log("Ad Break Ended\n")
}

func (p *videoStreamPlayer) OnAdPeriodStarted() {
	p.w.log("Ad Period Started\n")
}

func (p *videoStreamPlayer) OnAdPeriodEnded() {
	p.w.log("Ad Period Ended\n")
}

// Seek is issued by the SDK after a skipped ad; it is not intercepted.
func (p *videoStreamPlayer) Seek(t time.Duration) {
	p.w.player.SeekTo(t)
	p.w.log("seek")
}

func (p *videoStreamPlayer) ContentProgress() ima.VideoProgressUpdate {
	return ima.VideoProgressUpdate{
		Position: p.w.player.PeriodPosition(),
		Duration: p.w.player.Duration(),
	}
}

func isComparable(v any) bool {
	t := reflect.TypeOf(v)
	return t != nil && t.Comparable()
}
