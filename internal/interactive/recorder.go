package interactive

import "time"

// Recorder is a test double that records each call made on it.
type Recorder struct {
	Params   Params
	Events   EventListener
	Requests PlaybackRequestListener

	Calls    []string
	Progress []Progress
}

// NewRecorderFactory returns a Factory and a pointer to the slice of every
// Recorder it created, in creation order.
func NewRecorderFactory() (Factory, *[]*Recorder) {
	created := &[]*Recorder{}
	f := func(p Params) Session {
		r := &Recorder{Params: p}
		*created = append(*created, r)
		return r
	}
	return f, created
}

func (r *Recorder) SetEventListener(l EventListener) {
	r.Calls = append(r.Calls, "SetEventListener")
	r.Events = l
}

func (r *Recorder) SetPlaybackRequestListener(l PlaybackRequestListener) {
	r.Calls = append(r.Calls, "SetPlaybackRequestListener")
	r.Requests = l
}

func (r *Recorder) Start() { r.Calls = append(r.Calls, "Start") }

func (r *Recorder) RequestStop() { r.Calls = append(r.Calls, "RequestStop") }

func (r *Recorder) EnforceStop() { r.Calls = append(r.Calls, "EnforceStop") }

func (r *Recorder) InjectPlaybackProgressInfo(state PlaybackState, current, duration time.Duration) {
	r.Calls = append(r.Calls, "InjectPlaybackProgressInfo")
	r.Progress = append(r.Progress, Progress{State: state, Current: current, Duration: duration})
}

// Count returns how many times the named method was called.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c == name {
			n++
		}
	}
	return n
}

var _ Session = (*Recorder)(nil)
