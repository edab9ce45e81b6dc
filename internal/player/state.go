// internal/player/state.go
package player

// State is the coarse playback state of the stream player.
//
// Play starts the loaded URL from zero in any state, including Playing,
// and is ignored until a URL is set.
// Pause only applies while Playing and Resume only while Paused; Stop
// returns to Stopped from anywhere. Other calls leave the state unchanged.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a stream is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanResume returns true if the state allows resuming.
func (s State) CanResume() bool {
	return s == Paused
}
