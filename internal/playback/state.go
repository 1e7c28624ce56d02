// internal/playback/state.go
package playback

// State is the playback state as seen from the control side.
//
//	NoTrack ──Play──► Playing ◄──PlayResume── Paused
//	                     │  └──────Pause──────►  ▲
//	               buffer exhausted              │
//	                     ▼                       │
//	                EndOfTrack ──next song──► Playing
type State int

const (
	StateNoTrack State = iota
	StatePlaying
	StatePaused
	StateEndOfTrack
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNoTrack:
		return "NoTrack"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateEndOfTrack:
		return "EndOfTrack"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}
