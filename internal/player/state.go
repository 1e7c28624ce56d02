// internal/player/state.go
package player

// State is the engine's transport state.
//
//	┌──────────┐     Pause      ┌──────────┐
//	│  Playing │ ──────────────▶│  Paused  │
//	└──────────┘                └──────────┘
//	     ▲                            │
//	     └────── Play / PlayResume ───┘
//
// Running out of buffer does not change State: the engine drops the buffer
// and reports EndOfTrack but stays Playing until the next Pause, so a late
// PlayResume is harmless.
type State int

const (
	Paused State = iota
	Playing
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Paused:
		return "Paused"
	case Playing:
		return "Playing"
	default:
		return "Unknown"
	}
}
