package player

import "fmt"

// EventKind identifies an engine notification.
type EventKind int

const (
	EventPlaying EventKind = iota
	EventPaused
	EventEndOfTrack
	EventDurationUpdate
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventPlaying:
		return "Playing"
	case EventPaused:
		return "Paused"
	case EventEndOfTrack:
		return "EndOfTrack"
	case EventDurationUpdate:
		return "DurationUpdate"
	default:
		return "Unknown"
	}
}

// Event is a notification from the engine to the control side.
//
// Events are not acknowledgments. DurationUpdate values may be coalesced
// from the reader's point of view; only the latest one matters.
type Event struct {
	Kind EventKind
	// Milliseconds is the elapsed position, set for EventDurationUpdate.
	Milliseconds int64
}

func (e Event) String() string {
	if e.Kind == EventDurationUpdate {
		return fmt.Sprintf("%s(%dms)", e.Kind, e.Milliseconds)
	}
	return e.Kind.String()
}
