package playback

import (
	"time"

	"github.com/llehouerou/wavplay/internal/errmsg"
	"github.com/llehouerou/wavplay/internal/playlist"
)

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when a Play command for a different song is issued.
//
// Emitted by:
//   - PlayIndex, Next and Prev
//   - the automatic advance that follows EndOfTrack
//
// NOT emitted by:
//   - Toggle, Forward, Rewind: the song does not change
//   - a failed load: an ErrorEvent is sent instead
type TrackChange struct {
	Previous *playlist.Song
	Current  *playlist.Song
	Index    int
}

// PositionChange is emitted when the engine reports a new elapsed position.
type PositionChange struct {
	Position time.Duration
}

// ModeChange is emitted when shuffle is toggled.
type ModeChange struct {
	Shuffle bool
}

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Operation errmsg.Op
	Path      string // song path if applicable
	Err       error
}

// Message renders the error for display.
func (e ErrorEvent) Message() string {
	return errmsg.FormatWith(e.Operation, e.Path, e.Err)
}
