// Package app contains the bubbletea model for the player TUI.
package app

import (
	"time"

	"github.com/llehouerou/wavplay/internal/playback"
)

// TickMsg drives event polling and progress redraws.
type TickMsg time.Time

// StateChangedMsg is sent when the controller's playback state changes.
type StateChangedMsg playback.StateChange

// TrackChangedMsg is sent when a new song starts.
type TrackChangedMsg playback.TrackChange

// ModeChangedMsg is sent when shuffle is toggled.
type ModeChangedMsg playback.ModeChange

// ErrorMsg carries a playback error to display.
type ErrorMsg playback.ErrorEvent

// ControllerClosedMsg is sent once the controller has been closed.
type ControllerClosedMsg struct{}

// StderrMsg carries a line written to stderr by the audio backend.
type StderrMsg struct {
	Line string
}
