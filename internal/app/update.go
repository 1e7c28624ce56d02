package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/wavplay/internal/errmsg"
	"github.com/llehouerou/wavplay/internal/keymap"
	"github.com/llehouerou/wavplay/internal/playlist"
)

// Update handles bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.songs.Move(0, m.listHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.ctrl.Poll()
		return m, TickCmd()

	case StateChangedMsg:
		return m, WatchControllerEvents(m.sub)

	case TrackChangedMsg:
		if msg.Current != nil {
			m.setStatus("Playing " + msg.Current.String())
			m.songs.Jump(msg.Index, m.listHeight())
			m.saveSession()
			if m.nowPlaying != nil {
				if err := m.nowPlaying.Show(msg.Current); err != nil {
					log.Debug().Err(err).Msg("now playing notification")
				}
			}
		}
		return m, WatchControllerEvents(m.sub)

	case ModeChangedMsg:
		// Shuffle can also be toggled over MPRIS, so the save happens here.
		if msg.Shuffle {
			m.setStatus("Shuffle on")
		} else {
			m.setStatus("Shuffle off")
		}
		m.saveSession()
		return m, WatchControllerEvents(m.sub)

	case ErrorMsg:
		m.setError(errmsg.FormatWith(msg.Operation, msg.Path, msg.Err))
		return m, WatchControllerEvents(m.sub)

	case ControllerClosedMsg:
		return m, nil

	case StderrMsg:
		m.setError(msg.Line)
		return m, WatchStderr(m.stderr)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	height := m.listHeight()

	switch m.keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionMoveUp:
		m.songs.Move(-1, height)
		m.saveSession()
	case keymap.ActionMoveDown:
		m.songs.Move(1, height)
		m.saveSession()
	case keymap.ActionJumpStart:
		m.songs.Jump(0, height)
		m.saveSession()
	case keymap.ActionJumpEnd:
		m.songs.Jump(m.songs.Len()-1, height)
		m.saveSession()
	case keymap.ActionPlaySelected:
		m.report(errmsg.OpPlaybackStart, m.ctrl.PlayIndex(m.songs.Cursor()))
	case keymap.ActionPlayPause:
		m.report(errmsg.OpPlaybackStart, m.ctrl.Toggle())
	case keymap.ActionNextTrack:
		m.report(errmsg.OpPlaybackStart, m.ctrl.Next())
	case keymap.ActionPrevTrack:
		m.report(errmsg.OpPlaybackStart, m.ctrl.Prev())
	case keymap.ActionSeekForward:
		m.ctrl.Forward()
	case keymap.ActionSeekBack:
		m.ctrl.Rewind()
	case keymap.ActionToggleShuffle:
		m.ctrl.ToggleShuffle()
	}
	return m, nil
}

// report shows err in the status line. Load failures already arrive as an
// ErrorMsg with the song path, so only the other errors are shown here.
func (m *Model) report(op errmsg.Op, err error) {
	if err == nil {
		return
	}
	log.Debug().Err(err).Str("op", string(op)).Msg("command failed")
	if errors.Is(err, playlist.ErrEmpty) {
		m.setError(errmsg.Format(op, err))
	}
}
