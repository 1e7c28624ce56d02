package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavplay/internal/errmsg"
	"github.com/llehouerou/wavplay/internal/keymap"
	"github.com/llehouerou/wavplay/internal/notify"
	"github.com/llehouerou/wavplay/internal/playback"
	"github.com/llehouerou/wavplay/internal/playlist"
	"github.com/llehouerou/wavplay/internal/state"
	"github.com/llehouerou/wavplay/internal/ui/songlist"
)

// SessionStore persists the selection between runs.
type SessionStore interface {
	SaveSession(s state.Session)
}

// Model is the root bubbletea model.
type Model struct {
	ctrl   *playback.Controller
	sub    *playback.Subscription
	stderr <-chan string

	nowPlaying  *notify.NowPlaying
	session     SessionStore
	playlistDir string

	keys  *keymap.Resolver
	help  help.Model
	songs songlist.Model

	width  int
	height int

	status    string
	statusErr bool
}

// Option configures a Model.
type Option func(*Model)

// WithStderr shows lines from ch in the status line.
func WithStderr(ch <-chan string) Option {
	return func(m *Model) { m.stderr = ch }
}

// WithNowPlaying shows a desktop notification on every song change.
func WithNowPlaying(n *notify.NowPlaying) Option {
	return func(m *Model) { m.nowPlaying = n }
}

// WithSession saves the selection to store under playlistDir and, if
// restore is set, puts the cursor back on the song it names.
func WithSession(store SessionStore, playlistDir string, restore *state.Session) Option {
	return func(m *Model) {
		m.session = store
		m.playlistDir = playlistDir
		if restore == nil {
			return
		}
		if i := m.songs.IndexOf(restore.SelectedPath); i >= 0 {
			m.songs.Jump(i, m.listHeight())
		}
	}
}

// WithSkipped reports files that were left out of the playlist.
func WithSkipped(skipped []playlist.Skipped) Option {
	return func(m *Model) {
		switch len(skipped) {
		case 0:
		case 1:
			m.setError(errmsg.FormatWith(errmsg.OpPlaylistSkip, skipped[0].Path, skipped[0].Err))
		default:
			m.setError(fmt.Sprintf("Skipped %d unreadable files (see log)", len(skipped)))
		}
	}
}

// New creates the model and subscribes to the controller.
func New(ctrl *playback.Controller, opts ...Option) Model {
	m := Model{
		ctrl:  ctrl,
		sub:   ctrl.Subscribe(),
		keys:  keymap.NewResolver(keymap.Bindings),
		help:  help.New(),
		songs: songlist.New(ctrl.Songs()),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts polling and event watchers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		TickCmd(),
		WatchControllerEvents(m.sub),
		WatchStderr(m.stderr),
	)
}

// saveSession records the selection and shuffle mode.
func (m *Model) saveSession() {
	if m.session == nil {
		return
	}
	s := state.Session{PlaylistDir: m.playlistDir, Shuffle: m.ctrl.Shuffled()}
	if song := m.songs.Selected(); song != nil {
		s.SelectedPath = song.Path
	}
	m.session.SaveSession(s)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}
