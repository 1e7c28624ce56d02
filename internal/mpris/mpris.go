//go:build linux

// Package mpris exposes the player on the session bus so desktop media keys
// and applets can control it.
package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/wavplay/internal/playback"
	"github.com/llehouerou/wavplay/internal/playlist"
)

const busName = "wavplay"

// seekJump is the smallest position change between two DurationUpdates that
// is reported as a seek. Normal playback advances one second at a time.
const seekJump = 1500 * time.Millisecond

// Controller is the part of playback.Controller the adapter drives.
type Controller interface {
	State() playback.State
	Current() *playlist.Song
	Progress() playback.Progress
	Songs() []playlist.Song
	Shuffled() bool
	Next() error
	Prev() error
	Toggle() error
	Forward()
	Rewind()
	ToggleShuffle() bool
	Subscribe() *playback.Subscription
}

// playerEvents is the signal side of the MPRIS player interface.
type playerEvents interface {
	OnPlayPause() error
	OnTitle() error
	OnSeek(position types.Microseconds) error
	OnOptions() error
}

var _ Controller = (*playback.Controller)(nil)

// Adapter connects a Controller to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(ctrl Controller) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer(busName, &rootAdapter{}, &playerAdapter{ctrl: ctrl}),
	}

	ev := events.NewEventHandler(a.server)

	go func() {
		if err := a.server.Listen(); err != nil {
			log.Warn().Err(err).Msg("mpris server stopped")
		}
	}()
	if sub := ctrl.Subscribe(); sub != nil {
		go watch(sub, ev.Player)
	}

	return a, nil
}

// watch emits PropertiesChanged and Seeked signals for controller events
// until the subscription ends.
func watch(sub *playback.Subscription, ev playerEvents) {
	var last time.Duration
	for {
		var err error
		select {
		case <-sub.StateChanged:
			err = ev.OnPlayPause()
		case <-sub.TrackChanged:
			last = 0
			err = ev.OnTitle()
		case <-sub.ModeChanged:
			err = ev.OnOptions()
		case p := <-sub.PositionChanged:
			if seeked(last, p.Position) {
				err = ev.OnSeek(types.Microseconds(p.Position.Microseconds()))
			}
			last = p.Position
		case <-sub.Done:
			return
		}
		if err != nil {
			log.Debug().Err(err).Msg("mpris signal")
		}
	}
}

// seeked reports whether moving from prev to cur was a jump rather than
// playback. Rewinds always count.
func seeked(prev, cur time.Duration) bool {
	d := cur - prev
	return d < 0 || d >= seekJump
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "wavplay", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/wav", "audio/x-wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the
// shuffle extension.
type playerAdapter struct {
	ctrl Controller
}

func (p *playerAdapter) Next() error {
	return p.ctrl.Next()
}

func (p *playerAdapter) Previous() error {
	return p.ctrl.Prev()
}

func (p *playerAdapter) Pause() error {
	if p.ctrl.State() != playback.StatePlaying {
		return nil
	}
	return p.ctrl.Toggle()
}

func (p *playerAdapter) PlayPause() error {
	return p.ctrl.Toggle()
}

// Stop pauses: the engine has no stopped state of its own.
func (p *playerAdapter) Stop() error {
	return p.Pause()
}

func (p *playerAdapter) Play() error {
	if p.ctrl.State() == playback.StatePlaying {
		return nil
	}
	return p.ctrl.Toggle()
}

// Seek moves by one skip step in the direction of offset.
func (p *playerAdapter) Seek(offset types.Microseconds) error {
	switch {
	case offset > 0:
		p.ctrl.Forward()
	case offset < 0:
		p.ctrl.Rewind()
	}
	return nil
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil // Not supported
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.ctrl.State() {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	song := p.ctrl.Current()
	if song == nil {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(song.Path)),
		Length:  types.Microseconds(song.Duration.Std().Microseconds()),
		Title:   song.Title,
	}
	if song.Artist != "" {
		meta.Artist = []string{song.Artist}
	}
	if artPath := playlist.FindCover(song.Path); artPath != "" {
		meta.ArtUrl = "file://" + artPath
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.ctrl.Progress().Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

// The play order wraps, so next and previous are always available.
func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.hasSongs(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.hasSongs(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.hasSongs(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.ctrl.State().IsActive(), nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.ctrl.Shuffled(), nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	if p.ctrl.Shuffled() != shuffle {
		p.ctrl.ToggleShuffle()
	}
	return nil
}

func (p *playerAdapter) hasSongs() bool {
	return len(p.ctrl.Songs()) > 0
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
