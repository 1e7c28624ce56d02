// Package playback drives the engine from the control side: it loads songs,
// issues transport commands and turns engine events into state, progress and
// playlist advancement.
package playback

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/llehouerou/wavplay/internal/errmsg"
	"github.com/llehouerou/wavplay/internal/player"
	"github.com/llehouerou/wavplay/internal/playlist"
	"github.com/llehouerou/wavplay/internal/queue"
)

// Controller owns the producer end of the command queue and the consumer end
// of the event queue. Its methods may be called from any goroutine.
type Controller struct {
	mu sync.Mutex

	commands *queue.SPSC[player.Command]
	events   *queue.SPSC[player.Event]
	list     *playlist.Playlist
	loader   *Loader
	rng      *rand.Rand
	prefetch bool

	state    State
	current  *playlist.Song
	progress Progress

	// Commands that the engine acknowledges with Playing or Paused, oldest
	// first. While a Play is among them, position and end-of-track events
	// still belong to the previous buffer.
	acks         []player.CommandKind
	pendingPlays int

	subs   []*Subscription
	closed bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithPrefetch loads the next song in the background while the current one
// plays.
func WithPrefetch(enabled bool) Option {
	return func(c *Controller) { c.prefetch = enabled }
}

// WithRand sets the random source used for shuffling.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) { c.rng = r }
}

// New creates a controller with no track playing.
func New(q player.Queues, list *playlist.Playlist, loader *Loader, opts ...Option) *Controller {
	c := &Controller{
		commands: q.Commands,
		events:   q.Events,
		list:     list,
		loader:   loader,
		state:    StateNoTrack,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return c
}

// State returns the playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Progress returns the elapsed position of the current song.
func (c *Controller) Progress() Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// Current returns a copy of the song last sent to the engine, or nil.
func (c *Controller) Current() *playlist.Song {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	s := *c.current
	return &s
}

// CurrentIndex returns the playlist index of the current song (-1 if none).
func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.CurrentIndex()
}

// Songs returns the playlist songs in file order.
func (c *Controller) Songs() []playlist.Song {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Songs()
}

// Shuffled reports whether the play order is shuffled.
func (c *Controller) Shuffled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Shuffled()
}

// PlayIndex loads the song at playlist index i and starts it.
func (c *Controller) PlayIndex(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.list.IsEmpty() {
		return playlist.ErrEmpty
	}
	song := c.list.JumpTo(i)
	if song == nil {
		return fmt.Errorf("song index %d out of range [0, %d)", i, c.list.Len())
	}
	return c.playLocked(song)
}

// Next starts the next song in play order.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	song := c.list.Next()
	if song == nil {
		return playlist.ErrEmpty
	}
	return c.playLocked(song)
}

// Prev starts the previous song in play order.
func (c *Controller) Prev() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	song := c.list.Prev()
	if song == nil {
		return playlist.ErrEmpty
	}
	return c.playLocked(song)
}

// Toggle pauses when playing and resumes when paused. With nothing loaded it
// starts the next song in play order.
func (c *Controller) Toggle() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StatePlaying:
		c.push(player.Pause)
		c.setState(StatePaused)
		return nil
	case StatePaused:
		c.push(player.PlayResume)
		c.setState(StatePlaying)
		return nil
	default:
		song := c.list.Next()
		if song == nil {
			return playlist.ErrEmpty
		}
		return c.playLocked(song)
	}
}

// Forward skips ahead in the current song.
func (c *Controller) Forward() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.IsActive() {
		c.push(player.Forward)
	}
}

// Rewind skips back in the current song.
func (c *Controller) Rewind() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.IsActive() {
		c.push(player.Rewind)
	}
}

// ToggleShuffle switches the play order and returns the new shuffle state.
func (c *Controller) ToggleShuffle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	shuffled := c.list.ToggleShuffle(c.rng)
	log.Info().Bool("shuffle", shuffled).Msg("play order changed")
	c.prefetchNextLocked()
	c.publish(func(s *Subscription) { s.sendMode(ModeChange{Shuffle: shuffled}) })
	return shuffled
}

// Poll drains the event queue and returns the number of events handled.
// When the current song ends the next one in play order is started.
func (c *Controller) Poll() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for {
		ev, ok := c.events.TryPop()
		if !ok {
			return n
		}
		n++
		c.handle(ev)
	}
}

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	sub := newSubscription()
	if c.closed {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Close ends all subscriptions. The engine is left as is.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	return nil
}

func (c *Controller) handle(ev player.Event) {
	switch ev.Kind {
	case player.EventPlaying, player.EventPaused:
		if len(c.acks) > 0 {
			if c.acks[0] == player.CommandPlay {
				c.pendingPlays--
			}
			c.acks = c.acks[1:]
		}
		// Only the answer to the latest command decides the state.
		if len(c.acks) > 0 {
			return
		}
		if ev.Kind == player.EventPlaying {
			c.setState(StatePlaying)
		} else {
			c.setState(StatePaused)
		}
	case player.EventDurationUpdate:
		if c.pendingPlays > 0 {
			return
		}
		c.progress.Advance(ev.Milliseconds)
		pos := c.progress.Position()
		c.publish(func(s *Subscription) { s.sendPosition(pos) })
	case player.EventEndOfTrack:
		if c.pendingPlays > 0 {
			return
		}
		log.Debug().Str("path", c.currentPath()).Msg("end of track")
		c.setState(StateEndOfTrack)
		c.advanceLocked()
	}
}

func (c *Controller) advanceLocked() {
	song := c.list.Next()
	if song == nil {
		c.current = nil
		c.setState(StateNoTrack)
		return
	}
	if err := c.playLocked(song); err != nil {
		c.current = nil
		c.progress.Reset()
		c.setState(StateNoTrack)
	}
}

// playLocked loads song and sends it to the engine. On failure nothing is
// sent and the engine keeps its current buffer.
func (c *Controller) playLocked(song *playlist.Song) error {
	track, err := c.loader.Load(song.Path)
	if err != nil {
		log.Error().Err(err).Str("path", song.Path).Msg("load failed")
		c.publish(func(s *Subscription) {
			s.sendError(ErrorEvent{Operation: errmsg.OpTrackLoad, Path: song.Path, Err: err})
		})
		return fmt.Errorf("play %s: %w", song.Path, err)
	}

	c.push(player.Play(track.Buffer))

	prev := c.current
	c.current = song
	c.progress.Reset()
	c.setState(StatePlaying)

	log.Info().
		Str("path", song.Path).
		Str("title", song.Title).
		Stringer("duration", track.Duration).
		Msg("playing")

	change := TrackChange{Previous: prev, Current: song, Index: c.list.CurrentIndex()}
	c.publish(func(s *Subscription) { s.sendTrack(change) })

	c.prefetchNextLocked()
	return nil
}

func (c *Controller) prefetchNextLocked() {
	if !c.prefetch || c.current == nil {
		return
	}
	next := c.list.PeekNext()
	if next == nil || next.Path == c.current.Path {
		return
	}
	c.loader.Prefetch(next.Path)
}

func (c *Controller) push(cmd player.Command) {
	c.commands.Push(cmd)
	switch cmd.Kind() {
	case player.CommandPlay:
		c.pendingPlays++
		c.acks = append(c.acks, player.CommandPlay)
	case player.CommandPlayResume, player.CommandPause:
		c.acks = append(c.acks, cmd.Kind())
	}
}

func (c *Controller) setState(s State) {
	if s == c.state {
		return
	}
	change := StateChange{Previous: c.state, Current: s}
	c.state = s
	c.publish(func(sub *Subscription) { sub.sendState(change) })
}

func (c *Controller) publish(send func(*Subscription)) {
	for _, sub := range c.subs {
		send(sub)
	}
}

func (c *Controller) currentPath() string {
	if c.current == nil {
		return ""
	}
	return c.current.Path
}
