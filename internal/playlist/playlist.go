package playlist

import (
	"fmt"

	"github.com/llehouerou/wavplay/internal/wav"
)

// Song is a playable WAV file and the metadata taken from its name and header.
type Song struct {
	Path     string
	Artist   string
	Title    string
	Format   wav.Format
	Duration wav.Duration
}

// String renders "Title - Artist", or just the title when the artist is unknown.
func (s Song) String() string {
	if s.Artist == "" {
		return s.Title
	}
	return fmt.Sprintf("%s - %s", s.Title, s.Artist)
}

// Playlist holds songs in file order plus a play order over them.
type Playlist struct {
	songs    []Song
	order    []int // song indexes in play order
	pos      int   // position in order, -1 before the first play
	shuffled bool
}

// New creates a playlist playing songs in the given order.
func New(songs ...Song) *Playlist {
	p := &Playlist{
		songs: append([]Song(nil), songs...),
		order: make([]int, len(songs)),
		pos:   -1,
	}
	for i := range p.order {
		p.order[i] = i
	}
	return p
}

// Len returns the number of songs.
func (p *Playlist) Len() int { return len(p.songs) }

// IsEmpty returns true if the playlist has no songs.
func (p *Playlist) IsEmpty() bool { return len(p.songs) == 0 }

// Songs returns a copy of all songs in file order.
func (p *Playlist) Songs() []Song {
	result := make([]Song, len(p.songs))
	copy(result, p.songs)
	return result
}

// Song returns the song at file index i, or nil if out of bounds.
func (p *Playlist) Song(i int) *Song {
	if i < 0 || i >= len(p.songs) {
		return nil
	}
	return &p.songs[i]
}

// Order returns a copy of the play order as song indexes.
func (p *Playlist) Order() []int {
	result := make([]int, len(p.order))
	copy(result, p.order)
	return result
}

// Current returns the current song, or nil if nothing has been played.
func (p *Playlist) Current() *Song {
	if p.pos < 0 || p.pos >= len(p.order) {
		return nil
	}
	return &p.songs[p.order[p.pos]]
}

// CurrentIndex returns the file index of the current song (-1 if none).
func (p *Playlist) CurrentIndex() int {
	if p.pos < 0 || p.pos >= len(p.order) {
		return -1
	}
	return p.order[p.pos]
}

// Shuffled reports whether the play order is shuffled.
func (p *Playlist) Shuffled() bool { return p.shuffled }
