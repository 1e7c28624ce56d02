package playlist

import (
	"math/rand/v2"
	"slices"
)

// Next advances to the next song in play order, wrapping to the first.
// Returns nil if the playlist is empty.
func (p *Playlist) Next() *Song {
	if p.IsEmpty() {
		return nil
	}
	p.pos = p.nextPos()
	return p.Current()
}

// Prev moves to the previous song in play order, wrapping to the last.
// Returns nil if the playlist is empty.
func (p *Playlist) Prev() *Song {
	if p.IsEmpty() {
		return nil
	}
	if p.pos <= 0 {
		p.pos = len(p.order) - 1
	} else {
		p.pos--
	}
	return p.Current()
}

// PeekNext returns the song Next would return without moving.
func (p *Playlist) PeekNext() *Song {
	if p.IsEmpty() {
		return nil
	}
	return &p.songs[p.order[p.nextPos()]]
}

func (p *Playlist) nextPos() int {
	if p.pos+1 >= len(p.order) {
		return 0
	}
	return p.pos + 1
}

// JumpTo makes the song at file index i current.
// Returns nil if i is out of bounds.
func (p *Playlist) JumpTo(i int) *Song {
	if i < 0 || i >= len(p.songs) {
		return nil
	}
	p.pos = slices.Index(p.order, i)
	return p.Current()
}

// Shuffle randomises the play order. The current song keeps playing and is
// moved to the front so every other song follows it once.
func (p *Playlist) Shuffle(r *rand.Rand) {
	cur := p.CurrentIndex()
	r.Shuffle(len(p.order), func(i, j int) {
		p.order[i], p.order[j] = p.order[j], p.order[i]
	})
	if cur >= 0 {
		at := slices.Index(p.order, cur)
		p.order[0], p.order[at] = p.order[at], p.order[0]
		p.pos = 0
	}
	p.shuffled = true
}

// Unshuffle restores file order, keeping the current song current.
func (p *Playlist) Unshuffle() {
	cur := p.CurrentIndex()
	slices.Sort(p.order)
	if cur >= 0 {
		p.pos = cur
	}
	p.shuffled = false
}

// ToggleShuffle switches between shuffled and file order and returns the new
// shuffle state.
func (p *Playlist) ToggleShuffle(r *rand.Rand) bool {
	if p.shuffled {
		p.Unshuffle()
	} else {
		p.Shuffle(r)
	}
	return p.shuffled
}
