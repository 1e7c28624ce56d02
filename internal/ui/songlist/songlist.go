// Package songlist renders the playlist as a scrollable, selectable list.
package songlist

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/wavplay/internal/playlist"
	"github.com/llehouerou/wavplay/internal/ui/render"
	"github.com/llehouerou/wavplay/internal/ui/styles"
)

// scrollMargin is how many rows stay visible above and below the cursor.
const scrollMargin = 2

// Model holds the songs, the cursor and the scroll offset.
// The viewport height is passed in rather than stored since it changes with
// the terminal size.
type Model struct {
	songs  []playlist.Song
	cursor int
	offset int
}

// New creates a list with the cursor on the first song.
func New(songs []playlist.Song) Model {
	return Model{songs: songs}
}

// Len returns the number of songs.
func (m Model) Len() int { return len(m.songs) }

// Cursor returns the selected index.
func (m Model) Cursor() int { return m.cursor }

// Selected returns the song under the cursor, or nil when the list is empty.
func (m Model) Selected() *playlist.Song {
	if m.cursor >= len(m.songs) {
		return nil
	}
	return &m.songs[m.cursor]
}

// IndexOf returns the index of the song at path, or -1.
func (m Model) IndexOf(path string) int {
	for i := range m.songs {
		if m.songs[i].Path == path {
			return i
		}
	}
	return -1
}

// Offset returns the first visible index.
func (m Model) Offset() int { return m.offset }

// Move moves the cursor by delta and scrolls to keep it visible.
func (m *Model) Move(delta, height int) {
	m.Jump(m.cursor+delta, height)
}

// Jump puts the cursor on index i, clamped to the list.
func (m *Model) Jump(i, height int) {
	if len(m.songs) == 0 {
		return
	}
	m.cursor = min(max(i, 0), len(m.songs)-1)
	m.ensureVisible(height)
}

func (m *Model) ensureVisible(height int) {
	if height <= 0 {
		return
	}
	margin := min(scrollMargin, (height-1)/2)

	if m.cursor < m.offset+margin {
		m.offset = max(m.cursor-margin, 0)
	}
	if m.cursor >= m.offset+height-margin {
		m.offset = m.cursor - height + margin + 1
	}
	m.offset = min(max(m.offset, 0), max(len(m.songs)-height, 0))
}

// VisibleRange returns the [start, end) indexes shown in height rows.
func (m Model) VisibleRange(height int) (start, end int) {
	if len(m.songs) == 0 || height <= 0 {
		return 0, 0
	}
	return m.offset, min(m.offset+height, len(m.songs))
}

// View renders height rows of width cells. playing is the index of the
// current song, or -1.
func (m Model) View(width, height, playing int) string {
	if len(m.songs) == 0 {
		return styles.T().S().Muted.Render(render.Fit("No .wav files found", width))
	}

	s := styles.T().S()
	start, end := m.VisibleRange(height)
	rows := make([]string, 0, height)
	for i := start; i < end; i++ {
		line := m.row(i, width, i == playing)
		switch {
		case i == m.cursor && i == playing:
			line = s.Cursor.Inherit(s.Playing).Render(line)
		case i == m.cursor:
			line = s.Cursor.Render(line)
		case i == playing:
			line = s.Playing.Render(line)
		default:
			line = s.Base.Render(line)
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

// row lays out "▶ Title - Artist ... mm:ss" in exactly width cells.
func (m Model) row(i, width int, playing bool) string {
	song := m.songs[i]

	marker := "  "
	if playing {
		marker = "▶ "
	}
	dur := song.Duration.String()

	nameWidth := width - runewidth.StringWidth(marker) - len(dur) - 1
	if nameWidth < 1 {
		return render.Fit(marker+song.String(), width)
	}
	return marker + render.Fit(song.String(), nameWidth) + " " + dur
}
