// Package playerbar renders the now-playing line and progress bar.
package playerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/wavplay/internal/playback"
	"github.com/llehouerou/wavplay/internal/playlist"
	"github.com/llehouerou/wavplay/internal/ui/render"
	"github.com/llehouerou/wavplay/internal/ui/styles"
)

// Height is the rendered height: two content rows plus the border.
const Height = 4

// minBarWithInfo is the narrowest bar that still leaves room for format info.
const minBarWithInfo = 30

// State holds everything needed to render the player bar.
type State struct {
	Playing  bool
	Paused   bool
	Shuffle  bool
	Song     *playlist.Song
	Progress playback.Progress
}

// NewState snapshots the controller for rendering.
func NewState(c *playback.Controller) State {
	st := c.State()
	return State{
		Playing:  st == playback.StatePlaying,
		Paused:   st == playback.StatePaused,
		Shuffle:  c.Shuffled(),
		Song:     c.Current(),
		Progress: c.Progress(),
	}
}

// Render returns the player bar for the given total width.
func Render(s State, width int) string {
	t := styles.T()
	inner := max(width-6, 0)

	flags := renderFlags(s)
	titleWidth := max(inner-lipgloss.Width(flags)-1, 0)
	var title string
	if s.Song == nil || (!s.Playing && !s.Paused) {
		title = t.S().Muted.Render(render.Truncate("Nothing playing", titleWidth))
	} else {
		title = t.S().Title.Render(render.Truncate(s.Song.String(), titleWidth))
	}
	top := render.Row(title, flags, inner)

	return t.S().Panel.Padding(0, 2).Width(width - 2).Render(top + "\n" + renderBottom(s, inner))
}

func renderBottom(s State, width int) string {
	if s.Song == nil {
		return RenderProgressBar("00:00", "00:00", 0, width, false)
	}

	info := FormatInfo(s.Song)
	barWidth := width
	if info != "" && width-lipgloss.Width(info)-2 >= minBarWithInfo {
		barWidth = width - lipgloss.Width(info) - 2
	} else {
		info = ""
	}

	bar := RenderProgressBar(
		s.Progress.String(), s.Song.Duration.String(),
		s.Progress.Ratio(s.Song.Duration), barWidth, !s.Paused,
	)
	if info == "" {
		return bar
	}
	return render.Row(bar, styles.T().S().Subtle.Render(info), width)
}

func renderFlags(s State) string {
	var parts []string
	switch {
	case s.Playing:
		parts = append(parts, "playing")
	case s.Paused:
		parts = append(parts, "paused")
	default:
		parts = append(parts, "stopped")
	}
	if s.Shuffle {
		parts = append(parts, "shuffle")
	}
	return strings.Join(parts, " · ")
}

// FormatInfo describes the song's audio format, e.g. "44.1 kHz · stereo · 10 MB".
func FormatInfo(s *playlist.Song) string {
	f := s.Format
	if f.SampleRate == 0 {
		return ""
	}

	rate := fmt.Sprintf("%s kHz", humanize.FtoaWithDigits(float64(f.SampleRate)/1000, 1))
	ch := "mono"
	switch f.Channels {
	case 1:
	case 2:
		ch = "stereo"
	default:
		ch = fmt.Sprintf("%d ch", f.Channels)
	}

	size := uint64(s.Duration.Milliseconds) * uint64(f.BytesPerSecond()) / 1000
	return strings.Join([]string{rate, ch, humanize.Bytes(size)}, " · ")
}
