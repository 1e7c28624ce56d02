package app

import (
	"strconv"
	"strings"

	"github.com/llehouerou/wavplay/internal/ui/playerbar"
	"github.com/llehouerou/wavplay/internal/ui/render"
	"github.com/llehouerou/wavplay/internal/ui/styles"
)

const (
	headerHeight = 1
	statusHeight = 1
	helpHeight   = 1
)

func (m Model) listHeight() int {
	return max(m.height-headerHeight-playerbar.Height-statusHeight-helpHeight, 1)
}

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	t := styles.T()
	s := t.S()

	header := render.Row(
		styles.BoldGradient("wavplay", t.Primary, t.Secondary),
		s.Muted.Render(render.Truncate(m.countLabel(), max(m.width-10, 0))),
		m.width,
	)

	list := m.songs.View(m.width, m.listHeight(), m.ctrl.CurrentIndex())
	if pad := m.listHeight() - strings.Count(list, "\n") - 1; pad > 0 {
		list += strings.Repeat("\n", pad)
	}

	bar := playerbar.Render(playerbar.NewState(m.ctrl), m.width)

	status := render.Fit(m.status, m.width)
	if m.statusErr {
		status = s.Error.Render(status)
	} else {
		status = s.Muted.Render(status)
	}

	helpLine := m.help.ShortHelpView(m.keys.Help())

	return strings.Join([]string{header, list, bar, status, helpLine}, "\n")
}

func (m Model) countLabel() string {
	if n := m.songs.Len(); n != 1 {
		return strconv.Itoa(n) + " songs"
	}
	return "1 song"
}
