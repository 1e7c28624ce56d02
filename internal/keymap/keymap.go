package keymap

// Binding ties an action to its keys. Keys use bubbletea's KeyMsg.String()
// names, so space is " ". The first key is the one shown first in help.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
}

// Bindings is the player's key table.
var Bindings = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "quit"},

	{ActionPlaySelected, []string{"enter"}, "play"},
	{ActionPlayPause, []string{" "}, "pause"},
	{ActionNextTrack, []string{"right"}, "next"},
	{ActionPrevTrack, []string{"left"}, "prev"},
	{ActionSeekForward, []string{">", "."}, "fwd"},
	{ActionSeekBack, []string{"<", ","}, "rew"},
	{ActionToggleShuffle, []string{"s"}, "shuffle"},

	{ActionMoveUp, []string{"up", "k"}, "up"},
	{ActionMoveDown, []string{"down", "j"}, "down"},
	{ActionJumpStart, []string{"home", "g"}, "first"},
	{ActionJumpEnd, []string{"end", "G"}, "last"},
}

// displayKey returns the name shown for k in the help line.
func displayKey(k string) string {
	switch k {
	case " ":
		return "space"
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "left":
		return "←"
	case "right":
		return "→"
	default:
		return k
	}
}
