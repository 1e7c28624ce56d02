package player

import "github.com/llehouerou/wavplay/internal/wav"

// Buffer is a fully decoded track payload: raw little-endian PCM16 bytes
// and the format they are encoded in. Once sent with Play it belongs to the
// engine and must not be touched by the sender.
type Buffer struct {
	Data   []byte
	Format wav.Format
}

// CommandKind identifies a transport command.
type CommandKind int

const (
	CommandPlay CommandKind = iota
	CommandPlayResume
	CommandPause
	CommandForward
	CommandRewind
)

// String returns the command name.
func (k CommandKind) String() string {
	switch k {
	case CommandPlay:
		return "Play"
	case CommandPlayResume:
		return "PlayResume"
	case CommandPause:
		return "Pause"
	case CommandForward:
		return "Forward"
	case CommandRewind:
		return "Rewind"
	default:
		return "Unknown"
	}
}

// Command is a transport command sent from the control side to the engine.
// Values are built with Play or taken from the predefined commands below.
type Command struct {
	kind   CommandKind
	buffer *Buffer
}

// Predefined payload-free commands.
var (
	PlayResume = Command{kind: CommandPlayResume}
	Pause      = Command{kind: CommandPause}
	Forward    = Command{kind: CommandForward}
	Rewind     = Command{kind: CommandRewind}
)

// Play returns a command that replaces the engine's buffer with b and starts
// playing it from the beginning.
func Play(b *Buffer) Command {
	return Command{kind: CommandPlay, buffer: b}
}

// Kind returns the command kind.
func (c Command) Kind() CommandKind { return c.kind }
