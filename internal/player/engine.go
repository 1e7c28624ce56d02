// Package player implements the real-time playback engine.
//
// An Engine runs inside the audio device callback. It never blocks and never
// panics: commands arrive through a lock-free queue, are applied before any
// sample of the current callback is produced, and status events leave through
// a second queue that the control side polls. The event queue recycles its
// nodes, so once it has warmed up the callback does not allocate either.
package player

import (
	"encoding/binary"
	"time"

	"github.com/llehouerou/wavplay/internal/queue"
)

// DefaultSkip is how far Forward and Rewind move the cursor.
const DefaultSkip = 15 * time.Second

// Engine owns the current buffer, its cursor and the elapsed-time counter.
// Except for New, every method must be called from the audio callback
// goroutine only.
//
// The elapsed time only grows while Playing, with one exception: Forward and
// Rewind move the cursor in any state with a loaded buffer, and always report
// the new position with a DurationUpdate, even when Paused.
type Engine struct {
	commands *queue.SPSC[Command]
	events   *queue.SPSC[Event]
	skip     time.Duration

	state     State
	buf       *Buffer
	cursor    int
	bytesRead int
	elapsed   int // whole seconds reported so far

	bytesPerSecond int
	skipBytes      int
}

// Option configures an Engine.
type Option func(*Engine)

// WithSkip sets the Forward/Rewind distance. Non-positive values are ignored.
func WithSkip(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.skip = d
		}
	}
}

// New creates a paused engine with no buffer.
func New(q Queues, opts ...Option) *Engine {
	e := &Engine{
		commands: q.Commands,
		events:   q.Events,
		skip:     DefaultSkip,
		state:    Paused,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Process is the device fill callback: it applies every queued command, then
// writes len(out) samples. The length is chosen by the device and may differ
// between calls.
func (e *Engine) Process(out []float32) {
	e.Drain()
	e.Fill(out)
}

// Drain applies all pending commands in push order.
func (e *Engine) Drain() {
	for {
		cmd, ok := e.commands.TryPop()
		if !ok {
			return
		}
		e.apply(cmd)
	}
}

// Fill writes len(out) normalized samples, or silence when paused or idle.
// If the buffer runs out before out is full, the rest is silence, the buffer
// is dropped and EndOfTrack is reported.
func (e *Engine) Fill(out []float32) {
	if e.state != Playing || e.buf == nil {
		clear(out)
		return
	}

	data := e.buf.Data
	n := 0
	for n < len(out) && e.cursor+2 <= len(data) {
		s := int16(binary.LittleEndian.Uint16(data[e.cursor:]))
		out[n] = float32(s) / 32768
		e.cursor += 2
		e.bytesRead += 2
		n++
	}

	e.reportElapsed(false)

	if n < len(out) {
		clear(out[n:])
		e.unload()
		e.events.Push(Event{Kind: EventEndOfTrack})
	}
}

// State returns the transport state.
func (e *Engine) State() State { return e.state }

// Loaded reports whether a buffer is present.
func (e *Engine) Loaded() bool { return e.buf != nil }

// Cursor returns the read offset into the current buffer.
func (e *Engine) Cursor() int { return e.cursor }

// BytesRead returns the number of payload bytes consumed so far.
func (e *Engine) BytesRead() int { return e.bytesRead }

// SampleRate returns the sample rate of the loaded buffer, or 0 when idle.
func (e *Engine) SampleRate() int {
	if e.buf == nil {
		return 0
	}
	return int(e.buf.Format.SampleRate)
}

// Channels returns the channel count of the loaded buffer, or 0 when idle.
func (e *Engine) Channels() int {
	if e.buf == nil {
		return 0
	}
	return int(e.buf.Format.Channels)
}

func (e *Engine) apply(cmd Command) {
	switch cmd.kind {
	case CommandPlay:
		e.load(cmd.buffer)
		e.state = Playing
		e.events.Push(Event{Kind: EventPlaying})
	case CommandPlayResume:
		e.state = Playing
		e.events.Push(Event{Kind: EventPlaying})
	case CommandPause:
		e.state = Paused
		e.events.Push(Event{Kind: EventPaused})
	case CommandForward:
		e.seek(e.skipBytes)
	case CommandRewind:
		e.seek(-e.skipBytes)
	}
}

func (e *Engine) load(b *Buffer) {
	e.unload()
	if b == nil {
		return
	}
	e.buf = b

	e.bytesPerSecond = b.Format.BytesPerSecond()
	e.skipBytes = 0
	if e.bytesPerSecond > 0 {
		e.skipBytes = int(int64(e.bytesPerSecond) * int64(e.skip) / int64(time.Second))
		if align := int(b.Format.BlockAlign); align > 0 {
			e.skipBytes -= e.skipBytes % align
		}
	}
}

func (e *Engine) unload() {
	e.buf = nil
	e.cursor = 0
	e.bytesRead = 0
	e.elapsed = 0
	e.bytesPerSecond = 0
	e.skipBytes = 0
}

// seek moves cursor and bytesRead by delta bytes, clamped to the buffer.
func (e *Engine) seek(delta int) {
	if e.buf == nil {
		return
	}
	e.cursor = clamp(e.cursor+delta, 0, len(e.buf.Data))
	e.bytesRead = clamp(e.bytesRead+delta, 0, len(e.buf.Data))
	e.reportElapsed(true)
}

// reportElapsed pushes a DurationUpdate when a new whole second has been
// reached. After a seek the position may also move backwards.
func (e *Engine) reportElapsed(seeked bool) {
	if e.buf == nil || e.bytesPerSecond <= 0 {
		return
	}
	sec := int(e.buf.Format.Milliseconds(int64(e.bytesRead)) / 1000)
	if !seeked && sec <= e.elapsed {
		return
	}
	e.elapsed = sec
	e.events.Push(Event{Kind: EventDurationUpdate, Milliseconds: int64(sec) * 1000})
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
