package wav

import (
	"fmt"
	"math"
	"time"
)

// Duration is the length of a track as derived from its header.
//
// Minutes and Seconds are display values: the sub-minute remainder is rounded
// up so the total shown is never less than the elapsed time shown next to it.
type Duration struct {
	RawSeconds   float64
	Minutes      int
	Seconds      int
	Milliseconds int64
}

// DurationOf derives the track length for a payload of dataSize bytes.
func DurationOf(f Format, dataSize uint32) Duration {
	frameSize := uint32(f.Channels) * uint32(f.BitsPerSample/8)
	if frameSize == 0 || f.SampleRate == 0 {
		return Duration{}
	}

	frames := dataSize / frameSize
	raw := float64(frames) / float64(f.SampleRate)

	minutes := int(math.Floor(raw / 60))
	seconds := int(math.Ceil(raw - float64(minutes)*60))
	if seconds >= 60 {
		minutes++
		seconds -= 60
	}

	return Duration{
		RawSeconds:   raw,
		Minutes:      minutes,
		Seconds:      seconds,
		Milliseconds: int64(frames) * 1000 / int64(f.SampleRate),
	}
}

// WholeSeconds returns the track length truncated to whole seconds.
func (d Duration) WholeSeconds() int {
	return int(d.Milliseconds / 1000)
}

// Std converts to a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d.Milliseconds) * time.Millisecond
}

// String renders the display value as mm:ss.
func (d Duration) String() string {
	return fmt.Sprintf("%02d:%02d", d.Minutes, d.Seconds)
}
