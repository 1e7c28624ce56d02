package playback

import (
	"fmt"
	"time"

	"github.com/llehouerou/wavplay/internal/wav"
)

// Progress tracks the elapsed position of the current track in whole
// milliseconds, as reported by the engine's DurationUpdate events.
type Progress struct {
	ms int64
}

// Advance sets the elapsed position. The engine reports absolute values, so
// after a rewind the position may move backwards.
func (p *Progress) Advance(ms int64) {
	p.ms = max(ms, 0)
}

// Reset rewinds to zero for a new track.
func (p *Progress) Reset() { p.ms = 0 }

// Milliseconds returns the elapsed time.
func (p Progress) Milliseconds() int64 { return p.ms }

// Position returns the elapsed time as a time.Duration.
func (p Progress) Position() time.Duration {
	return time.Duration(p.ms) * time.Millisecond
}

// Minutes returns the whole minutes elapsed.
func (p Progress) Minutes() int { return int(p.ms / 60_000) }

// Seconds returns the seconds elapsed within the current minute.
func (p Progress) Seconds() int { return int(p.ms/1000) % 60 }

// String renders mm:ss.
func (p Progress) String() string {
	return fmt.Sprintf("%02d:%02d", p.Minutes(), p.Seconds())
}

// Ratio returns the played fraction of total, clamped to [0, 1].
func (p Progress) Ratio(total wav.Duration) float64 {
	if total.Milliseconds <= 0 {
		return 0
	}
	r := float64(p.ms) / float64(total.Milliseconds)
	return min(max(r, 0), 1)
}
