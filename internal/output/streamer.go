package output

import (
	"github.com/gopxl/beep/v2"

	"github.com/llehouerou/wavplay/internal/player"
)

var _ beep.Streamer = (*engineStreamer)(nil)

// engineStreamer adapts the engine's interleaved fill callback to beep's
// stereo frame streaming. Mono tracks are duplicated to both sides; channels
// beyond the second are dropped.
//
// onRate is called from the callback, after a Play is applied and before any
// of its samples are produced, whenever the loaded sample rate changes.
type engineStreamer struct {
	engine   *player.Engine
	scratch  []float32
	channels int
	rate     int
	onRate   func(int)
}

func newEngineStreamer(e *player.Engine, frames int, onRate func(int)) *engineStreamer {
	return &engineStreamer{
		engine:   e,
		scratch:  make([]float32, 2*max(frames, 1)),
		channels: 2,
		onRate:   onRate,
	}
}

// Stream implements beep.Streamer. It never ends: when the engine is idle it
// produces silence.
func (s *engineStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	s.engine.Drain()

	if r := s.engine.SampleRate(); r > 0 && r != s.rate {
		s.rate = r
		if s.onRate != nil {
			s.onRate(r)
		}
	}
	if ch := s.engine.Channels(); ch > 0 {
		s.channels = ch
	}
	ch := s.channels

	need := len(samples) * ch
	if cap(s.scratch) < need {
		s.scratch = make([]float32, need)
	}
	buf := s.scratch[:need]
	s.engine.Fill(buf)

	if ch == 1 {
		for i := range samples {
			v := float64(buf[i])
			samples[i] = [2]float64{v, v}
		}
		return len(samples), true
	}
	for i := range samples {
		samples[i] = [2]float64{float64(buf[i*ch]), float64(buf[i*ch+1])}
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (s *engineStreamer) Err() error { return nil }
