// Package output plays the engine through the system audio device.
package output

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/wavplay/internal/player"
)

// resampleQuality is beep's interpolation window; 4 is its usual default.
const resampleQuality = 4

// Sink owns the speaker and feeds it from an engine. The speaker decides how
// many frames each callback asks for.
type Sink struct {
	sampleRate beep.SampleRate
	resampler  *beep.Resampler
}

// Open initialises the speaker at sampleRate with a buffer of the given
// duration and starts pulling samples from e.
func Open(e *player.Engine, sampleRate int, buffer time.Duration) (*Sink, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	sr := beep.SampleRate(sampleRate)
	frames := sr.N(buffer)
	if frames <= 0 {
		return nil, fmt.Errorf("buffer %v is shorter than one frame", buffer)
	}

	if err := speaker.Init(sr, frames); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	s := &Sink{sampleRate: sr}
	s.resampler = beep.ResampleRatio(resampleQuality, 1, newEngineStreamer(e, frames, s.retune))
	speaker.Play(s.resampler)

	log.Info().
		Int("sample_rate", sampleRate).
		Int("buffer_frames", frames).
		Dur("buffer", buffer).
		Msg("audio output started")
	return s, nil
}

// retune follows the loaded track's sample rate. It runs inside the speaker
// callback, which already holds the speaker lock.
func (s *Sink) retune(rate int) {
	s.resampler.SetRatio(float64(rate) / float64(s.sampleRate))
}

// Close stops playback and releases the device.
func (s *Sink) Close() {
	speaker.Clear()
	speaker.Close()
	log.Info().Msg("audio output closed")
}
