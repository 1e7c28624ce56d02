package playback

import (
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/wavplay/internal/player"
	"github.com/llehouerou/wavplay/internal/wav"
)

// Track is a song decoded into memory and ready to be handed to the engine.
type Track struct {
	Path     string
	Buffer   *player.Buffer
	Duration wav.Duration
}

// Loader reads WAV files into engine buffers on the control side.
// It can keep one song loading in the background so that the next Play does
// not wait on the disk.
type Loader struct {
	mu      sync.Mutex
	pending *pendingLoad
}

type pendingLoad struct {
	path  string
	done  chan struct{}
	track Track
	err   error
}

// NewLoader creates a loader with nothing prefetched.
func NewLoader() *Loader {
	return &Loader{}
}

// Load returns the decoded track at path. A matching prefetch is reused,
// waiting for it to finish if needed.
func (l *Loader) Load(path string) (Track, error) {
	l.mu.Lock()
	p := l.pending
	if p != nil && p.path == path {
		l.pending = nil
	} else {
		p = nil
	}
	l.mu.Unlock()

	if p != nil {
		<-p.done
		log.Debug().Str("path", path).Msg("using prefetched track")
		return p.track, p.err
	}
	return loadTrack(path)
}

// Prefetch starts loading path in the background. It replaces any earlier
// prefetch of a different path.
func (l *Loader) Prefetch(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pending != nil && l.pending.path == path {
		return
	}

	p := &pendingLoad{path: path, done: make(chan struct{})}
	l.pending = p
	go func() {
		defer close(p.done)
		p.track, p.err = loadTrack(path)
		if p.err != nil {
			log.Warn().Err(p.err).Str("path", path).Msg("prefetch failed")
		}
	}()
}

func loadTrack(path string) (Track, error) {
	d, err := wav.Open(path)
	if err != nil {
		return Track{}, err
	}
	defer d.Close()

	data, err := d.LoadAll()
	if err != nil {
		return Track{}, fmt.Errorf("read %s: %w", path, err)
	}

	f := d.Format()
	log.Debug().
		Str("path", path).
		Str("size", humanize.Bytes(uint64(len(data)))).
		Uint32("sample_rate", f.SampleRate).
		Uint16("channels", f.Channels).
		Stringer("duration", d.Duration()).
		Msg("track loaded")

	return Track{
		Path:     path,
		Buffer:   &player.Buffer{Data: data, Format: f},
		Duration: d.Duration(),
	}, nil
}
