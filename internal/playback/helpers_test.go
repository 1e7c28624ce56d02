package playback

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavplay/internal/playlist"
)

// writeWAV encodes a 16-bit PCM file with a constant sample value.
func writeWAV(t *testing.T, dir, name string, sampleRate, channels, frames int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := gowav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, frames*channels),
		SourceBitDepth: 16,
	}
	for i := range buf.Data {
		buf.Data[i] = 1000
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	return path
}

// scanDir writes one mono 8 kHz song per entry of seconds and scans them.
func scanDir(t *testing.T, seconds ...float64) *playlist.Playlist {
	t.Helper()

	dir := t.TempDir()
	for i, s := range seconds {
		name := string(rune('a'+i)) + "-Song.wav"
		writeWAV(t, dir, name, 8000, 1, int(s*8000))
	}
	p, skipped, err := playlist.Scan(dir)
	require.NoError(t, err)
	require.Empty(t, skipped)
	require.Equal(t, len(seconds), p.Len())
	return p
}
