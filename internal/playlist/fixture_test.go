package playlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// writeWAV writes a 16-bit PCM file of the given length into dir.
func writeWAV(t *testing.T, dir, name string, sampleRate, channels, frames int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer f.Close()

	enc := gowav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, frames*channels),
		SourceBitDepth: 16,
	}
	for i := range buf.Data {
		buf.Data[i] = (i % 200) - 100
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder %s: %v", name, err)
	}
	return path
}
