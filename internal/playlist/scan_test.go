// internal/playlist/scan_test.go
package playlist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavplay/internal/wav"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name       string
		wantArtist string
		wantTitle  string
	}{
		{"Artist-Title.wav", "Artist", "Title"},
		{"Some Band - Long Song.wav", "Some Band", "Long Song"},
		{"Artist-Title-Remix.WAV", "Artist", "Title-Remix"},
		{"JustTitle.wav", "", "JustTitle"},
		{"Artist-.wav", "", "Artist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artist, title := ParseName(tt.name)
			assert.Equal(t, tt.wantArtist, artist)
			assert.Equal(t, tt.wantTitle, title)
		})
	}
}

func TestIsWAV(t *testing.T) {
	assert.True(t, IsWAV("a.wav"))
	assert.True(t, IsWAV("/x/b.WAV"))
	assert.False(t, IsWAV("c.mp3"))
	assert.False(t, IsWAV("wav"))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, dir, "B Artist-Second.wav", 44100, 2, 44100*2)
	writeWAV(t, dir, "A Artist-First.wav", 22050, 1, 22050)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.wav"), 0o700))

	p, skipped, err := Scan(dir)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Equal(t, 2, p.Len())

	first := p.Song(0)
	assert.Equal(t, "A Artist", first.Artist)
	assert.Equal(t, "First", first.Title)
	assert.Equal(t, uint32(22050), first.Format.SampleRate)
	assert.Equal(t, uint16(1), first.Format.Channels)
	assert.Equal(t, int64(1000), first.Duration.Milliseconds)

	second := p.Song(1)
	assert.Equal(t, "Second", second.Title)
	assert.Equal(t, uint16(2), second.Format.Channels)
	assert.Equal(t, 2, second.Duration.WholeSeconds())
}

func TestScan_SkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, dir, "good.wav", 8000, 1, 800)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.wav"), []byte("RIFF"), 0o600))

	p, skipped, err := Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Len())
	require.Len(t, skipped, 1)
	assert.Equal(t, filepath.Join(dir, "bad.wav"), skipped[0].Path)

	var fe *wav.FormatError
	assert.True(t, errors.As(skipped[0].Err, &fe))
}

func TestScan_MissingDir(t *testing.T) {
	_, _, err := Scan(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestScan_EmptyDir(t *testing.T) {
	p, skipped, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.True(t, p.IsEmpty())
}
