// Package playlist scans a directory of WAV files and keeps the play order.
package playlist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/llehouerou/wavplay/internal/wav"
)

// ErrEmpty is returned by operations that need at least one song.
var ErrEmpty = errors.New("playlist is empty")

const extWAV = ".wav"

// Skipped records a file that looked like a WAV file but could not be used.
type Skipped struct {
	Path string
	Err  error
}

// IsWAV reports whether path has a .wav extension.
func IsWAV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), extWAV)
}

// Scan builds a playlist from the WAV files directly inside dir, sorted by
// file name. Files whose header cannot be decoded are returned as skipped.
func Scan(dir string) (*Playlist, []Skipped, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read playlist dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && IsWAV(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var songs []Song
	var skipped []Skipped
	for _, name := range names {
		path := filepath.Join(dir, name)
		song, err := readSong(path)
		if err != nil {
			skipped = append(skipped, Skipped{Path: path, Err: err})
			continue
		}
		songs = append(songs, song)
	}

	return New(songs...), skipped, nil
}

func readSong(path string) (Song, error) {
	d, err := wav.Open(path)
	if err != nil {
		return Song{}, err
	}
	defer d.Close()

	artist, title := ParseName(filepath.Base(path))
	return Song{
		Path:     path,
		Artist:   artist,
		Title:    title,
		Format:   d.Format(),
		Duration: d.Duration(),
	}, nil
}

// ParseName splits an "Artist-Title.wav" file name. A name without a dash is
// all title.
func ParseName(name string) (artist, title string) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	before, after, found := strings.Cut(stem, "-")
	if !found {
		return "", strings.TrimSpace(stem)
	}
	artist = strings.TrimSpace(before)
	title = strings.TrimSpace(after)
	if title == "" {
		return "", artist
	}
	return artist, title
}
