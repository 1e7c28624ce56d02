package playlist

import (
	"os"
	"path/filepath"
)

// coverNames lists common cover art filenames in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"album.jpg", "album.png", "album.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

// FindCover looks for cover art in the same directory as the song.
// Returns the path to the image, or empty string if not found.
func FindCover(songPath string) string {
	if songPath == "" {
		return ""
	}
	dir := filepath.Dir(songPath)
	for _, name := range coverNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
