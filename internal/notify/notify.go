// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"github.com/llehouerou/wavplay/internal/playlist"
)

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// nowPlayingTimeout is how long the now-playing bubble stays up, in ms.
const nowPlayingTimeout = 4000

// categoryMusic is the notification category used for song changes.
const categoryMusic = "x-gnome.music"

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
	Category   string  // freedesktop category hint (optional)
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// NowPlaying shows one notification per song change, replacing the
// previous one so they do not pile up.
type NowPlaying struct {
	notifier Notifier
	lastID   uint32
}

// NewNowPlaying wraps n. A nil n disables notifications.
func NewNowPlaying(n Notifier) *NowPlaying {
	if n == nil {
		n = stubNotifier{}
	}
	return &NowPlaying{notifier: n}
}

// Show announces song. The cover image next to the file is used as icon.
func (p *NowPlaying) Show(song *playlist.Song) error {
	if song == nil {
		return nil
	}
	body := song.Artist
	if d := song.Duration.String(); body != "" {
		body += " · " + d
	} else {
		body = d
	}
	id, err := p.notifier.Notify(Notification{
		Title:      song.Title,
		Body:       body,
		Icon:       playlist.FindCover(song.Path),
		Timeout:    nowPlayingTimeout,
		ReplacesID: p.lastID,
		Urgency:    UrgencyLow,
		Category:   categoryMusic,
	})
	if err != nil {
		return err
	}
	p.lastID = id
	return nil
}

// Close removes the last notification, if any.
func (p *NowPlaying) Close() error {
	if p.lastID == 0 {
		return nil
	}
	id := p.lastID
	p.lastID = 0
	return p.notifier.Close(id)
}

// stubNotifier is used when D-Bus is unavailable.
type stubNotifier struct{}

func (stubNotifier) Notify(_ Notification) (uint32, error) {
	return 0, nil
}

func (stubNotifier) Close(_ uint32) error {
	return nil
}
