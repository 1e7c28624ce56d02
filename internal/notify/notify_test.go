package notify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/llehouerou/wavplay/internal/playlist"
	"github.com/llehouerou/wavplay/internal/wav"
)

func TestUrgencyValues(t *testing.T) {
	// Verify urgency constants match D-Bus spec
	if UrgencyLow != 0 {
		t.Errorf("UrgencyLow = %d, want 0", UrgencyLow)
	}
	if UrgencyNormal != 1 {
		t.Errorf("UrgencyNormal = %d, want 1", UrgencyNormal)
	}
	if UrgencyCritical != 2 {
		t.Errorf("UrgencyCritical = %d, want 2", UrgencyCritical)
	}
}

// recorder is a Notifier that hands out increasing IDs unless replacing.
type recorder struct {
	sent   []Notification
	closed []uint32
	next   uint32
	err    error
}

func (r *recorder) Notify(n Notification) (uint32, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.sent = append(r.sent, n)
	if n.ReplacesID != 0 {
		return n.ReplacesID, nil
	}
	r.next++
	return r.next, nil
}

func (r *recorder) Close(id uint32) error {
	r.closed = append(r.closed, id)
	return nil
}

func TestNowPlaying_Show(t *testing.T) {
	dir := t.TempDir()
	cover := filepath.Join(dir, "cover.jpg")
	if err := os.WriteFile(cover, []byte{0xFF, 0xD8}, 0o600); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	p := NewNowPlaying(rec)
	song := &playlist.Song{
		Path:     filepath.Join(dir, "Artist-Title.wav"),
		Artist:   "Artist",
		Title:    "Title",
		Duration: wav.Duration{Minutes: 3, Seconds: 12},
	}

	if err := p.Show(song); err != nil {
		t.Fatalf("Show() error: %v", err)
	}
	if len(rec.sent) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(rec.sent))
	}
	n := rec.sent[0]
	if n.Title != "Title" || n.Body != "Artist · 03:12" {
		t.Errorf("notification = %q / %q", n.Title, n.Body)
	}
	if n.Icon != cover {
		t.Errorf("Icon = %q, want %q", n.Icon, cover)
	}
	if n.ReplacesID != 0 {
		t.Errorf("first ReplacesID = %d, want 0", n.ReplacesID)
	}
	if n.Category != categoryMusic || n.Urgency != UrgencyLow {
		t.Errorf("category/urgency = %q/%d, want %q/low", n.Category, n.Urgency, categoryMusic)
	}
}

func TestNowPlaying_ReplacesPrevious(t *testing.T) {
	rec := &recorder{}
	p := NewNowPlaying(rec)

	_ = p.Show(&playlist.Song{Title: "One"})
	_ = p.Show(&playlist.Song{Title: "Two"})

	if got := rec.sent[1].ReplacesID; got != 1 {
		t.Errorf("second ReplacesID = %d, want 1", got)
	}
	if got := rec.sent[1].Body; got != "00:00" {
		t.Errorf("Body without artist = %q, want duration only", got)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if len(rec.closed) != 1 || rec.closed[0] != 1 {
		t.Errorf("closed = %v, want [1]", rec.closed)
	}
	if err := p.Close(); err != nil || len(rec.closed) != 1 {
		t.Error("second Close() should do nothing")
	}
}

func TestNowPlaying_Errors(t *testing.T) {
	rec := &recorder{err: errors.New("bus gone")}
	p := NewNowPlaying(rec)

	if err := p.Show(&playlist.Song{Title: "One"}); err == nil {
		t.Error("Show() should return the notifier error")
	}
	if err := p.Show(nil); err != nil {
		t.Errorf("Show(nil) = %v, want nil", err)
	}
}

func TestNowPlaying_NilNotifier(t *testing.T) {
	p := NewNowPlaying(nil)
	if err := p.Show(&playlist.Song{Title: "One"}); err != nil {
		t.Errorf("Show() = %v, want nil", err)
	}
}
