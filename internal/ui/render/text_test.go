package render

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "Artist - Title", "Artist - Title"},
		{"control chars", "a\x00b\x1bc\n", "abc"},
		{"tab kept", "a\tb", "a\tb"},
		{"invalid utf8", "a\xffb", "ab"},
		{"nbsp", "a\u00a0b", "a b"},
		{"c1 control", "a\u0085b", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncation with ellipsis", "hello world", 8, "hello..."},
		{"very short max width", "hello", 3, "..."},
		{"empty string", "", 10, ""},
		{"wide characters", "日本語の歌", 7, "日本..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		contains string
	}{
		{"hello world", 8, "..."},
		{"hi", 8, "hi"},
		{"日本語の歌です", 9, "..."},
	}

	for _, tt := range tests {
		got := Fit(tt.input, tt.width)
		if w := runewidth.StringWidth(got); w != tt.width {
			t.Errorf("Fit(%q, %d) width = %d, want %d", tt.input, tt.width, w, tt.width)
		}
		if !strings.Contains(got, tt.contains) {
			t.Errorf("Fit(%q, %d) = %q, should contain %q", tt.input, tt.width, got, tt.contains)
		}
	}
}

func TestRow(t *testing.T) {
	got := Row("left", "right", 20)
	if len(got) != 20 {
		t.Errorf("Row length = %d, want 20", len(got))
	}
	if !strings.HasPrefix(got, "left") || !strings.HasSuffix(got, "right") {
		t.Errorf("Row = %q, want left...right", got)
	}

	// Minimum gap of one space.
	if got := Row("left", "right", 5); got != "left right" {
		t.Errorf("Row tight = %q, want %q", got, "left right")
	}
}
