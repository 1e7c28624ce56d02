//go:build linux

package notify

import (
	"errors"
	"os"
	"testing"

	"github.com/godbus/dbus/v5"
)

// fakeBus records method calls and answers them with reply.
type fakeBus struct {
	methods []string
	args    [][]any
	reply   *dbus.Call
}

func (f *fakeBus) Call(method string, _ dbus.Flags, args ...any) *dbus.Call {
	f.methods = append(f.methods, method)
	f.args = append(f.args, args)
	return f.reply
}

func TestBusNotifier_Notify(t *testing.T) {
	tests := []struct {
		name      string
		n         Notification
		wantHints map[string]any
		noHints   []string
		wantBody  string
	}{
		{
			name: "song change with cover",
			n: Notification{
				Title:    "Title",
				Body:     "Artist · 03:12",
				Icon:     "/music/cover.jpg",
				Timeout:  4000,
				Urgency:  UrgencyLow,
				Category: categoryMusic,
			},
			wantHints: map[string]any{
				"urgency":        byte(0),
				"desktop-entry":  appName,
				"suppress-sound": true,
				"transient":      true,
				"category":       categoryMusic,
				"image-path":     "file:///music/cover.jpg",
			},
			wantBody: "Artist · 03:12",
		},
		{
			name: "named icon and markup in body",
			n: Notification{
				Title:   "Error",
				Body:    "<b>R&B</b>",
				Icon:    "dialog-error",
				Urgency: UrgencyCritical,
			},
			wantHints: map[string]any{
				"urgency": byte(2),
			},
			noHints:  []string{"transient", "category", "image-path"},
			wantBody: "&lt;b&gt;R&amp;B&lt;/b&gt;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := &fakeBus{reply: &dbus.Call{Body: []any{uint32(42)}}}
			b := &busNotifier{obj: bus}

			id, err := b.Notify(tt.n)
			if err != nil {
				t.Fatalf("Notify() error: %v", err)
			}
			if id != 42 {
				t.Errorf("id = %d, want 42", id)
			}
			if len(bus.methods) != 1 || bus.methods[0] != methodNotify {
				t.Fatalf("methods = %v, want one %s", bus.methods, methodNotify)
			}

			args := bus.args[0]
			if len(args) != 8 {
				t.Fatalf("Notify got %d arguments, want 8", len(args))
			}
			if args[0] != appName || args[2] != tt.n.Icon || args[3] != tt.n.Title {
				t.Errorf("app/icon/summary = %v %v %v", args[0], args[2], args[3])
			}
			if args[4] != tt.wantBody {
				t.Errorf("body = %q, want %q", args[4], tt.wantBody)
			}
			if args[7] != tt.n.Timeout {
				t.Errorf("timeout = %v, want %d", args[7], tt.n.Timeout)
			}

			hints, ok := args[6].(map[string]dbus.Variant)
			if !ok {
				t.Fatalf("hints are %T", args[6])
			}
			for k, want := range tt.wantHints {
				v, ok := hints[k]
				if !ok {
					t.Errorf("missing hint %q", k)
					continue
				}
				if v.Value() != want {
					t.Errorf("hint %q = %v, want %v", k, v.Value(), want)
				}
			}
			for _, k := range tt.noHints {
				if _, ok := hints[k]; ok {
					t.Errorf("unexpected hint %q", k)
				}
			}
		})
	}
}

func TestBusNotifier_Errors(t *testing.T) {
	bus := &fakeBus{reply: &dbus.Call{Err: errors.New("no server")}}
	b := &busNotifier{obj: bus}

	if _, err := b.Notify(Notification{Title: "One"}); err == nil {
		t.Error("Notify() should fail when the call fails")
	}
	if err := b.Close(7); err == nil {
		t.Error("Close() should fail when the call fails")
	}
	if got := bus.methods[1]; got != methodClose {
		t.Errorf("Close called %s, want %s", got, methodClose)
	}
	if got := bus.args[1]; len(got) != 1 || got[0] != uint32(7) {
		t.Errorf("Close args = %v, want [7]", got)
	}
}

func TestNew_SessionBus(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}

	n, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, ok := n.(*busNotifier); !ok {
		t.Errorf("New() = %T, want a bus notifier", n)
	}
}
