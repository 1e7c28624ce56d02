//go:build linux

package notify

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsName = "org.freedesktop.Notifications"
	notificationsPath = dbus.ObjectPath("/org/freedesktop/Notifications")
	methodNotify      = notificationsName + ".Notify"
	methodClose       = notificationsName + ".CloseNotification"
	appName           = "wavplay"
)

// caller is the part of dbus.BusObject used to talk to the notification
// server.
type caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

type busNotifier struct {
	obj caller
}

// New connects to the session bus. Without one it returns a notifier that
// does nothing, so callers never need to check.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return stubNotifier{}, nil //nolint:nilerr // no session bus: notifications are optional
	}
	return &busNotifier{obj: conn.Object(notificationsName, notificationsPath)}, nil
}

func (b *busNotifier) Notify(n Notification) (uint32, error) {
	var id uint32
	call := b.obj.Call(methodNotify, 0, notifyArgs(n)...)
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify %q: %w", n.Title, err)
	}
	return id, nil
}

func (b *busNotifier) Close(id uint32) error {
	if err := b.obj.Call(methodClose, 0, id).Err; err != nil {
		return fmt.Errorf("close notification %d: %w", id, err)
	}
	return nil
}

// notifyArgs lays out n in the order of the Notify method:
// app_name, replaces_id, app_icon, summary, body, actions, hints, timeout.
func notifyArgs(n Notification) []any {
	return []any{
		appName,
		n.ReplacesID,
		n.Icon,
		n.Title,
		escapeBody(n.Body),
		[]string{},
		hints(n),
		n.Timeout,
	}
}

func hints(n Notification) map[string]dbus.Variant {
	// The music is already playing, so the bubble stays silent.
	h := map[string]dbus.Variant{
		"urgency":        dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry":  dbus.MakeVariant(appName),
		"suppress-sound": dbus.MakeVariant(true),
	}
	if n.Category != "" {
		h["category"] = dbus.MakeVariant(n.Category)
	}
	// Low urgency song changes should not pile up in the history.
	if n.Urgency == UrgencyLow {
		h["transient"] = dbus.MakeVariant(true)
	}
	if strings.HasPrefix(n.Icon, "/") {
		h["image-path"] = dbus.MakeVariant("file://" + n.Icon)
	}
	return h
}

// escapeBody keeps song metadata from being read as body markup.
var escapeBody = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace
