package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Resolver maps key presses to actions. The help line is built from the same
// table, so it always shows the keys that actually work.
type Resolver struct {
	bindings []Binding
	byKey    map[string]Action
}

// NewResolver indexes bindings. A key listed under two actions resolves to
// the first one; bindings without keys are ignored.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{byKey: make(map[string]Action)}
	for _, b := range bindings {
		if len(b.Keys) == 0 {
			continue
		}
		r.bindings = append(r.bindings, b)
		for _, k := range b.Keys {
			if _, taken := r.byKey[k]; !taken {
				r.byKey[k] = b.Action
			}
		}
	}
	return r
}

// Resolve returns the action bound to k, or "" if there is none.
func (r *Resolver) Resolve(k string) Action {
	return r.byKey[k]
}

// KeysFor returns the keys that resolve to action, in table order, or nil.
func (r *Resolver) KeysFor(action Action) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, b := range r.bindings {
		if b.Action != action {
			continue
		}
		for _, k := range b.Keys {
			if seen[k] || r.byKey[k] != action {
				continue
			}
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

// Help returns one entry per action for a bubbles help line. An action
// listed more than once keeps its first description; an action whose keys
// were all taken by earlier bindings is left out.
func (r *Resolver) Help() []key.Binding {
	var out []key.Binding
	done := make(map[Action]bool)
	for _, b := range r.bindings {
		if done[b.Action] {
			continue
		}
		done[b.Action] = true

		keys := r.KeysFor(b.Action)
		if len(keys) == 0 {
			continue
		}
		labels := make([]string, len(keys))
		for i, k := range keys {
			labels[i] = displayKey(k)
		}
		out = append(out, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(labels, "/"), b.Description),
		))
	}
	return out
}
