// Package hotkey binds a system-wide key combination to a callback.
package hotkey

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupported is returned by Register on platforms without global hotkeys.
var ErrUnsupported = errors.New("global hotkeys are not supported on this platform")

// Handler runs on its own goroutine each time the hotkey fires.
type Handler func()

// Modifier flags, matching the Win32 MOD_* values.
const (
	ModAlt     = 0x0001
	ModControl = 0x0002
	ModShift   = 0x0004
	ModWin     = 0x0008
)

// Binding is a parsed key combination: modifier flags plus a virtual-key code.
type Binding struct {
	Modifiers uint32
	Key       uint32
}

var modifierNames = map[string]uint32{
	"ctrl":    ModControl,
	"control": ModControl,
	"alt":     ModAlt,
	"shift":   ModShift,
	"win":     ModWin,
	"super":   ModWin,
}

var keyNames = map[string]uint32{
	"printscreen": 0x2C,
	"prtsc":       0x2C,
	"space":       0x20,
	"insert":      0x2D,
	"home":        0x24,
	"end":         0x23,
	"pause":       0x13,
}

// Parse reads a combination such as "Ctrl+Shift+S", "Alt+F9" or
// "PrintScreen". Exactly one non-modifier key is required.
func Parse(s string) (Binding, error) {
	var b Binding
	haveKey := false
	for _, part := range strings.Split(s, "+") {
		name := strings.ToLower(strings.TrimSpace(part))
		if mod, ok := modifierNames[name]; ok {
			b.Modifiers |= mod
			continue
		}
		if haveKey {
			return Binding{}, fmt.Errorf("hotkey %q has more than one key", s)
		}
		vk, ok := keyCode(name)
		if !ok {
			return Binding{}, fmt.Errorf("unsupported hotkey key %q in %q", part, s)
		}
		b.Key = vk
		haveKey = true
	}
	if !haveKey {
		return Binding{}, fmt.Errorf("hotkey %q has no key", s)
	}
	return b, nil
}

func keyCode(name string) (uint32, bool) {
	if vk, ok := keyNames[name]; ok {
		return vk, true
	}
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return uint32(c - 'a' + 'A'), true
		case c >= '0' && c <= '9':
			return uint32(c), true
		}
	}
	var n int
	if _, err := fmt.Sscanf(name, "f%d", &n); err == nil && n >= 1 && n <= 24 && name == fmt.Sprintf("f%d", n) {
		return uint32(0x70 + n - 1), true
	}
	return 0, false
}

// Register binds combo to handler, replacing any earlier registration.
func Register(combo string, handler Handler) error {
	b, err := Parse(combo)
	if err != nil {
		return err
	}
	Unregister()
	return register(b, handler)
}

// Unregister removes the current binding, if any.
func Unregister() {
	unregister()
}
