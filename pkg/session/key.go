package session

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyKey   = errors.New("empty key specification")
	ErrInvalidKey = errors.New("invalid key specification")
)

// Modifier is a bitset of held modifier keys.
type Modifier uint8

const ModNone Modifier = 0

const (
	ModShift Modifier = 1 << iota
	ModAlt
	ModCtrl
	ModMeta
)

// Has reports whether m includes o.
func (m Modifier) Has(o Modifier) bool {
	return m&o != 0
}

// String renders m in the canonical prefix order.
func (m Modifier) String() string {
	var b strings.Builder
	if m.Has(ModShift) {
		b.WriteString("Shift+")
	}
	if m.Has(ModAlt) {
		b.WriteString("Alt+")
	}
	if m.Has(ModCtrl) {
		b.WriteString("Ctrl+")
	}
	if m.Has(ModMeta) {
		b.WriteString("Meta+")
	}
	return b.String()
}

// Named keys the session reacts to.
const (
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
	KeyUp     = "ArrowUp"
	KeyDown   = "ArrowDown"
)

var keyAliases = map[string]string{
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"cr":        KeyEnter,
	"escape":    KeyEscape,
	"esc":       KeyEscape,
	"arrowup":   KeyUp,
	"up":        KeyUp,
	"arrowdown": KeyDown,
	"down":      KeyDown,
}

// Key is a parsed keyboard command.
type Key struct {
	Name string
	Mods Modifier
}

// String returns the canonical form, e.g. "Ctrl+K".
func (k Key) String() string {
	return k.Mods.String() + k.Name
}

// ParseKey parses specs like "Enter", "Esc", "Down", "Shift+Enter" or "Ctrl+K".
// Unknown single-character names are kept as typed so shortcuts like "/" parse.
func ParseKey(spec string) (Key, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Key{}, ErrEmptyKey
	}
	// a lone "+" is a key, not a separator
	if spec == "+" {
		return Key{Name: spec}, nil
	}

	parts := strings.Split(spec, "+")
	name := parts[len(parts)-1]
	if name == "" {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, spec)
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "shift", "s":
			mods |= ModShift
		case "alt", "option", "opt", "a":
			mods |= ModAlt
		case "ctrl", "control", "c":
			mods |= ModCtrl
		case "meta", "cmd", "command", "super", "m":
			mods |= ModMeta
		default:
			return Key{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidKey, p)
		}
	}

	if canonical, ok := keyAliases[strings.ToLower(name)]; ok {
		name = canonical
	} else if len([]rune(name)) == 1 && mods != ModNone {
		name = strings.ToUpper(name)
	}
	return Key{Name: name, Mods: mods}, nil
}

// IsFocusShortcut reports whether k should move focus to the query input.
func IsFocusShortcut(k Key) bool {
	switch {
	case k.Name == "/" && k.Mods == ModNone:
		return true
	case k.Name == "K" && (k.Mods == ModCtrl || k.Mods == ModMeta):
		return true
	}
	return false
}
