package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// specialNames maps key spec names (lowercased) to keys.
var specialNames = map[string]Key{
	"escape":    KeyEscape,
	"esc":       KeyEscape,
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"cr":        KeyEnter,
	"tab":       KeyTab,
	"backspace": KeyBackspace,
	"bs":        KeyBackspace,
	"delete":    KeyDelete,
	"del":       KeyDelete,
	"space":     KeySpace,
	"home":      KeyHome,
	"end":       KeyEnd,
	"pageup":    KeyPageUp,
	"pagedown":  KeyPageDown,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
}

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "A", ";"
//   - Special keys: "Enter", "Escape", "Tab", "Space"
//   - With modifiers: "Ctrl+E", "Alt+Space", "Ctrl+Shift+P"
//   - Vim-style: "<C-e>", "<CR>", "<Space>", "<C-S-p>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}

	if strings.Contains(spec, "+") && utf8.RuneCountInString(spec) > 1 {
		return parseModifierStyle(spec)
	}

	return parseSingle(spec, ModNone)
}

// parseVimStyle parses notation like "C-e", "CR", "Space".
func parseVimStyle(inner string) (Event, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Event{}, ErrInvalidSpec
	}

	parts := strings.Split(inner, "-")
	keyPart := parts[len(parts)-1]

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "c":
			mods = mods.With(ModCtrl)
		case "a":
			mods = mods.With(ModAlt)
		case "s":
			mods = mods.With(ModShift)
		case "m", "d":
			mods = mods.With(ModMeta)
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}

	return parseSingle(keyPart, mods)
}

// parseModifierStyle parses notation like "Ctrl+E", "Ctrl+Shift+P".
func parseModifierStyle(spec string) (Event, error) {
	parts := strings.Split(spec, "+")
	keyPart := parts[len(parts)-1]

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "ctrl", "control":
			mods = mods.With(ModCtrl)
		case "alt", "option":
			mods = mods.With(ModAlt)
		case "shift":
			mods = mods.With(ModShift)
		case "meta", "cmd", "win":
			mods = mods.With(ModMeta)
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}

	return parseSingle(keyPart, mods)
}

// parseSingle parses a bare key name or single character.
func parseSingle(spec string, mods Modifier) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrInvalidSpec
	}

	if k, ok := specialNames[strings.ToLower(spec)]; ok {
		ev := NewSpecialEvent(k, mods)
		return ev, nil
	}

	if utf8.RuneCountInString(spec) == 1 {
		r, _ := utf8.DecodeRuneInString(spec)
		return NewRuneEvent(r, mods), nil
	}

	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, spec)
}
