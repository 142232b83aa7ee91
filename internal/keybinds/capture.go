package keybinds

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/keydeck/internal/binding"
)

// modifierOrder is the order modifiers are written in captured key text
var modifierOrder = []string{"ctrl", "shift", "alt"}

// KeyText turns a key press into the text stored on a binding, e.g.
// "ctrl+shift+a" or "space". Modifiers always come in ctrl, shift, alt
// order. Pastes and keys without a name give "".
func KeyText(msg tea.KeyMsg) string {
	if msg.Paste {
		return ""
	}

	mods := make(map[string]bool, len(modifierOrder))
	var base string

	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return ""
		}
		r := msg.Runes[0]
		switch {
		case unicode.IsSpace(r):
			base = "space"
		case unicode.IsUpper(r):
			mods["shift"] = true
			base = string(unicode.ToLower(r))
		default:
			base = string(r)
		}
	case tea.KeySpace:
		base = "space"
	default:
		name := tea.Key{Type: msg.Type}.String()
		if name == "" {
			return ""
		}
		tokens := strings.Split(name, binding.Separator)
		base = tokens[len(tokens)-1]
		for _, mod := range tokens[:len(tokens)-1] {
			mods[mod] = true
		}
	}

	if msg.Alt {
		mods["alt"] = true
	}

	parts := make([]string, 0, len(modifierOrder)+1)
	for _, mod := range modifierOrder {
		if mods[mod] {
			parts = append(parts, mod)
		}
	}
	parts = append(parts, base)
	return strings.Join(parts, binding.Separator)
}
