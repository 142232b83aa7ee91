/*
Package keybinds maps terminal key presses to actions of the keydeck UI and
turns captured key presses into binding key text.

# Contexts

Every UI mode has a context (normal, capture, text_input, filter, help,
history, calibration, confirm). A key is looked up in the active context
first and then in global:

	registry := keybinds.NewDefaultRegistry()
	action, ok := registry.Match(keybinds.ContextNormal, "p") // toggle_power

The help viewer supports the "gg" sequence through MatchMultiKey.

# Configuration File Format

Keybindings can be overridden in ~/.keydeck/keybinds.json. Comments and
trailing commas are accepted. Each section maps an action to a comma
separated key list, and listing an action drops its default keys:

	{
	  // vim users
	  "normal": {
	    "toggle_power": "P",
	    "add_binding": "o,a",
	  },
	}

`keydeck keybinds --init` writes the full default file.

# Validation

The validator reports unknown actions, malformed keys and keys listed for
two actions of one section as errors. Rebinding ctrl+c and shadowing a
global key are warnings.

# Capture

KeyText converts a tea.KeyMsg to the text stored on a binding. Uppercase
runes become shift+letter and modifiers are written ctrl, shift, alt:

	KeyText(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'A'}}) // "shift+a"
	KeyText(tea.KeyMsg{Type: tea.KeySpace})                     // "space"

# Thread Safety

Registry guards its maps with a RWMutex; ApplyConfig may run while the UI
reads.
*/
package keybinds
