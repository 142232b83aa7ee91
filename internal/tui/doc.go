/*
Package tui implements the terminal user interface of keydeck.

# Architecture

The TUI follows the Bubble Tea Model-Update-View pattern:
  - model.go: state, message routing and the mode switch in View
  - keys.go: keyboard input per mode, resolved through keybinds.Registry
  - actions.go: intents sent to the profile store and their status text
  - render.go and modals.go: the deck, tab bar, status bar and dialogs

# Store

All profile and binding state lives in profile.Store. The model only keeps
cursor positions and dialog state; every view is rebuilt from the store on
each render, so a rejected edit never needs to be rolled back here.

Whether an intent is allowed comes from session.EditSession. The power
switch ('p') turns editing on and off; the Default profile is never
editable.

# Modes

  - ModeNormal: the deck of the active profile
  - ModeCapture: the next key press becomes the key of a line
  - ModeTextInput: rename a profile or a line
  - ModeFilter: fuzzy filter over the lines of the active profile
  - ModeHelp, ModeHistory: the manual and the journal
  - ModeCountdown, ModeCalibration, ModeCamera: device views
  - ModeConfirm: yes/no dialogs

# Timers

Status messages, countdown ticks and the recording blink are tea.Tick
commands carrying an ID. A tick whose ID is no longer current is ignored,
so cancelling never has to stop a timer.
*/
package tui
