package tui

import (
	"sync"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// InputPurpose tells what a submitted text input is for
type InputPurpose int

const (
	InputNone InputPurpose = iota
	InputRenameProfile
	InputBindingName
	InputFilter
)

// TextInputState holds a single-line text input with a rune cursor
type TextInputState struct {
	mu sync.RWMutex

	purpose InputPurpose
	input   []rune
	cursor  int
	target  string // profile being renamed, or the binding name being edited
}

// NewTextInputState creates an empty text input
func NewTextInputState() *TextInputState {
	return &TextInputState{}
}

// Initialize starts editing input for purpose with the cursor at the end
func (s *TextInputState) Initialize(purpose InputPurpose, target, input string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purpose = purpose
	s.target = target
	s.input = []rune(input)
	s.cursor = len(s.input)
}

// Reset clears the input
func (s *TextInputState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purpose = InputNone
	s.target = ""
	s.input = nil
	s.cursor = 0
}

// GetPurpose returns what the input is for
func (s *TextInputState) GetPurpose() InputPurpose {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.purpose
}

// GetTarget returns the profile or binding the input edits
func (s *TextInputState) GetTarget() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.target
}

// GetInput returns the current text
func (s *TextInputState) GetInput() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return string(s.input)
}

// GetCursor returns the cursor position in runes
func (s *TextInputState) GetCursor() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

// View renders the text with a block cursor
func (s *TextInputState) View() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return string(s.input[:s.cursor]) + "█" + string(s.input[s.cursor:])
}

// HandleKey applies an editing key. It reports whether the key was used.
func (s *TextInputState) HandleKey(msg tea.KeyMsg) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor > len(s.input) {
		s.cursor = len(s.input)
	}

	switch msg.String() {
	case "left":
		if s.cursor > 0 {
			s.cursor--
		}
		return true

	case "right":
		if s.cursor < len(s.input) {
			s.cursor++
		}
		return true

	case "home", "ctrl+a":
		s.cursor = 0
		return true

	case "end", "ctrl+e":
		s.cursor = len(s.input)
		return true

	case "ctrl+v", "shift+insert", "super+v", "ctrl+y":
		// Paste from clipboard at cursor position
		if text, err := clipboard.ReadAll(); err == nil {
			s.insertLocked([]rune(text))
		}
		return true

	case "ctrl+k":
		s.input = nil
		s.cursor = 0
		return true

	case "backspace":
		if s.cursor > 0 {
			s.input = append(s.input[:s.cursor-1], s.input[s.cursor:]...)
			s.cursor--
		}
		return true

	case "delete":
		if s.cursor < len(s.input) {
			s.input = append(s.input[:s.cursor], s.input[s.cursor+1:]...)
		}
		return true
	}

	switch msg.Type {
	case tea.KeyRunes:
		s.insertLocked(msg.Runes)
		return true
	case tea.KeySpace:
		s.insertLocked([]rune{' '})
		return true
	}
	return false
}

func (s *TextInputState) insertLocked(text []rune) {
	// single line only
	clean := make([]rune, 0, len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' {
			continue
		}
		clean = append(clean, r)
	}

	next := make([]rune, 0, len(s.input)+len(clean))
	next = append(next, s.input[:s.cursor]...)
	next = append(next, clean...)
	next = append(next, s.input[s.cursor:]...)
	s.input = next
	s.cursor += len(clean)
}
