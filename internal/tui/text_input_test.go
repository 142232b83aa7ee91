package tui

import (
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewTextInputState(t *testing.T) {
	state := NewTextInputState()

	if state.GetInput() != "" {
		t.Errorf("Expected empty input, got %s", state.GetInput())
	}
	if state.GetCursor() != 0 {
		t.Errorf("Expected cursor 0, got %d", state.GetCursor())
	}
	if state.GetPurpose() != InputNone {
		t.Errorf("Expected no purpose, got %d", state.GetPurpose())
	}
}

func TestTextInputState_Initialize(t *testing.T) {
	state := NewTextInputState()
	state.Initialize(InputRenameProfile, "Profile #1", "Profile #1")

	AssertModelField(t, "input", state.GetInput(), "Profile #1")
	AssertModelField(t, "cursor", state.GetCursor(), 10)
	AssertModelField(t, "target", state.GetTarget(), "Profile #1")
	AssertModelField(t, "purpose", state.GetPurpose(), InputRenameProfile)

	state.Reset()
	AssertModelField(t, "input after reset", state.GetInput(), "")
	AssertModelField(t, "purpose after reset", state.GetPurpose(), InputNone)
}

func TestTextInputState_Editing(t *testing.T) {
	tests := []struct {
		name       string
		initial    string
		keys       []tea.KeyMsg
		wantInput  string
		wantCursor int
	}{
		{
			name:       "type at end",
			initial:    "Ju",
			keys:       []tea.KeyMsg{runes("mp")},
			wantInput:  "Jump",
			wantCursor: 4,
		},
		{
			name:       "insert in the middle",
			initial:    "Jmp",
			keys:       []tea.KeyMsg{{Type: tea.KeyLeft}, {Type: tea.KeyLeft}, runes("u")},
			wantInput:  "Jump",
			wantCursor: 2,
		},
		{
			name:       "backspace before cursor",
			initial:    "Jumpp",
			keys:       []tea.KeyMsg{{Type: tea.KeyBackspace}},
			wantInput:  "Jump",
			wantCursor: 4,
		},
		{
			name:       "delete at cursor",
			initial:    "XJump",
			keys:       []tea.KeyMsg{{Type: tea.KeyHome}, {Type: tea.KeyDelete}},
			wantInput:  "Jump",
			wantCursor: 0,
		},
		{
			name:       "space inserts a blank",
			initial:    "Profile",
			keys:       []tea.KeyMsg{{Type: tea.KeySpace}, runes("#9")},
			wantInput:  "Profile #9",
			wantCursor: 10,
		},
		{
			name:       "clear line",
			initial:    "Jump",
			keys:       []tea.KeyMsg{{Type: tea.KeyCtrlK}},
			wantInput:  "",
			wantCursor: 0,
		},
		{
			name:       "multibyte runes",
			initial:    "Sauté",
			keys:       []tea.KeyMsg{{Type: tea.KeyBackspace}, runes("é!")},
			wantInput:  "Sauté!",
			wantCursor: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewTextInputState()
			state.Initialize(InputBindingName, "", tt.initial)
			for _, k := range tt.keys {
				if !state.HandleKey(k) {
					t.Fatalf("key %q was not handled", k.String())
				}
			}
			AssertModelField(t, "input", state.GetInput(), tt.wantInput)
			AssertModelField(t, "cursor", state.GetCursor(), tt.wantCursor)
		})
	}
}

func TestTextInputState_IgnoresNonEditingKeys(t *testing.T) {
	state := NewTextInputState()
	state.Initialize(InputBindingName, "", "Jump")

	if state.HandleKey(tea.KeyMsg{Type: tea.KeyF5}) {
		t.Error("F5 should not be handled")
	}
	AssertModelField(t, "input", state.GetInput(), "Jump")
}

func TestTextInputState_View(t *testing.T) {
	state := NewTextInputState()
	state.Initialize(InputBindingName, "", "ab")
	state.HandleKey(tea.KeyMsg{Type: tea.KeyLeft})

	AssertModelField(t, "view", state.View(), "a█b")
}

func TestTextInputState_ConcurrentAccess(t *testing.T) {
	state := NewTextInputState()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			state.HandleKey(runes("x"))
		}()
		go func() {
			defer wg.Done()
			_ = state.View()
			_ = state.GetInput()
		}()
	}
	wg.Wait()

	AssertModelField(t, "length", len(state.GetInput()), 10)
}
