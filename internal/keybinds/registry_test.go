package keybinds

import (
	"reflect"
	"testing"
)

func TestRegistry_MatchFallsBackToGlobal(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		name    string
		context Context
		key     string
		want    Action
		wantOK  bool
	}{
		{"normal key", ContextNormal, "p", ActionTogglePower, true},
		{"global from normal", ContextNormal, "ctrl+c", ActionQuitForce, true},
		{"global from capture", ContextCapture, "ctrl+c", ActionQuitForce, true},
		{"capture cancel", ContextCapture, "esc", ActionCaptureCancel, true},
		{"unbound in capture", ContextCapture, "p", "", false},
		{"same key different context", ContextHelp, "q", ActionCloseModal, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Match(tt.context, tt.key)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Match(%s, %q) = %q, %v; want %q, %v", tt.context, tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRegistry_MatchMultiKey(t *testing.T) {
	r := NewDefaultRegistry()

	_, complete, partial := r.MatchMultiKey(ContextHelp, "g")
	if complete || !partial {
		t.Fatalf("first g: complete=%v partial=%v", complete, partial)
	}

	action, complete, partial := r.MatchMultiKey(ContextHelp, "g")
	if action != ActionGoToTop || !complete || partial {
		t.Errorf("gg = %q complete=%v partial=%v", action, complete, partial)
	}

	action, complete, _ = r.MatchMultiKey(ContextHelp, "G")
	if action != ActionGoToBottom || !complete {
		t.Errorf("G = %q complete=%v", action, complete)
	}

	// A broken sequence matches nothing and clears the state
	r.MatchMultiKey(ContextHelp, "g")
	if _, complete, _ := r.MatchMultiKey(ContextHelp, "x"); complete {
		t.Error("gx should not match")
	}
	if action, ok, _ := r.MatchMultiKey(ContextHelp, "j"); !ok || action != ActionNavigateDown {
		t.Errorf("j after reset = %q, %v", action, ok)
	}
}

func TestRegistry_Rebind(t *testing.T) {
	r := NewDefaultRegistry()
	r.Rebind(ContextNormal, ActionTogglePower, []string{"P", "ctrl+p"})

	if _, ok := r.Match(ContextNormal, "p"); ok {
		t.Error("old key still bound")
	}
	if got := r.GetBinding(ContextNormal, ActionTogglePower); !reflect.DeepEqual(got, []string{"P", "ctrl+p"}) {
		t.Errorf("GetBinding = %v", got)
	}
}

func TestRegistry_GetBindingString(t *testing.T) {
	r := NewDefaultRegistry()

	if got := r.GetBindingString(ContextNormal, ActionNavigateUp); got != "k, up" {
		t.Errorf("GetBindingString = %q", got)
	}
	if got := r.GetBindingString(ContextCapture, ActionQuitForce); got != "ctrl+c" {
		t.Errorf("global fallback = %q", got)
	}
	if got := r.GetBindingString(ContextCapture, ActionOpenHelp); got != "unbound" {
		t.Errorf("unbound = %q", got)
	}
}

func TestRegistry_ListBindingsIncludesGlobal(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextCalibration, "q", ActionCalibrationCancel)
	r.Register(ContextCalibration, "esc", ActionCalibrationCancel)

	got := r.ListBindings(ContextCalibration)
	want := []Binding{
		{Key: "esc", Action: ActionCalibrationCancel, Context: ContextCalibration},
		{Key: "q", Action: ActionCalibrationCancel, Context: ContextCalibration},
		{Key: "ctrl+c", Action: ActionQuitForce, Context: ContextGlobal},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListBindings = %v, want %v", got, want)
	}
}

func TestRegistry_CloneIsIndependent(t *testing.T) {
	r := NewDefaultRegistry()
	clone := r.Clone()
	clone.Register(ContextNormal, "p", ActionQuit)

	if action, _ := r.Match(ContextNormal, "p"); action != ActionTogglePower {
		t.Errorf("original changed: %q", action)
	}
}

func TestDefaults_AllActionsKnown(t *testing.T) {
	r := NewDefaultRegistry()
	for _, context := range Contexts {
		for _, b := range r.ListBindings(context) {
			if !IsKnownAction(b.Action) {
				t.Errorf("%s/%s bound to unknown action %q", context, b.Key, b.Action)
			}
			if err := ValidateKey(b.Key); err != nil {
				t.Errorf("%s: %v", context, err)
			}
		}
	}
}
