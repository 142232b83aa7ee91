package session

import (
	"testing"
)

type fakeView struct {
	active string
	extras int
}

func (v fakeView) ActiveProfile() string        { return v.active }
func (v fakeView) IsProtected(name string) bool { return name == "Default" }
func (v fakeView) ExtraCount() int              { return v.extras }
func (v fakeView) ExtraLimit() int              { return 4 }

func TestNewEditSession(t *testing.T) {
	s := NewEditSession()

	if s.Enabled() {
		t.Error("Expected new session to be disabled")
	}
	if s.State() != Disabled {
		t.Errorf("Expected Disabled, got %v", s.State())
	}
}

func TestEditSession_TogglePower(t *testing.T) {
	s := NewEditSession()
	var seen []State
	s.OnChange(func(st State) { seen = append(seen, st) })

	if !s.TogglePower(true) {
		t.Error("Expected change when enabling")
	}
	if s.TogglePower(true) {
		t.Error("Expected no change when enabling twice")
	}
	if !s.Enabled() {
		t.Error("Expected session to be enabled")
	}
	if !s.TogglePower(false) {
		t.Error("Expected change when disabling")
	}
	if s.TogglePower(false) {
		t.Error("Expected no change when disabling twice")
	}

	if len(seen) != 2 || seen[0] != Enabled || seen[1] != Disabled {
		t.Errorf("Unexpected listener calls: %v", seen)
	}
}

func TestState_String(t *testing.T) {
	if Enabled.String() != "ON" || Disabled.String() != "OFF" {
		t.Errorf("Unexpected state names: %s/%s", Enabled, Disabled)
	}
}

func TestEditSession_Permissions(t *testing.T) {
	tests := []struct {
		name string
		on   bool
		view fakeView
		want Permissions
	}{
		{
			name: "off on extra profile",
			on:   false,
			view: fakeView{active: "Profile #1", extras: 1},
			want: Permissions{},
		},
		{
			name: "off on default",
			on:   false,
			view: fakeView{active: "Default"},
			want: Permissions{},
		},
		{
			name: "on on default",
			on:   true,
			view: fakeView{active: "Default", extras: 0},
			want: Permissions{AddProfile: true, Calibrate: true, OpenCamera: true},
		},
		{
			name: "on on extra profile",
			on:   true,
			view: fakeView{active: "Profile #2", extras: 2},
			want: Permissions{
				EditBindings:  true,
				AddProfile:    true,
				CloseProfile:  true,
				RenameProfile: true,
				Calibrate:     true,
				OpenCamera:    true,
			},
		},
		{
			name: "on with limit reached",
			on:   true,
			view: fakeView{active: "Profile #4", extras: 4},
			want: Permissions{
				EditBindings:  true,
				CloseProfile:  true,
				RenameProfile: true,
				Calibrate:     true,
				OpenCamera:    true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewEditSession()
			s.TogglePower(tt.on)

			got := s.Permissions(tt.view)
			if got != tt.want {
				t.Errorf("Permissions() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEditSession_PermissionsRecomputed(t *testing.T) {
	s := NewEditSession()
	view := fakeView{active: "Profile #1", extras: 1}

	if s.Permissions(view).EditBindings {
		t.Fatal("Expected editing to be blocked while off")
	}

	s.TogglePower(true)
	if !s.Permissions(view).EditBindings {
		t.Fatal("Expected editing after power on")
	}

	view.active = "Default"
	if s.Permissions(view).EditBindings {
		t.Fatal("Expected Default to stay read-only")
	}
}
