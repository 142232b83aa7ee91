package tui

import (
	"path/filepath"
	"testing"

	"github.com/studiowebux/keydeck/internal/config"
	"github.com/studiowebux/keydeck/internal/history"
	"github.com/studiowebux/keydeck/internal/profile"
	"github.com/studiowebux/keydeck/internal/session"
)

// CreateTestModel creates a Model with a fresh store and the power ON
func CreateTestModel(t *testing.T) *Model {
	t.Helper()

	editSession := session.NewEditSession()
	editSession.TogglePower(true)

	settings := config.DefaultSettings()
	settings.CountdownSeconds = 1

	m := New(Options{
		Store:        profile.NewStore(editSession),
		Session:      editSession,
		Settings:     settings,
		ProfilesPath: filepath.Join(t.TempDir(), "profiles.yaml"),
	})
	m.width = 120
	m.height = 40
	m.updateViewport()
	return &m
}

// CreateTestModelWithHistory is CreateTestModel with a journal database
// recording every store event
func CreateTestModelWithHistory(t *testing.T) *Model {
	t.Helper()

	m := CreateTestModel(t)
	mgr, err := history.NewManager(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open journal: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })

	m.store.Subscribe(history.Recorder(mgr, m.log))
	m.historyManager = mgr
	return m
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}
