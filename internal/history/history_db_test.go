package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/keydeck/internal/profile"
	"github.com/studiowebux/keydeck/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "keydeck.db"))
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestManager_RecordAndLoad(t *testing.T) {
	m := newTestManager(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)

	require.NoError(t, m.Record(types.JournalEntry{Timestamp: base, Profile: "Default", Kind: "binding_added", Detail: "Jump"}))
	require.NoError(t, m.Record(types.JournalEntry{Timestamp: base.Add(time.Minute), Profile: "Profile #1", Kind: "profile_added"}))
	require.NoError(t, m.Record(types.JournalEntry{Timestamp: base.Add(2 * time.Minute), Profile: "Default", Kind: "intent_rejected", Error: "protected profile"}))

	all, err := m.Load("", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "intent_rejected", all[0].Kind, "newest first")
	assert.Equal(t, "protected profile", all[0].Error)
	assert.Equal(t, base.Add(2*time.Minute).Unix(), all[0].Timestamp.Unix())

	def, err := m.Load("Default", 0)
	require.NoError(t, err)
	require.Len(t, def, 2)
	assert.Equal(t, "Jump", def[1].Detail)
	assert.Empty(t, def[1].Error)

	limited, err := m.Load("", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestManager_RecordRequiresKind(t *testing.T) {
	m := newTestManager(t)
	assert.Error(t, m.Record(types.JournalEntry{Profile: "Default"}))
}

func TestManager_ClearAndCount(t *testing.T) {
	m := newTestManager(t)
	for _, p := range []string{"Default", "Default", "Profile #1"} {
		require.NoError(t, m.Record(types.JournalEntry{Profile: p, Kind: "profile_switched"}))
	}

	count, err := m.GetCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	n, err := m.Clear("Default")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = m.Clear("")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	count, err = m.GetCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestManager_Delete(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Record(types.JournalEntry{Kind: "profiles_loaded"}))

	entries, err := m.Load("", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.NoError(t, m.Delete(entries[0].ID))
	count, err := m.GetCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestManager_ReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keydeck.db")
	m, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, m.Record(types.JournalEntry{Kind: "profile_added", Profile: "Profile #1"}))
	require.NoError(t, m.Close())

	m, err = NewManager(path)
	require.NoError(t, err)
	defer m.Close()

	count, err := m.GetCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEntryFromEvent(t *testing.T) {
	ev := profile.Event{
		Kind:    profile.EventIntentRejected,
		Intent:  profile.IntentRenameProfile,
		Profile: "Default",
		Err:     profile.ErrProtected,
	}
	entry := EntryFromEvent(ev)
	assert.Equal(t, "intent_rejected", entry.Kind)
	assert.Equal(t, "rename_profile", entry.Detail)
	assert.Equal(t, "protected profile", entry.Error)

	entry = EntryFromEvent(profile.Event{Kind: profile.EventBindingAdded, Profile: "Default", Detail: "Jump"})
	assert.Equal(t, "Jump", entry.Detail)
	assert.Empty(t, entry.Error)
}

func TestRecorder_StoreEvents(t *testing.T) {
	m := newTestManager(t)
	store := profile.NewStore(enabled{}, profile.WithListener(Recorder(m, nil)))

	_, err := store.AddExtraProfile()
	require.NoError(t, err)
	err = store.RenameProfile(profile.DefaultProfileName, "Main")
	require.True(t, errors.Is(err, profile.ErrProtected))

	entries, err := m.Load("", 0)
	require.NoError(t, err)

	var kinds []string
	for _, e := range entries {
		kinds = append(kinds, e.Kind)
	}
	assert.ElementsMatch(t, []string{"profile_added", "profile_switched", "intent_rejected"}, kinds)
}

type enabled struct{}

func (enabled) Enabled() bool { return true }
