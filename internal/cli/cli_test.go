package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/keydeck/internal/history"
	"github.com/studiowebux/keydeck/internal/logging"
	"github.com/studiowebux/keydeck/internal/seed"
	"github.com/studiowebux/keydeck/internal/types"
)

const sampleSeed = `active: "Profile #1"
profiles:
  - name: Default
    bindings:
      - {name: Forward, key: w, type: Click}
  - name: "Profile #1"
    bindings:
      - {name: Jump, key: space, type: Hold}
      - {name: Crouch, key: " SPACE ", type: Click}
`

func writeSeed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestProfiles_Text(t *testing.T) {
	path := writeSeed(t, "profiles.yaml", sampleSeed)
	var out bytes.Buffer

	err := Profiles(ProfilesOptions{File: path, Out: &out, Log: logging.Discard()})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "  Default (read-only)")
	assert.Contains(t, text, "* "+colorGreen+"Profile #1"+colorReset)
	assert.Contains(t, text, "Jump")
	assert.Contains(t, text, "Hold")
}

func TestProfiles_JSON(t *testing.T) {
	path := writeSeed(t, "profiles.yaml", sampleSeed)
	var out bytes.Buffer

	require.NoError(t, Profiles(ProfilesOptions{File: path, Format: "json", Out: &out, Log: logging.Discard()}))

	file, err := seed.Parse(out.Bytes(), seed.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "Profile #1", file.Active)
	require.Len(t, file.Profiles, 2)
}

func TestProfiles_MissingFileGivesDefault(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "none.yaml")

	require.NoError(t, Profiles(ProfilesOptions{File: path, Out: &out, Log: logging.Discard()}))
	assert.Contains(t, out.String(), "Forward")
	assert.Contains(t, out.String(), "Backwards")
}

func TestCheck(t *testing.T) {
	t.Run("clean file", func(t *testing.T) {
		path := writeSeed(t, "ok.yaml", "profiles:\n  - name: Default\n    bindings: []\n")
		var out bytes.Buffer
		require.NoError(t, Check(path, &out))
		assert.Contains(t, out.String(), "No issues found")
	})

	t.Run("latent duplicate", func(t *testing.T) {
		path := writeSeed(t, "dup.yaml", sampleSeed)
		var out bytes.Buffer
		err := Check(path, &out)
		require.ErrorIs(t, err, ErrCheckFailed)
		assert.Contains(t, out.String(), "'Crouch' ignores key ' SPACE ' already used by 'Jump'")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeSeed(t, "seed.txt", sampleSeed)
		require.ErrorIs(t, Check(path, &bytes.Buffer{}), seed.ErrUnsupportedFormat)
	})
}

func TestExport(t *testing.T) {
	path := writeSeed(t, "profiles.yaml", sampleSeed)

	t.Run("to stdout as yaml", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Export(ExportOptions{File: path, Out: &out, Log: logging.Discard()}))

		file, err := seed.Parse(out.Bytes(), seed.FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, "Profile #1", file.Active)
	})

	t.Run("to file by extension", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "out.jsonc")
		require.NoError(t, Export(ExportOptions{File: path, OutPath: target, Log: logging.Discard()}))

		file, err := seed.Load(target)
		require.NoError(t, err)
		require.Len(t, file.Profiles, 2)
		assert.Len(t, file.Profiles[1].Bindings, 2)
	})

	t.Run("bad format", func(t *testing.T) {
		err := Export(ExportOptions{File: path, Format: "toml", Out: &bytes.Buffer{}, Log: logging.Discard()})
		require.ErrorIs(t, err, seed.ErrUnsupportedFormat)
	})
}

func TestSwitch(t *testing.T) {
	path := writeSeed(t, "profiles.yaml", sampleSeed)
	journal, err := history.NewManager(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer journal.Close()

	var out bytes.Buffer
	err = Switch(SwitchOptions{File: path, Profile: "Default", Journal: journal, Out: &out, Log: logging.Discard()})
	require.NoError(t, err)
	assert.Equal(t, "Switched to Default\n", out.String())

	file, err := seed.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Default", file.Active)

	entries, err := journal.Load("", 0)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "profile_switched", entries[0].Kind)

	err = Switch(SwitchOptions{File: path, Profile: "Nope", Out: &out, Log: logging.Discard()})
	require.Error(t, err)
}

func TestHistory(t *testing.T) {
	journal, err := history.NewManager(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer journal.Close()

	now := time.Now()
	require.NoError(t, journal.Record(types.JournalEntry{Timestamp: now.Add(-time.Minute), Profile: "Profile #1", Kind: "profile_added", Detail: "created"}))
	require.NoError(t, journal.Record(types.JournalEntry{Timestamp: now, Profile: "Default", Kind: "intent_rejected", Detail: "add_binding", Error: "protected profile"}))

	var out bytes.Buffer
	require.NoError(t, History(HistoryOptions{Journal: journal, Out: &out}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "intent_rejected")
	assert.Contains(t, lines[0], "(protected profile)")
	assert.Contains(t, lines[1], "[Profile #1] created")

	out.Reset()
	require.NoError(t, History(HistoryOptions{Journal: journal, Profile: "Default", JSON: true, Out: &out}))
	assert.Contains(t, out.String(), `"kind": "intent_rejected"`)
	assert.NotContains(t, out.String(), "profile_added")

	out.Reset()
	require.NoError(t, History(HistoryOptions{Journal: journal, Clear: true, Out: &out}))
	assert.Equal(t, "Deleted 2 journal entries\n", out.String())

	out.Reset()
	require.NoError(t, History(HistoryOptions{Journal: journal, Out: &out}))
	assert.Equal(t, "No journal entries\n", out.String())
}

func TestKeybinds_InitAndCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybinds.json")
	var out bytes.Buffer

	require.NoError(t, InitKeybinds(path, false, &out))
	require.FileExists(t, path)

	// Existing file is kept without --force
	require.Error(t, InitKeybinds(path, false, &out))
	require.NoError(t, InitKeybinds(path, true, &out))

	out.Reset()
	require.NoError(t, CheckKeybinds(path, &out))
	assert.NotContains(t, out.String(), "Errors")
}

func TestSelector(t *testing.T) {
	m := newSelector([]string{"Default", "Profile #1"}, "Profile #1")
	assert.Equal(t, 1, m.list.Index())

	it, ok := m.list.SelectedItem().(profileItem)
	require.True(t, ok)
	assert.Equal(t, "Profile #1 [active]", it.Title())
	assert.Equal(t, "Default (read-only)", profileItem{name: "Default"}.Title())
}

func TestSelector_EnterAndCancel(t *testing.T) {
	m := newSelector([]string{"Default", "Profile #1"}, "Default")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.Equal(t, "Default", next.(selectorModel).choice)
	assert.Empty(t, next.(selectorModel).View())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, next.(selectorModel).choice)
	assert.True(t, next.(selectorModel).done)
}
