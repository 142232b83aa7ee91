package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeIn_CreatesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".keydeck")
	require.NoError(t, InitializeIn(dir))

	assert.Equal(t, filepath.Join(dir, "keydeck.db"), DatabasePath)
	assert.FileExists(t, ProfilesFile)
	assert.FileExists(t, SettingsFile)

	// Existing files are left alone
	require.NoError(t, os.WriteFile(ProfilesFile, []byte("profiles: []\n"), FilePermissions))
	require.NoError(t, InitializeIn(dir))
	data, err := os.ReadFile(ProfilesFile)
	require.NoError(t, err)
	assert.Equal(t, "profiles: []\n", string(data))
}

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), *s)
}

func TestLoadSettings_GeneratedFileMatchesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitializeIn(dir))

	s, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), *s)
}

func TestLoadSettings_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := `
theme = "Compact"
countdown_seconds = 5
auto_create_profile = true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), FilePermissions))
	t.Setenv("KEYDECK_LOG_LEVEL", "debug")

	s, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, ThemeCompact, s.Theme)
	assert.Equal(t, 5, s.CountdownSeconds)
	assert.True(t, s.AutoCreateProfile)
	assert.Equal(t, "debug", s.LogLevel)
	assert.True(t, s.HistoryEnabled)
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "countdown too small", content: "countdown_seconds = 0\n"},
		{name: "countdown too large", content: "countdown_seconds = 600\n"},
		{name: "unknown log level", content: "log_level = \"loud\"\n"},
		{name: "broken toml", content: "theme = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(tt.content), FilePermissions))
			_, err := LoadSettings(dir)
			assert.Error(t, err)
		})
	}
}

func TestLoadSettings_UnknownThemeFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("theme = \"neon\"\n"), FilePermissions))

	s, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, ThemeCards, s.Theme)
}

func TestGetProfilesFilePath(t *testing.T) {
	require.NoError(t, InitializeIn(t.TempDir()))

	assert.Equal(t, "/tmp/x.yaml", GetProfilesFilePath("/tmp/x.yaml"))

	wd := t.TempDir()
	t.Chdir(wd)
	assert.Equal(t, ProfilesFile, GetProfilesFilePath(""))

	require.NoError(t, os.WriteFile(LocalProfilesFile, []byte("profiles: []\n"), FilePermissions))
	assert.Equal(t, LocalProfilesFile, GetProfilesFilePath(""))
}

func TestTheme_Toggle(t *testing.T) {
	assert.Equal(t, ThemeCompact, ThemeCards.Toggle())
	assert.Equal(t, ThemeCards, ThemeCompact.Toggle())
}
