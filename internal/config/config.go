package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// LocalProfilesFile is looked up in the working directory before the global profiles file
	LocalProfilesFile = "keydeck.yaml"
)

var (
	// ConfigDir is the global configuration directory (~/.keydeck)
	ConfigDir string

	// DatabasePath is the SQLite database file for the activity journal
	DatabasePath string

	// ProfilesFile is the default profiles seed file
	ProfilesFile string

	// KeybindsFile holds the user's application control overrides
	KeybindsFile string

	// SettingsFile is the viper-managed settings file
	SettingsFile string

	// LogFile receives the TUI log output
	LogFile string
)

// Initialize sets up the configuration directory and files.
// It creates ~/.keydeck/ (or $KEYDECK_HOME) if it doesn't exist.
func Initialize() error {
	dir := os.Getenv("KEYDECK_HOME")
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".keydeck")
	}
	return InitializeIn(dir)
}

// InitializeIn points every global path at dir and creates the default files
func InitializeIn(dir string) error {
	ConfigDir = dir
	DatabasePath = filepath.Join(ConfigDir, "keydeck.db")
	ProfilesFile = filepath.Join(ConfigDir, "profiles.yaml")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")
	SettingsFile = filepath.Join(ConfigDir, "config.toml")
	LogFile = filepath.Join(ConfigDir, "keydeck.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create a profiles file holding only the Default profile
	if _, err := os.Stat(ProfilesFile); os.IsNotExist(err) {
		if err := os.WriteFile(ProfilesFile, []byte(defaultProfiles), FilePermissions); err != nil {
			return fmt.Errorf("failed to create profiles file: %w", err)
		}
	}

	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		if err := os.WriteFile(SettingsFile, []byte(defaultSettings), FilePermissions); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	return nil
}

// GetProfilesFilePath returns the profiles file to use. An explicit path
// wins, then a keydeck.yaml in the working directory, then the global file.
func GetProfilesFilePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(LocalProfilesFile); err == nil {
		return LocalProfilesFile
	}
	return ProfilesFile
}

const defaultProfiles = `# keydeck profiles
# Extra profiles are named "Profile #1" to "Profile #4".
profiles:
  - name: Default
    bindings:
      - {name: Forward, key: w, type: Click}
      - {name: Backwards, key: s, type: Click}
      - {name: Left, key: a, type: Click}
      - {name: Right, key: d, type: Click}
`
