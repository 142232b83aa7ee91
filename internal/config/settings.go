package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Theme selects one of the two presentation variants
type Theme string

const (
	ThemeCards   Theme = "cards"
	ThemeCompact Theme = "compact"
)

// MaxCountdownSeconds caps the countdown before calibration and camera views
const MaxCountdownSeconds = 60

// Settings are the user preferences read from config.toml and KEYDECK_* variables
type Settings struct {
	Theme             Theme  `mapstructure:"theme"`
	CountdownSeconds  int    `mapstructure:"countdown_seconds"`
	LogLevel          string `mapstructure:"log_level"`
	HistoryEnabled    bool   `mapstructure:"history_enabled"`
	WatchProfiles     bool   `mapstructure:"watch_profiles"`
	AutoCreateProfile bool   `mapstructure:"auto_create_profile"`
	ProfilesFile      string `mapstructure:"profiles_file"`
}

// DefaultSettings returns the built-in preferences
func DefaultSettings() Settings {
	return Settings{
		Theme:            ThemeCards,
		CountdownSeconds: 3,
		LogLevel:         "info",
		HistoryEnabled:   true,
		WatchProfiles:    true,
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultSettings()
	v.SetDefault("theme", string(d.Theme))
	v.SetDefault("countdown_seconds", d.CountdownSeconds)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("history_enabled", d.HistoryEnabled)
	v.SetDefault("watch_profiles", d.WatchProfiles)
	v.SetDefault("auto_create_profile", d.AutoCreateProfile)
	v.SetDefault("profiles_file", d.ProfilesFile)
}

// LoadSettings reads config.toml from dir, then applies KEYDECK_*
// environment overrides. A missing file yields the defaults.
func LoadSettings(dir string) (*Settings, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("KEYDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings at %s: %w", v.ConfigFileUsed(), err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	normalizeSettings(s)
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

func normalizeSettings(s *Settings) {
	switch Theme(strings.ToLower(strings.TrimSpace(string(s.Theme)))) {
	case ThemeCompact:
		s.Theme = ThemeCompact
	default:
		s.Theme = ThemeCards
	}
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	s.ProfilesFile = strings.TrimSpace(s.ProfilesFile)
}

// Validate checks value ranges
func (s *Settings) Validate() error {
	if s.CountdownSeconds < 1 || s.CountdownSeconds > MaxCountdownSeconds {
		return fmt.Errorf("countdown_seconds must be between 1 and %d, got %d", MaxCountdownSeconds, s.CountdownSeconds)
	}
	if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Toggle returns the other presentation variant
func (t Theme) Toggle() Theme {
	if t == ThemeCompact {
		return ThemeCards
	}
	return ThemeCompact
}

const defaultSettings = `# keydeck settings
# Every key can be overridden with a KEYDECK_<KEY> environment variable.

# Presentation variant: "cards" or "compact"
theme = "cards"

# Seconds counted down before the calibration and camera views open
countdown_seconds = 3

# trace, debug, info, warn, error
log_level = "info"

# Record accepted and rejected intents in the activity journal
history_enabled = true

# Reload profiles when the profiles file changes on disk
watch_profiles = true

# Create "Profile #1" at startup when only Default exists
auto_create_profile = false

# Profiles seed file; empty uses keydeck.yaml or ~/.keydeck/profiles.yaml
profiles_file = ""
`
