package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
)

// ConfigFileName is the keybinding file inside the config directory
const ConfigFileName = "keybinds.json"

// Config represents the user's keybinding configuration. Each section maps
// an action to a comma separated list of keys, e.g. "navigate_up": "up,k".
type Config struct {
	Version     string            `json:"version"`
	Global      map[string]string `json:"global,omitempty"`
	Normal      map[string]string `json:"normal,omitempty"`
	Capture     map[string]string `json:"capture,omitempty"`
	TextInput   map[string]string `json:"text_input,omitempty"`
	Filter      map[string]string `json:"filter,omitempty"`
	Help        map[string]string `json:"help,omitempty"`
	History     map[string]string `json:"history,omitempty"`
	Calibration map[string]string `json:"calibration,omitempty"`
	Confirm     map[string]string `json:"confirm,omitempty"`
}

// sections maps every context to its section of c
func (c *Config) sections() map[Context]*map[string]string {
	return map[Context]*map[string]string{
		ContextGlobal:      &c.Global,
		ContextNormal:      &c.Normal,
		ContextCapture:     &c.Capture,
		ContextTextInput:   &c.TextInput,
		ContextFilter:      &c.Filter,
		ContextHelp:        &c.Help,
		ContextHistory:     &c.History,
		ContextCalibration: &c.Calibration,
		ContextConfirm:     &c.Confirm,
	}
}

// LoadConfig loads keybinding configuration from a JSON file. Comments and
// trailing commas are allowed.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid %s format: %w", ConfigFileName, err)
	}

	return &config, nil
}

// LoadConfigFromDir loads keybinds.json from a directory
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ConfigFileName))
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SplitKeys splits a comma separated key list. A lone "," stays a key.
func SplitKeys(list string) []string {
	if strings.TrimSpace(list) == "," {
		return []string{","}
	}

	var keys []string
	for _, k := range strings.Split(list, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// ApplyConfig applies user configuration to a registry. An action listed in
// a section loses its default keys in that context.
func ApplyConfig(registry *Registry, config *Config) error {
	for _, context := range Contexts {
		section := *config.sections()[context]
		actions := make([]string, 0, len(section))
		for action := range section {
			actions = append(actions, action)
		}
		sort.Strings(actions)

		for _, name := range actions {
			action := Action(name)
			if err := ValidateAction(name); err != nil {
				return fmt.Errorf("context '%s': %w", context, err)
			}
			keys := SplitKeys(section[name])
			for _, key := range keys {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("context '%s', action '%s': %w", context, action, err)
				}
			}
			registry.Rebind(context, action, keys)
		}
	}

	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", ConfigFileName, err)
		}

		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}

	return registry, nil
}

// ExportConfig turns a registry into a config listing every binding
func ExportConfig(registry *Registry) *Config {
	config := &Config{Version: "1.0"}
	sections := config.sections()

	registry.mu.RLock()
	defer registry.mu.RUnlock()

	for context, bindings := range registry.bindings {
		target, ok := sections[context]
		if !ok {
			continue
		}
		byAction := make(map[Action][]string)
		for key, action := range bindings {
			byAction[action] = append(byAction[action], key)
		}
		if *target == nil {
			*target = make(map[string]string)
		}
		for action, keys := range byAction {
			sort.Strings(keys)
			(*target)[string(action)] = strings.Join(keys, ",")
		}
	}

	return config
}

// ExportDefaults exports default keybindings as a config file
func ExportDefaults() *Config {
	return ExportConfig(NewDefaultRegistry())
}

// CreateExampleConfig writes the default keybindings to path with a short
// comment header
func CreateExampleConfig(path string) error {
	data, err := json.MarshalIndent(ExportDefaults(), "", "  ")
	if err != nil {
		return err
	}

	header := "// keydeck keybindings. Each entry maps an action to comma separated keys.\n" +
		"// Listing an action replaces its default keys in that section.\n"

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(header), data...), 0644)
}
