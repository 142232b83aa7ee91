// Package seed reads and writes the profile files a store can be seeded
// from. YAML (.yaml, .yml) and JSON with comments (.json, .jsonc) are
// accepted; both carry a types.SeedFile.
package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/keydeck/internal/profile"
	"github.com/studiowebux/keydeck/internal/types"
)

// Format is a seed file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat is returned for file extensions that are not YAML or JSON
var ErrUnsupportedFormat = errors.New("unsupported seed file format")

// FormatOf picks the format from a file extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s (use .yaml, .yml, .json or .jsonc)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ParseFormat parses a --format flag value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json", "jsonc":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
	}
}

// Parse decodes seed data
func Parse(data []byte, format Format) (types.SeedFile, error) {
	var file types.SeedFile

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return types.SeedFile{}, fmt.Errorf("failed to parse YAML seed: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
			return types.SeedFile{}, fmt.Errorf("failed to parse JSON seed: %w", err)
		}
	default:
		return types.SeedFile{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return file, nil
}

// Encode serializes a seed file
func Encode(file types.SeedFile, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(file)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(file, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Load reads a seed file, choosing the format from its extension
func Load(path string) (types.SeedFile, error) {
	format, err := FormatOf(path)
	if err != nil {
		return types.SeedFile{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.SeedFile{}, fmt.Errorf("failed to read seed file: %w", err)
	}

	return Parse(data, format)
}

// LoadOrEmpty reads a seed file and treats a missing file as empty
func LoadOrEmpty(path string) (types.SeedFile, error) {
	file, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return types.SeedFile{}, nil
	}
	return file, err
}

// Save writes a seed file, choosing the format from its extension
func Save(path string, file types.SeedFile) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	data, err := Encode(file, format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create seed directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write seed file: %w", err)
	}
	return nil
}

// Check loads file into a scratch store and reports what a real load would
// skip or ignore
func Check(file types.SeedFile) *profile.LoadReport {
	return profile.NewStore(nil).Load(file)
}

// Open builds a store seeded from path. A missing file gives a store
// holding only Default.
func Open(path string, gate profile.Gate, opts ...profile.Option) (*profile.Store, *profile.LoadReport, error) {
	file, err := LoadOrEmpty(path)
	if err != nil {
		return nil, nil, err
	}
	store := profile.NewStore(gate, opts...)
	return store, store.Load(file), nil
}

// Reload re-reads path into an existing store, keeping its active profile
// when it still exists
func Reload(path string, store *profile.Store) (*profile.LoadReport, error) {
	file, err := LoadOrEmpty(path)
	if err != nil {
		return nil, err
	}
	return store.Refresh(file), nil
}

// Example returns the seed written on first run
func Example() types.SeedFile {
	return types.SeedFile{
		Active: profile.DefaultProfileName,
		Profiles: []types.ProfileSnapshot{
			{Name: profile.DefaultProfileName, Bindings: profile.DefaultBindings()},
		},
	}
}
