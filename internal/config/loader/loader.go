// Package loader reads and writes snippet settings files. TOML is the
// primary format; YAML is supported for users who keep their snippet
// definitions alongside YAML-based tooling. The format is chosen by
// file extension.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a settings file encoding.
type Format int

const (
	// FormatTOML is the default settings encoding.
	FormatTOML Format = iota

	// FormatYAML is the alternate settings encoding.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// SnippetDef is one snippet definition as persisted.
type SnippetDef struct {
	Trigger     string `toml:"trigger" yaml:"trigger"`
	Description string `toml:"description,omitempty" yaml:"description,omitempty"`
	Template    string `toml:"template" yaml:"template"`
}

// File is the persisted settings document.
type File struct {
	// TriggerKey is the trigger-key prefix. Empty means "use default".
	TriggerKey string `toml:"trigger_key,omitempty" yaml:"trigger_key,omitempty"`

	// CompletionKey is the key spec that fires expansion.
	// Empty means "use default".
	CompletionKey string `toml:"completion_key,omitempty" yaml:"completion_key,omitempty"`

	// Snippets is the ordered snippet list. Order is significant; the
	// matcher returns the first match.
	Snippets []SnippetDef `toml:"snippets" yaml:"snippets"`
}

// FormatForPath picks the encoding for a file path by extension.
// Unknown extensions default to TOML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Load reads a settings file. A missing file is not an error: it yields
// the zero File so first runs start from defaults.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("reading settings file %s: %w", path, err)
	}
	return Decode(data, FormatForPath(path))
}

// Decode parses settings data in the given format.
func Decode(data []byte, format Format) (File, error) {
	var f File
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("parsing yaml settings: %w", err)
		}
	default:
		if err := toml.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("parsing toml settings: %w", err)
		}
	}
	return f, nil
}

// Encode serializes settings in the given format.
func Encode(f File, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("encoding yaml settings: %w", err)
		}
		return data, nil
	default:
		data, err := toml.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("encoding toml settings: %w", err)
		}
		return data, nil
	}
}

// Save writes a settings file, creating parent directories as needed.
// The encoding follows the path extension.
func Save(path string, f File) error {
	data, err := Encode(f, FormatForPath(path))
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating settings directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings file %s: %w", path, err)
	}
	return nil
}
