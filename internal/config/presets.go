package config

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed presets/*.yaml
var presetFS embed.FS

// DefaultPreset is the preset used when a config names no tokens at all.
const DefaultPreset = "default"

// Preset is a named, embedded token list.
type Preset struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tokens      []string `yaml:"tokens"`
}

// LoadPreset returns the embedded preset with the given name.
func LoadPreset(name string) (*Preset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	data, err := presetFS.ReadFile(path.Join("presets", name+".yaml"))
	if err != nil {
		return nil, &ConfigError{Field: "preset", Message: fmt.Sprintf("unknown preset %q", name)}
	}

	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, &ConfigError{Field: "preset", Message: fmt.Sprintf("malformed preset %q", name), Err: err}
	}
	if p.Name == "" {
		p.Name = name
	}
	return &p, nil
}

// PresetTokens returns the tokens of a preset, or nil when the preset does
// not exist.
func PresetTokens(name string) []string {
	p, err := LoadPreset(name)
	if err != nil {
		return nil
	}
	return p.Tokens
}

// ListPresets returns all embedded presets sorted by name.
func ListPresets() ([]*Preset, error) {
	entries, err := presetFS.ReadDir("presets")
	if err != nil {
		return nil, fmt.Errorf("read embedded presets: %w", err)
	}

	presets := make([]*Preset, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		p, err := LoadPreset(name)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	return presets, nil
}

// DefaultTokens returns the token list of the default preset.
func DefaultTokens() []string {
	return PresetTokens(DefaultPreset)
}
