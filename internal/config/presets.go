package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"pes-mcp/internal/stats"
	"pes-mcp/internal/validation"
)

// BaselinePreset is always available and matches the dashboard defaults.
const BaselinePreset = "baseline"

// Preset is a named what-if scenario.
type Preset struct {
	Name        string                     `yaml:"name" json:"name" validate:"required"`
	Description string                     `yaml:"description" json:"description,omitempty"`
	Parameters  stats.SimulationParameters `yaml:",inline" json:"parameters"`
}

type presetFile struct {
	Presets []Preset `yaml:"presets" json:"presets" validate:"dive"`
}

// Baseline returns the built-in default scenario.
func Baseline() Preset {
	return Preset{
		Name:        BaselinePreset,
		Description: "Dashboard defaults: 5% defects, 30 minutes downtime, 3% material shortage.",
		Parameters:  stats.DefaultParameters(),
	}
}

// LoadPresets reads the presets file. The baseline preset always comes first; an empty path
// yields only the baseline.
func LoadPresets(path string) ([]Preset, error) {
	presets := []Preset{Baseline()}
	if path == "" {
		return presets, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	parsed, err := ParsePresets(data)
	if err != nil {
		return nil, fmt.Errorf("presets file %s: %w", path, err)
	}
	return append(presets, parsed...), nil
}

// ParsePresets decodes and validates preset YAML. Names are unique, case-insensitively, and
// may not shadow the baseline.
func ParsePresets(data []byte) ([]Preset, error) {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if err := validation.Struct(f); err != nil {
		return nil, err
	}

	seen := map[string]bool{BaselinePreset: true}
	for _, p := range f.Presets {
		key := strings.ToLower(p.Name)
		if seen[key] {
			return nil, fmt.Errorf("duplicate preset name %q", p.Name)
		}
		seen[key] = true
	}
	return f.Presets, nil
}

// FindPreset looks a preset up by name, case-insensitively.
func FindPreset(presets []Preset, name string) (Preset, bool) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}
