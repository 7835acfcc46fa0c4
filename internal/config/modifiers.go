package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadModifiers reads a per-frame modifier sequence from a file
// holding a YAML or JSON list of floats.
func LoadModifiers(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var mods []float64
	if err := yaml.Unmarshal(data, &mods); err != nil {
		return nil, fmt.Errorf("config: failed to parse modifiers: %w", err)
	}
	return mods, nil
}

// SaveModifiers writes a modifier sequence as a YAML list.
func SaveModifiers(path string, mods []float64) error {
	data, err := yaml.Marshal(mods)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ResolveModifiers returns the inline modifiers when present, otherwise
// loads the configured modifiers file.
func (c *Config) ResolveModifiers() ([]float64, error) {
	if len(c.Modifiers) > 0 {
		return c.Modifiers, nil
	}
	if c.ModifiersFile != "" {
		return LoadModifiers(c.ModifiersFile)
	}
	return nil, fmt.Errorf("config: no modifiers configured: set modifiers or modifiers_file")
}
