package prompt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// sequenceFile is the on-disk layout for a prompt sequence.
type sequenceFile struct {
	Frames []Frame `yaml:"frames" json:"frames"`
}

// LoadSequence reads a prompt sequence from a YAML or JSON file,
// chosen by extension.
func LoadSequence(path string) (Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file: %w", err)
	}

	var file sequenceFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse prompt file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse prompt file: %w", err)
		}
	}
	return Sequence(file.Frames), nil
}

// SaveSequence writes a prompt sequence as YAML.
func SaveSequence(s Sequence, path string) error {
	data, err := yaml.Marshal(sequenceFile{Frames: s})
	if err != nil {
		return fmt.Errorf("failed to marshal prompt sequence: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write prompt file: %w", err)
	}
	return nil
}
