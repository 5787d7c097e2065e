package lut

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadPreset reads a color-transform parameter set from a YAML file.
// Fields absent from the file keep their identity values, so a partial
// preset only overrides what it names.
func LoadPreset(path string) (Params, error) {
	p := Identity()
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return p, fmt.Errorf("lut: read preset: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Identity(), fmt.Errorf("lut: parse preset: %w", err)
	}
	return p, nil
}

// SavePreset writes a parameter set to a YAML file.
func SavePreset(path string, p Params) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("lut: encode preset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("lut: write preset: %w", err)
	}
	return nil
}
