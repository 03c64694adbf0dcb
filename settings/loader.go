package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads settings from a YAML file on top of the defaults.
func LoadFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data on top of the defaults and validates the result.
func Parse(data []byte) (Settings, error) {
	s := Defaults()

	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}

	return s, nil
}

// Marshal serializes settings to YAML.
func Marshal(s Settings) ([]byte, error) {
	return yaml.Marshal(s)
}
