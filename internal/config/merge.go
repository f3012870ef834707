package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MergeYAMLFile decodes the YAML file at path onto target. Keys present in
// the file replace the corresponding fields; absent keys keep their value.
func MergeYAMLFile(target *Config, path string) error {
	if target == nil {
		return errors.New("nil target *Config in MergeYAMLFile")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return MergeYAML(target, data)
}

// MergeYAML decodes data onto target. An empty or comment-only document is a no-op.
func MergeYAML(target *Config, data []byte) error {
	var probe map[string]any
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("parsing config YAML: %w", err)
	}
	if len(probe) == 0 {
		return nil
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decoding config YAML: %w", err)
	}
	return nil
}
