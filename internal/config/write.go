package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteYAML validates cfg and writes it to path as YAML.
func WriteYAML(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("refusing to write invalid config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := "# clawup configuration. Run `clawup apply` on the target host to provision it.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
