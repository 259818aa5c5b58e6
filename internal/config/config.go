// Package config loads cmd/ic's optional YAML configuration file: the
// GC threshold and the atom-name table path, both of which are
// ordinarily compiled into a program but need an ad hoc source when
// cmd/ic is running a registered example instead of output from a
// compiler front end.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is cmd/ic's on-disk configuration. Zero values mean "use the
// runtime's built-in default".
type Config struct {
	GCThreshold uint64 `yaml:"gc_threshold"`
	AtomTable   string `yaml:"atom_table"`
}

// Load reads and parses a YAML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// LoadAtomNames reads a YAML sequence of atom names from path, in
// table-index order (the same shape as a compiled program's
// atom_names array, e.g. `- nil\n- true\n- false`).
func LoadAtomNames(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: atom table: %w", err)
	}
	var names []string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("config: atom table: %w", err)
	}
	return names, nil
}
