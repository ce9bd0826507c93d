// Package specconfig loads a declarative YAML file of registry aliases
// for the specgo CLI (§13): since a bare predicate is a Go closure and
// cannot be expressed in data, the CLI's configuration surface is
// deliberately limited to wiring names together, not constructing new
// predicates.
package specconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"specgo.dev/go/spec"
)

// File is the top-level shape of a specgo config file.
type File struct {
	// Aliases maps a new qualified name to an existing one already
	// reachable from the registry. Apply registers the entries in map
	// iteration order, so a target that is itself an alias defined in the
	// same file may not be registered yet when it is checked.
	Aliases map[string]string `yaml:"aliases"`
}

// Load reads and parses path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("specconfig: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("specconfig: parsing %s: %w", path, err)
	}
	return &f, nil
}

// Apply registers every alias in f against the global registry.
func (f *File) Apply() error {
	for name, target := range f.Aliases {
		if _, err := spec.Get(target); err != nil {
			return fmt.Errorf("specconfig: alias %s -> %s: %w", name, target, err)
		}
		spec.Def(name, target)
	}
	return nil
}
