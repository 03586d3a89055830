package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk shape of a versioned catalog file.
type catalogFile struct {
	Version      int          `yaml:"version"`
	Achievements []Definition `yaml:"achievements"`
}

// ParseYAML builds a catalog from YAML data. Entries may omit the structured
// rule descriptor, in which case evaluation falls back to classifying the
// free-text calculationMethod.
func ParseYAML(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog yaml: %w", err)
	}
	if len(f.Achievements) == 0 {
		return nil, fmt.Errorf("%w: catalog file contains no achievements", ErrInvalidDefinition)
	}
	return New(f.Achievements)
}

// LoadFile reads and parses a versioned catalog file, replacing the built-in
// definitions for deployments that manage the catalog externally.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return ParseYAML(data)
}
