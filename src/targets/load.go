package targets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Targets []Target `yaml:"targets"`
}

// LoadFile reads an ordered target catalog from a YAML file
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read targets file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML target catalog
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode targets: %w", err)
	}
	c, err := NewCatalog(f.Targets)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	return c, nil
}
