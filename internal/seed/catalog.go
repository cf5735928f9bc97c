package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"cabinet/internal/apperr"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is a versioned set of reference ingredients and drinks.
type Catalog struct {
	Version     int          `yaml:"version"`
	Ingredients []Ingredient `yaml:"ingredients"`
	Drinks      []Drink      `yaml:"drinks"`
}

// Ingredient is a reference ingredient.
type Ingredient struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category,omitempty"`
}

// Drink is a reference drink. Ingredients name entries expected to exist
// after the ingredient phase.
type Drink struct {
	Name         string   `yaml:"name"`
	Ingredients  []string `yaml:"ingredients"`
	Instructions string   `yaml:"instructions"`
}

// Default returns the embedded reference catalog.
func Default() (Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read seed catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("decode seed catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return Catalog{}, err
	}
	return catalog, nil
}

// Validate checks the catalog carries a usable version.
func (c Catalog) Validate() error {
	if c.Version <= 0 {
		return apperr.Invalid("seed catalog version must be positive, got %d", c.Version)
	}
	return nil
}
