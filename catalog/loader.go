package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed fixture/products.yaml
var fixtureRaw []byte

type catalogFile struct {
	Products []Product `yaml:"products"`
}

// Load parses a product catalog from YAML.
func Load(r io.Reader) ([]Product, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	for i, p := range file.Products {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("catalog product at position %d has no id", i)
		}
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("catalog product %s has no name", p.ID)
		}
	}
	return file.Products, nil
}

// LoadFile loads a catalog from a YAML file on disk.
func LoadFile(path string) ([]Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Sample returns the embedded demo catalog.
func Sample() []Product {
	products, err := Load(strings.NewReader(string(fixtureRaw)))
	if err != nil {
		// The fixture is compiled in; a parse failure is a build defect.
		panic(fmt.Sprintf("embedded catalog fixture is invalid: %v", err))
	}
	return products
}
