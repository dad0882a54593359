// Package catalog loads the product catalog and builds the vector index
// from it at startup.
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Product is one catalog item as loaded from the fixture or an external
// source. Indexed products are immutable; updating one means rebuilding
// the index.
type Product struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Category    string            `yaml:"category"`
	Price       float64           `yaml:"price"`
	Currency    string            `yaml:"currency"`
	Stock       int               `yaml:"stock"`
	Brand       string            `yaml:"brand"`
	Attributes  map[string]string `yaml:"attributes"`
}

// SearchText renders the product as the text that gets embedded and
// keyword-matched.
func (p Product) SearchText() string {
	brand := p.Brand
	if brand == "" {
		brand = "N/A"
	}
	currency := p.Currency
	if currency == "" {
		currency = "USD"
	}

	inStock := "No"
	if p.Stock > 0 {
		inStock = "Yes"
	}

	attrs := "None"
	if len(p.Attributes) > 0 {
		keys := make([]string, 0, len(p.Attributes))
		for k := range p.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s: %s", k, p.Attributes[k]))
		}
		attrs = strings.Join(pairs, ", ")
	}

	return fmt.Sprintf(
		"Product: %s. Brand: %s. Category: %s. Description: %s. Price: %.2f %s. In Stock: %s. Attributes: %s.",
		p.Name, brand, p.Category, p.Description, p.Price, currency, inStock, attrs,
	)
}

// Categories returns the sorted set of distinct categories in products.
func Categories(products []Product) []string {
	set := map[string]struct{}{}
	for _, p := range products {
		if p.Category != "" {
			set[p.Category] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
