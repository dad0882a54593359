package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/ninthbase/shopmate/embedding"
	"github.com/ninthbase/shopmate/rag"
)

func TestSampleCatalog(t *testing.T) {
	t.Parallel()

	products := Sample()
	if len(products) != 10 {
		t.Fatalf("expected 10 sample products, got %d", len(products))
	}
	if products[0].ID != "prod-001" {
		t.Fatalf("unexpected first product id %q", products[0].ID)
	}
}

func TestLoadRejectsMissingID(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader("products:\n  - name: Nameless\n"))
	if err == nil {
		t.Fatal("expected error for product without id")
	}
}

func TestLoadRejectsMissingName(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader("products:\n  - id: prod-x\n"))
	if err == nil {
		t.Fatal("expected error for product without name")
	}
}

func TestSearchText(t *testing.T) {
	t.Parallel()

	p := Product{
		ID:          "prod-x",
		Name:        "Desk Lamp",
		Description: "Adjustable lamp.",
		Category:    "Home",
		Price:       25,
		Stock:       0,
		Attributes:  map[string]string{"color": "white", "bulb": "LED"},
	}

	text := p.SearchText()
	for _, want := range []string{
		"Product: Desk Lamp.",
		"Brand: N/A.",
		"Price: 25.00 USD.",
		"In Stock: No.",
		"Attributes: bulb: LED, color: white.",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("SearchText() missing %q:\n%s", want, text)
		}
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()

	got := Categories([]Product{
		{Category: "Electronics"},
		{Category: "Clothing"},
		{Category: "Electronics"},
		{Category: ""},
	})
	if len(got) != 2 || got[0] != "Clothing" || got[1] != "Electronics" {
		t.Fatalf("Categories() = %v", got)
	}
}

func TestBuildIndex(t *testing.T) {
	t.Parallel()

	embedder := embedding.NewHashEmbedder(128)
	idx, err := rag.NewIndex(embedder.Dimension(), rag.MetricCosine)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}

	if err := BuildIndex(context.Background(), embedder, idx, Sample(), 2); err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}
	if idx.Len() != 10 {
		t.Fatalf("expected 10 indexed entries, got %d", idx.Len())
	}

	entries := idx.Entries()
	if entries[0].ID != "prod-001" {
		t.Fatalf("unexpected first entry %q", entries[0].ID)
	}
	if name, _ := entries[0].Attributes["name"].(string); name != "Wireless Bluetooth Headphones" {
		t.Fatalf("unexpected name attribute %q", name)
	}
}

func TestFilters(t *testing.T) {
	t.Parallel()

	entry := rag.Entry{Attributes: map[string]any{
		"category": "Electronics",
		"price":    79.99,
	}}

	if !CategoryFilter("electronics")(entry) {
		t.Fatal("category filter should match case-insensitively")
	}
	if CategoryFilter("Clothing")(entry) {
		t.Fatal("category filter matched wrong category")
	}
	if !MaxPriceFilter(100)(entry) {
		t.Fatal("price filter should accept 79.99 under 100")
	}
	if MaxPriceFilter(50)(entry) {
		t.Fatal("price filter should reject 79.99 under 50")
	}
}
