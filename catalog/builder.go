package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ninthbase/shopmate/embedding"
	"github.com/ninthbase/shopmate/rag"
)

const defaultBuildParallelism = 4

// BuildIndex embeds every product's search text and inserts the entries
// into idx. Embedding calls run with bounded concurrency; a single failed
// embed fails the build, since a partially indexed catalog would silently
// shrink search results.
func BuildIndex(ctx context.Context, embedder embedding.Embedder, idx *rag.Index, products []Product, parallelism int) error {
	if parallelism <= 0 {
		parallelism = defaultBuildParallelism
	}

	entries := make([]rag.Entry, len(products))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, p := range products {
		i, p := i, p
		g.Go(func() error {
			vec, err := embedder.Embed(ctx, p.SearchText())
			if err != nil {
				return fmt.Errorf("embed product %s: %w", p.ID, err)
			}
			entries[i] = rag.Entry{
				ID:   p.ID,
				Text: p.SearchText(),
				Attributes: map[string]any{
					"name":     p.Name,
					"category": p.Category,
					"price":    p.Price,
					"brand":    p.Brand,
					"stock":    p.Stock,
				},
				Vector: vec,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, e := range entries {
		if err := idx.Insert(e); err != nil {
			return fmt.Errorf("index product %s: %w", e.ID, err)
		}
	}

	log.Info().Int("products", len(products)).Int("indexed", idx.Len()).Msg("catalog index built")
	return nil
}

// CategoryFilter matches entries whose category attribute equals
// category. An empty category matches everything.
func CategoryFilter(category string) rag.Filter {
	if category == "" {
		return nil
	}
	return func(e rag.Entry) bool {
		got, _ := e.Attributes["category"].(string)
		return strings.EqualFold(got, category)
	}
}

// MaxPriceFilter matches entries priced at or below limit.
func MaxPriceFilter(limit float64) rag.Filter {
	return func(e rag.Entry) bool {
		price, ok := e.Attributes["price"].(float64)
		return ok && price <= limit
	}
}
