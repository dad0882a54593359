package rag

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ninthbase/shopmate/embedding"
	"github.com/ninthbase/shopmate/textnorm"
)

const (
	DefaultTopK     = 5
	DefaultMinScore = 0.15
	defaultCacheTTL = 5 * time.Minute
)

// Retriever turns a natural-language query into a ranked, score-annotated
// result list. Embedding failures surface as embedding.ErrUnavailable;
// KeywordSearch is the supported degraded mode for that case.
type Retriever struct {
	embedder embedding.Embedder
	index    *Index
	minScore float64
	cache    Cache
	cacheTTL time.Duration
}

type RetrieverOption func(*Retriever)

// WithMinScore sets the relevance threshold below which results are
// dropped after ranking.
func WithMinScore(min float64) RetrieverOption {
	return func(r *Retriever) { r.minScore = min }
}

// WithCache enables result caching for unfiltered searches.
func WithCache(cache Cache, ttl time.Duration) RetrieverOption {
	return func(r *Retriever) {
		if cache != nil {
			r.cache = cache
		}
		if ttl > 0 {
			r.cacheTTL = ttl
		}
	}
}

func NewRetriever(embedder embedding.Embedder, index *Index, opts ...RetrieverOption) (*Retriever, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if index == nil {
		return nil, fmt.Errorf("index is required")
	}
	if embedder.Dimension() != index.Dimension() {
		return nil, fmt.Errorf("embedder dimension %d does not match index dimension %d",
			embedder.Dimension(), index.Dimension())
	}

	r := &Retriever{
		embedder: embedder,
		index:    index,
		minScore: DefaultMinScore,
		cache:    NoopCache{},
		cacheTTL: defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Retriever) MinScore() float64 { return r.minScore }

// Search embeds query, ranks the index against it, drops results below
// the minimum score, and re-numbers ranks. Filtered searches bypass the
// cache since predicates are opaque.
func (r *Retriever) Search(ctx context.Context, query string, topK int, filter Filter) ([]Result, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	cacheable := filter == nil
	key := CacheKey(r.index.Metric(), query, topK)
	if cacheable {
		if cached, err := r.cache.Get(ctx, key); err != nil {
			log.Debug().Err(err).Msg("search cache read failed")
		} else if cached != nil {
			log.Debug().Str("query", query).Msg("search cache hit")
			return cached, nil
		}
	}

	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := r.index.Query(vec, topK, filter)
	if err != nil {
		return nil, err
	}
	results = r.applyThreshold(results)

	if cacheable {
		if err := r.cache.Set(ctx, key, results, r.cacheTTL); err != nil {
			log.Debug().Err(err).Msg("search cache write failed")
		}
	}
	return results, nil
}

// KeywordSearch is the degraded mode used when the embedding provider is
// unreachable: normalized token overlap between the query and each
// entry's text. Entries with no overlap are dropped.
func (r *Retriever) KeywordSearch(_ context.Context, query string, topK int, filter Filter) []Result {
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryTokens := textnorm.TokenSet(query)
	results := make([]Result, 0, topK)
	for _, e := range r.index.Entries() {
		if filter != nil && !filter(e) {
			continue
		}
		score := textnorm.Overlap(queryTokens, textnorm.TokenSet(e.Text))
		if score <= 0 {
			continue
		}
		results = append(results, Result{Entry: e, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Entry.ID < results[j].Entry.ID
	})

	if len(results) > topK {
		results = results[:topK]
	}
	for i := range results {
		results[i].Rank = i
	}
	return results
}

func (r *Retriever) applyThreshold(results []Result) []Result {
	kept := results[:0]
	for _, res := range results {
		if res.Score < r.minScore {
			continue
		}
		kept = append(kept, res)
	}
	for i := range kept {
		kept[i].Rank = i
	}
	return kept
}
