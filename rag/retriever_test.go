package rag

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ninthbase/shopmate/embedding"
)

// fakeEmbedder returns canned vectors keyed by input text.
type fakeEmbedder struct {
	dim     int
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) Dimension() int { return f.dim }

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	vec, ok := f.vectors[text]
	if !ok {
		return make([]float32, f.dim), nil
	}
	return vec, nil
}

type fakeCache struct {
	store map[string][]Result
	sets  int
}

func (f *fakeCache) Get(_ context.Context, key string) ([]Result, error) {
	return f.store[key], nil
}

func (f *fakeCache) Set(_ context.Context, key string, results []Result, _ time.Duration) error {
	if f.store == nil {
		f.store = map[string][]Result{}
	}
	f.store[key] = results
	f.sets++
	return nil
}

func seedIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(3, MetricCosine)
	require.NoError(t, err)
	require.NoError(t, idx.Insert(Entry{ID: "p1", Text: "wireless headphones", Vector: []float32{1, 0, 0}}))
	require.NoError(t, idx.Insert(Entry{ID: "p2", Text: "usb cable", Vector: []float32{0.5, 0.5, 0}}))
	require.NoError(t, idx.Insert(Entry{ID: "p3", Text: "desk lamp", Vector: []float32{0, 0, 1}}))
	return idx
}

func TestNewRetrieverDimensionMismatch(t *testing.T) {
	t.Parallel()

	idx, err := NewIndex(3, MetricCosine)
	require.NoError(t, err)

	_, err = NewRetriever(&fakeEmbedder{dim: 5}, idx)
	require.Error(t, err)
}

func TestSearchThresholdAndRerank(t *testing.T) {
	t.Parallel()

	idx := seedIndex(t)
	emb := &fakeEmbedder{dim: 3, vectors: map[string][]float32{
		"headphones": {1, 0, 0},
	}}
	r, err := NewRetriever(emb, idx, WithMinScore(0.5))
	require.NoError(t, err)

	results, err := r.Search(context.Background(), "headphones", 5, nil)
	require.NoError(t, err)

	// p3 is orthogonal and falls below the threshold; survivors are
	// re-ranked from zero.
	require.Len(t, results, 2)
	require.Equal(t, "p1", results[0].Entry.ID)
	require.Equal(t, 0, results[0].Rank)
	require.Equal(t, "p2", results[1].Entry.ID)
	require.Equal(t, 1, results[1].Rank)
}

func TestSearchEmbedderUnavailable(t *testing.T) {
	t.Parallel()

	idx := seedIndex(t)
	emb := &fakeEmbedder{dim: 3, err: embedding.ErrUnavailable}
	r, err := NewRetriever(emb, idx)
	require.NoError(t, err)

	_, err = r.Search(context.Background(), "headphones", 5, nil)
	require.ErrorIs(t, err, embedding.ErrUnavailable)
}

func TestSearchEmptyIndex(t *testing.T) {
	t.Parallel()

	idx, err := NewIndex(3, MetricCosine)
	require.NoError(t, err)
	r, err := NewRetriever(&fakeEmbedder{dim: 3}, idx)
	require.NoError(t, err)

	_, err = r.Search(context.Background(), "anything", 5, nil)
	require.ErrorIs(t, err, ErrEmptyIndex)
}

func TestSearchUsesCacheForUnfilteredQueries(t *testing.T) {
	t.Parallel()

	idx := seedIndex(t)
	emb := &fakeEmbedder{dim: 3, vectors: map[string][]float32{
		"headphones": {1, 0, 0},
	}}
	cache := &fakeCache{}
	r, err := NewRetriever(emb, idx, WithCache(cache, time.Minute))
	require.NoError(t, err)

	first, err := r.Search(context.Background(), "headphones", 5, nil)
	require.NoError(t, err)
	require.Equal(t, 1, emb.calls)
	require.Equal(t, 1, cache.sets)

	second, err := r.Search(context.Background(), "headphones", 5, nil)
	require.NoError(t, err)
	require.Equal(t, 1, emb.calls, "second search should hit the cache")
	require.Equal(t, first, second)

	// Filtered searches bypass the cache.
	_, err = r.Search(context.Background(), "headphones", 5, func(Entry) bool { return true })
	require.NoError(t, err)
	require.Equal(t, 2, emb.calls)
	require.Equal(t, 1, cache.sets)
}

func TestKeywordSearch(t *testing.T) {
	t.Parallel()

	idx := seedIndex(t)
	r, err := NewRetriever(&fakeEmbedder{dim: 3}, idx)
	require.NoError(t, err)

	results := r.KeywordSearch(context.Background(), "wireless headphones", 5, nil)
	require.Len(t, results, 1)
	require.Equal(t, "p1", results[0].Entry.ID)
	require.Equal(t, 0, results[0].Rank)
	require.Equal(t, 1.0, results[0].Score)

	// No overlap at all yields no results rather than noise.
	require.Empty(t, r.KeywordSearch(context.Background(), "banana", 5, nil))
}

func TestKeywordSearchRespectsFilter(t *testing.T) {
	t.Parallel()

	idx := seedIndex(t)
	r, err := NewRetriever(&fakeEmbedder{dim: 3}, idx)
	require.NoError(t, err)

	results := r.KeywordSearch(context.Background(), "wireless headphones", 5, func(e Entry) bool {
		return e.ID != "p1"
	})
	require.Empty(t, results)
}
