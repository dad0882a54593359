// Package rag implements the retrieval subsystem: an in-memory vector
// index with snapshot-isolated reads, and a retriever that turns free text
// into ranked catalog matches.
package rag

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	ErrEmptyIndex        = errors.New("vector index is empty")
)

// Metric selects the similarity measure, fixed at index construction.
type Metric string

const (
	MetricCosine    Metric = "cosine"
	MetricEuclidean Metric = "euclidean"
)

func ParseMetric(s string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(s))) {
	case MetricCosine, "":
		return MetricCosine, nil
	case MetricEuclidean:
		return MetricEuclidean, nil
	default:
		return "", fmt.Errorf("unknown similarity metric %q", s)
	}
}

// Entry is one indexed catalog item. Entries are immutable once inserted;
// replacing an id requires a fresh Insert.
type Entry struct {
	ID         string
	Text       string
	Attributes map[string]any
	Vector     []float32
}

// Result is a scored query hit. Rank is the 0-based position after
// ordering by descending score (ties by ascending id).
type Result struct {
	Entry Entry
	Score float64
	Rank  int
}

// Filter is an attribute predicate applied before ranking.
type Filter func(e Entry) bool

type snapshot struct {
	entries map[string]Entry
	ids     []string // ascending, for deterministic iteration
}

// Index is a fixed-dimension vector index. Reads operate on an immutable
// snapshot swapped in atomically by writers, so in-flight queries always
// observe a consistent index state.
type Index struct {
	dimension int
	metric    Metric

	mu   sync.Mutex // serializes writers
	snap atomic.Pointer[snapshot]
}

func NewIndex(dimension int, metric Metric) (*Index, error) {
	if dimension <= 0 {
		return nil, errors.New("index dimension must be > 0")
	}
	switch metric {
	case MetricCosine, MetricEuclidean:
	default:
		return nil, fmt.Errorf("unknown similarity metric %q", metric)
	}

	idx := &Index{dimension: dimension, metric: metric}
	idx.snap.Store(&snapshot{entries: map[string]Entry{}})
	return idx, nil
}

func (x *Index) Dimension() int { return x.dimension }
func (x *Index) Metric() Metric { return x.metric }

func (x *Index) Len() int {
	return len(x.snap.Load().entries)
}

// Insert adds e, replacing any existing entry with the same id.
func (x *Index) Insert(e Entry) error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("entry id is empty")
	}
	if len(e.Vector) != x.dimension {
		return fmt.Errorf("%w: entry %s has length %d, index expects %d",
			ErrDimensionMismatch, e.ID, len(e.Vector), x.dimension)
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	next := x.cloneLocked()
	if _, exists := next.entries[e.ID]; !exists {
		next.ids = insertSorted(next.ids, e.ID)
	}
	next.entries[e.ID] = e
	x.snap.Store(next)
	return nil
}

// Delete removes the entry with the given id. Deleting an absent id is a
// no-op.
func (x *Index) Delete(id string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	cur := x.snap.Load()
	if _, exists := cur.entries[id]; !exists {
		return
	}
	next := x.cloneLocked()
	delete(next.entries, id)
	next.ids = removeSorted(next.ids, id)
	x.snap.Store(next)
}

// Entries returns the current snapshot's entries in ascending id order.
func (x *Index) Entries() []Entry {
	snap := x.snap.Load()
	out := make([]Entry, 0, len(snap.ids))
	for _, id := range snap.ids {
		out = append(out, snap.entries[id])
	}
	return out
}

// Query returns up to k results ranked by similarity to vec under the
// index metric. Results are strictly ordered by descending score with
// ties broken by ascending id. A filter that excludes everything yields
// an empty slice, not an error.
func (x *Index) Query(vec []float32, k int, filter Filter) ([]Result, error) {
	if len(vec) != x.dimension {
		return nil, fmt.Errorf("%w: query vector has length %d, index expects %d",
			ErrDimensionMismatch, len(vec), x.dimension)
	}
	if k <= 0 {
		return nil, nil
	}

	snap := x.snap.Load()
	if len(snap.entries) == 0 {
		return nil, ErrEmptyIndex
	}

	results := make([]Result, 0, len(snap.ids))
	for _, id := range snap.ids {
		e := snap.entries[id]
		if filter != nil && !filter(e) {
			continue
		}
		results = append(results, Result{Entry: e, Score: x.score(vec, e.Vector)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Entry.ID < results[j].Entry.ID
	})

	if len(results) > k {
		results = results[:k]
	}
	for i := range results {
		results[i].Rank = i
	}
	return results, nil
}

func (x *Index) score(a, b []float32) float64 {
	switch x.metric {
	case MetricEuclidean:
		return -euclideanDistance(a, b)
	default:
		return cosineSimilarity(a, b)
	}
}

func (x *Index) cloneLocked() *snapshot {
	cur := x.snap.Load()
	next := &snapshot{
		entries: make(map[string]Entry, len(cur.entries)+1),
		ids:     append([]string(nil), cur.ids...),
	}
	for id, e := range cur.entries {
		next.entries[id] = e
	}
	return next
}

func insertSorted(ids []string, id string) []string {
	i := sort.SearchStrings(ids, id)
	ids = append(ids, "")
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}

func removeSorted(ids []string, id string) []string {
	i := sort.SearchStrings(ids, id)
	if i < len(ids) && ids[i] == id {
		return append(ids[:i], ids[i+1:]...)
	}
	return ids
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func euclideanDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
