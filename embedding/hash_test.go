package embedding

import (
	"context"
	"math"
	"testing"
)

func TestHashEmbedderDeterministic(t *testing.T) {
	t.Parallel()

	e := NewHashEmbedder(64)
	a, err := e.Embed(context.Background(), "wireless headphones")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	b, err := e.Embed(context.Background(), "wireless headphones")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("embedding not deterministic at index %d", i)
		}
	}
}

func TestHashEmbedderUnitNorm(t *testing.T) {
	t.Parallel()

	e := NewHashEmbedder(64)
	vec, err := e.Embed(context.Background(), "bluetooth speaker with deep bass")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if math.Abs(norm-1) > 1e-5 {
		t.Fatalf("expected unit norm, got %v", norm)
	}
}

func TestHashEmbedderEmptyText(t *testing.T) {
	t.Parallel()

	e := NewHashEmbedder(64)
	vec, err := e.Embed(context.Background(), "")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	for i, v := range vec {
		if v != 0 {
			t.Fatalf("expected zero vector, got %v at index %d", v, i)
		}
	}
}

func TestHashEmbedderSimilarityTracksOverlap(t *testing.T) {
	t.Parallel()

	e := NewHashEmbedder(384)
	headphones, _ := e.Embed(context.Background(), "wireless bluetooth headphones")
	query, _ := e.Embed(context.Background(), "wireless headphones")
	lamp, _ := e.Embed(context.Background(), "adjustable desk lamp")

	if dot(query, headphones) <= dot(query, lamp) {
		t.Fatal("expected the overlapping text to score higher")
	}
}

func TestHashEmbedderDefaultDimension(t *testing.T) {
	t.Parallel()

	if got := NewHashEmbedder(0).Dimension(); got != 384 {
		t.Fatalf("Dimension() = %d, want 384", got)
	}
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
