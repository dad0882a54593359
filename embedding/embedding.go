// Package embedding provides the text-to-vector collaborators consumed by
// the retrieval layer.
package embedding

import (
	"context"
	"errors"
)

// ErrUnavailable marks an embedding call that failed or timed out. Callers
// are expected to degrade to keyword matching rather than abort.
var ErrUnavailable = errors.New("embedding provider unavailable")

// Embedder maps text onto a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}
