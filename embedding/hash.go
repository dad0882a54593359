package embedding

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/ninthbase/shopmate/textnorm"
)

// HashEmbedder is a deterministic, offline embedder. Each token is hashed
// into a bucket of a fixed-size bag-of-words vector, which is then
// L2-normalized so cosine similarity tracks token overlap. Not a semantic
// model; it exists so the system runs with no external provider.
type HashEmbedder struct {
	dimension int
}

func NewHashEmbedder(dimension int) *HashEmbedder {
	if dimension <= 0 {
		dimension = 384
	}
	return &HashEmbedder{dimension: dimension}
}

func (e *HashEmbedder) Dimension() int {
	return e.dimension
}

func (e *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dimension)
	for _, tok := range textnorm.Tokenize(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok))
		vec[int(h.Sum32())%e.dimension]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec, nil
}
