package index

import (
	"context"
	"hash/fnv"
	"math"
)

// #region hash-embedder

// HashEmbedder produces deterministic bag-of-words embeddings by hashing
// tokens into a fixed-dimension vector. It is the offline fallback when no
// embedding endpoint is configured; the vectors are only as good as token
// overlap, which is sufficient for tests and demo corpora.
type HashEmbedder struct {
	dim int
}

// NewHashEmbedder creates a hash embedder with the given dimension.
func NewHashEmbedder(dimension int) *HashEmbedder {
	if dimension <= 0 {
		dimension = 256
	}
	return &HashEmbedder{dim: dimension}
}

// Embed maps each token to a bucket and L2-normalizes the result. Never
// fails for any input; empty text yields a zero vector.
func (e *HashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	vec := make([]float32, e.dim)
	for _, tok := range tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(tok))
		vec[int(h.Sum32())%e.dim]++
	}

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum > 0 {
		inv := float32(1.0 / math.Sqrt(sum))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec, nil
}

// Dimension returns the embedding dimension.
func (e *HashEmbedder) Dimension() int {
	return e.dim
}

// #endregion hash-embedder
