package index

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// #region semantic-index

// SemanticIndex is a precomputed vector index over the segment corpus.
// Read-only after construction; safe for concurrent use across sessions.
type SemanticIndex struct {
	segments   []Segment
	embeddings [][]float32
	dimension  int
}

// NewSemanticIndex pairs each segment with its precomputed embedding.
// Embeddings must be in segment order and share one dimension.
func NewSemanticIndex(segments []Segment, embeddings [][]float32) (*SemanticIndex, error) {
	if len(segments) != len(embeddings) {
		return nil, fmt.Errorf("segment/embedding count mismatch: %d vs %d", len(segments), len(embeddings))
	}
	dim := 0
	if len(embeddings) > 0 {
		dim = len(embeddings[0])
	}
	for i, e := range embeddings {
		if len(e) != dim {
			return nil, fmt.Errorf("embedding %d has dimension %d, want %d", i, len(e), dim)
		}
	}
	return &SemanticIndex{segments: segments, embeddings: embeddings, dimension: dim}, nil
}

// Dimension returns the embedding dimension of the index.
func (idx *SemanticIndex) Dimension() int {
	return idx.dimension
}

// #endregion semantic-index

// #region search

// Search ranks segments by cosine similarity against the query embedding.
// Ties are broken by segment ID ascending for reproducible ordering.
func (idx *SemanticIndex) Search(ctx context.Context, queryEmbedding []float32, k int) ([]RankedHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(queryEmbedding) != idx.dimension {
		return nil, fmt.Errorf("query dimension %d, index dimension %d", len(queryEmbedding), idx.dimension)
	}

	type scored struct {
		segIdx int
		score  float64
	}
	results := make([]scored, 0, len(idx.segments))
	for i := range idx.segments {
		sim := cosineSimilarity(queryEmbedding, idx.embeddings[i])
		if sim > 0 {
			results = append(results, scored{segIdx: i, score: sim})
		}
	}

	sort.Slice(results, func(a, b int) bool {
		if results[a].score != results[b].score {
			return results[a].score > results[b].score
		}
		return idx.segments[results[a].segIdx].ID < idx.segments[results[b].segIdx].ID
	})

	if k > 0 && k < len(results) {
		results = results[:k]
	}

	hits := make([]RankedHit, len(results))
	for i, r := range results {
		hits[i] = RankedHit{
			SegmentID: idx.segments[r.segIdx].ID,
			Source:    SourceSemantic,
			Rank:      i + 1,
			Score:     r.score,
		}
	}
	return hits, nil
}

// #endregion search

// #region helpers

// cosineSimilarity returns 0 for zero-length or mismatched vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// #endregion helpers
