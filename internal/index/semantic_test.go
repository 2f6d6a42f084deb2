package index

import (
	"context"
	"math"
	"testing"
)

func TestSemanticSearchRanksByCosine(t *testing.T) {
	segments := []Segment{
		{ID: "seg-a", Text: "anxiety"},
		{ID: "seg-b", Text: "sleep"},
		{ID: "seg-c", Text: "unrelated"},
	}
	embeddings := [][]float32{
		{1, 0, 0},
		{0.5, 0.5, 0},
		{0, 0, 1},
	}
	idx, err := NewSemanticIndex(segments, embeddings)
	if err != nil {
		t.Fatalf("NewSemanticIndex: %v", err)
	}

	hits, err := idx.Search(context.Background(), []float32{1, 0, 0}, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	// seg-c is orthogonal to the query and must be filtered out.
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].SegmentID != "seg-a" || hits[1].SegmentID != "seg-b" {
		t.Fatalf("unexpected order: %s, %s", hits[0].SegmentID, hits[1].SegmentID)
	}
	if hits[0].Rank != 1 || hits[1].Rank != 2 {
		t.Fatalf("expected 1-based ranks, got %d, %d", hits[0].Rank, hits[1].Rank)
	}
	if hits[0].Source != SourceSemantic {
		t.Fatalf("expected semantic source, got %s", hits[0].Source)
	}
}

func TestSemanticIndexRejectsMismatchedDimensions(t *testing.T) {
	segments := []Segment{{ID: "a", Text: "x"}, {ID: "b", Text: "y"}}

	if _, err := NewSemanticIndex(segments, [][]float32{{1, 0}}); err == nil {
		t.Fatal("expected error for embedding count mismatch")
	}
	if _, err := NewSemanticIndex(segments, [][]float32{{1, 0}, {1, 0, 0}}); err == nil {
		t.Fatal("expected error for dimension mismatch")
	}
}

func TestHashEmbedderDeterministicAndNormalized(t *testing.T) {
	e := NewHashEmbedder(0)
	ctx := context.Background()

	v1, err := e.Embed(ctx, "persistent excessive worry")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	v2, err := e.Embed(ctx, "persistent excessive worry")
	if err != nil {
		t.Fatalf("Embed again: %v", err)
	}
	if len(v1) != e.Dimension() {
		t.Fatalf("expected dimension %d, got %d", e.Dimension(), len(v1))
	}
	for i := range v1 {
		if v1[i] != v2[i] {
			t.Fatalf("embedding not deterministic at index %d", i)
		}
	}

	var norm float64
	for _, x := range v1 {
		norm += float64(x) * float64(x)
	}
	if math.Abs(math.Sqrt(norm)-1.0) > 1e-5 {
		t.Fatalf("expected unit norm, got %f", math.Sqrt(norm))
	}
}

func TestEmbedCorpus(t *testing.T) {
	e := NewHashEmbedder(0)
	segments := SeedCorpus("en")

	embeddings, err := EmbedCorpus(context.Background(), e, segments)
	if err != nil {
		t.Fatalf("EmbedCorpus: %v", err)
	}
	if len(embeddings) != len(segments) {
		t.Fatalf("expected %d embeddings, got %d", len(segments), len(embeddings))
	}
}
