package retrieval

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clinsim/interview-controller/internal/index"
)

// #region fakes

type fakeLexical struct {
	hits []index.RankedHit
	err  error
}

func (f *fakeLexical) Search(ctx context.Context, query string, k int) ([]index.RankedHit, error) {
	return f.hits, f.err
}

type fakeSemantic struct {
	hits []index.RankedHit
	err  error
}

func (f *fakeSemantic) Search(ctx context.Context, queryEmbedding []float32, k int) ([]index.RankedHit, error) {
	return f.hits, f.err
}

type fakeEmbedder struct{}

func (fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (fakeEmbedder) Dimension() int { return 3 }

func hit(id string, source index.Source, rank int) index.RankedHit {
	return index.RankedHit{SegmentID: id, Source: source, Rank: rank, Score: 1.0 / float64(rank)}
}

func testConfig() Config {
	return Config{
		TopKDense:     8,
		TopKBM25:      8,
		TopKFinal:     6,
		RRFK:          60,
		CodeBoost:     0.05,
		SourceTimeout: time.Second,
	}
}

// #endregion fakes

// Mirror of the reference scenario: semantic ranks [S1, S2], lexical ranks
// [S2, S1]. Reciprocal rank fusion with k=60 gives both segments the same
// score, then the code boost breaks the tie in favour of the code-bearing
// segment.
func TestRetrieveCodeBoostBreaksSymmetricTie(t *testing.T) {
	segments := []index.Segment{
		{ID: "S1", Text: "persistent worry, code 6B00", Codes: []string{"6B00"}},
		{ID: "S2", Text: "insomnia"},
	}
	lex := &fakeLexical{hits: []index.RankedHit{
		hit("S2", index.SourceLexical, 1),
		hit("S1", index.SourceLexical, 2),
	}}
	sem := &fakeSemantic{hits: []index.RankedHit{
		hit("S1", index.SourceSemantic, 1),
		hit("S2", index.SourceSemantic, 2),
	}}

	r := NewRetriever(segments, lex, sem, fakeEmbedder{}, testConfig())
	turns := []TranscriptTurn{{Role: "client", Text: "I worry constantly and cannot sleep"}}

	res, err := r.Retrieve(context.Background(), turns)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(res.Fused) != 2 {
		t.Fatalf("expected 2 fused results, got %d", len(res.Fused))
	}
	if res.Fused[0].SegmentID != "S1" {
		t.Fatalf("expected code-boosted S1 first, got %s", res.Fused[0].SegmentID)
	}
	if !res.Fused[0].CodeBoosted {
		t.Fatal("expected S1 to be marked code-boosted")
	}
	if res.Fused[1].CodeBoosted {
		t.Fatal("S2 must not be code-boosted")
	}

	// Without the boost both scores are 1/61 + 1/62.
	base := 1.0/61 + 1.0/62
	if diff := res.Fused[0].Score - base - 0.05; diff > 1e-12 || diff < -1e-12 {
		t.Fatalf("unexpected boosted score %f", res.Fused[0].Score)
	}
	if diff := res.Fused[1].Score - base; diff > 1e-12 || diff < -1e-12 {
		t.Fatalf("unexpected base score %f", res.Fused[1].Score)
	}
}

func TestRetrieveDualSourceOutranksSingle(t *testing.T) {
	segments := []index.Segment{
		{ID: "both", Text: "shared segment"},
		{ID: "only", Text: "lexical-only segment"},
	}
	lex := &fakeLexical{hits: []index.RankedHit{
		hit("only", index.SourceLexical, 1),
		hit("both", index.SourceLexical, 2),
	}}
	sem := &fakeSemantic{hits: []index.RankedHit{
		hit("both", index.SourceSemantic, 2),
	}}

	r := NewRetriever(segments, lex, sem, fakeEmbedder{}, testConfig())
	res, err := r.Retrieve(context.Background(), []TranscriptTurn{{Role: "client", Text: "shared"}})
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if res.Fused[0].SegmentID != "both" {
		t.Fatalf("expected dual-source segment first, got %s", res.Fused[0].SegmentID)
	}
}

func TestRetrieveDeterministicOrdering(t *testing.T) {
	segments := []index.Segment{
		{ID: "a", Text: "one"},
		{ID: "b", Text: "two"},
	}
	lex := &fakeLexical{hits: []index.RankedHit{hit("b", index.SourceLexical, 1)}}
	sem := &fakeSemantic{hits: []index.RankedHit{hit("a", index.SourceSemantic, 1)}}
	r := NewRetriever(segments, lex, sem, fakeEmbedder{}, testConfig())
	turns := []TranscriptTurn{{Role: "client", Text: "hello there"}}

	first, err := r.Retrieve(context.Background(), turns)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := r.Retrieve(context.Background(), turns)
		if err != nil {
			t.Fatalf("Retrieve repeat: %v", err)
		}
		if len(again.Fused) != len(first.Fused) {
			t.Fatalf("run %d: length changed", i)
		}
		for j := range again.Fused {
			if again.Fused[j] != first.Fused[j] {
				t.Fatalf("run %d: ordering changed at %d", i, j)
			}
		}
	}
	// Equal RRF scores tie-break by segment ID ascending.
	if first.Fused[0].SegmentID != "a" {
		t.Fatalf("expected a before b on tie, got %s", first.Fused[0].SegmentID)
	}
}

func TestRetrieveDegradesToSingleSource(t *testing.T) {
	segments := []index.Segment{{ID: "a", Text: "anxiety segment"}}
	lex := &fakeLexical{err: errors.New("index offline")}
	sem := &fakeSemantic{hits: []index.RankedHit{hit("a", index.SourceSemantic, 1)}}

	r := NewRetriever(segments, lex, sem, fakeEmbedder{}, testConfig())
	res, err := r.Retrieve(context.Background(), []TranscriptTurn{{Role: "client", Text: "anxious lately"}})
	if err != nil {
		t.Fatalf("Retrieve must not fail on single-source degradation: %v", err)
	}
	if len(res.Fused) != 1 || res.Fused[0].SegmentID != "a" {
		t.Fatalf("expected semantic-only result, got %+v", res.Fused)
	}
}

func TestRetrieveBothSourcesEmptyIsNotAnError(t *testing.T) {
	r := NewRetriever(nil, &fakeLexical{err: errors.New("down")}, &fakeSemantic{err: errors.New("down")},
		fakeEmbedder{}, testConfig())

	res, err := r.Retrieve(context.Background(), []TranscriptTurn{{Role: "client", Text: "anything"}})
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(res.Fused) != 0 {
		t.Fatalf("expected empty fused set, got %d", len(res.Fused))
	}
}

func TestRetrieveTruncatesToTopKFinal(t *testing.T) {
	var segments []index.Segment
	var lexHits []index.RankedHit
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for i, id := range ids {
		segments = append(segments, index.Segment{ID: id, Text: id})
		lexHits = append(lexHits, hit(id, index.SourceLexical, i+1))
	}
	cfg := testConfig()
	cfg.TopKFinal = 3

	r := NewRetriever(segments, &fakeLexical{hits: lexHits}, &fakeSemantic{}, fakeEmbedder{}, cfg)
	res, err := r.Retrieve(context.Background(), []TranscriptTurn{{Role: "client", Text: "query"}})
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(res.Fused) != 3 {
		t.Fatalf("expected 3 results after truncation, got %d", len(res.Fused))
	}
}

func TestBuildQueries(t *testing.T) {
	turns := []TranscriptTurn{
		{Role: "therapist", Text: "How is your sleep?"},
		{Role: "client", Text: "I barely sleep at all."},
		{Role: "therapist", Text: "Earlier you mentioned 6A70."},
		{Role: "human", Text: "The low mood matches 6A70 and maybe 6B00."},
	}

	q := BuildQueries(turns)
	if q.Semantic != "I barely sleep at all. The low mood matches 6A70 and maybe 6B00." {
		t.Fatalf("unexpected semantic query: %q", q.Semantic)
	}
	if q.Exact != "6A70 6B00" {
		t.Fatalf("unexpected exact query: %q", q.Exact)
	}
}

func TestBuildQueriesNoCodes(t *testing.T) {
	q := BuildQueries([]TranscriptTurn{{Role: "client", Text: "just feeling tired"}})
	if q.Exact != "" {
		t.Fatalf("expected empty exact query, got %q", q.Exact)
	}
	if q.Semantic != "just feeling tired" {
		t.Fatalf("unexpected semantic query: %q", q.Semantic)
	}
}
