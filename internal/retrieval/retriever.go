package retrieval

import (
	"context"
	"log"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/clinsim/interview-controller/internal/index"
)

// #region retriever

// Retriever fuses the lexical and semantic index adapters into a single
// ranked result set via reciprocal rank fusion.
type Retriever struct {
	segments map[string]index.Segment
	lexical  LexicalSearcher
	semantic SemanticSearcher
	embedder index.Embedder
	config   Config
}

// NewRetriever builds a retriever over the shared read-only corpus.
func NewRetriever(
	segments []index.Segment,
	lexical LexicalSearcher,
	semantic SemanticSearcher,
	embedder index.Embedder,
	config Config,
) *Retriever {
	segMap := make(map[string]index.Segment, len(segments))
	for _, s := range segments {
		segMap[s.ID] = s
	}
	return &Retriever{
		segments: segMap,
		lexical:  lexical,
		semantic: semantic,
		embedder: embedder,
		config:   config,
	}
}

// Segment resolves a segment by ID from the corpus the retriever was built
// over.
func (r *Retriever) Segment(id string) (index.Segment, bool) {
	seg, ok := r.segments[id]
	return seg, ok
}

// #endregion retriever

// #region retrieve

// Retrieve runs the full hybrid pipeline:
//  1. Derive queries from the transcript (semantic always, exact when the
//     transcript carries a classification code).
//  2. Per query, dispatch both index adapters concurrently with a per-source
//     timeout. A failed or timed-out source degrades to zero hits.
//  3. Fuse all ranked lists with reciprocal rank fusion (rank 1-based).
//  4. Boost code-bearing segments, sort, truncate to TopKFinal.
//
// Both sources empty is not an error: the caller must handle "no grounding
// evidence" as a reportable state.
func (r *Retriever) Retrieve(ctx context.Context, turns []TranscriptTurn) (Result, error) {
	queries := BuildQueries(turns)

	var lists [][]index.RankedHit
	var records []QueryRecord

	if queries.Semantic != "" {
		hits := r.runQuery(ctx, queries.Semantic)
		n := 0
		for _, l := range hits {
			n += len(l)
		}
		lists = append(lists, hits...)
		records = append(records, QueryRecord{Kind: "semantic", Query: queries.Semantic, Results: n})
	}
	if queries.Exact != "" {
		hits := r.runQuery(ctx, queries.Exact)
		n := 0
		for _, l := range hits {
			n += len(l)
		}
		lists = append(lists, hits...)
		records = append(records, QueryRecord{Kind: "exact", Query: queries.Exact, Results: n})
	}

	fused := r.fuse(lists)
	if len(fused) > r.config.TopKFinal {
		fused = fused[:r.config.TopKFinal]
	}

	return Result{Fused: fused, Queries: records}, nil
}

// runQuery fans one query string out to both adapters in parallel and joins
// before fusion. Each source has an independent timeout; a source that fails
// is treated as returning zero hits rather than aborting the retrieval.
func (r *Retriever) runQuery(ctx context.Context, query string) [][]index.RankedHit {
	var lexHits, semHits []index.RankedHit

	g := &errgroup.Group{}

	g.Go(func() error {
		qctx, cancel := context.WithTimeout(ctx, r.config.SourceTimeout)
		defer cancel()
		hits, err := r.lexical.Search(qctx, query, r.config.TopKBM25)
		if err != nil {
			log.Printf("[RAG] lexical search degraded: %v", err)
			return nil
		}
		lexHits = hits
		return nil
	})

	g.Go(func() error {
		qctx, cancel := context.WithTimeout(ctx, r.config.SourceTimeout)
		defer cancel()
		emb, err := r.embedder.Embed(qctx, query)
		if err != nil {
			log.Printf("[RAG] query embedding degraded: %v", err)
			return nil
		}
		hits, err := r.semantic.Search(qctx, emb, r.config.TopKDense)
		if err != nil {
			log.Printf("[RAG] semantic search degraded: %v", err)
			return nil
		}
		semHits = hits
		return nil
	})

	g.Wait()

	return [][]index.RankedHit{semHits, lexHits}
}

// #endregion retrieve

// #region fusion

// fuse merges ranked lists with reciprocal rank fusion: each segment scores
// the sum over lists it appears in of 1/(k + rank). Segments whose text
// carries a classification code receive a fixed additive boost. Ordering is
// deterministic: score descending, ties by segment ID ascending.
func (r *Retriever) fuse(lists [][]index.RankedHit) []FusedResult {
	scores := make(map[string]float64)
	for _, list := range lists {
		for _, hit := range list {
			scores[hit.SegmentID] += 1.0 / float64(r.config.RRFK+hit.Rank)
		}
	}
	if len(scores) == 0 {
		return nil
	}

	fused := make([]FusedResult, 0, len(scores))
	for id, score := range scores {
		boosted := false
		if seg, ok := r.segments[id]; ok && index.ContainsCode(seg.Text) {
			score += r.config.CodeBoost
			boosted = true
		}
		fused = append(fused, FusedResult{SegmentID: id, Score: score, CodeBoosted: boosted})
	}

	sort.Slice(fused, func(i, j int) bool {
		if fused[i].Score != fused[j].Score {
			return fused[i].Score > fused[j].Score
		}
		return fused[i].SegmentID < fused[j].SegmentID
	})

	return fused
}

// #endregion fusion
