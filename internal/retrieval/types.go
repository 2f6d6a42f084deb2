package retrieval

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/clinsim/interview-controller/internal/index"
)

// #region interfaces

// LexicalSearcher is the read-only lexical (term-frequency) index adapter.
type LexicalSearcher interface {
	Search(ctx context.Context, query string, k int) ([]index.RankedHit, error)
}

// SemanticSearcher is the read-only vector index adapter.
type SemanticSearcher interface {
	Search(ctx context.Context, queryEmbedding []float32, k int) ([]index.RankedHit, error)
}

// #endregion interfaces

// #region transcript-turn

// TranscriptTurn is the slice of a dialogue turn the retriever needs. The
// session layer converts its own turn type into this one.
type TranscriptTurn struct {
	Role string // "therapist" | "client" | "human"
	Text string
}

// #endregion transcript-turn

// #region queries

// Queries bundles the query strings derived from a transcript. Exact is
// empty when the transcript carries no classification-code token.
type Queries struct {
	Semantic string
	Exact    string
}

// QueryRecord logs one executed query for the session audit trail.
type QueryRecord struct {
	Kind    string `json:"kind"` // "semantic" | "exact"
	Query   string `json:"query"`
	Results int    `json:"results"`
}

// #endregion queries

// #region fused-result

// FusedResult is one entry of the fused, deduplicated ranking.
type FusedResult struct {
	SegmentID   string  `json:"segment_id"`
	Score       float64 `json:"score"`
	CodeBoosted bool    `json:"code_boosted"`
}

// Result bundles the fused ranking with the query audit trail.
type Result struct {
	Fused   []FusedResult
	Queries []QueryRecord
}

// #endregion fused-result

// #region config

// Config holds retrieval fan-out and fusion parameters.
type Config struct {
	TopKDense     int
	TopKBM25      int
	TopKFinal     int
	RRFK          int
	CodeBoost     float64
	SourceTimeout time.Duration
}

// DefaultConfig returns fusion defaults, overridable via env vars
// RETRIEVAL_TOP_K_FINAL and RETRIEVAL_TIMEOUT_MS.
func DefaultConfig() Config {
	cfg := Config{
		TopKDense:     8,
		TopKBM25:      8,
		TopKFinal:     6,
		RRFK:          60,
		CodeBoost:     0.05,
		SourceTimeout: 5 * time.Second,
	}
	if v := os.Getenv("RETRIEVAL_TOP_K_FINAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TopKFinal = n
		}
	}
	if v := os.Getenv("RETRIEVAL_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.SourceTimeout = time.Duration(ms) * time.Millisecond
		}
	}
	return cfg
}

// #endregion config
