package index

import (
	"context"
	"math"
	"sort"
)

// #region config

// LexicalConfig holds BM25 scoring parameters.
type LexicalConfig struct {
	K1 float64
	B  float64
}

// DefaultLexicalConfig returns the standard Okapi BM25 parameters.
func DefaultLexicalConfig() LexicalConfig {
	return LexicalConfig{K1: 1.5, B: 0.75}
}

// #endregion config

// #region lexical-index

// LexicalIndex is a precomputed term-frequency (BM25) ranking structure over
// a fixed segment corpus. Read-only after construction; safe for concurrent
// use across sessions.
type LexicalIndex struct {
	segments []Segment
	tokens   [][]string
	docFreq  map[string]int
	avgLen   float64
	config   LexicalConfig
}

// NewLexicalIndex tokenizes the corpus and builds document-frequency tables.
func NewLexicalIndex(segments []Segment, config LexicalConfig) *LexicalIndex {
	idx := &LexicalIndex{
		segments: segments,
		tokens:   make([][]string, len(segments)),
		docFreq:  make(map[string]int),
		config:   config,
	}

	var totalLen int
	for i, seg := range segments {
		toks := tokenize(seg.Text)
		idx.tokens[i] = toks
		totalLen += len(toks)

		seen := make(map[string]bool, len(toks))
		for _, t := range toks {
			if !seen[t] {
				seen[t] = true
				idx.docFreq[t]++
			}
		}
	}
	if len(segments) > 0 {
		idx.avgLen = float64(totalLen) / float64(len(segments))
	}
	return idx
}

// #endregion lexical-index

// #region search

// Search ranks segments against the query by BM25 score. Segments with zero
// score are excluded. Ties are broken by segment ID ascending so ordering is
// reproducible.
func (idx *LexicalIndex) Search(ctx context.Context, query string, k int) ([]RankedHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	queryTokens := tokenize(query)
	if len(queryTokens) == 0 || len(idx.segments) == 0 {
		return nil, nil
	}

	n := float64(len(idx.segments))
	type scored struct {
		segIdx int
		score  float64
	}
	var results []scored

	for i := range idx.segments {
		docLen := float64(len(idx.tokens[i]))
		freq := make(map[string]int, len(idx.tokens[i]))
		for _, t := range idx.tokens[i] {
			freq[t]++
		}

		var score float64
		for _, qt := range queryTokens {
			tf := float64(freq[qt])
			if tf == 0 {
				continue
			}
			df := float64(idx.docFreq[qt])
			idf := math.Log(1 + (n-df+0.5)/(df+0.5))
			denom := tf + idx.config.K1*(1-idx.config.B+idx.config.B*docLen/idx.avgLen)
			score += idf * tf * (idx.config.K1 + 1) / denom
		}
		if score > 0 {
			results = append(results, scored{segIdx: i, score: score})
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
			Source:    SourceLexical,
			Rank:      i + 1,
			Score:     r.score,
		}
	}
	return hits, nil
}

// #endregion search
