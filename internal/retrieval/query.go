package retrieval

import (
	"strings"

	"github.com/clinsim/interview-controller/internal/index"
)

// #region query-builder

// maxSemanticTurns bounds how many recent client/human turns feed the
// semantic query.
const maxSemanticTurns = 3

// BuildQueries derives the retrieval queries from the transcript.
//
// The semantic query concatenates the most recent client/human turns, the
// material a dense index matches against. The exact query is populated only
// when a classification-code token already occurs somewhere in the
// transcript, so prior code mentions can be re-grounded precisely.
func BuildQueries(turns []TranscriptTurn) Queries {
	var q Queries

	var recent []string
	for i := len(turns) - 1; i >= 0 && len(recent) < maxSemanticTurns; i-- {
		if turns[i].Role == "client" || turns[i].Role == "human" {
			recent = append([]string{turns[i].Text}, recent...)
		}
	}
	q.Semantic = strings.TrimSpace(strings.Join(recent, " "))

	var codes []string
	seen := make(map[string]bool)
	for _, t := range turns {
		for _, c := range index.ExtractCodes(t.Text) {
			if !seen[c] {
				seen[c] = true
				codes = append(codes, c)
			}
		}
	}
	q.Exact = strings.Join(codes, " ")

	return q
}

// #endregion query-builder
