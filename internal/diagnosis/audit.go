package diagnosis

import (
	"math"
	"regexp"
	"strings"
)

// #region audit

// Tokens shorter than this carry too little signal to ground a claim on.
const minClaimTokenLen = 4

var claimTokenSplit = regexp.MustCompile(`\W+`)

// Audit checks that every evidence_for claim traces back to the transcript
// or a retrieved chunk. A claim is grounded when at least one of its
// meaningful tokens appears in either corpus. Empty claims count as grounded
// since there is nothing to verify. The score is grounded/total, 1.0 when
// there are no claims at all.
func Audit(hypotheses []Hypothesis, transcriptTexts, chunkTexts []string) AuditReport {
	transcript := strings.ToLower(strings.Join(transcriptTexts, " "))
	chunks := strings.ToLower(strings.Join(chunkTexts, " "))

	var issues []AuditIssue
	total := 0
	grounded := 0

	for _, h := range hypotheses {
		for _, claim := range h.EvidenceFor {
			total++
			c := strings.ToLower(strings.TrimSpace(claim))
			if isGrounded(c, transcript) || isGrounded(c, chunks) {
				grounded++
				continue
			}
			issues = append(issues, AuditIssue{
				Hypothesis: h.Label,
				Claim:      claim,
				Reason:     "No matching evidence found in transcript or retrieved chunks.",
			})
		}
	}

	score := 1.0
	if total > 0 {
		score = math.Round(float64(grounded)/float64(total)*10000) / 10000
	}

	return AuditReport{
		Verified:          len(issues) == 0,
		TraceabilityScore: score,
		TotalClaims:       total,
		GroundedClaims:    grounded,
		Issues:            issues,
	}
}

func isGrounded(claim, corpus string) bool {
	tokens := claimTokenSplit.Split(claim, -1)
	meaningful := false
	for _, tok := range tokens {
		if len(tok) < minClaimTokenLen {
			continue
		}
		meaningful = true
		if strings.Contains(corpus, tok) {
			return true
		}
	}
	// A claim with no meaningful tokens cannot be verified; assume grounded.
	return !meaningful
}

// #endregion audit
