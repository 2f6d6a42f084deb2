package diagnosis

// #region confidence

// Confidence is the diagnostician's self-reported certainty for a hypothesis.
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// #endregion confidence

// #region hypothesis

// Hypothesis is one ICD-11 diagnostic candidate with its supporting and
// contradicting evidence as free-text claims.
type Hypothesis struct {
	Label           string     `json:"label"`
	Code            string     `json:"code"`
	Confidence      Confidence `json:"confidence"`
	EvidenceFor     []string   `json:"evidence_for"`
	EvidenceAgainst []string   `json:"evidence_against"`
}

// #endregion hypothesis

// #region audit

// AuditIssue records one evidence claim that could not be traced back to the
// transcript or the retrieved context.
type AuditIssue struct {
	Hypothesis string `json:"hypothesis"`
	Claim      string `json:"claim"`
	Reason     string `json:"reason"`
}

// AuditReport summarises the mechanical traceability check plus an optional
// model commentary.
type AuditReport struct {
	Verified          bool         `json:"verified"`
	TraceabilityScore float64      `json:"traceability_score"`
	TotalClaims       int          `json:"total_claims"`
	GroundedClaims    int          `json:"grounded_claims"`
	Issues            []AuditIssue `json:"issues"`
	Commentary        string       `json:"commentary,omitempty"`
}

// #endregion audit
