package session

import (
	"github.com/clinsim/interview-controller/internal/diagnosis"
	"github.com/clinsim/interview-controller/internal/retrieval"
)

// #region artifact

// Artifact is the structured output of a finished session: coverage
// summary, the ordered hypotheses, the audit report, and any crisis or
// degradation annotations. Every terminal session yields one.
type Artifact struct {
	SessionID       string                  `json:"session_id"`
	TerminalState   StateID                 `json:"terminal_state"`
	DomainsCovered  []string                `json:"domains_covered"`
	DomainsPending  []string                `json:"domains_pending"`
	PartialCoverage bool                    `json:"partial_coverage"`
	Hypotheses      []diagnosis.Hypothesis  `json:"hypotheses"`
	Audit           *diagnosis.AuditReport  `json:"audit,omitempty"`
	QueryLog        []retrieval.QueryRecord `json:"query_log,omitempty"`
	CrisisMessage   string                  `json:"crisis_message,omitempty"`
	DegradedNodes   []string                `json:"degraded_nodes,omitempty"`
	ErrorNote       string                  `json:"error_note,omitempty"`
}

// BuildArtifact snapshots a terminal session into its output record.
func BuildArtifact(s *State) Artifact {
	return Artifact{
		SessionID:       s.ID,
		TerminalState:   s.Current,
		DomainsCovered:  s.Coverage.Covered,
		DomainsPending:  s.Coverage.Pending,
		PartialCoverage: s.PartialCoverage,
		Hypotheses:      s.Hypotheses,
		Audit:           s.Audit,
		QueryLog:        s.QueryLog,
		CrisisMessage:   s.CrisisMessage,
		DegradedNodes:   s.DegradedNodes,
		ErrorNote:       s.ErrorNote,
	}
}

// #endregion artifact
