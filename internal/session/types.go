package session

import (
	"errors"

	"github.com/clinsim/interview-controller/internal/coverage"
	"github.com/clinsim/interview-controller/internal/diagnosis"
	"github.com/clinsim/interview-controller/internal/retrieval"
	"github.com/clinsim/interview-controller/internal/risk"
)

// #region states

// StateID identifies one node of the interview state machine.
type StateID string

const (
	StateInit            StateID = "init"
	StateTherapistAsk    StateID = "therapist_ask"
	StateRiskCheck1      StateID = "risk_check_1"
	StateHumanInput      StateID = "human_input"
	StateClientRespond   StateID = "client_respond"
	StateCoverageCheck   StateID = "coverage_check"
	StateRetrieveContext StateID = "retrieve_context"
	StateDiagnose        StateID = "diagnose"
	StateRiskCheck2      StateID = "risk_check_2"
	StateAudit           StateID = "audit"
	StateFinalize        StateID = "finalize"
	StateSafeExit        StateID = "safe_exit"
	StateEnd             StateID = "end"
)

// Terminal reports whether the machine accepts no further transitions.
func (s StateID) Terminal() bool {
	return s == StateEnd || s == StateSafeExit
}

// #endregion states

// #region errors

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionFinished = errors.New("session already terminal")
	ErrNotSuspended    = errors.New("session is not suspended at human input")
)

// #endregion errors

// #region transcript

// Speaker identifies who produced a transcript turn.
type Speaker string

const (
	SpeakerTherapist Speaker = "therapist"
	SpeakerClient    Speaker = "client"
	SpeakerHuman     Speaker = "human"
)

// Turn is one utterance of the interview transcript. Domain is set on
// therapist turns (the domain the question targets) and inherited by the
// response turn that follows.
type Turn struct {
	Speaker   Speaker `json:"speaker"`
	Domain    string  `json:"domain,omitempty"`
	Utterance string  `json:"utterance"`
	Timestamp string  `json:"timestamp"`
}

// #endregion transcript

// #region profile

// Profile configures one interview session: the synthetic patient, the
// session language, and the control knobs for the loop.
type Profile struct {
	Name        string   `json:"name"`
	Age         int      `json:"age"`
	Gender      string   `json:"gender,omitempty"`
	Complaints  []string `json:"complaints,omitempty"`
	History     string   `json:"history,omitempty"`
	Language    string   `json:"language"` // "es" | "en"
	Interactive bool     `json:"interactive"`
	MaxTurns    int      `json:"max_turns"`
	Seed        int64    `json:"seed"`
}

// #endregion profile

// #region evidence

// EvidenceChunk is one fused retrieval hit with its segment text resolved,
// as handed to the diagnostician and kept in the session record.
type EvidenceChunk struct {
	SegmentID   string  `json:"segment_id"`
	Text        string  `json:"text"`
	Score       float64 `json:"score"`
	CodeBoosted bool    `json:"code_boosted"`
}

// #endregion evidence

// #region session-state

// State is the aggregate root of one interview: transcript, coverage,
// control position, and the accumulating diagnosis artifacts. It is owned
// exclusively by its session and mutated only by the machine's node
// handlers. The whole struct serializes to JSON for suspension at the
// human-input node and for archival.
type State struct {
	ID      string  `json:"id"`
	Profile Profile `json:"profile"`

	Current StateID `json:"current"`
	// Prev routes the shared risk-check node: after a therapist question it
	// leads to an input state, after a response it leads to coverage.
	Prev StateID `json:"prev"`

	Transcript []Turn         `json:"transcript"`
	Coverage   coverage.State `json:"coverage"`
	TurnCount  int            `json:"turn_count"`

	Risk            *risk.Verdict           `json:"risk,omitempty"`
	PendingQuestion string                  `json:"pending_question,omitempty"`
	Evidence        []EvidenceChunk         `json:"evidence,omitempty"`
	QueryLog        []retrieval.QueryRecord `json:"query_log,omitempty"`
	RawDiagnosis    string                  `json:"raw_diagnosis,omitempty"`
	Hypotheses      []diagnosis.Hypothesis  `json:"hypotheses,omitempty"`
	Audit           *diagnosis.AuditReport  `json:"audit,omitempty"`

	PartialCoverage bool     `json:"partial_coverage,omitempty"`
	DegradedNodes   []string `json:"degraded_nodes,omitempty"`
	ErrorNote       string   `json:"error_note,omitempty"`
	CrisisMessage   string   `json:"crisis_message,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Suspended reports whether the session is parked at the human-input node
// waiting for an external utterance.
func (s *State) Suspended() bool {
	return s.Current == StateHumanInput
}

// lastUtterance returns the text of the most recent transcript turn.
func (s *State) lastUtterance() string {
	if len(s.Transcript) == 0 {
		return ""
	}
	return s.Transcript[len(s.Transcript)-1].Utterance
}

// lastDomain returns the domain of the most recent therapist turn.
func (s *State) lastDomain() string {
	for i := len(s.Transcript) - 1; i >= 0; i-- {
		if s.Transcript[i].Speaker == SpeakerTherapist && s.Transcript[i].Domain != "" {
			return s.Transcript[i].Domain
		}
	}
	return s.Coverage.NextDomain()
}

func (s *State) markDegraded(node string) {
	for _, n := range s.DegradedNodes {
		if n == node {
			return
		}
	}
	s.DegradedNodes = append(s.DegradedNodes, node)
}

// #endregion session-state

// #region store

// Store persists session snapshots across suspensions and archives terminal
// sessions. Implemented by the sqlite-backed state package; payloads are the
// JSON serialization of State so the store stays schema-agnostic.
type Store interface {
	SaveSnapshot(id, stateID, payload string) error
	LoadSnapshot(id string) (string, error)
	Archive(id string) error
	LogTransition(id, from, to string) error
}

// #endregion store
