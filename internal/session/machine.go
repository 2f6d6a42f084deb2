package session

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/clinsim/interview-controller/internal/agents"
	"github.com/clinsim/interview-controller/internal/coverage"
	"github.com/clinsim/interview-controller/internal/diagnosis"
	"github.com/clinsim/interview-controller/internal/retrieval"
	"github.com/clinsim/interview-controller/internal/risk"
)

const defaultMaxTurns = 40

// #region machine

// Machine advances one session through the interview graph. It holds only
// shared read-only collaborators (retriever, gate, agents); all per-session
// data lives in the State passed to Run, so one Machine serves any number
// of concurrent sessions.
type Machine struct {
	retriever *retrieval.Retriever
	gate      *risk.Gate
	tracker   *coverage.Tracker

	// nil agents mean mock mode: domain-aware banks stand in for the model.
	therapist     *agents.Therapist
	client        *agents.Client
	diagnostician *agents.Diagnostician
	auditor       *agents.Auditor

	// Transitions is invoked for every edge taken; the manager wires it to
	// the persistent transition log. May be nil.
	Transitions func(id, from, to string)
}

// NewMachine wires a machine. A nil generator selects mock mode.
func NewMachine(retriever *retrieval.Retriever, gen agents.Generator) *Machine {
	m := &Machine{
		retriever: retriever,
		gate:      risk.NewGate(),
		tracker:   coverage.NewTracker(nil),
	}
	if gen != nil {
		m.therapist = agents.NewTherapist(gen)
		m.client = agents.NewClient(gen)
		m.diagnostician = agents.NewDiagnostician(gen)
		m.auditor = agents.NewAuditor(gen)
	}
	return m
}

// #endregion machine

// #region transitions

type guardFunc func(*State) bool

func always(*State) bool { return true }

func riskDetected(s *State) bool {
	return s.Risk != nil && s.Risk.RiskDetected
}

func afterTherapistInteractive(s *State) bool {
	return s.Prev == StateTherapistAsk && s.Profile.Interactive
}

func afterTherapist(s *State) bool {
	return s.Prev == StateTherapistAsk
}

func readyForDiagnosis(s *State) bool {
	return s.Coverage.Complete() || s.TurnCount >= s.Profile.MaxTurns
}

// The interview graph as an explicit table, evaluated top to bottom per
// from-state. Risk guards are listed first so a detected risk always wins
// over any other pending transition.
var transitions = []struct {
	from  StateID
	guard guardFunc
	to    StateID
}{
	{StateInit, always, StateTherapistAsk},
	{StateTherapistAsk, always, StateRiskCheck1},
	{StateRiskCheck1, riskDetected, StateSafeExit},
	{StateRiskCheck1, afterTherapistInteractive, StateHumanInput},
	{StateRiskCheck1, afterTherapist, StateClientRespond},
	{StateRiskCheck1, always, StateCoverageCheck},
	{StateHumanInput, always, StateRiskCheck1},
	{StateClientRespond, always, StateRiskCheck1},
	{StateCoverageCheck, readyForDiagnosis, StateRetrieveContext},
	{StateCoverageCheck, always, StateTherapistAsk},
	{StateRetrieveContext, always, StateDiagnose},
	{StateDiagnose, always, StateRiskCheck2},
	{StateRiskCheck2, riskDetected, StateSafeExit},
	{StateRiskCheck2, always, StateAudit},
	{StateAudit, always, StateFinalize},
	{StateFinalize, always, StateEnd},
}

func nextState(s *State) StateID {
	for _, t := range transitions {
		if t.from == s.Current && t.guard(s) {
			return t.to
		}
	}
	// Unreachable for a well-formed table; treated as a fault.
	return StateSafeExit
}

// #endregion transitions

// #region run

// runtime carries the externally supplied utterance for one Run invocation.
// It is deliberately not part of State: the utterance is consumed exactly
// once, at the human-input node.
type runtime struct {
	human    string
	hasHuman bool
}

// Run advances the session until it suspends at human input or reaches a
// terminal state. human is the resume utterance ("" when starting or when
// running non-interactively). Every node executes behind a recover barrier:
// a panic becomes a terminal safe-exit with an error annotation instead of
// an ambiguous half-mutated session.
func (m *Machine) Run(ctx context.Context, s *State, human string) {
	rt := &runtime{human: human, hasHuman: human != ""}

	for !s.Current.Terminal() {
		if s.Current == StateHumanInput && !rt.hasHuman {
			s.UpdatedAt = now()
			log.Printf("[FSM] session %s suspended at %s", s.ID, s.Current)
			return
		}
		m.step(ctx, s, rt)
	}
	s.UpdatedAt = now()
}

func (m *Machine) step(ctx context.Context, s *State, rt *runtime) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[FSM] session %s: node %s panicked: %v", s.ID, s.Current, r)
			s.ErrorNote = fmt.Sprintf("node %s: %v", s.Current, r)
			m.move(s, StateSafeExit)
		}
	}()

	if err := m.execute(ctx, s, rt); err != nil {
		log.Printf("[FSM] session %s: node %s failed: %v", s.ID, s.Current, err)
		s.ErrorNote = fmt.Sprintf("node %s: %v", s.Current, err)
		m.move(s, StateSafeExit)
		return
	}

	m.move(s, nextState(s))
}

func (m *Machine) move(s *State, to StateID) {
	from := s.Current
	s.Prev = from
	s.Current = to

	if to == StateSafeExit && riskDetected(s) {
		s.CrisisMessage = s.Risk.Message
	}

	log.Printf("[FSM] session %s: %s -> %s", s.ID, from, to)
	if m.Transitions != nil {
		m.Transitions(s.ID, string(from), string(to))
	}
}

// #endregion run

// #region nodes

func (m *Machine) execute(ctx context.Context, s *State, rt *runtime) error {
	switch s.Current {
	case StateInit:
		return m.nodeInit(s)
	case StateTherapistAsk:
		return m.nodeTherapistAsk(ctx, s)
	case StateRiskCheck1, StateRiskCheck2:
		return m.nodeRiskCheck(s)
	case StateHumanInput:
		return m.nodeHumanInput(s, rt)
	case StateClientRespond:
		return m.nodeClientRespond(ctx, s)
	case StateCoverageCheck:
		return m.nodeCoverageCheck(s)
	case StateRetrieveContext:
		return m.nodeRetrieveContext(ctx, s)
	case StateDiagnose:
		return m.nodeDiagnose(ctx, s)
	case StateAudit:
		return m.nodeAudit(ctx, s)
	case StateFinalize:
		return nil
	default:
		return fmt.Errorf("no handler for state %s", s.Current)
	}
}

// nodeInit shuffles the domain order from the session seed so identical
// profiles still produce different interview flows, reproducibly.
func (m *Machine) nodeInit(s *State) error {
	if s.Profile.MaxTurns <= 0 {
		s.Profile.MaxTurns = defaultMaxTurns
	}
	rng := rand.New(rand.NewSource(s.Profile.Seed))
	s.Coverage = coverage.NewState(coverage.Shuffle(coverage.Domains, rng))
	s.Transcript = []Turn{}
	if s.CreatedAt == "" {
		s.CreatedAt = now()
	}
	return nil
}

func (m *Machine) nodeTherapistAsk(ctx context.Context, s *State) error {
	domain := s.Coverage.NextDomain()
	if domain == "" {
		domain = s.lastDomain()
	}

	var question string
	if m.therapist != nil {
		var degraded bool
		question, degraded = m.therapist.Ask(ctx, dialogue(s), domain, s.Profile.Language)
		if degraded {
			s.markDegraded(string(StateTherapistAsk))
		}
	} else {
		question = agents.MockTherapistQuestion(domain, s.Profile.Language, s.Profile.Seed, s.TurnCount)
	}

	s.Transcript = append(s.Transcript, Turn{
		Speaker:   SpeakerTherapist,
		Domain:    domain,
		Utterance: question,
		Timestamp: now(),
	})
	s.TurnCount++
	s.PendingQuestion = question
	return nil
}

// nodeRiskCheck scans the most recently produced text. For the first check
// that is the latest transcript turn; for the second it is the raw
// diagnostician output, which never reaches the transcript.
func (m *Machine) nodeRiskCheck(s *State) error {
	text := s.lastUtterance()
	if s.Current == StateRiskCheck2 {
		text = s.RawDiagnosis
	}
	v := m.gate.Evaluate(text, s.Profile.Language)
	s.Risk = &v
	return nil
}

func (m *Machine) nodeHumanInput(s *State, rt *runtime) error {
	s.Transcript = append(s.Transcript, Turn{
		Speaker:   SpeakerHuman,
		Domain:    s.lastDomain(),
		Utterance: rt.human,
		Timestamp: now(),
	})
	rt.human = ""
	rt.hasHuman = false
	s.PendingQuestion = ""
	return nil
}

func (m *Machine) nodeClientRespond(ctx context.Context, s *State) error {
	domain := s.lastDomain()

	var response string
	if m.client != nil {
		var degraded bool
		response, degraded = m.client.Respond(ctx, dialogue(s), agentProfile(s.Profile), s.Profile.Language)
		if degraded {
			s.markDegraded(string(StateClientRespond))
		}
	} else {
		response = agents.MockClientResponse(domain, s.Profile.Language, s.Profile.Seed, s.TurnCount)
	}

	s.Transcript = append(s.Transcript, Turn{
		Speaker:   SpeakerClient,
		Domain:    domain,
		Utterance: response,
		Timestamp: now(),
	})
	s.PendingQuestion = ""
	return nil
}

func (m *Machine) nodeCoverageCheck(s *State) error {
	s.Coverage = m.tracker.Update(s.Coverage, s.lastDomain(), s.lastUtterance())
	if !s.Coverage.Complete() && s.TurnCount >= s.Profile.MaxTurns {
		s.PartialCoverage = true
		log.Printf("[FSM] session %s: turn ceiling reached with %d domains pending",
			s.ID, len(s.Coverage.Pending))
	}
	return nil
}

// nodeRetrieveContext runs the hybrid retrieval over the transcript. Empty
// results are a valid outcome the diagnostician must handle, not an error.
func (m *Machine) nodeRetrieveContext(ctx context.Context, s *State) error {
	turns := make([]retrieval.TranscriptTurn, 0, len(s.Transcript))
	for _, t := range s.Transcript {
		turns = append(turns, retrieval.TranscriptTurn{Role: string(t.Speaker), Text: t.Utterance})
	}

	res, err := m.retriever.Retrieve(ctx, turns)
	if err != nil {
		log.Printf("[RAG] session %s: retrieval degraded: %v", s.ID, err)
		s.markDegraded(string(StateRetrieveContext))
		return nil
	}

	s.QueryLog = res.Queries
	s.Evidence = make([]EvidenceChunk, 0, len(res.Fused))
	for _, f := range res.Fused {
		seg, ok := m.retriever.Segment(f.SegmentID)
		if !ok {
			continue
		}
		s.Evidence = append(s.Evidence, EvidenceChunk{
			SegmentID:   f.SegmentID,
			Text:        seg.Text,
			Score:       f.Score,
			CodeBoosted: f.CodeBoosted,
		})
	}
	return nil
}

// nodeDiagnose drafts hypotheses from the transcript and evidence. A draft
// that fails schema validation gets exactly one re-generation before the
// unparseable placeholder is recorded.
func (m *Machine) nodeDiagnose(ctx context.Context, s *State) error {
	if m.diagnostician == nil {
		s.Hypotheses = mockHypotheses(s)
		s.RawDiagnosis = ""
		return nil
	}

	chunks := make([]string, 0, len(s.Evidence))
	for _, e := range s.Evidence {
		chunks = append(chunks, e.Text)
	}

	raw, degraded := m.diagnostician.Draft(ctx, dialogue(s), chunks, s.Profile.Language)
	if degraded {
		s.markDegraded(string(StateDiagnose))
	}

	hyps, err := diagnosis.Parse(raw)
	if err != nil {
		log.Printf("[FSM] session %s: hypothesis draft unparseable, regenerating once: %v", s.ID, err)
		raw, degraded = m.diagnostician.Draft(ctx, dialogue(s), chunks, s.Profile.Language)
		if degraded {
			s.markDegraded(string(StateDiagnose))
		}
		if hyps, err = diagnosis.Parse(raw); err != nil {
			hyps = diagnosis.Placeholder(raw, err)
		}
	}

	s.RawDiagnosis = raw
	s.Hypotheses = hyps
	return nil
}

func (m *Machine) nodeAudit(ctx context.Context, s *State) error {
	transcriptTexts := make([]string, 0, len(s.Transcript))
	for _, t := range s.Transcript {
		transcriptTexts = append(transcriptTexts, t.Utterance)
	}
	chunkTexts := make([]string, 0, len(s.Evidence))
	for _, e := range s.Evidence {
		chunkTexts = append(chunkTexts, e.Text)
	}

	report := diagnosis.Audit(s.Hypotheses, transcriptTexts, chunkTexts)

	if m.auditor != nil && len(s.Hypotheses) > 0 {
		labels := make([]string, 0, len(s.Hypotheses))
		for _, h := range s.Hypotheses {
			labels = append(labels, h.Label)
		}
		commentary, degraded := m.auditor.Commentary(ctx, labels, len(report.Issues), s.Profile.Language)
		if degraded {
			s.markDegraded(string(StateAudit))
		}
		report.Commentary = commentary
	}

	s.Audit = &report
	return nil
}

// #endregion nodes

// #region helpers

func dialogue(s *State) []agents.DialogueTurn {
	out := make([]agents.DialogueTurn, 0, len(s.Transcript))
	for _, t := range s.Transcript {
		role := agents.RoleClient
		if t.Speaker == SpeakerTherapist {
			role = agents.RoleTherapist
		}
		out = append(out, agents.DialogueTurn{Role: role, Content: t.Utterance})
	}
	return out
}

func agentProfile(p Profile) agents.Profile {
	return agents.Profile{
		Name:       p.Name,
		Age:        p.Age,
		Gender:     p.Gender,
		Complaints: p.Complaints,
		History:    p.History,
	}
}

// mockHypotheses mirrors the mock dialogue banks: a single simulated GAD
// hypothesis whose confidence tracks how much corroborating coverage the
// interview collected.
func mockHypotheses(s *State) []diagnosis.Hypothesis {
	var evidence []string
	for _, d := range s.Coverage.Covered {
		if d == "anxiety" || d == "sleep" || d == "mood" {
			evidence = append(evidence, d)
		}
	}

	confidence := diagnosis.ConfidenceHigh
	if len(evidence) < 2 {
		confidence = diagnosis.ConfidenceMedium
	}

	label := "Generalised Anxiety Disorder (simulated)"
	fallbackEvidence := "symptoms reported in the interview"
	if s.Profile.Language == "es" {
		label = "Trastorno de Ansiedad Generalizada (simulado)"
		fallbackEvidence = "síntomas reportados en la entrevista"
	}
	if len(evidence) == 0 {
		evidence = []string{fallbackEvidence}
	}

	return []diagnosis.Hypothesis{{
		Label:           label,
		Code:            "6B00",
		Confidence:      confidence,
		EvidenceFor:     evidence,
		EvidenceAgainst: []string{},
	}}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// #endregion helpers
