package replay

import (
	"context"
	"fmt"

	"github.com/clinsim/interview-controller/internal/index"
	"github.com/clinsim/interview-controller/internal/retrieval"
	"github.com/clinsim/interview-controller/internal/session"
)

// #region types

// Result captures the outcome of replaying one fixture end to end.
type Result struct {
	SessionID       string
	TerminalState   session.StateID
	DomainsCovered  int
	DomainsPending  int
	PartialCoverage bool
	RiskDetected    bool
	CrisisMessage   string
	Suspensions     int
	Artifact        *session.Artifact
}

// #endregion types

// #region replay

// Replay runs a fixture through a fresh mock-mode session: seed corpus,
// hash embedder, no model. Interactive fixtures consume their scripted
// human utterances one per suspension. Operates entirely in-memory.
func Replay(ctx context.Context, f *Fixture) (Result, error) {
	segments := index.SeedCorpus(f.Profile.Language)
	embedder := index.NewHashEmbedder(0)
	embeddings, err := index.EmbedCorpus(ctx, embedder, segments)
	if err != nil {
		return Result{}, fmt.Errorf("embed corpus: %w", err)
	}

	lexical := index.NewLexicalIndex(segments, index.DefaultLexicalConfig())
	semantic, err := index.NewSemanticIndex(segments, embeddings)
	if err != nil {
		return Result{}, fmt.Errorf("build semantic index: %w", err)
	}

	retriever := retrieval.NewRetriever(segments, lexical, semantic, embedder, retrieval.DefaultConfig())
	machine := session.NewMachine(retriever, nil)
	manager := session.NewManager(machine, nil)

	id, err := manager.StartSession(f.Profile)
	if err != nil {
		return Result{}, fmt.Errorf("start session: %w", err)
	}

	res := Result{SessionID: id}
	human := ""
	scriptIdx := 0

	for {
		adv, err := manager.Advance(ctx, id, human)
		if err != nil {
			return Result{}, fmt.Errorf("advance: %w", err)
		}
		human = ""

		if adv.Suspended {
			if scriptIdx >= len(f.HumanUtterances) {
				return Result{}, fmt.Errorf("session suspended at turn %d but fixture has only %d human utterances",
					res.Suspensions+1, len(f.HumanUtterances))
			}
			human = f.HumanUtterances[scriptIdx]
			scriptIdx++
			res.Suspensions++
			continue
		}

		res.TerminalState = adv.State
		res.CrisisMessage = adv.CrisisMessage
		res.Artifact = adv.Artifact
		if adv.Artifact != nil {
			res.DomainsCovered = len(adv.Artifact.DomainsCovered)
			res.DomainsPending = len(adv.Artifact.DomainsPending)
			res.PartialCoverage = adv.Artifact.PartialCoverage
			res.RiskDetected = adv.Artifact.CrisisMessage != ""
		}
		return res, nil
	}
}

// #endregion replay

// #region verify

// Verify compares a replay result against the fixture's expectations and
// returns one message per mismatch; empty means the replay passed.
func Verify(f *Fixture, r Result) []string {
	var mismatches []string

	if f.Expected.TerminalState != "" && string(r.TerminalState) != f.Expected.TerminalState {
		mismatches = append(mismatches, fmt.Sprintf(
			"terminal state: expected %s, got %s", f.Expected.TerminalState, r.TerminalState))
	}
	if r.DomainsCovered < f.Expected.MinDomainsCovered {
		mismatches = append(mismatches, fmt.Sprintf(
			"domains covered: expected at least %d, got %d", f.Expected.MinDomainsCovered, r.DomainsCovered))
	}
	if r.PartialCoverage != f.Expected.PartialCoverage {
		mismatches = append(mismatches, fmt.Sprintf(
			"partial coverage: expected %v, got %v", f.Expected.PartialCoverage, r.PartialCoverage))
	}
	if r.RiskDetected != f.Expected.RiskDetected {
		mismatches = append(mismatches, fmt.Sprintf(
			"risk detected: expected %v, got %v", f.Expected.RiskDetected, r.RiskDetected))
	}

	return mismatches
}

// #endregion verify
