package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/clinsim/interview-controller/internal/session"
	"github.com/clinsim/interview-controller/internal/state"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to interviews.db")
	sessionID := flag.String("session", "", "show single session detail")
	transitions := flag.Bool("transitions", false, "include the state-machine trail in detail mode")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/interviews.db [--session id] [--transitions] [--json]")
		os.Exit(2)
	}

	store, err := state.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *sessionID != "" {
		err = runDetailMode(store, *sessionID, *transitions, *jsonOut)
	} else {
		err = runListMode(store, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

func runListMode(store *state.Store, jsonOut bool) error {
	rows, err := store.ListSessions()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "no sessions found")
		return nil
	}

	if jsonOut {
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("%-38s| %-18s| %-9s| %s\n", "Session", "State", "Archived", "Updated")
	for _, r := range rows {
		archived := ""
		if r.Archived {
			archived = "yes"
		}
		fmt.Printf("%-38s| %-18s| %-9s| %s\n", r.SessionID, r.State, archived, r.UpdatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type sessionDetail struct {
	Session     session.State         `json:"session"`
	Artifact    *session.Artifact     `json:"artifact,omitempty"`
	Transitions []state.TransitionRow `json:"transitions,omitempty"`
}

func runDetailMode(store *state.Store, id string, withTransitions, jsonOut bool) error {
	payload, err := store.LoadSnapshot(id)
	if err != nil {
		return err
	}

	var detail sessionDetail
	if err := json.Unmarshal([]byte(payload), &detail.Session); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if detail.Session.Current.Terminal() {
		artifact := session.BuildArtifact(&detail.Session)
		detail.Artifact = &artifact
	}
	if withTransitions {
		trail, err := store.Transitions(id)
		if err != nil {
			return err
		}
		detail.Transitions = trail
	}

	if jsonOut {
		out, err := json.MarshalIndent(detail, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	s := &detail.Session
	fmt.Printf("Session:   %s\n", s.ID)
	fmt.Printf("State:     %s (prev %s)\n", s.Current, s.Prev)
	fmt.Printf("Language:  %s | interactive: %v | turns: %d/%d\n",
		s.Profile.Language, s.Profile.Interactive, s.TurnCount, s.Profile.MaxTurns)
	fmt.Printf("Coverage:  %d covered, %d pending", len(s.Coverage.Covered), len(s.Coverage.Pending))
	if s.PartialCoverage {
		fmt.Print(" (partial)")
	}
	fmt.Println()
	if s.CrisisMessage != "" {
		fmt.Println("Crisis:    session ended via safety interrupt")
	}
	if s.ErrorNote != "" {
		fmt.Printf("Error:     %s\n", s.ErrorNote)
	}
	if len(s.DegradedNodes) > 0 {
		fmt.Printf("Degraded:  %v\n", s.DegradedNodes)
	}

	fmt.Printf("\nTranscript (%d turns):\n", len(s.Transcript))
	for _, t := range s.Transcript {
		domain := ""
		if t.Domain != "" {
			domain = fmt.Sprintf(" [%s]", t.Domain)
		}
		fmt.Printf("  %-9s%s: %s\n", t.Speaker, domain, t.Utterance)
	}

	if len(s.Hypotheses) > 0 {
		fmt.Printf("\nHypotheses (%d):\n", len(s.Hypotheses))
		for _, h := range s.Hypotheses {
			fmt.Printf("  %-6s %-8s %s\n", h.Code, h.Confidence, h.Label)
		}
	}
	if s.Audit != nil {
		fmt.Printf("\nAudit: verified=%v score=%.4f (%d/%d claims grounded, %d issues)\n",
			s.Audit.Verified, s.Audit.TraceabilityScore,
			s.Audit.GroundedClaims, s.Audit.TotalClaims, len(s.Audit.Issues))
	}

	if withTransitions {
		fmt.Printf("\nTransitions (%d):\n", len(detail.Transitions))
		for _, tr := range detail.Transitions {
			fmt.Printf("  %s -> %s\n", tr.From, tr.To)
		}
	}
	return nil
}

// #endregion detail-mode
