package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/clinsim/interview-controller/internal/session"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a session replay fixture:
// the profile to run, scripted human utterances for interactive sessions,
// and the expected outcome.
type Fixture struct {
	Description     string          `json:"description"`
	Profile         session.Profile `json:"profile"`
	HumanUtterances []string        `json:"human_utterances,omitempty"`
	Expected        Expected        `json:"expected"`
}

// Expected captures the assertable outcome of a replayed session.
type Expected struct {
	TerminalState     string `json:"terminal_state"`
	MinDomainsCovered int    `json:"min_domains_covered"`
	PartialCoverage   bool   `json:"partial_coverage"`
	RiskDetected      bool   `json:"risk_detected"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if f.Profile.Language == "" {
		return nil, fmt.Errorf("fixture %s: profile.language is required", path)
	}
	return &f, nil
}

// SaveFixture writes a fixture as indented JSON, for fixture export tooling.
func SaveFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// #endregion fixture-loader
