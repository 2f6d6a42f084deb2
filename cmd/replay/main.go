package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/clinsim/interview-controller/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	jsonOut := flag.Bool("json", false, "print full result as JSON")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [--json]")
		os.Exit(2)
	}

	os.Exit(run(*fixturePath, *jsonOut))
}

func run(path string, jsonOut bool) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	res, err := replay.Replay(context.Background(), f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}

	if jsonOut {
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "marshal result: %v\n", err)
			return 2
		}
		fmt.Println(string(out))
	} else {
		fmt.Printf("Fixture:    %s\n", f.Description)
		fmt.Printf("Session:    %s\n", res.SessionID)
		fmt.Printf("Terminal:   %s\n", res.TerminalState)
		fmt.Printf("Covered:    %d domains (%d pending)\n", res.DomainsCovered, res.DomainsPending)
		fmt.Printf("Partial:    %v | Risk: %v | Suspensions: %d\n",
			res.PartialCoverage, res.RiskDetected, res.Suspensions)
	}

	mismatches := replay.Verify(f, res)
	if len(mismatches) > 0 {
		fmt.Println("\nFAIL:")
		for _, m := range mismatches {
			fmt.Printf("  - %s\n", m)
		}
		return 1
	}

	fmt.Println("\nPASS: replay matched all expectations")
	return 0
}

// #endregion main
