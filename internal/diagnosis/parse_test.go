package diagnosis

import "testing"

const validArray = `[
  {"label": "Generalised Anxiety Disorder", "code": "6B00", "confidence": "HIGH",
   "evidence_for": ["constant worry"], "evidence_against": []},
  {"label": "Depressive Episode", "code": "6A70", "confidence": "LOW",
   "evidence_for": ["low mood"], "evidence_against": ["episodic only"]}
]`

func TestParseValidArray(t *testing.T) {
	hyps, err := Parse(validArray)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(hyps) != 2 {
		t.Fatalf("expected 2 hypotheses, got %d", len(hyps))
	}
	if hyps[0].Code != "6B00" || hyps[0].Confidence != ConfidenceHigh {
		t.Fatalf("unexpected first hypothesis: %+v", hyps[0])
	}
}

func TestParseFencedMarkdown(t *testing.T) {
	for _, raw := range []string{
		"Here you go:\n```json\n" + validArray + "\n```\nHope that helps!",
		"```\n" + validArray + "\n```",
	} {
		hyps, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q...): %v", raw[:20], err)
		}
		if len(hyps) != 2 {
			t.Fatalf("expected 2 hypotheses, got %d", len(hyps))
		}
	}
}

func TestParseRepairsTrailingCommas(t *testing.T) {
	raw := `[{"label": "X", "code": "6A70", "confidence": "MEDIUM",
	  "evidence_for": ["a", "b",], "evidence_against": [],},]`

	hyps, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(hyps) != 1 || len(hyps[0].EvidenceFor) != 2 {
		t.Fatalf("unexpected result: %+v", hyps)
	}
}

func TestParseSingleObjectBecomesArray(t *testing.T) {
	raw := `{"label": "X", "code": "6B00", "confidence": "HIGH", "evidence_for": [], "evidence_against": []}`

	hyps, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(hyps) != 1 || hyps[0].Label != "X" {
		t.Fatalf("unexpected result: %+v", hyps)
	}
}

func TestParseNormalizesSpanishConfidence(t *testing.T) {
	raw := `[{"label": "X", "code": "6B00", "confidence": "ALTA", "evidence_for": [], "evidence_against": []},
	         {"label": "Y", "code": "6A70", "confidence": "media", "evidence_for": [], "evidence_against": []},
	         {"label": "Z", "code": "", "confidence": "BAJA", "evidence_for": [], "evidence_against": []}]`

	hyps, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Confidence{ConfidenceHigh, ConfidenceMedium, ConfidenceLow}
	for i, c := range want {
		if hyps[i].Confidence != c {
			t.Fatalf("hypothesis %d: expected %s, got %s", i, c, hyps[i].Confidence)
		}
	}
	if hyps[2].Code != "N/A" {
		t.Fatalf("empty code should normalize to N/A, got %q", hyps[2].Code)
	}
}

func TestParseGarbageFails(t *testing.T) {
	if _, err := Parse("I cannot produce a diagnosis right now, sorry."); err == nil {
		t.Fatal("expected parse error for prose output")
	}
}

func TestPlaceholderCarriesRawOutput(t *testing.T) {
	raw := "total nonsense"
	_, err := Parse(raw)
	if err == nil {
		t.Fatal("expected parse error")
	}

	hyps := Placeholder(raw, err)
	if len(hyps) != 1 {
		t.Fatalf("expected 1 placeholder, got %d", len(hyps))
	}
	if hyps[0].Confidence != ConfidenceLow || hyps[0].Code != "N/A" {
		t.Fatalf("unexpected placeholder shape: %+v", hyps[0])
	}
	if len(hyps[0].EvidenceFor) != 1 || hyps[0].EvidenceFor[0] != raw {
		t.Fatalf("placeholder must carry the raw output: %+v", hyps[0].EvidenceFor)
	}
}
