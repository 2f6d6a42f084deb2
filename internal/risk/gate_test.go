package risk

import "testing"

func TestEvaluateEnglishRiskPattern(t *testing.T) {
	g := NewGate()

	v := g.Evaluate("I want to end my life", "en")
	if !v.RiskDetected {
		t.Fatal("expected risk to be detected")
	}
	if v.Language != "en" {
		t.Fatalf("expected language en, got %s", v.Language)
	}
	if v.Message == "" {
		t.Fatal("expected non-empty crisis message")
	}
}

func TestEvaluateSpanishRiskPattern(t *testing.T) {
	g := NewGate()

	v := g.Evaluate("Ya no quiero vivir más", "es")
	if !v.RiskDetected {
		t.Fatal("expected risk to be detected")
	}
	if v.Language != "es" {
		t.Fatalf("expected language es, got %s", v.Language)
	}
	if v.Message == "" {
		t.Fatal("expected non-empty crisis message")
	}
}

func TestEvaluateDiacriticFolding(t *testing.T) {
	g := NewGate()

	// Accented and unaccented spellings must hit the same pattern.
	for _, utterance := range []string{
		"He pensado en la autolesión",
		"He pensado en la autolesion",
		"A veces pienso en hacerme daño",
	} {
		v := g.Evaluate(utterance, "es")
		if !v.RiskDetected {
			t.Fatalf("expected risk for %q", utterance)
		}
	}
}

func TestEvaluateNoHintScansBothLanguages(t *testing.T) {
	g := NewGate()

	v := g.Evaluate("some nights I could kill myself", "")
	if !v.RiskDetected || v.Language != "en" {
		t.Fatalf("expected en verdict without hint, got %+v", v)
	}

	v = g.Evaluate("pienso en quitarme la vida", "")
	if !v.RiskDetected || v.Language != "es" {
		t.Fatalf("expected es verdict without hint, got %+v", v)
	}
}

func TestEvaluateTotality(t *testing.T) {
	g := NewGate()

	// Any input yields a well-formed verdict and never faults.
	for _, utterance := range []string{
		"",
		"   ",
		"I slept reasonably well this week.",
		"Últimamente me cuesta concentrarme en el trabajo.",
		"!@#$%^&*()",
		"\x00\xff weird bytes",
	} {
		v := g.Evaluate(utterance, "en")
		if v.RiskDetected {
			t.Fatalf("false positive for %q", utterance)
		}
		if v.Message != "" {
			t.Fatalf("expected empty message for benign input %q", utterance)
		}
	}
}

func TestEvaluateHintNarrowsPatterns(t *testing.T) {
	g := NewGate()

	// An English phrase scanned with an es hint must not match es patterns.
	v := g.Evaluate("I want to end my life", "es")
	if v.RiskDetected {
		t.Fatal("es hint must not match English-only phrasing")
	}
}

func TestScreeningQuestionsDoNotTrip(t *testing.T) {
	g := NewGate()

	// Second-person screening questions are not first-person disclosures.
	for lang, q := range map[string]string{
		"en": "Have you had thoughts of hurting yourself or that you'd be better off dead?",
		"es": "En los momentos más difíciles, ¿has pensado en quitarte la vida?",
	} {
		v := g.Evaluate(q, lang)
		if v.RiskDetected {
			t.Fatalf("screening question tripped the gate (%s): %q", lang, q)
		}
	}
}
