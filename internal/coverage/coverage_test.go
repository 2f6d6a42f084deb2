package coverage

import (
	"math/rand"
	"testing"
)

func TestNewStateAllPending(t *testing.T) {
	s := NewState(Domains)
	if len(s.Pending) != len(Domains) {
		t.Fatalf("expected %d pending, got %d", len(Domains), len(s.Pending))
	}
	if len(s.Covered) != 0 {
		t.Fatalf("expected no covered domains, got %d", len(s.Covered))
	}
	if s.Complete() {
		t.Fatal("fresh state must not be complete")
	}
	if s.NextDomain() != s.Pending[0] {
		t.Fatalf("NextDomain should be first pending, got %s", s.NextDomain())
	}
}

func TestUpdateMarksAdequateResponseCovered(t *testing.T) {
	tr := NewTracker(nil)
	s := NewState([]string{"mood", "sleep"})

	s = tr.Update(s, "mood", "I have been feeling very low lately")
	if len(s.Covered) != 1 || s.Covered[0] != "mood" {
		t.Fatalf("expected mood covered, got %+v", s)
	}
	if len(s.Pending) != 1 || s.Pending[0] != "sleep" {
		t.Fatalf("expected sleep pending, got %+v", s)
	}
}

func TestUpdateInadequateResponseLeavesPending(t *testing.T) {
	tr := NewTracker(nil)
	s := NewState([]string{"mood"})

	s = tr.Update(s, "mood", "ok")
	if len(s.Covered) != 0 {
		t.Fatalf("two-word answer must not satisfy the domain, got %+v", s.Covered)
	}
	if s.NextDomain() != "mood" {
		t.Fatal("mood must remain the next domain for another attempt")
	}
}

func TestUpdateEmptyDomainIsNoop(t *testing.T) {
	tr := NewTracker(nil)
	s := NewState([]string{"mood"})

	s = tr.Update(s, "", "a perfectly adequate response here")
	if len(s.Covered) != 0 {
		t.Fatalf("empty domain must not cover anything, got %+v", s.Covered)
	}
}

func TestCoverageIsMonotonic(t *testing.T) {
	tr := NewTracker(nil)
	s := NewState(Domains)

	responses := []string{
		"I feel quite low most days",
		"hm",
		"I worry about everything constantly now",
		"",
		"my sleep has been terrible for months",
	}
	prevCovered := 0
	for i, resp := range responses {
		domain := s.NextDomain()
		s = tr.Update(s, domain, resp)
		if len(s.Covered) < prevCovered {
			t.Fatalf("step %d: covered shrank from %d to %d", i, prevCovered, len(s.Covered))
		}
		prevCovered = len(s.Covered)
	}
}

func TestUpdateIdempotentForCoveredDomain(t *testing.T) {
	tr := NewTracker(nil)
	s := NewState([]string{"mood", "sleep"})

	s = tr.Update(s, "mood", "feeling low and tired lately")
	s = tr.Update(s, "mood", "still feeling low and tired")
	if len(s.Covered) != 1 {
		t.Fatalf("re-covering a domain must not duplicate it, got %+v", s.Covered)
	}
}

func TestCustomAdequacyPredicate(t *testing.T) {
	tr := NewTracker(func(domain, response string) bool {
		return response == "yes"
	})
	s := NewState([]string{"mood"})

	s = tr.Update(s, "mood", "a long but unacceptable answer")
	if len(s.Covered) != 0 {
		t.Fatal("custom predicate should reject this response")
	}
	s = tr.Update(s, "mood", "yes")
	if len(s.Covered) != 1 {
		t.Fatal("custom predicate should accept this response")
	}
}

func TestShuffleIsSeededAndComplete(t *testing.T) {
	a := Shuffle(Domains, rand.New(rand.NewSource(7)))
	b := Shuffle(Domains, rand.New(rand.NewSource(7)))
	c := Shuffle(Domains, rand.New(rand.NewSource(8)))

	if len(a) != len(Domains) {
		t.Fatalf("shuffle changed length: %d", len(a))
	}
	seen := make(map[string]bool)
	for _, d := range a {
		seen[d] = true
	}
	for _, d := range Domains {
		if !seen[d] {
			t.Fatalf("shuffle lost domain %s", d)
		}
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same seed must produce the same order")
		}
	}
	diff := false
	for i := range a {
		if a[i] != c[i] {
			diff = true
			break
		}
	}
	if !diff {
		t.Fatal("different seeds should produce different orders")
	}
}

func TestElevenDomainsConfigured(t *testing.T) {
	if len(Domains) != 11 {
		t.Fatalf("expected 11 clinical domains, got %d", len(Domains))
	}
}
