package coverage

import (
	"math/rand"
	"strings"
)

// #region domains

// Domains is the fixed list of clinical topic domains an interview must
// address before diagnosis.
var Domains = []string{
	"mood", "anxiety", "sleep", "eating", "substances",
	"psychosis", "trauma", "ocd", "cognition",
	"social_functioning", "suicidal_ideation",
}

// #endregion domains

// #region state

// State partitions the configured domain list into covered and pending.
// Covered is monotonically non-decreasing within a session.
type State struct {
	Covered []string `json:"covered"`
	Pending []string `json:"pending"`
}

// NewState returns a fresh state with every domain pending, in the given
// order.
func NewState(domains []string) State {
	pending := make([]string, len(domains))
	copy(pending, domains)
	return State{Covered: []string{}, Pending: pending}
}

// Complete reports whether no domains remain pending.
func (s State) Complete() bool {
	return len(s.Pending) == 0
}

// NextDomain returns the next pending domain, or "" when coverage is
// complete.
func (s State) NextDomain() string {
	if len(s.Pending) == 0 {
		return ""
	}
	return s.Pending[0]
}

// #endregion state

// #region shuffle

// Shuffle returns a copy of domains in randomized order. Each session
// shuffles once at init so identical profiles still produce different
// interview flows; the rng is seeded from the session profile for
// reproducibility.
func Shuffle(domains []string, rng *rand.Rand) []string {
	out := make([]string, len(domains))
	copy(out, domains)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// #endregion shuffle

// #region tracker

// AdequacyFunc judges whether a client/human response to a domain question
// was substantive enough to mark the domain covered. The rule is owned by
// the caller; Tracker only applies it.
type AdequacyFunc func(domain, response string) bool

// DefaultAdequacy accepts any response carrying at least three tokens. A
// domain that drew a shorter response stays pending and can be attempted
// again.
func DefaultAdequacy(domain, response string) bool {
	return len(strings.Fields(response)) >= 3
}

// Tracker moves domains from pending to covered as responses come in.
type Tracker struct {
	adequate AdequacyFunc
}

// NewTracker creates a tracker with the given adequacy predicate; nil uses
// DefaultAdequacy.
func NewTracker(adequate AdequacyFunc) *Tracker {
	if adequate == nil {
		adequate = DefaultAdequacy
	}
	return &Tracker{adequate: adequate}
}

// Update marks domain covered when the response satisfies the adequacy
// predicate. The returned state never loses covered entries; an inadequate
// response leaves the domain pending for another attempt.
func (t *Tracker) Update(s State, domain, response string) State {
	if domain == "" || !t.adequate(domain, response) {
		return s
	}

	for _, c := range s.Covered {
		if c == domain {
			return s
		}
	}

	next := State{
		Covered: append(append([]string{}, s.Covered...), domain),
		Pending: make([]string, 0, len(s.Pending)),
	}
	for _, p := range s.Pending {
		if p != domain {
			next.Pending = append(next.Pending, p)
		}
	}
	return next
}

// #endregion tracker
