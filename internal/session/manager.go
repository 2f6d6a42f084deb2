package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

// #region manager

// Manager is the external surface of the orchestration: it owns the session
// registry, drives the machine, and persists snapshots across suspensions.
// Each session is advanced by one goroutine at a time; distinct sessions
// advance concurrently.
type Manager struct {
	machine *Machine
	store   Store // nil disables persistence

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	mu    sync.Mutex
	state *State
}

// NewManager wires a manager. store may be nil for purely in-memory use
// (tests, one-shot runs).
func NewManager(machine *Machine, store Store) *Manager {
	m := &Manager{
		machine:  machine,
		store:    store,
		sessions: make(map[string]*entry),
	}
	if store != nil {
		machine.Transitions = func(id, from, to string) {
			if err := store.LogTransition(id, from, to); err != nil {
				log.Printf("[STORE] log transition %s: %v", id, err)
			}
		}
	}
	return m
}

// #endregion manager

// #region start

// StartSession registers a new session for the given profile and returns
// its id. The machine does not run until the first Advance.
func (m *Manager) StartSession(profile Profile) (string, error) {
	id := uuid.NewString()
	s := &State{
		ID:      id,
		Profile: profile,
		Current: StateInit,
	}

	m.mu.Lock()
	m.sessions[id] = &entry{state: s}
	m.mu.Unlock()

	if err := m.persist(s); err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}

	log.Printf("[SESSION] started %s (language=%s interactive=%v seed=%d)",
		id, profile.Language, profile.Interactive, profile.Seed)
	return id, nil
}

// #endregion start

// #region advance

// AdvanceResult is what one Advance call hands back: where the machine
// stopped and, depending on that, the question awaiting a human answer, the
// crisis message, or the finished artifact.
type AdvanceResult struct {
	State           StateID   `json:"state"`
	Suspended       bool      `json:"suspended"`
	PendingQuestion string    `json:"pending_question,omitempty"`
	CrisisMessage   string    `json:"crisis_message,omitempty"`
	Artifact        *Artifact `json:"artifact,omitempty"`
}

// Advance runs the session to its next suspension or terminal state. An
// empty human utterance runs autonomous turns; a non-empty one resumes a
// pending human-input suspension and is rejected with ErrNotSuspended
// otherwise, leaving the session untouched.
func (m *Manager) Advance(ctx context.Context, id, human string) (AdvanceResult, error) {
	e, err := m.lookup(id)
	if err != nil {
		return AdvanceResult{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.state

	if s.Current.Terminal() {
		return AdvanceResult{}, fmt.Errorf("advance %s: %w", id, ErrSessionFinished)
	}
	if human != "" && !s.Suspended() {
		return AdvanceResult{}, fmt.Errorf("advance %s: %w", id, ErrNotSuspended)
	}

	m.machine.Run(ctx, s, human)

	if err := m.persist(s); err != nil {
		log.Printf("[STORE] persist %s: %v", id, err)
	}
	if s.Current.Terminal() && m.store != nil {
		if err := m.store.Archive(id); err != nil {
			log.Printf("[STORE] archive %s: %v", id, err)
		}
	}

	res := AdvanceResult{
		State:           s.Current,
		Suspended:       s.Suspended(),
		PendingQuestion: s.PendingQuestion,
		CrisisMessage:   s.CrisisMessage,
	}
	if s.Current.Terminal() {
		artifact := BuildArtifact(s)
		res.Artifact = &artifact
	}
	return res, nil
}

// #endregion advance

// #region lookup

// Session returns a session's current state for inspection.
func (m *Manager) Session(id string) (*State, error) {
	e, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, nil
}

// lookup finds the session in memory, falling back to a stored snapshot so
// suspended sessions survive a process restart.
func (m *Manager) lookup(id string) (*entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.sessions[id]; ok {
		return e, nil
	}
	if m.store == nil {
		return nil, fmt.Errorf("lookup %s: %w", id, ErrSessionNotFound)
	}

	payload, err := m.store.LoadSnapshot(id)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", id, ErrSessionNotFound)
	}
	var s State
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return nil, fmt.Errorf("lookup %s: decode snapshot: %w", id, err)
	}

	e := &entry{state: &s}
	m.sessions[id] = e
	return e, nil
}

func (m *Manager) persist(s *State) error {
	if m.store == nil {
		return nil
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return m.store.SaveSnapshot(s.ID, string(s.Current), string(payload))
}

// #endregion lookup
