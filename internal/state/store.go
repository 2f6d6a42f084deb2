package state

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id   TEXT PRIMARY KEY,
	state        TEXT NOT NULL,
	snapshot     TEXT NOT NULL,
	archived     INTEGER NOT NULL DEFAULT 0,
	created_at   TEXT NOT NULL,
	updated_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transition_log (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id   TEXT NOT NULL,
	from_state   TEXT NOT NULL,
	to_state     TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

CREATE INDEX IF NOT EXISTS idx_transition_session
	ON transition_log(session_id);
`

// #endregion schema

// #region store-struct

// Store persists session snapshots and the transition audit trail in
// SQLite. Snapshots are opaque JSON payloads; the schema stays independent
// of the session package's types.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region db-accessor

// DB returns the underlying *sql.DB for use by other packages (e.g. the
// inspect command).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion db-accessor

// #region snapshot

// SaveSnapshot upserts a session's current state and serialized payload.
func (s *Store) SaveSnapshot(id, stateID, payload string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.Exec(
		`INSERT INTO sessions (session_id, state, snapshot, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
		   state = excluded.state,
		   snapshot = excluded.snapshot,
		   updated_at = excluded.updated_at`,
		id, stateID, payload, now, now,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the serialized payload for a session.
func (s *Store) LoadSnapshot(id string) (string, error) {
	var payload string
	err := s.db.QueryRow(
		`SELECT snapshot FROM sessions WHERE session_id = ?`, id,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("load snapshot: session %s not found", id)
	}
	if err != nil {
		return "", fmt.Errorf("load snapshot: %w", err)
	}
	return payload, nil
}

// #endregion snapshot

// #region archive

// Archive marks a terminal session as archived; the snapshot is kept for
// inspection.
func (s *Store) Archive(id string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.Exec(
		`UPDATE sessions SET archived = 1, updated_at = ? WHERE session_id = ?`,
		now, id,
	)
	if err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("archive: session %s not found", id)
	}
	return nil
}

// #endregion archive

// #region transition-log

// LogTransition appends one edge of the state machine to the audit trail.
func (s *Store) LogTransition(id, from, to string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.Exec(
		`INSERT INTO transition_log (session_id, from_state, to_state, created_at)
		 VALUES (?, ?, ?, ?)`,
		id, from, to, now,
	)
	if err != nil {
		return fmt.Errorf("log transition: %w", err)
	}
	return nil
}

// Transitions returns the ordered transition trail for a session.
func (s *Store) Transitions(id string) ([]TransitionRow, error) {
	rows, err := s.db.Query(
		`SELECT from_state, to_state, created_at
		 FROM transition_log WHERE session_id = ? ORDER BY id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("query transitions: %w", err)
	}
	defer rows.Close()

	var out []TransitionRow
	for rows.Next() {
		var t TransitionRow
		if err := rows.Scan(&t.From, &t.To, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// #endregion transition-log

// #region list

// ListSessions returns summaries of all stored sessions, newest first.
func (s *Store) ListSessions() ([]SessionRow, error) {
	rows, err := s.db.Query(
		`SELECT session_id, state, archived, created_at, updated_at
		 FROM sessions ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRow
	for rows.Next() {
		var r SessionRow
		var archived int
		if err := rows.Scan(&r.SessionID, &r.State, &archived, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		r.Archived = archived == 1
		out = append(out, r)
	}
	return out, rows.Err()
}

// #endregion list
