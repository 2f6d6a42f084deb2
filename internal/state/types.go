package state

// #region session-row
// SessionRow summarizes one stored session.
type SessionRow struct {
	SessionID string
	State     string
	Archived  bool
	CreatedAt string
	UpdatedAt string
}

// #endregion session-row

// #region transition-row
// TransitionRow is one edge of a session's recorded state-machine trail.
type TransitionRow struct {
	From      string
	To        string
	CreatedAt string
}

// #endregion transition-row
