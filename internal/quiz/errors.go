package quiz

import "errors"

// Caller-error sentinels. Everything else the engine recovers from
// locally: an unreachable catalog becomes a degraded fallback session,
// and a failed ledger write is logged and dropped.
var (
	// ErrSessionNotFound is returned for unknown session ids and for
	// sessions that have already completed (a terminal session is
	// logically gone).
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidAnswer is returned for an out-of-range answer index or a
	// submission against a session that is not accepting answers. The
	// session state is never mutated.
	ErrInvalidAnswer = errors.New("invalid answer submission")
)
