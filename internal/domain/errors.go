package domain

import "errors"

var (
	// ErrIllegalPlay rejects cards not owned, out-of-turn plays, and
	// responses that dodge a mandatory stricter shape. The state is never
	// mutated on rejection.
	ErrIllegalPlay = errors.New("illegal play")

	// ErrEmptyMove rejects a zero-card submission. It is a caller bug and
	// is never coerced into a pass.
	ErrEmptyMove = errors.New("empty move")

	// ErrNotYourTurn rejects a play by any seat other than the current one.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrInvariantViolation reports a card-count mismatch or a trick
	// closing with the wrong number of plays. It is fatal for the round:
	// the transition aborts and the previous state stands.
	ErrInvariantViolation = errors.New("invariant violation")
)
