package bot

import (
	"shengji/internal/domain"
)

// Move is the decision made by the AI for one turn. There is no passing
// in this game; a move always carries cards.
type Move struct {
	Cards domain.Cards
	// FellBack marks that the situational strategy produced nothing
	// legal and the lowest-value fallback was used instead. Orchestration
	// surfaces this as a diagnostic, not an error.
	FellBack bool
}

// Brain is the interface all bot strategies implement. Implementations
// are read-only over the state and side-effect free, so a Brain may be
// called repeatedly for what-if analysis.
type Brain interface {
	SelectMove(state domain.GameState, seat int) (Move, error)
}
