package bot

import (
	"shengji/internal/domain"
)

// Agent represents an autonomous bot player occupying a seat.
type Agent struct {
	ID       string
	Name     string
	Seat     int
	Strategy Brain
}

// Play asks the agent for its move at its own seat.
func (a *Agent) Play(state domain.GameState) (Move, error) {
	return a.Strategy.SelectMove(state, a.Seat)
}

// PlayAtSeat selects a move for an arbitrary seat, used for what-if
// analysis of other players' best responses.
func (a *Agent) PlayAtSeat(state domain.GameState, seat int) (Move, error) {
	return a.Strategy.SelectMove(state, seat)
}
