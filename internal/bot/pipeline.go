package bot

import (
	"errors"
	"fmt"

	"shengji/internal/domain"
)

// ErrNoLegalMove reports that even the fallback could not produce a move
// the engine would accept. It surfaces to orchestration, which must not
// let it reach gameplay silently.
var ErrNoLegalMove = errors.New("no legal move found")

// Pipeline is the situational decision pipeline: build a context, branch
// on the situation, verify the result against the engine's own legality
// rules, and fall back to the lowest-value legal combo when a heuristic
// path comes up empty.
type Pipeline struct {
	Tuning Tuning
}

// NewPipeline returns a Brain with the given tuning.
func NewPipeline(tuning Tuning) *Pipeline {
	return &Pipeline{Tuning: tuning}
}

// SelectMove picks a legal combo for the seat. It never mutates state.
func (p *Pipeline) SelectMove(state domain.GameState, seat int) (Move, error) {
	player, ok := state.Player(seat)
	if !ok {
		return Move{}, fmt.Errorf("unknown seat %d", seat)
	}
	if len(player.Hand) == 0 {
		return Move{}, fmt.Errorf("seat %d has no cards: %w", seat, ErrNoLegalMove)
	}

	ctx := buildContext(state, seat, p.Tuning)

	var cards domain.Cards
	switch ctx.Situation {
	case SituationLeading:
		cards = p.lead(ctx)
	case SituationTeammateWinning:
		cards = p.followTeammateWinning(ctx)
	case SituationOpponentWinning:
		cards = p.followOpponentWinning(ctx)
	default:
		cards = p.followVoid(ctx)
	}

	if moveLegal(state, player, cards) {
		return Move{Cards: cards}, nil
	}
	cards = p.lowestLegal(ctx, state)
	if !moveLegal(state, player, cards) {
		return Move{}, fmt.Errorf("seat %d in %v: %w", seat, ctx.Situation, ErrNoLegalMove)
	}
	return Move{Cards: cards, FellBack: true}, nil
}

// moveLegal mirrors the engine's acceptance rules without mutating
// anything.
func moveLegal(state domain.GameState, player domain.Player, cards domain.Cards) bool {
	if len(cards) == 0 || !player.Hand.ContainsAll(cards) {
		return false
	}
	if state.Current == nil {
		return domain.Classify(cards, state.Trump).Type != domain.ComboInvalid
	}
	return domain.ValidateFollow(state.Current.Lead(), cards, player.Hand, state.Trump) == nil
}

// lowestLegal is the terminal fallback: the cheapest combo the engine
// will accept, with no strategy applied.
func (p *Pipeline) lowestLegal(ctx *GameContext, state domain.GameState) domain.Cards {
	trump := ctx.Memory.Trump
	if state.Current == nil {
		low := byStrength(ctx.Hand, trump)
		if len(low) == 0 {
			return nil
		}
		return domain.Cards{low[0]}
	}
	an := ctx.Follow
	switch an.Scenario {
	case domain.ScenarioValidCombos:
		return minByValue(an.Strict, trump)
	case domain.ScenarioInsufficient:
		move := an.Group.Clone()
		rest := ctx.Hand.RemoveAll(an.Group)
		return append(move, byStrength(rest, trump)[:an.Required-len(move)]...)
	case domain.ScenarioEnoughRemaining:
		return byStrength(an.Group, trump)[:an.Required]
	default:
		return byStrength(ctx.Hand, trump)[:an.Required]
	}
}
