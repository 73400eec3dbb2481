package bot

import (
	"shengji/internal/bot/brain"
	"shengji/internal/domain"
)

// Situation is the tagged dispatch for move selection: exactly one
// handler runs per decision.
type Situation int

const (
	SituationLeading Situation = iota
	SituationTeammateWinning
	SituationOpponentWinning
	SituationVoid
)

func (s Situation) String() string {
	switch s {
	case SituationLeading:
		return "leading"
	case SituationTeammateWinning:
		return "teammate_winning"
	case SituationOpponentWinning:
		return "opponent_winning"
	default:
		return "void"
	}
}

// PressureTier grades how urgently the seat's team needs points.
type PressureTier int

const (
	PressureLow PressureTier = iota
	PressureMedium
	PressureHigh
)

// TrickAnalysis summarizes the open trick from one seat's perspective.
type TrickAnalysis struct {
	WinnerSeat     int
	WinnerTeammate bool
	WinnerCombo    domain.Combo
	// TrickPoints is the point value riding on the trick so far.
	TrickPoints int
	// CanBeat reports whether any legal response takes the trick from
	// the current winner.
	CanBeat bool
	// BestBeat is the cheapest winning response when CanBeat is true.
	BestBeat domain.Cards
	// Guaranteed means BestBeat provably cannot be overtaken by any seat
	// still to play.
	Guaranteed bool
}

// GameContext is everything one decision needs, assembled once per call.
type GameContext struct {
	Seat      int
	Hand      domain.Cards
	Attacking bool
	// Position is the seat's order within the trick, 1 (leader) to 4.
	Position   int
	Pressure   PressureTier
	Situation  Situation
	Memory     *brain.Memory
	Est        *brain.Estimator
	Tuning     Tuning
	TricksLeft int
	// Follow and Trick are set when a trick is open.
	Follow domain.FollowAnalysis
	Trick  *TrickAnalysis
	// LaterSeats lists the seats still to play after this one, in order.
	LaterSeats []int
	// LaterOpponents is LaterSeats filtered to the other team.
	LaterOpponents []int
}

func buildContext(state domain.GameState, seat int, tuning Tuning) *GameContext {
	player, _ := state.Player(seat)
	mem := brain.Derive(state)
	ctx := &GameContext{
		Seat:       seat,
		Hand:       player.Hand,
		Attacking:  state.Teams[player.Team].Attacking,
		Position:   1,
		Situation:  SituationLeading,
		Memory:     mem,
		Est:        brain.NewEstimator(mem),
		Tuning:     tuning,
		TricksLeft: len(player.Hand),
	}
	ctx.Pressure = pressureTier(state, ctx.Attacking, tuning)

	trick := state.Current
	if trick == nil {
		return ctx
	}

	ctx.Position = len(trick.Plays) + 1
	for s := state.NextSeat(seat); len(trick.Plays)+1+len(ctx.LaterSeats) < len(state.Players); s = state.NextSeat(s) {
		ctx.LaterSeats = append(ctx.LaterSeats, s)
		if other, _ := state.Player(s); other.Team != player.Team {
			ctx.LaterOpponents = append(ctx.LaterOpponents, s)
		}
	}

	lead := trick.Lead()
	ctx.Follow = domain.AnalyzeFollow(lead, player.Hand, state.Trump)
	ctx.Trick = analyzeTrick(ctx, state, *trick)

	switch {
	case ctx.Follow.Scenario == domain.ScenarioVoid:
		ctx.Situation = SituationVoid
	case ctx.Trick.WinnerTeammate:
		ctx.Situation = SituationTeammateWinning
	default:
		ctx.Situation = SituationOpponentWinning
	}
	return ctx
}

func pressureTier(state domain.GameState, attacking bool, tuning Tuning) PressureTier {
	var attackerPoints, banked int
	for _, tm := range state.Teams {
		banked += tm.Points
		if tm.Attacking {
			attackerPoints = tm.Points
		}
	}
	need := tuning.TakeoverTarget - attackerPoints
	if need <= 0 {
		// Attackers are over the line; every remaining point matters to
		// both sides equally now.
		return PressureHigh
	}
	remaining := 200 - banked
	if remaining <= 0 {
		return PressureLow
	}
	ratio := float64(need) / float64(remaining)
	switch {
	case ratio > 0.6:
		if attacking {
			return PressureHigh
		}
		return PressureLow
	case ratio > 0.3:
		return PressureMedium
	default:
		if attacking {
			return PressureLow
		}
		return PressureHigh
	}
}

// analyzeTrick finds the cheapest winning response and whether it is
// safe from everyone still to play.
func analyzeTrick(ctx *GameContext, state domain.GameState, trick domain.Trick) *TrickAnalysis {
	winner := trick.WinningPlay()
	winnerPlayer, _ := state.Player(winner.PlayerID)
	me, _ := state.Player(ctx.Seat)

	an := &TrickAnalysis{
		WinnerSeat:     winner.PlayerID,
		WinnerTeammate: winnerPlayer.Team == me.Team,
		WinnerCombo:    winner.Combo,
		TrickPoints:    trick.Points,
	}

	lead := trick.Lead()
	for _, cand := range beatCandidates(ctx, lead, state.Trump) {
		combo := domain.Classify(cand, state.Trump)
		if combo.Type != lead.Type || !combo.Beats(winner.Combo) {
			continue
		}
		if !an.CanBeat || combo.Value < domain.Classify(an.BestBeat, state.Trump).Value {
			an.CanBeat = true
			an.BestBeat = cand
		}
	}
	if an.CanBeat {
		an.Guaranteed = ctx.comboSecure(domain.Classify(an.BestBeat, state.Trump), lead)
	}
	return an
}

// beatCandidates enumerates the responses that could legally contest the
// trick: strict in-family answers, or same-shape trump combos when void.
func beatCandidates(ctx *GameContext, lead domain.Combo, trump domain.TrumpInfo) []domain.Cards {
	switch ctx.Follow.Scenario {
	case domain.ScenarioValidCombos:
		return ctx.Follow.Strict
	case domain.ScenarioVoid:
		if lead.Trump {
			return nil // void in trump, nothing contests
		}
		var trumps domain.Cards
		for _, c := range ctx.Hand {
			if trump.IsTrump(c) {
				trumps = append(trumps, c)
			}
		}
		switch lead.Type {
		case domain.ComboSingle:
			return domain.SinglesIn(trumps)
		case domain.ComboPair:
			return domain.PairsIn(trumps)
		default:
			return domain.TractorsIn(trumps, lead.Pairs, trump)
		}
	default:
		return nil
	}
}

// comboSecure reports whether a winning combo is provably safe: top of
// its family, and not exposed to a ruff by a later void opponent.
func (ctx *GameContext) comboSecure(combo domain.Combo, lead domain.Combo) bool {
	if combo.Type == domain.ComboInvalid {
		return false
	}
	trump := ctx.Memory.Trump
	top := combo.Cards[0]
	for _, c := range combo.Cards[1:] {
		if trump.Strength(c) > trump.Strength(top) {
			top = c
		}
	}
	if combo.Pairs > 0 {
		if !ctx.Memory.IsBossPair(top.Class(), ctx.Hand) {
			return false
		}
	} else if !ctx.Memory.IsBoss(top, ctx.Hand) {
		return false
	}
	if combo.Trump {
		return true
	}
	// A later void opponent could still trump a plain-suit winner.
	for _, seat := range ctx.LaterOpponents {
		if ctx.Memory.KnownVoid(seat, lead) || ctx.Est.VoidChance(seat, lead.Suit, ctx.Hand) > ctx.Tuning.VoidRisk {
			if ctx.Memory.TrumpRemaining(ctx.Hand) > 0 {
				return false
			}
		}
	}
	return true
}
