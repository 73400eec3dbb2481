package bot

import (
	"shengji/internal/domain"
)

// followTeammateWinning decides between feeding points and conserving.
func (p *Pipeline) followTeammateWinning(ctx *GameContext) domain.Cards {
	return p.followWithIntent(ctx, p.shouldContribute(ctx))
}

// shouldContribute applies the positional contribution ladder: the later
// the seat, the fewer unknowns, the looser the rule.
func (p *Pipeline) shouldContribute(ctx *GameContext) bool {
	// 4th seat plays with perfect information: the teammate's win is
	// final, so points always ride home.
	if ctx.Position == 4 {
		return true
	}
	secure := ctx.comboSecure(ctx.Trick.WinnerCombo, ctx.Follow.Lead)
	if ctx.Position == 3 {
		// The only seat left is the 4th, an opponent. If they are void
		// in the led suit they can trump our points away; withholding
		// dominates unless the teammate's card is secure outright.
		if secure {
			return true
		}
		for _, seat := range ctx.LaterOpponents {
			if ctx.Memory.KnownVoid(seat, ctx.Follow.Lead) ||
				ctx.Est.VoidChance(seat, ctx.Follow.Lead.Suit, ctx.Hand) > ctx.Tuning.VoidRisk {
				return false
			}
		}
		// A weak teammate lead that survived the 2nd seat still needs
		// help deciding; contribute when the trick already carries value.
		return ctx.Trick.TrickPoints > 0 || ctx.Pressure == PressureHigh
	}
	// 2nd seat: two unknown hands follow; only a provably secure
	// teammate card justifies piling on.
	return secure
}

// followOpponentWinning fights for the trick when justified, otherwise
// sheds the cheapest legal cards.
func (p *Pipeline) followOpponentWinning(ctx *GameContext) domain.Cards {
	if ctx.Trick.CanBeat && p.shouldFight(ctx) {
		return ctx.Trick.BestBeat
	}
	return p.followWithIntent(ctx, false)
}

func (p *Pipeline) shouldFight(ctx *GameContext) bool {
	an := ctx.Trick
	if an.Guaranteed && an.TrickPoints > 0 {
		return true
	}
	// Last to play: beating is free of downside when anything rides.
	if ctx.Position == 4 {
		return an.TrickPoints > 0 || ctx.Pressure != PressureLow
	}
	threshold := ctx.Tuning.BeatThreshold[ctx.Position-2]
	if an.TrickPoints >= threshold {
		return true
	}
	return ctx.Pressure == PressureHigh && an.TrickPoints > 0
}

// followWithIntent builds the response for the non-void follow
// scenarios, steering points in or out of the trick.
func (p *Pipeline) followWithIntent(ctx *GameContext, wantPoints bool) domain.Cards {
	an := ctx.Follow
	trump := ctx.Memory.Trump
	switch an.Scenario {
	case domain.ScenarioValidCombos:
		return pickStrict(an.Strict, trump, wantPoints)
	case domain.ScenarioInsufficient:
		move := an.Group.Clone()
		rest := ctx.Hand.RemoveAll(an.Group)
		fill := an.Required - len(move)
		if wantPoints {
			return append(move, contribute(rest, fill, trump, ctx.Tuning)...)
		}
		return append(move, dispose(rest, fill, trump, ctx.Tuning.Disposal)...)
	case domain.ScenarioEnoughRemaining:
		if wantPoints {
			return contribute(an.Group, an.Required, trump, ctx.Tuning)
		}
		return dispose(an.Group, an.Required, trump, ctx.Tuning.Disposal)
	default:
		return dispose(ctx.Hand, an.Required, trump, ctx.Tuning.Disposal)
	}
}
