package bot

import (
	"shengji/internal/domain"
)

// followVoid handles a seat with no cards in the led family: ruff, feed,
// or discard.
func (p *Pipeline) followVoid(ctx *GameContext) domain.Cards {
	an := ctx.Trick
	trump := ctx.Memory.Trump

	if an.WinnerTeammate {
		if ctx.Position == 4 || ctx.comboSecure(an.WinnerCombo, ctx.Follow.Lead) {
			return contribute(ctx.Hand, ctx.Follow.Required, trump, ctx.Tuning)
		}
		return dispose(ctx.Hand, ctx.Follow.Required, trump, ctx.Tuning.Disposal)
	}

	if an.CanBeat && p.shouldRuff(ctx) {
		return an.BestBeat
	}
	return dispose(ctx.Hand, ctx.Follow.Required, trump, ctx.Tuning.Disposal)
}

// shouldRuff weighs spending trump against what the trick carries and
// who is still to play. The 2nd and 3rd seats face the overtrump
// question; the 4th seat does not.
func (p *Pipeline) shouldRuff(ctx *GameContext) bool {
	an := ctx.Trick
	if ctx.Position == 4 {
		return an.TrickPoints > 0 || ctx.Pressure == PressureHigh
	}
	if an.Guaranteed {
		return an.TrickPoints > 0 || ctx.Pressure != PressureLow
	}
	threshold := ctx.Tuning.RuffThreshold[ctx.Position-2]
	if an.TrickPoints < threshold {
		return false
	}
	// A later opponent likely void in the same suit can overtrump a
	// cheap ruff. If the suit still holds a lot of points it will be led
	// again, so waiting for a cleaner ruff costs little.
	lead := ctx.Follow.Lead
	for _, seat := range ctx.LaterOpponents {
		over := ctx.Memory.KnownVoid(seat, lead) ||
			ctx.Est.VoidChance(seat, lead.Suit, ctx.Hand) > ctx.Tuning.VoidRisk
		if over && ctx.Memory.PointsRemainingInSuit(lead.Suit, ctx.Hand) >= an.TrickPoints {
			return false
		}
	}
	return true
}
