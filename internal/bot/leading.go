package bot

import (
	"shengji/internal/domain"
)

// leadMode is the trump-timing stance for a lead.
type leadMode int

const (
	leadSafeHigh leadMode = iota
	leadControl
	leadFlush
	leadPreserve
	leadEmergency
)

func (p *Pipeline) lead(ctx *GameContext) domain.Cards {
	switch p.chooseLeadMode(ctx) {
	case leadSafeHigh:
		return p.leadSafeHigh(ctx)
	case leadFlush:
		return p.leadFlush(ctx)
	case leadControl:
		return p.leadControl(ctx)
	case leadEmergency:
		return p.leadEmergency(ctx)
	default:
		return p.leadPreserve(ctx)
	}
}

func (p *Pipeline) chooseLeadMode(ctx *GameContext) leadMode {
	if ctx.Memory.TricksSeen < ctx.Tuning.EarlyTricks {
		return leadSafeHigh
	}
	late := ctx.TricksLeft <= ctx.Tuning.LateTricks
	switch {
	case ctx.Attacking && ctx.Pressure == PressureHigh && late:
		return leadEmergency
	case ctx.Est.HandDominance(ctx.Hand) >= ctx.Tuning.FlushDominance &&
		ctx.Memory.TrumpRemaining(ctx.Hand) > 0 && trumpCount(ctx) >= 4:
		return leadFlush
	case len(ctx.Est.BossCards(ctx.Hand)) > 0:
		return leadControl
	default:
		return leadPreserve
	}
}

// leadSafeHigh opens with the highest safe non-trump card so a teammate
// can feed points without trump getting involved. The effective safe
// rank adapts to the trump rank: when aces are trump, kings become the
// top of every plain suit.
func (p *Pipeline) leadSafeHigh(ctx *GameContext) domain.Cards {
	safeRank := domain.RankAce
	if ctx.Memory.Trump.Rank == domain.RankAce {
		safeRank = domain.RankKing
	}

	// A boss pair both wins and digs out point pairs.
	if pair := p.bestBossPair(ctx, false); pair != nil {
		return pair
	}
	for _, c := range byStrength(ctx.Hand, ctx.Memory.Trump) {
		if ctx.Memory.Trump.IsTrump(c) || c.Rank != safeRank {
			continue
		}
		if ctx.Memory.IsBoss(c, ctx.Hand) {
			return domain.Cards{c}
		}
	}
	return p.leadPreserve(ctx)
}

// leadControl cashes provable winners to keep the lead and harvest
// points.
func (p *Pipeline) leadControl(ctx *GameContext) domain.Cards {
	if pair := p.bestBossPair(ctx, false); pair != nil {
		return pair
	}
	boss := ctx.Est.BossCards(ctx.Hand)
	for _, c := range byStrength(boss, ctx.Memory.Trump) {
		if !ctx.Memory.Trump.IsTrump(c) {
			return domain.Cards{c}
		}
	}
	if len(boss) > 0 && ctx.TricksLeft <= ctx.Tuning.LateTricks {
		// Late enough that spending a trump boss is fine.
		return domain.Cards{boss[len(boss)-1]}
	}
	return p.leadPreserve(ctx)
}

// leadFlush leads high trump to drain the opponents' trump before the
// point tricks come.
func (p *Pipeline) leadFlush(ctx *GameContext) domain.Cards {
	if pair := p.bestBossPair(ctx, true); pair != nil {
		return pair
	}
	var best domain.Cards
	for _, c := range ctx.Hand {
		if !ctx.Memory.Trump.IsTrump(c) {
			continue
		}
		if best == nil || ctx.Memory.Trump.Strength(c) > ctx.Memory.Trump.Strength(best[0]) {
			best = domain.Cards{c}
		}
	}
	if best != nil {
		return best
	}
	return p.leadPreserve(ctx)
}

// leadPreserve gives the trick away as cheaply as possible.
func (p *Pipeline) leadPreserve(ctx *GameContext) domain.Cards {
	return dispose(ctx.Hand, 1, ctx.Memory.Trump, ctx.Tuning.Disposal)
}

// leadEmergency is the behind-on-points endgame: cash everything that
// can still win, trump included.
func (p *Pipeline) leadEmergency(ctx *GameContext) domain.Cards {
	if pair := p.bestBossPair(ctx, true); pair != nil {
		return pair
	}
	boss := ctx.Est.BossCards(ctx.Hand)
	if len(boss) > 0 {
		strongest := boss[0]
		for _, c := range boss[1:] {
			if ctx.Memory.Trump.Strength(c) > ctx.Memory.Trump.Strength(strongest) {
				strongest = c
			}
		}
		return domain.Cards{strongest}
	}
	return p.leadPreserve(ctx)
}

// bestBossPair finds the strongest provably-winning pair lead, trump
// pairs included only when allowTrump is set.
func (p *Pipeline) bestBossPair(ctx *GameContext, allowTrump bool) domain.Cards {
	var best domain.Cards
	bestStr := -1
	for _, pair := range domain.PairsIn(ctx.Hand) {
		c := pair[0]
		if !allowTrump && ctx.Memory.Trump.IsTrump(c) {
			continue
		}
		if !ctx.Memory.IsBossPair(c.Class(), ctx.Hand) {
			continue
		}
		if s := ctx.Memory.Trump.Strength(c); s > bestStr {
			best, bestStr = pair, s
		}
	}
	return best
}

func trumpCount(ctx *GameContext) int {
	n := 0
	for _, c := range ctx.Hand {
		if ctx.Memory.Trump.IsTrump(c) {
			n++
		}
	}
	return n
}
