package bot

import (
	"sort"

	"shengji/internal/domain"
)

// dispose picks n cards to throw away from allowed, walking the tuning's
// tier ladder: first the tier that keeps trump, points and aces safe,
// then progressively looser tiers, always the weakest card available.
func dispose(allowed domain.Cards, n int, trump domain.TrumpInfo, tiers []DisposalTier) domain.Cards {
	pool := byStrength(allowed, trump)
	taken := make(map[int]bool, n)
	out := make(domain.Cards, 0, n)
	for len(out) < n {
		picked := false
		for _, tier := range tiers {
			for _, c := range pool {
				if taken[c.ID] || !tier.allows(c, trump) {
					continue
				}
				taken[c.ID] = true
				out = append(out, c)
				picked = true
				break
			}
			if picked {
				break
			}
		}
		if !picked {
			// Ladder exhausted (all remaining cards taken); can only
			// happen when n exceeds the pool.
			break
		}
	}
	return out
}

// contribute picks n cards that push the most points into the trick:
// point cards in preference order first, weakest fillers after.
func contribute(allowed domain.Cards, n int, trump domain.TrumpInfo, tuning Tuning) domain.Cards {
	taken := make(map[int]bool, n)
	out := make(domain.Cards, 0, n)
	for _, rank := range tuning.PointPreference {
		for _, c := range byStrength(allowed, trump) {
			if len(out) == n {
				return out
			}
			if taken[c.ID] || c.Rank != rank || trump.IsTrump(c) {
				continue
			}
			taken[c.ID] = true
			out = append(out, c)
		}
	}
	for _, c := range dispose(allowed.RemoveAll(out), n-len(out), trump, tuning.Disposal) {
		out = append(out, c)
	}
	return out
}

// byStrength returns the cards sorted weakest first.
func byStrength(cards domain.Cards, trump domain.TrumpInfo) domain.Cards {
	out := cards.Clone()
	sort.Slice(out, func(i, j int) bool {
		si, sj := trump.Strength(out[i]), trump.Strength(out[j])
		if si != sj {
			return si < sj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// comboPoints is the point total of a candidate set.
func comboPoints(cards domain.Cards) int {
	return cards.Points()
}

// minByValue returns the candidate set with the lowest classified value.
func minByValue(sets []domain.Cards, trump domain.TrumpInfo) domain.Cards {
	best := sets[0]
	bestValue := domain.Classify(best, trump).Value
	for _, s := range sets[1:] {
		if v := domain.Classify(s, trump).Value; v < bestValue {
			best, bestValue = s, v
		}
	}
	return best
}

// pickStrict chooses among mandatory same-shape answers: maximize or
// minimize carried points, breaking ties toward the weaker combo.
func pickStrict(sets []domain.Cards, trump domain.TrumpInfo, wantPoints bool) domain.Cards {
	best := sets[0]
	for _, s := range sets[1:] {
		bp, sp := comboPoints(best), comboPoints(s)
		bv := domain.Classify(best, trump).Value
		sv := domain.Classify(s, trump).Value
		better := false
		if wantPoints {
			better = sp > bp || (sp == bp && sv < bv)
		} else {
			better = sp < bp || (sp == bp && sv < bv)
		}
		if better {
			best = s
		}
	}
	return best
}
