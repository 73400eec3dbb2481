package brain

import (
	"shengji/internal/domain"
)

// Estimator provides probabilistic insights on top of the exact memory
// predicates. Everything here is a heuristic; exact claims (boss cards,
// proven voids) live on Memory itself.
type Estimator struct {
	Memory *Memory
}

// NewEstimator creates a reasoning engine over a derived memory.
func NewEstimator(m *Memory) *Estimator {
	return &Estimator{Memory: m}
}

// BossCards returns the cards in the hand that are currently unbeatable
// in their family.
func (e *Estimator) BossCards(hand domain.Cards) domain.Cards {
	var out domain.Cards
	for _, c := range hand {
		if e.Memory.IsBoss(c, hand) {
			out = append(out, c)
		}
	}
	return out
}

// VoidChance estimates the probability that a seat holds zero cards of a
// plain suit, by hypergeometric draw over the cards the viewer cannot
// see. A proven void returns 1.
func (e *Estimator) VoidChance(seat int, suit domain.Suit, viewerHand domain.Cards) float64 {
	prof, ok := e.Memory.Profiles[seat]
	if !ok {
		return 0
	}
	if prof.VoidInSuit(suit) {
		return 1
	}
	suitUnseen := e.Memory.SuitRemaining(suit, viewerHand)
	if suitUnseen == 0 {
		return 1
	}
	totalUnseen := e.unseenTotal(viewerHand)
	draws := prof.CardsRemaining
	if draws <= 0 || draws > totalUnseen {
		return 0
	}
	// P(none of the seat's cards is of the suit).
	p := 1.0
	for i := 0; i < draws; i++ {
		p *= float64(totalUnseen-suitUnseen-i) / float64(totalUnseen-i)
		if p <= 0 {
			return 0
		}
	}
	return p
}

// TrumpVoidChance is VoidChance for the trump group.
func (e *Estimator) TrumpVoidChance(seat int, viewerHand domain.Cards) float64 {
	prof, ok := e.Memory.Profiles[seat]
	if !ok {
		return 0
	}
	if prof.VoidTrump {
		return 1
	}
	trumpUnseen := e.Memory.TrumpRemaining(viewerHand)
	if trumpUnseen == 0 {
		return 1
	}
	totalUnseen := e.unseenTotal(viewerHand)
	draws := prof.CardsRemaining
	if draws <= 0 || draws > totalUnseen {
		return 0
	}
	p := 1.0
	for i := 0; i < draws; i++ {
		p *= float64(totalUnseen-trumpUnseen-i) / float64(totalUnseen-i)
		if p <= 0 {
			return 0
		}
	}
	return p
}

// HandDominance scores the hand's strength against everything unseen,
// 0..1. Used for trump-timing decisions, not for legality.
func (e *Estimator) HandDominance(hand domain.Cards) float64 {
	if len(hand) == 0 {
		return 0
	}
	handPower := 0.0
	for _, c := range hand {
		handPower += float64(e.Memory.Trump.Strength(c))
	}
	avgHand := handPower / float64(len(hand))

	unseenPower := 0.0
	unseenCount := 0
	for _, cl := range allClasses() {
		probe := domain.Card{Suit: cl.Suit, Rank: cl.Rank, Joker: cl.Joker}
		n := e.Memory.UnseenOutside(cl, hand)
		unseenPower += float64(n * e.Memory.Trump.Strength(probe))
		unseenCount += n
	}
	if unseenCount == 0 {
		return 1
	}
	avgUnseen := unseenPower / float64(unseenCount)
	return avgHand / (avgHand + avgUnseen)
}

func (e *Estimator) unseenTotal(viewerHand domain.Cards) int {
	total := 0
	for _, cl := range allClasses() {
		total += e.Memory.UnseenOutside(cl, viewerHand)
	}
	return total
}
