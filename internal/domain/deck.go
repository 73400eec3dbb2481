package domain

import (
	"math/rand"
	"sort"
)

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(deck Cards, rng *rand.Rand) Cards {
	out := deck.Clone()
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// DealHands splits the deck evenly across the given number of seats. With
// the standard 100-card double deck and four seats nothing is left over;
// any remainder stays undealt at the end of the deck.
func DealHands(deck Cards, players int) []Cards {
	per := len(deck) / players
	hands := make([]Cards, players)
	for i := range hands {
		hands[i] = deck[i*per : (i+1)*per].Clone()
	}
	return hands
}

// SortHand orders a hand in place for display and lowest-first scans:
// non-trump suits grouped in canonical order, trump last, ascending
// strength within each group.
func SortHand(cards Cards, trump TrumpInfo) {
	sort.Slice(cards, func(i, j int) bool {
		pi, pj := handPower(cards[i], trump), handPower(cards[j], trump)
		if pi != pj {
			return pi < pj
		}
		return cards[i].ID < cards[j].ID
	})
}

func handPower(c Card, trump TrumpInfo) int {
	if trump.IsTrump(c) {
		return 1000 + trump.Strength(c)
	}
	return int(c.Suit)*100 + int(c.Rank)
}
