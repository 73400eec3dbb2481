package domain

// TrumpInfo fixes the trump rank and suit for one round. The rank is set
// before dealing; the suit is declared during dealing and may still be
// SuitNone ("no trump declared yet"), a state the play engine rejects.
//
// Trump classification is a pure function of (card, TrumpInfo) and never
// depends on play order.
type TrumpInfo struct {
	Rank Rank
	Suit Suit
}

// Declared reports whether a trump suit has been declared.
func (t TrumpInfo) Declared() bool {
	return t.Suit != SuitNone
}

// IsTrump reports whether the card belongs to the trump group: any joker,
// any card of the trump rank, or any card of the trump suit.
func (t TrumpInfo) IsTrump(c Card) bool {
	return c.IsJoker() || c.Rank == t.Rank || c.Suit == t.Suit
}

// Strength tiers. Within a trick only members of one comparison family
// meet, but a single monotonic scale keeps AI heuristics simple: every
// trump outranks every non-trump.
const (
	strengthTrumpBase      = 100 // trump-suit ordinary cards: base + rank ordinal
	strengthTrumpRankOff   = 120 // trump rank in a non-trump suit
	strengthTrumpRankTrump = 121 // trump rank in the trump suit
	strengthSmallJoker     = 122
	strengthBigJoker       = 123
)

// Strength returns the strategic value of a card under the given trump.
// Jokers > trump-rank cards > trump-suit cards > non-trump cards; each
// tier is ordered by raw rank internally. Non-trump cards of different
// suits share the same scale but never actually compete in a trick.
func (t TrumpInfo) Strength(c Card) int {
	switch {
	case c.Joker == JokerBig:
		return strengthBigJoker
	case c.Joker == JokerSmall:
		return strengthSmallJoker
	case c.Rank == t.Rank && c.Suit == t.Suit:
		return strengthTrumpRankTrump
	case c.Rank == t.Rank:
		return strengthTrumpRankOff
	case c.Suit == t.Suit:
		return strengthTrumpBase + int(c.Rank)
	default:
		return int(c.Rank)
	}
}

// Tractor ladder slots. Ordinary pairs sit at their raw rank ordinal
// (3..14). The trump-rank ordinal is a hole in every suit's ladder that
// only a physical trump-rank pair can plug. Above the suited range sit
// the trump-only slots.
const (
	slotTrumpRankOff   = 15 // trump-rank pair in a non-trump suit (within the trump group)
	slotTrumpRankTrump = 16 // trump-rank pair in the trump suit
	slotSmallJoker     = 17
	slotBigJoker       = 18
)

// pairSlot returns the fixed ladder slot for a pair of the given class,
// evaluated inside the comparison family the tractor is built in.
// Trump-rank pairs are special: inside their own suit's ladder they sit
// at the trump rank's raw ordinal (bridging the hole their promotion
// left); inside the trump group they default to the off-suit slot but may
// be reassigned onto the trump-rank ordinal (see classifyTractor).
func (t TrumpInfo) pairSlot(class CardClass, trumpFamily bool) int {
	switch {
	case class.Joker == JokerBig:
		return slotBigJoker
	case class.Joker == JokerSmall:
		return slotSmallJoker
	case class.Rank == t.Rank && class.Suit == t.Suit:
		return slotTrumpRankTrump
	case class.Rank == t.Rank:
		if trumpFamily {
			return slotTrumpRankOff
		}
		return int(t.Rank)
	default:
		return int(class.Rank)
	}
}
