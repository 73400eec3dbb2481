package domain

import "sort"

// ComboType classifies a played set of cards.
type ComboType int

const (
	ComboInvalid ComboType = iota
	ComboSingle
	ComboPair
	ComboTractor
)

func (t ComboType) String() string {
	switch t {
	case ComboSingle:
		return "single"
	case ComboPair:
		return "pair"
	case ComboTractor:
		return "tractor"
	default:
		return "invalid"
	}
}

// Combo is a classified set of cards together with its comparison value.
//
// Trump reports whether the combo lives in the trump comparison family.
// For suit combos, Suit names the family. Value is monotonic within a
// family: singles and pairs carry the top card's Strength, tractors the
// top pair's ladder slot. Combos only ever compare against same-shape
// combos of the same family, or across the trump/non-trump boundary where
// trump always wins regardless of Value.
type Combo struct {
	Type  ComboType
	Cards Cards
	Suit  Suit // SuitNone for trump-family combos
	Trump bool
	Pairs int // pair count; 0 for singles, 1 for pairs, >=2 for tractors
	Value int
}

// Classify determines whether the cards form a Single, Pair or Tractor
// under the given trump. Any other set is ComboInvalid. Leading shape is
// unconstrained beyond this; follow legality is the analyzer's concern.
func Classify(cards Cards, trump TrumpInfo) Combo {
	switch len(cards) {
	case 0:
		return Combo{Type: ComboInvalid}
	case 1:
		c := cards[0]
		return Combo{
			Type:  ComboSingle,
			Cards: cards,
			Suit:  comboSuit(c, trump),
			Trump: trump.IsTrump(c),
			Value: trump.Strength(c),
		}
	case 2:
		return classifyPair(cards, trump)
	default:
		return classifyTractor(cards, trump)
	}
}

// comboSuit is the family suit of a card: SuitNone when it is trump.
func comboSuit(c Card, trump TrumpInfo) Suit {
	if trump.IsTrump(c) {
		return SuitNone
	}
	return c.Suit
}

// classifyPair requires two literal copies of one card class. A big and a
// small joker are adjacent in strength but are not a pair.
func classifyPair(cards Cards, trump TrumpInfo) Combo {
	if cards[0].Class() != cards[1].Class() {
		return Combo{Type: ComboInvalid}
	}
	return Combo{
		Type:  ComboPair,
		Cards: cards,
		Suit:  comboSuit(cards[0], trump),
		Trump: trump.IsTrump(cards[0]),
		Pairs: 1,
		Value: trump.Strength(cards[0]),
	}
}

// classifyTractor checks for two or more pairs whose trump-aware ladder
// slots form a contiguous ascending run. All pairs must live in one
// comparison family: the trump group, or a single non-trump suit where
// the only admissible trump member is that suit's own trump-rank pair
// plugging the hole its promotion left in the ladder.
func classifyTractor(cards Cards, trump TrumpInfo) Combo {
	if len(cards) < 4 || len(cards)%2 != 0 {
		return Combo{Type: ComboInvalid}
	}

	classes, ok := groupIntoPairs(cards)
	if !ok {
		return Combo{Type: ComboInvalid}
	}

	trumpFamily := true
	for _, cl := range classes {
		if !trump.IsTrump(Card{Suit: cl.Suit, Rank: cl.Rank, Joker: cl.Joker}) {
			trumpFamily = false
			break
		}
	}

	if !trumpFamily {
		// Everything must share one literal suit; the trump-rank pair of
		// that suit is the single permitted trump member (the bridge).
		suit := SuitNone
		for _, cl := range classes {
			if cl.Joker != JokerNone {
				return Combo{Type: ComboInvalid}
			}
			if suit == SuitNone {
				suit = cl.Suit
			} else if cl.Suit != suit {
				return Combo{Type: ComboInvalid}
			}
		}
		if suit == trump.Suit {
			return Combo{Type: ComboInvalid} // trump suit pairs are trump-family
		}
		slots := make([]int, len(classes))
		for i, cl := range classes {
			slots[i] = trump.pairSlot(cl, false)
		}
		top, ok := consecutiveSlots(slots)
		if !ok {
			return Combo{Type: ComboInvalid}
		}
		return Combo{
			Type:  ComboTractor,
			Cards: cards,
			Suit:  suit,
			Pairs: len(classes),
			Value: top,
		}
	}

	// Trump family. Off-suit trump-rank pairs default to their own slot
	// just below the trump-suit pair, but one of them may instead bridge
	// the hole at the trump rank's ordinal in the trump-suit ladder. The
	// asymmetry is deliberate: the trump suit's own trump-rank pair is
	// pinned to the top suit slot and never drops back into the ordinal
	// hole its promotion left, so only an off-suit rank pair can bridge.
	slots := make([]int, 0, len(classes))
	bridgeable := 0
	for _, cl := range classes {
		slot := trump.pairSlot(cl, true)
		if slot == slotTrumpRankOff {
			bridgeable++
		}
		slots = append(slots, slot)
	}

	if top, ok := consecutiveSlots(slots); ok {
		return Combo{Type: ComboTractor, Cards: cards, Trump: true, Pairs: len(classes), Value: top}
	}
	if bridgeable > 0 {
		// Retry with one off-suit trump-rank pair moved onto the hole.
		for i, slot := range slots {
			if slot != slotTrumpRankOff {
				continue
			}
			retry := append([]int(nil), slots...)
			retry[i] = int(trump.Rank)
			if top, ok := consecutiveSlots(retry); ok {
				return Combo{Type: ComboTractor, Cards: cards, Trump: true, Pairs: len(classes), Value: top}
			}
		}
	}
	return Combo{Type: ComboInvalid}
}

// groupIntoPairs splits cards into exact pairs by class. Returns the pair
// classes and false if any card lacks its twin.
func groupIntoPairs(cards Cards) ([]CardClass, bool) {
	counts := make(map[CardClass]int)
	for _, c := range cards {
		counts[c.Class()]++
	}
	classes := make([]CardClass, 0, len(counts))
	for cl, n := range counts {
		if n != 2 {
			return nil, false
		}
		classes = append(classes, cl)
	}
	return classes, true
}

// consecutiveSlots reports whether the slots form a strictly ascending
// run with step one, returning the top slot.
func consecutiveSlots(slots []int) (int, bool) {
	if len(slots) < 2 {
		return 0, false
	}
	sorted := append([]int(nil), slots...)
	sort.Ints(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return 0, false
		}
	}
	return sorted[len(sorted)-1], true
}

// Beats reports whether the receiver wins over other, assuming other is
// the current winning combo of a trick the receiver legally follows.
// Same family compares Value; a trump combo beats any non-trump combo.
// Callers guarantee shape equality (the engine never offers a
// disposal-shaped play to this comparison).
func (c Combo) Beats(other Combo) bool {
	if c.Type == ComboInvalid || other.Type == ComboInvalid {
		return false
	}
	if c.Trump && !other.Trump {
		return true
	}
	if !c.Trump && other.Trump {
		return false
	}
	if !c.Trump && c.Suit != other.Suit {
		return false // off-suit disposal never wins
	}
	return c.Value > other.Value
}
