package domain

// Suit identifies one of the four French suits. Jokers carry SuitNone.
type Suit int

const (
	SuitNone Suit = iota
	SuitSpades
	SuitHearts
	SuitClubs
	SuitDiamonds
)

// Suits lists the four playable suits in canonical order.
var Suits = []Suit{SuitSpades, SuitHearts, SuitClubs, SuitDiamonds}

func (s Suit) String() string {
	switch s {
	case SuitSpades:
		return "S"
	case SuitHearts:
		return "H"
	case SuitClubs:
		return "C"
	case SuitDiamonds:
		return "D"
	default:
		return "-"
	}
}

// Rank is the face value of a card. The Shengji deck runs Three..Ace;
// jokers carry RankNone. Ordinal values are chosen so that consecutive
// ranks differ by exactly one, which the tractor logic relies on.
type Rank int

const (
	RankNone  Rank = 0
	RankThree Rank = 3
	RankFour  Rank = 4
	RankFive  Rank = 5
	RankSix   Rank = 6
	RankSeven Rank = 7
	RankEight Rank = 8
	RankNine  Rank = 9
	RankTen   Rank = 10
	RankJack  Rank = 11
	RankQueen Rank = 12
	RankKing  Rank = 13
	RankAce   Rank = 14
)

// Ranks lists the playable ranks in ascending order.
var Ranks = []Rank{
	RankThree, RankFour, RankFive, RankSix, RankSeven, RankEight,
	RankNine, RankTen, RankJack, RankQueen, RankKing, RankAce,
}

func (r Rank) String() string {
	switch r {
	case RankTen:
		return "10"
	case RankJack:
		return "J"
	case RankQueen:
		return "Q"
	case RankKing:
		return "K"
	case RankAce:
		return "A"
	case RankNone:
		return "-"
	default:
		return string(rune('0' + int(r)))
	}
}

// Joker marks a card as the small or big joker.
type Joker int

const (
	JokerNone Joker = iota
	JokerSmall
	JokerBig
)

// Card is a single physical card. Two decks are in play, so two cards may
// share suit and rank; ID disambiguates the physical copies. A card is
// never duplicated or destroyed, it only moves between a hand, the active
// trick and the trick history.
type Card struct {
	ID    int
	Suit  Suit
	Rank  Rank
	Joker Joker
}

// IsJoker reports whether the card is either joker.
func (c Card) IsJoker() bool {
	return c.Joker != JokerNone
}

// Points returns the scoring value of the card: fives are worth 5,
// tens and kings 10, everything else 0.
func (c Card) Points() int {
	switch c.Rank {
	case RankFive:
		return 5
	case RankTen, RankKing:
		return 10
	default:
		return 0
	}
}

// Class strips the physical identity from a card, leaving the
// rules-relevant (suit, rank, joker) triple. Both copies of a card share
// one class; there are exactly two copies per class in play.
type CardClass struct {
	Suit  Suit
	Rank  Rank
	Joker Joker
}

// Class returns the card's class.
func (c Card) Class() CardClass {
	return CardClass{Suit: c.Suit, Rank: c.Rank, Joker: c.Joker}
}

func (c Card) String() string {
	switch c.Joker {
	case JokerSmall:
		return "SJ"
	case JokerBig:
		return "BJ"
	default:
		return c.Rank.String() + c.Suit.String()
	}
}

// CopiesPerClass is the number of physical copies of each card class in a
// double-deck game.
const CopiesPerClass = 2

// DeckSize is the total number of cards dealt into a round: two decks of
// 48 suited cards (Three..Ace) plus two jokers each.
const DeckSize = 2 * (4*12 + 2)

// Cards is an ordered multiset of cards. Order matters only for display;
// the rules never depend on it.
type Cards []Card

// NewDoubleDeck returns the full 100-card double deck in canonical order
// with sequential IDs. Shuffling and dealing are the caller's concern.
func NewDoubleDeck() Cards {
	deck := make(Cards, 0, DeckSize)
	id := 0
	for copyIdx := 0; copyIdx < CopiesPerClass; copyIdx++ {
		for _, s := range Suits {
			for _, r := range Ranks {
				deck = append(deck, Card{ID: id, Suit: s, Rank: r})
				id++
			}
		}
		deck = append(deck, Card{ID: id, Suit: SuitNone, Rank: RankNone, Joker: JokerSmall})
		id++
		deck = append(deck, Card{ID: id, Suit: SuitNone, Rank: RankNone, Joker: JokerBig})
		id++
	}
	return deck
}

// Points sums the point values of all cards.
func (cs Cards) Points() int {
	total := 0
	for _, c := range cs {
		total += c.Points()
	}
	return total
}

// ContainsID reports whether a card with the given physical ID is present.
func (cs Cards) ContainsID(id int) bool {
	for _, c := range cs {
		if c.ID == id {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every card in sub (by physical ID) is
// present in the receiver.
func (cs Cards) ContainsAll(sub Cards) bool {
	for _, c := range sub {
		if !cs.ContainsID(c.ID) {
			return false
		}
	}
	return true
}

// RemoveAll returns a copy of the receiver with the given cards removed by
// physical ID. Cards not present are ignored; callers validate ownership
// before removal.
func (cs Cards) RemoveAll(sub Cards) Cards {
	removeIDs := make(map[int]bool, len(sub))
	for _, c := range sub {
		removeIDs[c.ID] = true
	}
	out := make(Cards, 0, len(cs))
	for _, c := range cs {
		if removeIDs[c.ID] {
			continue
		}
		out = append(out, c)
	}
	return out
}

// CountClass returns how many copies of the given class are present.
func (cs Cards) CountClass(class CardClass) int {
	n := 0
	for _, c := range cs {
		if c.Class() == class {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the card list.
func (cs Cards) Clone() Cards {
	out := make(Cards, len(cs))
	copy(out, cs)
	return out
}
