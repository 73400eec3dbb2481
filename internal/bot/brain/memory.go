package brain

import (
	"shengji/internal/domain"
)

// Memory is the bot's view of all public information: every card in the
// trick history plus the open trick, and what those plays prove about
// each seat. It is derived fresh from the game state on every query, so
// it can never go stale and two derivations from the same state are
// always identical.
type Memory struct {
	Trump domain.TrumpInfo
	// Seen counts played copies per card class, across history and the
	// open trick.
	Seen map[domain.CardClass]int
	// Profiles tracks per-seat inferences by seat index.
	Profiles map[int]*SeatProfile
	// PointsSeen is the point total of all played cards.
	PointsSeen int
	// TricksSeen counts closed tricks.
	TricksSeen int
}

// Derive rebuilds the memory from the state. Only public zones are read;
// hands stay hidden and are accounted for through the viewer-hand
// arguments of the predicates below.
func Derive(state domain.GameState) *Memory {
	m := &Memory{
		Trump:    state.Trump,
		Seen:     make(map[domain.CardClass]int),
		Profiles: make(map[int]*SeatProfile),
	}
	for _, p := range state.Players {
		m.Profiles[p.ID] = newSeatProfile(p.ID, len(p.Hand))
	}
	for _, tr := range state.History {
		m.observeTrick(tr)
	}
	m.TricksSeen = len(state.History)
	if state.Current != nil {
		m.observeTrick(*state.Current)
	}
	return m
}

func (m *Memory) observeTrick(t domain.Trick) {
	lead := t.Lead()
	for i, play := range t.Plays {
		for _, c := range play.Cards {
			m.Seen[c.Class()]++
			m.PointsSeen += c.Points()
		}
		if i == 0 {
			continue
		}
		// Any off-family card in a follow proves the seat had fewer
		// family cards than required, so it is void from here on.
		for _, c := range play.Cards {
			if !m.inFamily(c, lead) {
				m.profile(play.PlayerID).markVoid(lead)
				break
			}
		}
	}
}

func (m *Memory) inFamily(c domain.Card, lead domain.Combo) bool {
	if lead.Trump {
		return m.Trump.IsTrump(c)
	}
	return c.Suit == lead.Suit && !m.Trump.IsTrump(c)
}

func (m *Memory) profile(seat int) *SeatProfile {
	p, ok := m.Profiles[seat]
	if !ok {
		p = newSeatProfile(seat, 0)
		m.Profiles[seat] = p
	}
	return p
}

// SeenCount returns how many copies of the class have been played.
func (m *Memory) SeenCount(cl domain.CardClass) int {
	return m.Seen[cl]
}

// UnseenOutside returns how many copies of the class are neither played
// nor in the viewer's own hand, i.e. could still be held by other seats.
func (m *Memory) UnseenOutside(cl domain.CardClass, hand domain.Cards) int {
	n := domain.CopiesPerClass - m.Seen[cl] - hand.CountClass(cl)
	if n < 0 {
		return 0
	}
	return n
}

// KnownVoid reports whether a seat has been proven void in the lead's
// family.
func (m *Memory) KnownVoid(seat int, lead domain.Combo) bool {
	p, ok := m.Profiles[seat]
	if !ok {
		return false
	}
	return p.voidIn(lead)
}

// IsBoss reports whether the card is provably the highest remaining in
// its comparison family: no other seat can still hold a stronger card of
// that family. It is exact, not heuristic; the viewer's own hand is
// excluded from the unseen pool.
func (m *Memory) IsBoss(c domain.Card, hand domain.Cards) bool {
	str := m.Trump.Strength(c)
	for _, cl := range m.familyClasses(c) {
		probe := domain.Card{Suit: cl.Suit, Rank: cl.Rank, Joker: cl.Joker}
		if m.Trump.Strength(probe) <= str {
			continue
		}
		if m.UnseenOutside(cl, hand) > 0 {
			return false
		}
	}
	return true
}

// IsBossPair reports whether a pair of the class is provably unbeatable
// by any pair another seat could still hold in the same family.
func (m *Memory) IsBossPair(cl domain.CardClass, hand domain.Cards) bool {
	card := domain.Card{Suit: cl.Suit, Rank: cl.Rank, Joker: cl.Joker}
	str := m.Trump.Strength(card)
	for _, other := range m.familyClasses(card) {
		probe := domain.Card{Suit: other.Suit, Rank: other.Rank, Joker: other.Joker}
		if m.Trump.Strength(probe) <= str {
			continue
		}
		if m.UnseenOutside(other, hand) >= domain.CopiesPerClass {
			return false
		}
	}
	return true
}

// familyClasses lists every card class in the given card's comparison
// family under the current trump.
func (m *Memory) familyClasses(c domain.Card) []domain.CardClass {
	var out []domain.CardClass
	for _, cl := range allClasses() {
		probe := domain.Card{Suit: cl.Suit, Rank: cl.Rank, Joker: cl.Joker}
		if m.Trump.IsTrump(c) {
			if m.Trump.IsTrump(probe) {
				out = append(out, cl)
			}
		} else if probe.Suit == c.Suit && !m.Trump.IsTrump(probe) {
			out = append(out, cl)
		}
	}
	return out
}

// SuitRemaining returns how many cards of a plain suit other seats could
// still hold. Trump-rank cards of the suit are excluded; they live in the
// trump family.
func (m *Memory) SuitRemaining(suit domain.Suit, hand domain.Cards) int {
	total := 0
	for _, cl := range allClasses() {
		probe := domain.Card{Suit: cl.Suit, Rank: cl.Rank, Joker: cl.Joker}
		if probe.Suit != suit || m.Trump.IsTrump(probe) {
			continue
		}
		total += m.UnseenOutside(cl, hand)
	}
	return total
}

// TrumpRemaining returns how many trump cards other seats could still
// hold.
func (m *Memory) TrumpRemaining(hand domain.Cards) int {
	total := 0
	for _, cl := range allClasses() {
		probe := domain.Card{Suit: cl.Suit, Rank: cl.Rank, Joker: cl.Joker}
		if !m.Trump.IsTrump(probe) {
			continue
		}
		total += m.UnseenOutside(cl, hand)
	}
	return total
}

// PointsRemainingInSuit sums the point values still held by other seats
// in a plain suit. Feeds the ruff-or-not weighing when void.
func (m *Memory) PointsRemainingInSuit(suit domain.Suit, hand domain.Cards) int {
	total := 0
	for _, cl := range allClasses() {
		probe := domain.Card{Suit: cl.Suit, Rank: cl.Rank, Joker: cl.Joker}
		if probe.Suit != suit || m.Trump.IsTrump(probe) {
			continue
		}
		total += m.UnseenOutside(cl, hand) * probe.Points()
	}
	return total
}

// allClasses enumerates the 50 card classes of the double deck.
func allClasses() []domain.CardClass {
	out := make([]domain.CardClass, 0, 50)
	for _, s := range domain.Suits {
		for _, r := range domain.Ranks {
			out = append(out, domain.CardClass{Suit: s, Rank: r})
		}
	}
	out = append(out,
		domain.CardClass{Joker: domain.JokerSmall},
		domain.CardClass{Joker: domain.JokerBig},
	)
	return out
}
