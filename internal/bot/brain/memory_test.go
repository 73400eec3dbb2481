package brain

import (
	"reflect"
	"testing"

	"shengji/internal/domain"
)

var nextID int

func bc(s domain.Suit, r domain.Rank) domain.Card {
	nextID++
	return domain.Card{ID: nextID, Suit: s, Rank: r}
}

var trumpSevenHearts = domain.TrumpInfo{Rank: domain.RankSeven, Suit: domain.SuitHearts}

// oneTrickState plays a single complete trick: clubs led, seat 1 discards
// a spade (void), seat 3 trumps in.
func oneTrickState(t *testing.T) domain.GameState {
	t.Helper()
	hands := []domain.Cards{
		{bc(domain.SuitClubs, domain.RankFive), bc(domain.SuitClubs, domain.RankThree)},
		{bc(domain.SuitSpades, domain.RankNine), bc(domain.SuitSpades, domain.RankFour)},
		{bc(domain.SuitClubs, domain.RankTen), bc(domain.SuitDiamonds, domain.RankSix)},
		{bc(domain.SuitHearts, domain.RankAce), bc(domain.SuitDiamonds, domain.RankThree)},
	}
	state, err := domain.NewGame(hands, trumpSevenHearts, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, move := range []struct {
		seat int
		card domain.Card
	}{
		{0, hands[0][0]},
		{1, hands[1][0]},
		{2, hands[2][0]},
		{3, hands[3][0]},
	} {
		state, _, err = state.Play(move.seat, domain.Cards{move.card})
		if err != nil {
			t.Fatalf("seat %d: %v", move.seat, err)
		}
	}
	return state
}

func TestDeriveIsIdempotent(t *testing.T) {
	state := oneTrickState(t)
	a := Derive(state)
	b := Derive(state)
	if !reflect.DeepEqual(a.Seen, b.Seen) {
		t.Error("seen counts differ between derivations")
	}
	for seat := range a.Profiles {
		if !reflect.DeepEqual(a.Profiles[seat], b.Profiles[seat]) {
			t.Errorf("seat %d profile differs between derivations", seat)
		}
	}
	if a.PointsSeen != b.PointsSeen || a.TricksSeen != b.TricksSeen {
		t.Error("aggregates differ between derivations")
	}
}

func TestVoidInference(t *testing.T) {
	state := oneTrickState(t)
	m := Derive(state)
	clubLead := domain.Classify(domain.Cards{bc(domain.SuitClubs, domain.RankFive)}, trumpSevenHearts)

	if !m.KnownVoid(1, clubLead) {
		t.Error("seat 1 discarded off-suit but is not marked void in clubs")
	}
	if !m.KnownVoid(3, clubLead) {
		t.Error("seat 3 trumped in but is not marked void in clubs")
	}
	if m.KnownVoid(2, clubLead) {
		t.Error("seat 2 followed suit but is marked void")
	}
	trumpLead := domain.Classify(domain.Cards{bc(domain.SuitHearts, domain.RankThree)}, trumpSevenHearts)
	if m.KnownVoid(3, trumpLead) {
		t.Error("trumping in must not mark a seat void in trump")
	}
}

func TestSeenCountsAndPoints(t *testing.T) {
	state := oneTrickState(t)
	m := Derive(state)

	fiveClubs := domain.CardClass{Suit: domain.SuitClubs, Rank: domain.RankFive}
	if got := m.SeenCount(fiveClubs); got != 1 {
		t.Errorf("seen 5C = %d, want 1", got)
	}
	// 5C + 10C = 15 points on the trick.
	if m.PointsSeen != 15 {
		t.Errorf("points seen = %d, want 15", m.PointsSeen)
	}
	if m.TricksSeen != 1 {
		t.Errorf("tricks seen = %d, want 1", m.TricksSeen)
	}
}

func TestIsBoss(t *testing.T) {
	state := oneTrickState(t)
	m := Derive(state)

	aceSpades := bc(domain.SuitSpades, domain.RankAce)
	kingSpades := bc(domain.SuitSpades, domain.RankKing)
	hand := domain.Cards{aceSpades, kingSpades}

	if !m.IsBoss(aceSpades, hand) {
		t.Error("spade ace should be boss in spades")
	}
	// The second spade ace is unseen and not in hand.
	if m.IsBoss(kingSpades, domain.Cards{kingSpades}) {
		t.Error("spade king cannot be boss while an ace is unaccounted for")
	}
	// Holding both aces makes the king boss for this viewer.
	second := bc(domain.SuitSpades, domain.RankAce)
	if !m.IsBoss(kingSpades, domain.Cards{aceSpades, second, kingSpades}) {
		t.Error("spade king should be boss when both aces are in hand")
	}
	// A plain ace is not boss in the trump family sense; the big joker is.
	bigJoker := domain.Card{ID: 999, Joker: domain.JokerBig}
	if !m.IsBoss(bigJoker, domain.Cards{bigJoker}) {
		t.Error("big joker should always be boss")
	}
}

func TestIsBossPair(t *testing.T) {
	state := oneTrickState(t)
	m := Derive(state)

	kingSpades := domain.CardClass{Suit: domain.SuitSpades, Rank: domain.RankKing}
	// Both spade aces could still be together in one opposing hand.
	if m.IsBossPair(kingSpades, nil) {
		t.Error("king pair cannot be boss while an ace pair is possible")
	}
	ace := bc(domain.SuitSpades, domain.RankAce)
	if !m.IsBossPair(kingSpades, domain.Cards{ace}) {
		t.Error("king pair should be boss once one ace is in the viewer's hand")
	}
}

func TestSuitAndPointAccounting(t *testing.T) {
	state := oneTrickState(t)
	m := Derive(state)

	// 22 clubs exist outside the trump family; 2 were played, the viewer
	// holds none.
	if got := m.SuitRemaining(domain.SuitClubs, nil); got != 20 {
		t.Errorf("clubs remaining = %d, want 20", got)
	}
	// Club points: two 5s, two 10s, two Ks = 50; 5C and 10C are gone.
	if got := m.PointsRemainingInSuit(domain.SuitClubs, nil); got != 35 {
		t.Errorf("club points remaining = %d, want 35", got)
	}
}
