package brain

import (
	"testing"

	"shengji/internal/domain"
)

func TestVoidChanceProvenVoid(t *testing.T) {
	state := oneTrickState(t)
	e := NewEstimator(Derive(state))

	if got := e.VoidChance(1, domain.SuitClubs, nil); got != 1 {
		t.Errorf("proven void should be certain, got %v", got)
	}
	got := e.VoidChance(2, domain.SuitClubs, nil)
	if got <= 0 || got >= 1 {
		t.Errorf("unproven void chance should be in (0,1), got %v", got)
	}
}

func TestVoidChanceExhaustedSuit(t *testing.T) {
	state := oneTrickState(t)
	m := Derive(state)
	// Pretend the viewer holds every remaining club.
	var viewer domain.Cards
	id := 1000
	for _, r := range domain.Ranks {
		if r == domain.RankSeven {
			continue
		}
		for i := 0; i < domain.CopiesPerClass-m.SeenCount(domain.CardClass{Suit: domain.SuitClubs, Rank: r}); i++ {
			id++
			viewer = append(viewer, domain.Card{ID: id, Suit: domain.SuitClubs, Rank: r})
		}
	}
	e := NewEstimator(m)
	if got := e.VoidChance(2, domain.SuitClubs, viewer); got != 1 {
		t.Errorf("no clubs left to hold, want certainty, got %v", got)
	}
}

func TestBossCards(t *testing.T) {
	state := oneTrickState(t)
	e := NewEstimator(Derive(state))

	hand := domain.Cards{
		bc(domain.SuitSpades, domain.RankAce),
		bc(domain.SuitSpades, domain.RankThree),
		{ID: 998, Joker: domain.JokerBig},
	}
	boss := e.BossCards(hand)
	if len(boss) != 2 {
		t.Fatalf("expected ace and big joker as boss, got %v", boss)
	}
}

func TestHandDominance(t *testing.T) {
	state := oneTrickState(t)
	e := NewEstimator(Derive(state))

	strong := domain.Cards{
		{ID: 990, Joker: domain.JokerBig},
		{ID: 991, Joker: domain.JokerSmall},
	}
	weak := domain.Cards{
		bc(domain.SuitSpades, domain.RankThree),
		bc(domain.SuitClubs, domain.RankFour),
	}
	ds, dw := e.HandDominance(strong), e.HandDominance(weak)
	if ds <= dw {
		t.Errorf("joker hand should dominate junk hand: %v <= %v", ds, dw)
	}
	if e.HandDominance(nil) != 0 {
		t.Error("empty hand has no dominance")
	}
}
