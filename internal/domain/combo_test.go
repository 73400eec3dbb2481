package domain

import (
	"testing"
)

var testCardID int

func tc(s Suit, r Rank) Card {
	testCardID++
	return Card{ID: testCardID, Suit: s, Rank: r}
}

func tj(j Joker) Card {
	testCardID++
	return Card{ID: testCardID, Joker: j}
}

func tpair(s Suit, r Rank) Cards {
	return Cards{tc(s, r), tc(s, r)}
}

func tjpair(j Joker) Cards {
	return Cards{tj(j), tj(j)}
}

func cat(groups ...Cards) Cards {
	var out Cards
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// sevenHearts is the trump configuration most tests run under.
var sevenHearts = TrumpInfo{Rank: RankSeven, Suit: SuitHearts}

func TestClassifySinglesAndPairs(t *testing.T) {
	tests := []struct {
		name     string
		cards    Cards
		expected ComboType
	}{
		{"single", Cards{tc(SuitClubs, RankThree)}, ComboSingle},
		{"single joker", Cards{tj(JokerBig)}, ComboSingle},
		{"pair", tpair(SuitSpades, RankNine), ComboPair},
		{"big joker pair", tjpair(JokerBig), ComboPair},
		{"mixed suit not a pair", Cards{tc(SuitSpades, RankNine), tc(SuitClubs, RankNine)}, ComboInvalid},
		{"big plus small joker not a pair", Cards{tj(JokerBig), tj(JokerSmall)}, ComboInvalid},
		{"empty", nil, ComboInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.cards, sevenHearts)
			if got.Type != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got.Type)
			}
		})
	}
}

func TestClassifyTractor(t *testing.T) {
	tests := []struct {
		name     string
		cards    Cards
		expected ComboType
	}{
		{
			name:     "consecutive trump suit pairs",
			cards:    cat(tpair(SuitHearts, RankFive), tpair(SuitHearts, RankSix)),
			expected: ComboTractor,
		},
		{
			name:     "two-rank gap never bridges",
			cards:    cat(tpair(SuitHearts, RankSix), tpair(SuitHearts, RankNine)),
			expected: ComboInvalid,
		},
		{
			name:     "trump rank hole blocks plain suit run",
			cards:    cat(tpair(SuitSpades, RankSix), tpair(SuitSpades, RankEight)),
			expected: ComboInvalid,
		},
		{
			name:     "own trump rank pair plugs the hole",
			cards:    cat(tpair(SuitSpades, RankSix), tpair(SuitSpades, RankSeven), tpair(SuitSpades, RankEight)),
			expected: ComboTractor,
		},
		{
			name:     "wrong suit trump rank pair cannot plug it",
			cards:    cat(tpair(SuitSpades, RankSix), tpair(SuitClubs, RankSeven), tpair(SuitSpades, RankEight)),
			expected: ComboInvalid,
		},
		{
			name:     "off suit and trump suit rank pairs combine",
			cards:    cat(tpair(SuitSpades, RankSeven), tpair(SuitHearts, RankSeven)),
			expected: ComboTractor,
		},
		{
			name:     "trump rank pair under small joker pair",
			cards:    cat(tpair(SuitHearts, RankSeven), tjpair(JokerSmall)),
			expected: ComboTractor,
		},
		{
			name:     "joker pairs",
			cards:    cat(tjpair(JokerSmall), tjpair(JokerBig)),
			expected: ComboTractor,
		},
		{
			name:     "trump ace under off suit rank pair",
			cards:    cat(tpair(SuitHearts, RankAce), tpair(SuitSpades, RankSeven)),
			expected: ComboTractor,
		},
		{
			name:     "off suit rank pair bridges inside the trump group",
			cards:    cat(tpair(SuitHearts, RankSix), tpair(SuitClubs, RankSeven), tpair(SuitHearts, RankEight)),
			expected: ComboTractor,
		},
		{
			// The promoted pair is pinned to the top suit slot; it never
			// drops back into the hole the way an off-suit rank pair may.
			name:     "own trump suit rank pair cannot bridge its own hole",
			cards:    cat(tpair(SuitHearts, RankSix), tpair(SuitHearts, RankSeven), tpair(SuitHearts, RankEight)),
			expected: ComboInvalid,
		},
		{
			name:     "two off suit rank pairs cannot share one run",
			cards:    cat(tpair(SuitSpades, RankSeven), tpair(SuitClubs, RankSeven)),
			expected: ComboInvalid,
		},
		{
			name:     "mixed non-trump suits",
			cards:    cat(tpair(SuitSpades, RankFive), tpair(SuitClubs, RankSix)),
			expected: ComboInvalid,
		},
		{
			name:     "trump and plain suit do not mix",
			cards:    cat(tpair(SuitHearts, RankFive), tpair(SuitSpades, RankSix)),
			expected: ComboInvalid,
		},
		{
			name:     "pairs plus a stray card",
			cards:    cat(tpair(SuitSpades, RankFive), tpair(SuitSpades, RankSix), Cards{tc(SuitSpades, RankEight)}),
			expected: ComboInvalid,
		},
		{
			name:     "three pair run",
			cards:    cat(tpair(SuitClubs, RankTen), tpair(SuitClubs, RankJack), tpair(SuitClubs, RankQueen)),
			expected: ComboTractor,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.cards, sevenHearts)
			if got.Type != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got.Type)
			}
		})
	}
}

func TestComboBeats(t *testing.T) {
	tests := []struct {
		name     string
		winner   Cards
		chal     Cards
		expected bool
	}{
		{"higher single same suit", Cards{tc(SuitClubs, RankNine)}, Cards{tc(SuitClubs, RankQueen)}, true},
		{"lower single same suit", Cards{tc(SuitClubs, RankQueen)}, Cards{tc(SuitClubs, RankNine)}, false},
		{"off suit single never wins", Cards{tc(SuitClubs, RankThree)}, Cards{tc(SuitSpades, RankAce)}, false},
		{"trump single beats suit ace", Cards{tc(SuitClubs, RankAce)}, Cards{tc(SuitHearts, RankThree)}, true},
		{"trump rank beats trump ace", Cards{tc(SuitHearts, RankAce)}, Cards{tc(SuitClubs, RankSeven)}, true},
		{"trump suit rank card tops off suit rank card", Cards{tc(SuitClubs, RankSeven)}, Cards{tc(SuitHearts, RankSeven)}, true},
		{"big joker tops everything", Cards{tc(SuitHearts, RankSeven)}, Cards{tj(JokerBig)}, true},
		{"trump pair beats plain pair", tpair(SuitClubs, RankAce), tpair(SuitHearts, RankThree), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Classify(tt.winner, sevenHearts)
			c := Classify(tt.chal, sevenHearts)
			if got := c.Beats(w); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestStrengthTiers(t *testing.T) {
	trump := sevenHearts
	ordered := Cards{
		tc(SuitClubs, RankThree),
		tc(SuitClubs, RankAce),
		tc(SuitHearts, RankThree),
		tc(SuitHearts, RankAce),
		tc(SuitClubs, RankSeven),
		tc(SuitHearts, RankSeven),
		tj(JokerSmall),
		tj(JokerBig),
	}
	for i := 1; i < len(ordered); i++ {
		lo, hi := ordered[i-1], ordered[i]
		if trump.Strength(lo) >= trump.Strength(hi) {
			t.Errorf("expected %v weaker than %v", lo, hi)
		}
	}
}

func TestDeckComposition(t *testing.T) {
	deck := NewDoubleDeck()
	if len(deck) != DeckSize {
		t.Fatalf("expected %d cards, got %d", DeckSize, len(deck))
	}
	if got := deck.Points(); got != 200 {
		t.Errorf("expected 200 deck points, got %d", got)
	}
	counts := make(map[CardClass]int)
	ids := make(map[int]bool)
	for _, c := range deck {
		counts[c.Class()]++
		if ids[c.ID] {
			t.Fatalf("duplicate card id %d", c.ID)
		}
		ids[c.ID] = true
	}
	for cl, n := range counts {
		if n != CopiesPerClass {
			t.Errorf("class %+v has %d copies", cl, n)
		}
	}
}
