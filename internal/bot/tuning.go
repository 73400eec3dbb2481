package bot

import (
	"shengji/internal/domain"
)

// DisposalTier is one rung of the throw-away ladder. The pipeline walks
// the tiers in order and takes the lowest card the first matching tier
// offers, so the ladder itself encodes the disposal priority.
type DisposalTier struct {
	AllowTrump  bool
	AllowPoints bool
	AllowAces   bool
}

// Tuning collects every threshold and preference table the decision
// pipeline consults. Strategy code reads these instead of hard-coding
// priorities, so tie-break policy stays declarative and testable.
type Tuning struct {
	// TakeoverTarget is the attacker point total that flips the round.
	TakeoverTarget int
	// EarlyTricks is how many closed tricks still count as the opening.
	EarlyTricks int
	// LateTricks is the remaining-trick count at which endgame logic
	// takes over.
	LateTricks int

	// Disposal is the ordered throw-away ladder.
	Disposal []DisposalTier
	// PointPreference orders point ranks for contribution, best first.
	PointPreference []domain.Rank

	// BeatThreshold is the minimum trick point value that justifies
	// fighting for a trick an opponent is winning, indexed by follow
	// position (2nd, 3rd, 4th seat of the trick).
	BeatThreshold [3]int
	// RuffThreshold is the minimum riding point value that justifies
	// spending trump when void, indexed the same way.
	RuffThreshold [3]int
	// VoidRisk is the estimated void chance of a later opponent above
	// which point contributions and cheap ruffs are withheld.
	VoidRisk float64
	// FlushDominance is the hand dominance above which the bot leads
	// trump to drain the table.
	FlushDominance float64
}

// DefaultTuning is the standard bot.
var DefaultTuning = Tuning{
	TakeoverTarget: 80,
	EarlyTricks:    5,
	LateTricks:     6,
	Disposal: []DisposalTier{
		{},
		{AllowAces: true},
		{AllowPoints: true, AllowAces: true},
		{AllowTrump: true, AllowPoints: true, AllowAces: true},
	},
	PointPreference: []domain.Rank{domain.RankTen, domain.RankKing, domain.RankFive},
	BeatThreshold:   [3]int{15, 10, 5},
	RuffThreshold:   [3]int{15, 10, 5},
	VoidRisk:        0.35,
	FlushDominance:  0.65,
}

// CautiousTuning fights less and hoards trump; used for easy bots.
var CautiousTuning = Tuning{
	TakeoverTarget:  80,
	EarlyTricks:     8,
	LateTricks:      4,
	Disposal:        DefaultTuning.Disposal,
	PointPreference: DefaultTuning.PointPreference,
	BeatThreshold:   [3]int{25, 20, 15},
	RuffThreshold:   [3]int{25, 20, 15},
	VoidRisk:        0.2,
	FlushDominance:  0.8,
}

// AggressiveTuning contests almost every trick; used for hard bots.
var AggressiveTuning = Tuning{
	TakeoverTarget:  80,
	EarlyTricks:     3,
	LateTricks:      8,
	Disposal:        DefaultTuning.Disposal,
	PointPreference: DefaultTuning.PointPreference,
	BeatThreshold:   [3]int{10, 5, 5},
	RuffThreshold:   [3]int{10, 5, 0},
	VoidRisk:        0.5,
	FlushDominance:  0.55,
}

func (t DisposalTier) allows(c domain.Card, trump domain.TrumpInfo) bool {
	if !t.AllowTrump && trump.IsTrump(c) {
		return false
	}
	if !t.AllowPoints && c.Points() > 0 {
		return false
	}
	if !t.AllowAces && c.Rank == domain.RankAce && !trump.IsTrump(c) {
		return false
	}
	return true
}
