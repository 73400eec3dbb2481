package domain

import "sort"

// FollowScenario classifies what a hand can do against a leading combo.
// The order below is a strict precedence: the analyzer returns the first
// scenario that applies.
type FollowScenario int

const (
	// ScenarioVoid means the hand holds no cards of the led family. Any
	// cards of the right count are legal, including trump.
	ScenarioVoid FollowScenario = iota
	// ScenarioInsufficient means the hand holds some cards of the led
	// family but fewer than required. All of them must be played, the rest
	// filled from elsewhere.
	ScenarioInsufficient
	// ScenarioValidCombos means the hand can answer with the exact shape
	// of the lead inside the led family. One of those answers is
	// mandatory.
	ScenarioValidCombos
	// ScenarioEnoughRemaining means the hand has enough cards of the led
	// family but cannot form the required shape. The response must stay
	// inside the family; its composition is a disposal decision.
	ScenarioEnoughRemaining
)

func (s FollowScenario) String() string {
	switch s {
	case ScenarioVoid:
		return "void"
	case ScenarioInsufficient:
		return "insufficient"
	case ScenarioValidCombos:
		return "valid_combos"
	default:
		return "enough_remaining"
	}
}

// FollowAnalysis is the analyzer's verdict for one hand against one lead.
type FollowAnalysis struct {
	Scenario FollowScenario
	Lead     Combo
	Group    Cards   // the hand's cards in the led comparison family
	Required int     // cards the response must contain
	Strict   []Cards // same-shape responses, populated for ScenarioValidCombos
}

// AnalyzeFollow classifies how hand may answer lead. lead must be a valid
// combo; leading itself is unconstrained and never analyzed here.
func AnalyzeFollow(lead Combo, hand Cards, trump TrumpInfo) FollowAnalysis {
	group := familyCards(lead, hand, trump)
	required := len(lead.Cards)
	an := FollowAnalysis{Lead: lead, Group: group, Required: required}

	switch {
	case len(group) == 0:
		an.Scenario = ScenarioVoid
		return an
	case len(group) < required:
		an.Scenario = ScenarioInsufficient
		return an
	}

	strict := strictResponses(lead, group, trump)
	if len(strict) > 0 {
		an.Scenario = ScenarioValidCombos
		an.Strict = strict
		return an
	}
	an.Scenario = ScenarioEnoughRemaining
	return an
}

// ValidateFollow reports whether play is a legal answer to lead from this
// hand. It enforces the scenario precedence as a hard rule: a hand that
// can match the lead's shape must do so.
func ValidateFollow(lead Combo, play Cards, hand Cards, trump TrumpInfo) error {
	if len(play) != len(lead.Cards) {
		return ErrIllegalPlay
	}
	an := AnalyzeFollow(lead, hand, trump)
	switch an.Scenario {
	case ScenarioVoid:
		return nil
	case ScenarioInsufficient:
		if !play.ContainsAll(an.Group) {
			return ErrIllegalPlay
		}
		return nil
	case ScenarioValidCombos:
		pc := Classify(play, trump)
		if pc.Type != lead.Type || !sameFamily(pc, lead) {
			return ErrIllegalPlay
		}
		return nil
	default: // ScenarioEnoughRemaining
		for _, c := range play {
			if !an.Group.ContainsID(c.ID) {
				return ErrIllegalPlay
			}
		}
		return nil
	}
}

// familyCards returns the hand's cards in the lead's comparison family:
// all trump for a trump lead, otherwise the led suit minus any trump.
func familyCards(lead Combo, hand Cards, trump TrumpInfo) Cards {
	out := make(Cards, 0, len(hand))
	for _, c := range hand {
		if lead.Trump {
			if trump.IsTrump(c) {
				out = append(out, c)
			}
		} else if c.Suit == lead.Suit && !trump.IsTrump(c) {
			out = append(out, c)
		}
	}
	return out
}

func sameFamily(a, b Combo) bool {
	if a.Trump != b.Trump {
		return false
	}
	return a.Trump || a.Suit == b.Suit
}

// strictResponses enumerates every same-shape answer to lead available
// within the family cards.
func strictResponses(lead Combo, group Cards, trump TrumpInfo) []Cards {
	switch lead.Type {
	case ComboSingle:
		return SinglesIn(group)
	case ComboPair:
		return PairsIn(group)
	case ComboTractor:
		return TractorsIn(group, lead.Pairs, trump)
	default:
		return nil
	}
}

// SinglesIn returns one single per distinct card class, deterministically
// ordered.
func SinglesIn(cards Cards) []Cards {
	seen := make(map[CardClass]bool)
	var out []Cards
	for _, c := range sortedByClass(cards) {
		if seen[c.Class()] {
			continue
		}
		seen[c.Class()] = true
		out = append(out, Cards{c})
	}
	return out
}

// PairsIn returns one pair per card class held twice.
func PairsIn(cards Cards) []Cards {
	var out []Cards
	for _, cl := range pairClassesOf(cards) {
		out = append(out, twoOfClass(cards, cl))
	}
	return out
}

// TractorsIn returns every tractor of exactly pairCount pairs that can be
// assembled from the cards. Candidate pair sets are verified through the
// classifier so bridging rules apply uniformly.
func TractorsIn(cards Cards, pairCount int, trump TrumpInfo) []Cards {
	if pairCount < 2 {
		return nil
	}
	classes := pairClassesOf(cards)
	if len(classes) < pairCount {
		return nil
	}
	var out []Cards
	chosen := make([]CardClass, 0, pairCount)
	var pick func(start int)
	pick = func(start int) {
		if len(chosen) == pairCount {
			set := make(Cards, 0, pairCount*2)
			for _, cl := range chosen {
				set = append(set, twoOfClass(cards, cl)...)
			}
			if Classify(set, trump).Type == ComboTractor {
				out = append(out, set)
			}
			return
		}
		for i := start; i <= len(classes)-(pairCount-len(chosen)); i++ {
			chosen = append(chosen, classes[i])
			pick(i + 1)
			chosen = chosen[:len(chosen)-1]
		}
	}
	pick(0)
	return out
}

// pairClassesOf lists the classes held at least twice, in deterministic
// order.
func pairClassesOf(cards Cards) []CardClass {
	counts := make(map[CardClass]int)
	for _, c := range cards {
		counts[c.Class()]++
	}
	var out []CardClass
	for cl, n := range counts {
		if n >= CopiesPerClass {
			out = append(out, cl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return classLess(out[i], out[j]) })
	return out
}

func twoOfClass(cards Cards, cl CardClass) Cards {
	out := make(Cards, 0, 2)
	for _, c := range cards {
		if c.Class() == cl {
			out = append(out, c)
			if len(out) == 2 {
				break
			}
		}
	}
	return out
}

func sortedByClass(cards Cards) Cards {
	out := cards.Clone()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Class() != out[j].Class() {
			return classLess(out[i].Class(), out[j].Class())
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func classLess(a, b CardClass) bool {
	if a.Joker != b.Joker {
		return a.Joker < b.Joker
	}
	if a.Suit != b.Suit {
		return a.Suit < b.Suit
	}
	return a.Rank < b.Rank
}
