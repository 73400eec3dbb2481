package domain

// Play is one seat's contribution to a trick. Combo is the classified
// shape of Cards; it is ComboInvalid for disposal plays, which can never
// win the trick.
type Play struct {
	PlayerID int
	Cards    Cards
	Combo    Combo
}

// Trick is one round of four plays. Plays[0] is the lead. WinnerID tracks
// the provisional winner while the trick is open and becomes final when
// the fourth play lands.
type Trick struct {
	Plays    []Play
	Points   int
	WinnerID int
}

// Lead returns the leading combo.
func (t Trick) Lead() Combo {
	return t.Plays[0].Combo
}

// LeaderID returns the seat that led the trick.
func (t Trick) LeaderID() int {
	return t.Plays[0].PlayerID
}

// Closed reports whether all seats have played.
func (t Trick) Closed(players int) bool {
	return len(t.Plays) == players
}

// CardCount is the number of cards played into the trick so far.
func (t Trick) CardCount() int {
	n := 0
	for _, p := range t.Plays {
		n += len(p.Cards)
	}
	return n
}

// AllCards returns every card played into the trick, in play order.
func (t Trick) AllCards() Cards {
	out := make(Cards, 0, t.CardCount())
	for _, p := range t.Plays {
		out = append(out, p.Cards...)
	}
	return out
}

// WinningPlay returns the provisional winner's play.
func (t Trick) WinningPlay() Play {
	for _, p := range t.Plays {
		if p.PlayerID == t.WinnerID {
			return p
		}
	}
	return t.Plays[0]
}

func (t Trick) clone() *Trick {
	out := t
	out.Plays = append([]Play(nil), t.Plays...)
	return &out
}
