package brain

import (
	"shengji/internal/domain"
)

// SeatProfile tracks what a seat's plays have proven about its hand.
type SeatProfile struct {
	Seat           int
	CardsRemaining int
	// VoidSuits marks plain suits the seat is proven to have exhausted.
	VoidSuits map[domain.Suit]bool
	// VoidTrump marks the trump group as exhausted.
	VoidTrump bool
}

func newSeatProfile(seat, cardsRemaining int) *SeatProfile {
	return &SeatProfile{
		Seat:           seat,
		CardsRemaining: cardsRemaining,
		VoidSuits:      make(map[domain.Suit]bool),
	}
}

func (p *SeatProfile) markVoid(lead domain.Combo) {
	if lead.Trump {
		p.VoidTrump = true
		return
	}
	p.VoidSuits[lead.Suit] = true
}

func (p *SeatProfile) voidIn(lead domain.Combo) bool {
	if lead.Trump {
		return p.VoidTrump
	}
	return p.VoidSuits[lead.Suit]
}

// VoidInSuit reports a proven void in a plain suit.
func (p *SeatProfile) VoidInSuit(suit domain.Suit) bool {
	return p.VoidSuits[suit]
}
