package nakama

import (
	"shengji/internal/domain"
)

// MatchLabel is the JSON match label indexed by Nakama's match listing.
type MatchLabel struct {
	Open  int    `json:"open"`
	State string `json:"state"`
	Game  string `json:"game"`
}

// WireCard is the client-facing card representation. ID is the physical
// card id the engine validates ownership against.
type WireCard struct {
	ID    int    `json:"id"`
	Suit  string `json:"suit"`
	Rank  int    `json:"rank"`
	Joker string `json:"joker,omitempty"`
}

type startRoundRequest struct {
	TrumpSuit string `json:"trump_suit"`
	Tier      string `json:"tier,omitempty"`
}

type playCardsRequest struct {
	Cards []WireCard `json:"cards"`
}

type playerState struct {
	UserID         string `json:"user_id"`
	Seat           int    `json:"seat"`
	IsOwner        bool   `json:"is_owner"`
	DisplayName    string `json:"display_name"`
	CardsRemaining int    `json:"cards_remaining"`
	Balance        int64  `json:"balance"`
}

type matchStateSnapshot struct {
	Seats     []string      `json:"seats"`
	OwnerSeat int           `json:"owner_seat"`
	Tick      int64         `json:"tick"`
	Players   []playerState `json:"players"`
}

type roundStartedEvent struct {
	TrumpRank     int    `json:"trump_rank"`
	TrumpSuit     string `json:"trump_suit"`
	AttackingTeam int    `json:"attacking_team"`
	FirstTurnSeat int    `json:"first_turn_seat"`
}

type handDealtEvent struct {
	Seat int        `json:"seat"`
	Hand []WireCard `json:"hand"`
}

type cardPlayedEvent struct {
	Seat         int        `json:"seat"`
	Cards        []WireCard `json:"cards"`
	NextTurnSeat int        `json:"next_turn_seat"`
}

type trickCompletedEvent struct {
	WinnerSeat int `json:"winner_seat"`
	Points     int `json:"points"`
}

type roundEndedEvent struct {
	TeamPoints     []int `json:"team_points"`
	AttackingTeam  int   `json:"attacking_team"`
	AttackerPoints int   `json:"attacker_points"`
	AttackersWon   bool  `json:"attackers_won"`
	Tricks         int   `json:"tricks"`
}

type gameErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func cardsToWire(cards domain.Cards) []WireCard {
	out := make([]WireCard, 0, len(cards))
	for _, c := range cards {
		out = append(out, WireCard{
			ID:    c.ID,
			Suit:  c.Suit.String(),
			Rank:  int(c.Rank),
			Joker: jokerToWire(c.Joker),
		})
	}
	return out
}

func cardsFromWire(cards []WireCard) domain.Cards {
	out := make(domain.Cards, 0, len(cards))
	for _, c := range cards {
		out = append(out, domain.Card{
			ID:    c.ID,
			Suit:  suitFromWire(c.Suit),
			Rank:  domain.Rank(c.Rank),
			Joker: jokerFromWire(c.Joker),
		})
	}
	return out
}

func suitFromWire(s string) domain.Suit {
	switch s {
	case "S":
		return domain.SuitSpades
	case "H":
		return domain.SuitHearts
	case "C":
		return domain.SuitClubs
	case "D":
		return domain.SuitDiamonds
	default:
		return domain.SuitNone
	}
}

func jokerToWire(j domain.Joker) string {
	switch j {
	case domain.JokerSmall:
		return "small"
	case domain.JokerBig:
		return "big"
	default:
		return ""
	}
}

func jokerFromWire(s string) domain.Joker {
	switch s {
	case "small":
		return domain.JokerSmall
	case "big":
		return domain.JokerBig
	default:
		return domain.JokerNone
	}
}
