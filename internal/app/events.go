package app

import "shengji/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventRoundStarted   EventKind = "round_started"
	EventHandDealt      EventKind = "hand_dealt"
	EventCardPlayed     EventKind = "card_played"
	EventTrickCompleted EventKind = "trick_completed"
	EventRoundEnded     EventKind = "round_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type RoundStartedPayload struct {
	TrumpRank       domain.Rank
	TrumpSuit       domain.Suit
	AttackingTeam   int
	FirstTurnUserID string
}

type HandDealtPayload struct {
	UserID string
	Seat   int
	Hand   domain.Cards
}

type CardPlayedPayload struct {
	UserID         string
	Seat           int
	Cards          domain.Cards
	NextTurnUserID string
}

type TrickCompletedPayload struct {
	WinnerUserID string
	WinnerSeat   int
	Points       int
	Trick        *domain.Trick
}

type RoundEndedPayload struct {
	TeamPoints     [domain.NumTeams]int
	AttackingTeam  int
	AttackerPoints int
	AttackersWon   bool
	Tricks         int
}
