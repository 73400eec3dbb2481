package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"shengji/internal/domain"
)

// Service contains the round use-cases operating on domain state.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrNotOwner         = errors.New("actor is not match owner")
	ErrNotInLobby       = errors.New("match not in lobby")
	ErrNotPlaying       = errors.New("match not in playing phase")
	ErrWrongPlayerCount = errors.New("a round needs exactly four seated players")
	ErrUnknownPlayer    = errors.New("player not found")
	ErrTrumpNotDeclared = errors.New("trump suit not declared")
)

// Round couples the seat-indexed engine state with the user IDs at the
// table. Seat i of the domain state belongs to UserIDs[i].
type Round struct {
	State   domain.GameState
	UserIDs [domain.NumPlayers]string
}

// Seat returns the seat index of a user, or -1.
func (r *Round) Seat(userID string) int {
	for i, id := range r.UserIDs {
		if id == userID {
			return i
		}
	}
	return -1
}

// StartRound deals a fresh round to the four given players in seat order
// and emits the per-seat hand events plus the broadcast start event.
// The dealing/declaration phase is the caller's concern; a round cannot
// start until a trump suit has been declared.
func (s *Service) StartRound(userIDs []string, trump domain.TrumpInfo, firstPlayer, attackingTeam int) (*Round, []Event, error) {
	if len(userIDs) != domain.NumPlayers {
		return nil, nil, ErrWrongPlayerCount
	}
	for _, id := range userIDs {
		if id == "" {
			return nil, nil, ErrWrongPlayerCount
		}
	}
	if !trump.Declared() {
		return nil, nil, ErrTrumpNotDeclared
	}

	deck := domain.ShuffleDeck(domain.NewDoubleDeck(), s.rng)
	hands := domain.DealHands(deck, domain.NumPlayers)
	state, err := domain.NewGame(hands, trump, firstPlayer, attackingTeam)
	if err != nil {
		return nil, nil, fmt.Errorf("start round: %w", err)
	}

	round := &Round{State: state}
	copy(round.UserIDs[:], userIDs)

	events := make([]Event, 0, domain.NumPlayers+1)
	for seat, userID := range round.UserIDs {
		hand := state.Players[seat].Hand.Clone()
		domain.SortHand(hand, trump)
		events = append(events, Event{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				UserID: userID,
				Seat:   seat,
				Hand:   hand,
			},
			Recipients: []string{userID},
		})
	}
	events = append(events, Event{
		Kind: EventRoundStarted,
		Payload: RoundStartedPayload{
			TrumpRank:       trump.Rank,
			TrumpSuit:       trump.Suit,
			AttackingTeam:   attackingTeam,
			FirstTurnUserID: round.UserIDs[firstPlayer],
		},
	})
	return round, events, nil
}

// PlayCards processes one play through the engine and emits the
// resulting events. Rule violations come back wrapped around the domain
// sentinels; the round is unchanged when an error is returned.
func (s *Service) PlayCards(round *Round, actorUserID string, cards domain.Cards) ([]Event, error) {
	seat := round.Seat(actorUserID)
	if seat < 0 {
		return nil, ErrUnknownPlayer
	}

	next, result, err := round.State.Play(seat, cards)
	if err != nil {
		return nil, fmt.Errorf("play by %s: %w", actorUserID, err)
	}
	round.State = next

	events := []Event{{
		Kind: EventCardPlayed,
		Payload: CardPlayedPayload{
			UserID:         actorUserID,
			Seat:           seat,
			Cards:          cards,
			NextTurnUserID: round.UserIDs[next.CurrentPlayer],
		},
	}}

	if result.TrickClosed {
		events = append(events, Event{
			Kind: EventTrickCompleted,
			Payload: TrickCompletedPayload{
				WinnerUserID: round.UserIDs[result.WinnerID],
				WinnerSeat:   result.WinnerID,
				Points:       result.TrickPoints,
				Trick:        result.CompletedTrick,
			},
		})
	}

	if next.RoundComplete() {
		events = append(events, Event{
			Kind:    EventRoundEnded,
			Payload: s.roundOutcome(round),
		})
	}
	return events, nil
}

// roundOutcome builds the scoring handoff: team points, completed
// tricks, and whether the attackers reached the takeover target.
func (s *Service) roundOutcome(round *Round) RoundEndedPayload {
	state := round.State
	out := RoundEndedPayload{Tricks: len(state.History)}
	for _, tm := range state.Teams {
		out.TeamPoints[tm.ID] = tm.Points
		if tm.Attacking {
			out.AttackingTeam = tm.ID
			out.AttackerPoints = tm.Points
		}
	}
	out.AttackersWon = out.AttackerPoints >= TakeoverTarget
	return out
}
