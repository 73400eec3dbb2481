package domain

// NumPlayers is fixed: two teams of two, seats 0&2 versus 1&3.
const NumPlayers = 4

// NumTeams is the number of teams in a game.
const NumTeams = 2

// Player is one seat at the table. ID doubles as the seat index.
type Player struct {
	ID   int
	Name string
	Hand Cards
	Team int
	Bot  bool
}

// Team accumulates trick points for one side of the table. Attacking and
// defending are mutually exclusive and flip only at round boundaries,
// outside this engine.
type Team struct {
	ID        int
	Points    int
	Attacking bool
}

// GameState is the complete authoritative state of a round in play. It is
// an immutable value: Play returns a new state and never mutates the
// receiver, so callers can keep old states for replay or what-if analysis.
type GameState struct {
	Players       []Player
	Teams         []Team
	Trump         TrumpInfo
	Current       *Trick // nil between tricks
	History       []Trick
	CurrentPlayer int
	DealtCount    int
}

// PlayResult reports what a Play transition did, as a convenience; every
// field is also derivable from the returned state.
type PlayResult struct {
	TrickClosed    bool
	WinnerID       int
	TrickPoints    int
	CompletedTrick *Trick
}

// NewGame assembles a dealt round. Hands must be four equal-length deals;
// attackingTeam is 0 or 1; firstPlayer leads the first trick.
func NewGame(hands []Cards, trump TrumpInfo, firstPlayer, attackingTeam int) (GameState, error) {
	if len(hands) != NumPlayers {
		return GameState{}, ErrInvariantViolation
	}
	dealt := 0
	for _, h := range hands {
		if len(h) != len(hands[0]) {
			return GameState{}, ErrInvariantViolation
		}
		dealt += len(h)
	}
	if firstPlayer < 0 || firstPlayer >= NumPlayers {
		return GameState{}, ErrInvariantViolation
	}
	players := make([]Player, NumPlayers)
	for i := range players {
		players[i] = Player{ID: i, Hand: hands[i].Clone(), Team: i % NumTeams}
	}
	teams := make([]Team, NumTeams)
	for i := range teams {
		teams[i] = Team{ID: i, Attacking: i == attackingTeam}
	}
	return GameState{
		Players:       players,
		Teams:         teams,
		Trump:         trump,
		CurrentPlayer: firstPlayer,
		DealtCount:    dealt,
	}, nil
}

// Player returns the seat with the given id.
func (s GameState) Player(id int) (Player, bool) {
	if id < 0 || id >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[id], true
}

// TeammateOf returns the seat index of a player's partner.
func (s GameState) TeammateOf(id int) int {
	return (id + 2) % len(s.Players)
}

// NextSeat returns the seat after id in turn order.
func (s GameState) NextSeat(id int) int {
	return (id + 1) % len(s.Players)
}

// RoundComplete reports whether all hands are exhausted and no trick is
// open. The scoring collaborator takes over from here with Teams and
// History.
func (s GameState) RoundComplete() bool {
	if s.Current != nil {
		return false
	}
	for _, p := range s.Players {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return len(s.History) > 0
}

// Play is the sole mutating entry point of the engine. It validates turn
// order, card ownership and follow legality, applies the play, resolves
// the trick if this was the fourth play, and returns the successor state.
// On any error the returned state is the receiver, unchanged.
func (s GameState) Play(playerID int, cards Cards) (GameState, PlayResult, error) {
	if len(cards) == 0 {
		return s, PlayResult{}, ErrEmptyMove
	}
	if playerID != s.CurrentPlayer {
		return s, PlayResult{}, ErrNotYourTurn
	}
	player, ok := s.Player(playerID)
	if !ok {
		return s, PlayResult{}, ErrIllegalPlay
	}
	if !player.Hand.ContainsAll(cards) {
		return s, PlayResult{}, ErrIllegalPlay
	}
	if err := s.checkConservation(); err != nil {
		return s, PlayResult{}, err
	}

	combo := Classify(cards, s.Trump)
	leading := s.Current == nil
	if leading {
		if combo.Type == ComboInvalid {
			return s, PlayResult{}, ErrIllegalPlay
		}
	} else {
		if err := ValidateFollow(s.Current.Lead(), cards, player.Hand, s.Trump); err != nil {
			return s, PlayResult{}, err
		}
	}

	next := s.clone()
	next.Players[playerID].Hand = next.Players[playerID].Hand.RemoveAll(cards)
	played := Play{PlayerID: playerID, Cards: cards.Clone(), Combo: combo}

	if leading {
		next.Current = &Trick{
			Plays:    []Play{played},
			Points:   cards.Points(),
			WinnerID: playerID,
		}
		next.CurrentPlayer = next.NextSeat(playerID)
		return next, PlayResult{}, nil
	}

	trick := next.Current
	trick.Plays = append(trick.Plays, played)
	trick.Points += cards.Points()
	if challenges(combo, trick.Lead()) && combo.Beats(trick.WinningPlay().Combo) {
		trick.WinnerID = playerID
	}

	if !trick.Closed(len(next.Players)) {
		next.CurrentPlayer = next.NextSeat(playerID)
		return next, PlayResult{}, nil
	}

	winner, _ := next.Player(trick.WinnerID)
	next.Teams[winner.Team].Points += trick.Points
	closed := *trick
	next.History = append(next.History, closed)
	next.Current = nil
	next.CurrentPlayer = trick.WinnerID

	if err := next.checkAfterTrick(); err != nil {
		return s, PlayResult{}, err
	}
	return next, PlayResult{
		TrickClosed:    true,
		WinnerID:       closed.WinnerID,
		TrickPoints:    closed.Points,
		CompletedTrick: &closed,
	}, nil
}

// challenges reports whether a follower's combo is even eligible to win
// against the lead: it must be a valid combo of the lead's shape.
// Disposal plays classify as ComboInvalid and can never win.
func challenges(c, lead Combo) bool {
	return c.Type == lead.Type
}

// checkConservation verifies that every dealt card is in exactly one of a
// hand, the open trick or the history.
func (s GameState) checkConservation() error {
	total := 0
	for _, p := range s.Players {
		total += len(p.Hand)
	}
	for _, t := range s.History {
		total += t.CardCount()
	}
	if s.Current != nil {
		total += s.Current.CardCount()
	}
	if total != s.DealtCount {
		return ErrInvariantViolation
	}
	return nil
}

// checkAfterTrick verifies that a just-closed trick left all hands at
// equal length and conservation intact.
func (s GameState) checkAfterTrick() error {
	for _, p := range s.Players {
		if len(p.Hand) != len(s.Players[0].Hand) {
			return ErrInvariantViolation
		}
	}
	return s.checkConservation()
}

func (s GameState) clone() GameState {
	next := s
	next.Players = make([]Player, len(s.Players))
	copy(next.Players, s.Players)
	for i := range next.Players {
		next.Players[i].Hand = s.Players[i].Hand.Clone()
	}
	next.Teams = append([]Team(nil), s.Teams...)
	next.History = append([]Trick(nil), s.History...)
	if s.Current != nil {
		next.Current = s.Current.clone()
	}
	return next
}
