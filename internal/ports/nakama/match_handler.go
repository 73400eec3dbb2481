package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"shengji/internal/app"
	"shengji/internal/bot"
	"shengji/internal/config"
	"shengji/internal/domain"
	"shengji/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// gameStartTurnTimerBonusSeconds gives the first leader extra time to read
// the freshly dealt hand before the regular turn timer applies.
const gameStartTurnTimerBonusSeconds = 5

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats          [4]string                   `json:"seats"`            // Array of user IDs, empty string means seat is empty
	OwnerSeat      int                         `json:"owner_seat"`       // Seat index of the match owner
	LastWinnerSeat int                         `json:"last_winner_seat"` // Seat that won the final trick of the previous round
	Tick           int64                       `json:"tick"`             // Current tick of the match for turn-based logic
	Presences      map[string]runtime.Presence `json:"-"`                // Map UserId -> Presence for targeted messaging
	App            *app.Service                `json:"-"`                // Round service with the game rules
	Round          *app.Round                  `json:"-"`                // Current active round (nil if in lobby)

	BotsEnabled          bool                  `json:"bots_enabled"`            // Whether AI players are allowed
	BotMinDelay          int                   `json:"bot_min_delay"`           // Min seconds a bot waits
	BotMaxDelay          int                   `json:"bot_max_delay"`           // Max seconds a bot waits
	BotAutoFillDelay     int                   `json:"bot_auto_fill_delay"`     // Seconds to wait before auto-filling with bots
	BotWaitUntil         int64                 `json:"bot_wait_until"`          // Tick when the bot should act
	LastSinglePlayerTick int64                 `json:"last_single_player_tick"` // Tick when a single player started waiting
	Bots                 map[string]*bot.Agent `json:"-"`                       // Active bot agents

	TurnSecondsRemaining int64             `json:"turn_seconds_remaining"` // Countdown before the current human is auto-played
	BaseStake            int64             `json:"base_stake"`             // Stake of the running round
	Economy              ports.EconomyPort `json:"-"`                      // Interface to Nakama wallet
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

type matchHandler struct{}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	// Load bot identities from data folder
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}

	// Load stake and timing configuration
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	state := &MatchState{
		Tick:           time.Now().Unix(),
		Presences:      make(map[string]runtime.Presence),
		App:            app.NewService(nil),
		OwnerSeat:      -1,
		LastWinnerSeat: -1,
		Bots:           make(map[string]*bot.Agent),
		Economy:        NewNakamaEconomyAdapter(nk),
	}

	// Read environment variables for bot configuration
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["shengji_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["shengji_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["shengji_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["shengji_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}

	// Defaults if not set
	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	if state.BotAutoFillDelay == 0 {
		state.BotAutoFillDelay = 5
		if cfg := config.GetGameConfig(); cfg != nil && cfg.BotAutoFillDelaySeconds > 0 {
			state.BotAutoFillDelay = cfg.BotAutoFillDelaySeconds
		}
	}

	labelBytes, err := json.Marshal(&MatchLabel{
		Open:  state.GetOpenSeatsCount(),
		State: "lobby",
		Game:  "shengji",
	})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // 1 tick per second
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Allow join if there is an empty seat OR a bot to replace (if the round hasn't started)
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Round == nil {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		// Assign seat: Try empty seats first, then bots (if lobby)
		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.Round == nil {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)

	// Broadcast the current match state to all presences after join.
	mh.broadcastMatchState(ctx, matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	ownerLeft := false
	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		for i, seatUserId := range matchState.Seats {
			if seatUserId == p.GetUserId() {
				matchState.Seats[i] = ""
				logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)

				if matchState.OwnerSeat == i {
					ownerLeft = true
				}
				break
			}
		}
	}

	newOwnerSeat := findFirstHumanSeat(matchState.Seats[:])
	if newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
		if newOwnerSeat >= 0 {
			logger.Debug("MatchLeave: Owner set to human seat %d.", newOwnerSeat)
		} else if ownerLeft {
			logger.Debug("MatchLeave: Owner left and no human owner is available.")
		}
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartRound:
			mh.handleStartRound(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCards:
			mh.handlePlayCards(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	mh.processTurnTimer(ctx, matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill lobby with bots if there's only one human player after delay
	if state.Round == nil {
		humanCount := state.GetHumanPlayerCount()
		if humanCount == app.MinHumansToStart {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				added := false
				for i, seat := range state.Seats {
					if seat == "" {
						identity := bot.GetBotIdentity(i)
						botID := identity.UserID
						state.Seats[i] = botID

						agent, err := bot.NewAgent(botID, i)
						if err != nil {
							logger.Error("Failed to create bot agent for %s: %v", botID, err)
						} else {
							state.Bots[botID] = agent
						}

						logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, botID, i)
						added = true
					}
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastMatchState(ctx, state, dispatcher, logger)
				}
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
	}

	// 2. Handle bot turns in-game
	if state.Round != nil && !state.Round.State.RoundComplete() {
		currentSeat := state.Round.State.CurrentPlayer
		currentUserID := state.Seats[currentSeat]

		if isBotUserId(currentUserID) {
			if state.BotWaitUntil == 0 {
				delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
				state.BotWaitUntil = state.Tick + int64(delay)
				logger.Debug("processBots: Bot %s (seat %d) will act at tick %d (current %d)", currentUserID, currentSeat, state.BotWaitUntil, state.Tick)
			}

			if state.Tick >= state.BotWaitUntil {
				state.BotWaitUntil = 0 // Reset for next turn

				agent, exists := state.Bots[currentUserID]
				if !exists {
					var err error
					agent, err = bot.NewAgent(currentUserID, currentSeat)
					if err != nil {
						logger.Error("processBots: Failed to create fallback agent: %v", err)
						return
					}
					state.Bots[currentUserID] = agent
				}

				move, err := agent.PlayAtSeat(state.Round.State, currentSeat)
				if err != nil {
					logger.Error("processBots: Bot %s failed to calculate move: %v", currentUserID, err)
					return
				}
				if move.FellBack {
					logger.Warn("processBots: Bot %s (seat %d) strategy produced an illegal move, played fallback.", currentUserID, currentSeat)
				}

				events, err := state.App.PlayCards(state.Round, currentUserID, move.Cards)
				if err != nil {
					logger.Error("processBots: Bot %s move rejected by rules: %v", currentUserID, err)
					return
				}
				for _, ev := range events {
					mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
				}
			}
		} else {
			// Not a bot turn, reset wait if it was set
			state.BotWaitUntil = 0
		}
	}
}

// processTurnTimer counts the current human player down and auto-plays a
// safe move for them when the timer expires.
func (mh *matchHandler) processTurnTimer(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Round == nil || state.Round.State.RoundComplete() {
		return
	}
	currentSeat := state.Round.State.CurrentPlayer
	if !isHumanSeat(state.Seats[:], currentSeat) {
		return
	}

	if state.TurnSecondsRemaining > 0 {
		state.TurnSecondsRemaining--
		return
	}

	userID := state.Seats[currentSeat]
	logger.Info("processTurnTimer: User %s (seat %d) timed out, auto-playing.", userID, currentSeat)

	brain, err := bot.NewBrain(bot.BotLevelEasy)
	if err != nil {
		logger.Error("processTurnTimer: %v", err)
		return
	}
	move, err := brain.SelectMove(state.Round.State, currentSeat)
	if err != nil {
		logger.Error("processTurnTimer: No auto-play available for seat %d: %v", currentSeat, err)
		return
	}

	events, err := state.App.PlayCards(state.Round, userID, move.Cards)
	if err != nil {
		logger.Error("processTurnTimer: Auto-play rejected for seat %d: %v", currentSeat, err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// resetTurnSecondsRemainingWithBonus restarts the human turn countdown,
// optionally extended by a one-off bonus.
func (mh *matchHandler) resetTurnSecondsRemainingWithBonus(state *MatchState, logger runtime.Logger, bonusSeconds int) {
	duration := 16
	if cfg := config.GetGameConfig(); cfg != nil && cfg.TurnDurationSeconds > 0 {
		duration = cfg.TurnDurationSeconds
	}
	state.TurnSecondsRemaining = int64(duration + bonusSeconds)
	logger.Debug("Turn timer reset to %d seconds.", state.TurnSecondsRemaining)
}

func (mh *matchHandler) broadcastMatchState(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var players []playerState
	for i, userId := range state.Seats {
		if userId == "" {
			continue
		}

		displayName := userId
		if p, exists := state.Presences[userId]; exists {
			displayName = p.GetUsername()
		} else if name := bot.DisplayNameOf(userId); name != "" {
			displayName = name
		}

		cardsRemaining := 0
		if state.Round != nil {
			cardsRemaining = len(state.Round.State.Players[i].Hand)
		}

		var balance int64
		if state.Economy != nil {
			if b, err := state.Economy.GetBalance(ctx, userId); err == nil {
				balance = b
			}
		}

		players = append(players, playerState{
			UserID:         userId,
			Seat:           i,
			IsOwner:        i == state.OwnerSeat,
			DisplayName:    displayName,
			CardsRemaining: cardsRemaining,
			Balance:        balance,
		})
	}

	snapshot := matchStateSnapshot{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Players:   players,
	}
	bytes, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("broadcastMatchState: Failed to marshal snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpMatchState, bytes, nil, nil, true)
}

func (mh *matchHandler) seatOf(state *MatchState, userID string) int {
	for i, seatUserId := range state.Seats {
		if seatUserId == userID {
			return i
		}
	}
	return -1
}

func (mh *matchHandler) handleStartRound(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := mh.seatOf(state, senderID)

	logger.Info("StartRound: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if state.Round != nil {
		logger.Warn("StartRound: A round is already running.")
		return
	}
	if senderSeat != state.OwnerSeat {
		logger.Warn("StartRound: User %s tried to start a round but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}
	if state.GetOccupiedSeatCount() < app.SeatsPerMatch {
		logger.Warn("StartRound: Cannot start with %d players. Need %d.", state.GetOccupiedSeatCount(), app.SeatsPerMatch)
		return
	}

	var request startRoundRequest
	if len(msg.GetData()) > 0 {
		if err := json.Unmarshal(msg.GetData(), &request); err != nil {
			logger.Warn("StartRound: Invalid request from %s: %v", senderID, err)
			return
		}
	}

	trump := domain.TrumpInfo{
		Rank: config.GetTrumpRank(),
		Suit: suitFromWire(request.TrumpSuit),
	}
	if !trump.Declared() {
		logger.Warn("StartRound: User %s started a round without declaring a trump suit.", senderID)
		mh.sendError(state, dispatcher, logger, senderID, 400, app.ErrTrumpNotDeclared.Error())
		return
	}

	state.BaseStake = config.GetBaseStake(request.Tier)

	// The previous round's closing trick winner leads; their opponents attack.
	firstPlayer := state.LastWinnerSeat
	if firstPlayer < 0 {
		firstPlayer = state.OwnerSeat
	}
	attackingTeam := 1 - firstPlayer%domain.NumTeams

	round, events, err := state.App.StartRound(state.Seats[:], trump, firstPlayer, attackingTeam)
	if err != nil {
		logger.Error("StartRound: Failed to start round: %v", err)
		return
	}
	state.Round = round

	mh.updateLabel(state, dispatcher, logger)
	mh.resetTurnSecondsRemainingWithBonus(state, logger, gameStartTurnTimerBonusSeconds)

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}

	logger.Info("StartRound: Round started, trump %s%s, seat %d leads.", trump.Rank, trump.Suit, firstPlayer)
}

func (mh *matchHandler) handlePlayCards(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := mh.seatOf(state, senderID)

	if state.Round == nil {
		logger.Warn("handlePlayCards: Round not started.")
		return
	}

	var request playCardsRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handlePlayCards: Failed to unmarshal request: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "malformed play request")
		return
	}

	cards := cardsFromWire(request.Cards)
	events, err := state.App.PlayCards(state.Round, senderID, cards)
	if err != nil {
		logger.Warn("handlePlayCards: User %s (seat %d) failed to play cards: %v. Requested: %v", senderID, senderSeat, err, cards)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	var payload any

	switch ev.Kind {
	case app.EventRoundStarted:
		opCode = OpRoundStarted
		p := ev.Payload.(app.RoundStartedPayload)
		payload = roundStartedEvent{
			TrumpRank:     int(p.TrumpRank),
			TrumpSuit:     p.TrumpSuit.String(),
			AttackingTeam: p.AttackingTeam,
			FirstTurnSeat: mh.seatOf(state, p.FirstTurnUserID),
		}
	case app.EventHandDealt:
		opCode = OpHandDealt
		p := ev.Payload.(app.HandDealtPayload)
		payload = handDealtEvent{
			Seat: p.Seat,
			Hand: cardsToWire(p.Hand),
		}
	case app.EventCardPlayed:
		opCode = OpCardPlayed
		p := ev.Payload.(app.CardPlayedPayload)
		payload = cardPlayedEvent{
			Seat:         p.Seat,
			Cards:        cardsToWire(p.Cards),
			NextTurnSeat: mh.seatOf(state, p.NextTurnUserID),
		}
		mh.resetTurnSecondsRemainingWithBonus(state, logger, 0)
	case app.EventTrickCompleted:
		opCode = OpTrickCompleted
		p := ev.Payload.(app.TrickCompletedPayload)
		state.LastWinnerSeat = p.WinnerSeat
		payload = trickCompletedEvent{
			WinnerSeat: p.WinnerSeat,
			Points:     p.Points,
		}
	case app.EventRoundEnded:
		opCode = OpRoundEnded
		p := ev.Payload.(app.RoundEndedPayload)
		payload = roundEndedEvent{
			TeamPoints:     p.TeamPoints[:],
			AttackingTeam:  p.AttackingTeam,
			AttackerPoints: p.AttackerPoints,
			AttackersWon:   p.AttackersWon,
			Tricks:         p.Tricks,
		}

		mh.settleStakes(ctx, state, logger, p)

		// Round ended, clear round state and update label back to lobby
		state.Round = nil
		mh.updateLabel(state, dispatcher, logger)
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If we had intended recipients but none are connected (e.g. they are bots),
		// we MUST NOT broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// settleStakes applies the round stake to each human wallet: winners gain
// the base stake minus tax, losers pay it in full.
func (mh *matchHandler) settleStakes(ctx context.Context, state *MatchState, logger runtime.Logger, outcome app.RoundEndedPayload) {
	if state.Economy == nil || state.BaseStake <= 0 {
		return
	}

	winnings := state.BaseStake
	if cfg := config.GetGameConfig(); cfg != nil && cfg.TaxRate > 0 {
		winnings -= int64(float64(winnings) * cfg.TaxRate)
	}

	updates := make([]ports.WalletUpdate, 0, len(state.Seats))
	for seat, userID := range state.Seats {
		if userID == "" || isBotUserId(userID) {
			continue
		}
		attacker := seat%domain.NumTeams == outcome.AttackingTeam
		amount := -state.BaseStake
		if attacker == outcome.AttackersWon {
			amount = winnings
		}
		updates = append(updates, ports.WalletUpdate{
			UserID: userID,
			Amount: amount,
			Metadata: map[string]interface{}{
				"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
				"reason":   "round_settlement",
			},
		})
	}
	if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
		logger.Error("Failed to update balances: %v", err)
	}
}

// sendError sends a gameErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := json.Marshal(gameErrorEvent{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal gameErrorEvent: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	matchState := "lobby"
	if state.Round != nil {
		matchState = "playing"
	}

	labelBytes, err := json.Marshal(&MatchLabel{
		Open:  state.GetOpenSeatsCount(),
		State: matchState,
		Game:  "shengji",
	})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
