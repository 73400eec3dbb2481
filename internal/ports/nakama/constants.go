package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// RpcVivoxToken is the Nakama RPC id clients call to obtain a voice chat token.
	RpcVivoxToken = "get_vivox_token"

	// MatchNameShengji is the authoritative match handler name registered with Nakama.
	MatchNameShengji = "shengji_match"

	// MatchLabelKey_OpenSeats is the label key carrying the open seat count.
	MatchLabelKey_OpenSeats = "open"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartRound int64 = 1
	OpPlayCards  int64 = 2

	// Server -> Client events
	OpMatchState     int64 = 101
	OpRoundStarted   int64 = 102
	OpHandDealt      int64 = 103 // send privately
	OpCardPlayed     int64 = 104
	OpTrickCompleted int64 = 105
	OpRoundEnded     int64 = 106
	OpGameError      int64 = 201
)
