package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"shengji/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// vivoxService is lazily built from runtime env on the first token request.
var vivoxService *app.VivoxService

// RpcGetVivoxToken issues a voice chat token for the calling user. Login
// tokens need no payload beyond the action; join tokens name the table so
// the channel is derived server-side from the match ID.
// Payload: {"action": "login" | "join", "matchId": "..."}
func RpcGetVivoxToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("Unauthenticated", 16) // UNAUTHENTICATED
	}

	var req struct {
		Action  string `json:"action"`
		MatchID string `json:"matchId"`
	}
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("Invalid payload", 3) // INVALID_ARGUMENT
	}

	if vivoxService == nil {
		env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
		issuer := env["vivox_issuer"]
		secret := env["vivox_secret"]
		domain := env["vivox_domain"]
		if issuer == "" || secret == "" || domain == "" {
			logger.Warn("Vivox credentials missing from env.")
			return "", runtime.NewError("Voice chat not configured", 9) // FAILED_PRECONDITION
		}
		vivoxService = app.NewVivoxService(secret, issuer, domain)
	}

	var token string
	var err error
	switch req.Action {
	case app.VivoxTokenActionJoin:
		token, err = vivoxService.GenerateTableToken(userID, req.MatchID)
	default:
		token, err = vivoxService.GenerateToken(userID, req.Action, "")
	}
	if err != nil {
		logger.Error("Failed to generate Vivox token: %v", err)
		return "", runtime.NewError("Invalid token request", 3)
	}

	resBytes, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return "", runtime.NewError("Internal error", 13) // INTERNAL
	}
	return string(resBytes), nil
}
