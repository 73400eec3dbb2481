package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"
)

// BotIdentity is one member of the seeded opponent pool. Difficulty maps
// onto a tuning preset, so a table filled from the pool mixes cautious
// and aggressive seats instead of four identical brains.
type BotIdentity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy", "medium", "hard"
	AvatarIndex int    `json:"avatar_index"`
}

// Level resolves the identity's difficulty string to a tuning level.
func (bi BotIdentity) Level() BotLevel {
	return LevelFromString(bi.Difficulty)
}

var (
	identityPool   []BotIdentity
	identityByUser map[string]BotIdentity
	loadOnce       sync.Once
	provisionOnce  sync.Once
	loadErr        error
)

// LoadIdentities loads the bot pool from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		if err := json.Unmarshal(data, &identityPool); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}
		rebuildIndex()
	})
	return loadErr
}

func rebuildIndex() {
	identityByUser = make(map[string]BotIdentity, len(identityPool))
	for _, identity := range identityPool {
		if identity.UserID != "" {
			identityByUser[identity.UserID] = identity
		}
	}
}

// ProvisionBots ensures the pool's accounts exist in Nakama and carry the
// is_bot metadata, so lobbies and settlement can tell them from humans.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) error {
	provisionOnce.Do(func() {
		for i := range identityPool {
			identity := &identityPool[i]
			if identity.DeviceID == "" {
				continue
			}

			userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
			if err != nil {
				logger.Error("ProvisionBots: Failed to authenticate bot %s: %v", identity.Username, err)
				continue
			}
			identity.UserID = userID
			identity.Username = username

			metadata := map[string]interface{}{
				"is_bot":       true,
				"game":         "shengji",
				"difficulty":   identity.Difficulty,
				"avatar_index": identity.AvatarIndex,
			}
			if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionBots: Failed to update bot account %s: %v", userID, err)
			}

			logger.Info("ProvisionBots: Bot %s (%s) is ready. Difficulty: %s", identity.DisplayName, userID, identity.Difficulty)
		}
		rebuildIndex()
	})
	return nil
}

// IdentityOf returns the pool identity behind a bot user ID.
func IdentityOf(userID string) (BotIdentity, bool) {
	identity, ok := identityByUser[userID]
	return identity, ok
}

// DisplayNameOf returns the table display name for a bot ID, or an empty
// string for non-bots.
func DisplayNameOf(userID string) string {
	identity, ok := identityByUser[userID]
	if !ok {
		return ""
	}
	if identity.DisplayName != "" {
		return identity.DisplayName
	}
	return identity.Username
}

// GetBotIdentity returns the pool identity for a seat index (mod pool
// size), so a full auto-filled table draws distinct opponents.
func GetBotIdentity(seat int) BotIdentity {
	if len(identityPool) == 0 {
		return BotIdentity{
			UserID:      fmt.Sprintf("bot-%d", seat),
			DisplayName: fmt.Sprintf("AI Player %d", seat),
			Difficulty:  "medium",
		}
	}
	return identityPool[seat%len(identityPool)]
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	_, ok := identityByUser[userID]
	return ok
}
