package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"shengji/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// goldCurrency is the single wallet key the game uses. Table stakes, the
// welcome bonus, and round settlements all move this currency.
const goldCurrency = "gold"

// NakamaEconomyAdapter implements ports.EconomyPort on Nakama's wallet API.
// The match handler uses it to show seat balances and to settle stakes when
// a round ends.
type NakamaEconomyAdapter struct {
	nk runtime.NakamaModule
}

func NewNakamaEconomyAdapter(nk runtime.NakamaModule) *NakamaEconomyAdapter {
	return &NakamaEconomyAdapter{nk: nk}
}

// GetBalance returns the user's gold balance. A wallet that has never been
// touched unmarshals to an empty map, which reads as zero gold.
func (a *NakamaEconomyAdapter) GetBalance(ctx context.Context, userID string) (int64, error) {
	account, err := a.nk.AccountGetId(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}

	var wallet map[string]int64
	if err := json.Unmarshal([]byte(account.Wallet), &wallet); err != nil {
		return 0, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}

	return wallet[goldCurrency], nil
}

// UpdateBalances applies a batch of stake settlements. Zero-amount entries
// are skipped so callers can pass the whole table without filtering.
func (a *NakamaEconomyAdapter) UpdateBalances(ctx context.Context, updates []ports.WalletUpdate) error {
	for _, update := range updates {
		if update.Amount == 0 {
			continue
		}

		changes := map[string]int64{
			goldCurrency: update.Amount,
		}

		_, _, err := a.nk.WalletUpdate(ctx, update.UserID, changes, update.Metadata, true)
		if err != nil {
			return fmt.Errorf("failed to update wallet for user %s: %w", update.UserID, err)
		}
	}
	return nil
}

var _ ports.EconomyPort = (*NakamaEconomyAdapter)(nil)
