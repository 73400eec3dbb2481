package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"shengji/internal/domain"
)

type StakeTier struct {
	ID        string `json:"id"`
	BaseStake int64  `json:"base_stake"`
}

type GameConfig struct {
	TaxRate             float64     `json:"tax_rate"`
	DefaultTier         string      `json:"default_tier"`
	Tiers               []StakeTier `json:"tiers"`
	TurnDurationSeconds int         `json:"turn_duration_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before adding a bot to a solo human lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	// TrumpRank is the rank promoted to trump for new rounds, 3..14.
	// Rank advancement across rounds happens outside the engine; this is
	// the starting value.
	TrumpRank int `json:"trump_rank"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetTrumpRank returns the configured trump rank, defaulting to Two-less
// deck's Seven when unset or out of range.
func GetTrumpRank() domain.Rank {
	if cfg == nil || cfg.TrumpRank < int(domain.RankThree) || cfg.TrumpRank > int(domain.RankAce) {
		return domain.RankSeven
	}
	return domain.Rank(cfg.TrumpRank)
}

// GetBaseStake returns the base stake for a given tier ID, or the default if not found.
func GetBaseStake(tierID string) int64 {
	if cfg == nil {
		return 100 // Safe default
	}

	target := tierID
	if target == "" {
		target = cfg.DefaultTier
	}

	for _, tier := range cfg.Tiers {
		if tier.ID == target {
			return tier.BaseStake
		}
	}

	// Fallback to default tier if specific ID not found
	for _, tier := range cfg.Tiers {
		if tier.ID == cfg.DefaultTier {
			return tier.BaseStake
		}
	}

	return 100
}
