package bot

import (
	"fmt"
)

// BotLevel selects a tuning preset. All levels run the same pipeline;
// only the thresholds differ.
type BotLevel int

const (
	BotLevelEasy BotLevel = iota
	BotLevelMedium
	BotLevelHard
)

// LevelFromString maps an identity difficulty string to a level.
func LevelFromString(s string) BotLevel {
	switch s {
	case "easy":
		return BotLevelEasy
	case "hard":
		return BotLevelHard
	default:
		return BotLevelMedium
	}
}

// NewAgent builds an agent for a pooled bot identity at the given seat.
// The identity's difficulty string picks the tuning preset.
func NewAgent(userID string, seat int) (*Agent, error) {
	level := BotLevelMedium
	name := userID
	if identity, ok := IdentityOf(userID); ok {
		level = identity.Level()
		if identity.DisplayName != "" {
			name = identity.DisplayName
		}
	}
	brain, err := NewBrain(level)
	if err != nil {
		return nil, err
	}
	return &Agent{ID: userID, Name: name, Seat: seat, Strategy: brain}, nil
}

// NewBrain creates an AI brain for the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelEasy:
		return NewPipeline(CautiousTuning), nil
	case BotLevelMedium:
		return NewPipeline(DefaultTuning), nil
	case BotLevelHard:
		return NewPipeline(AggressiveTuning), nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
