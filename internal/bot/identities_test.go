package bot

import (
	"reflect"
	"testing"
)

func seedIdentityPool(t *testing.T, pool []BotIdentity) {
	t.Helper()
	prevPool, prevIndex := identityPool, identityByUser
	t.Cleanup(func() {
		identityPool, identityByUser = prevPool, prevIndex
	})
	identityPool = pool
	rebuildIndex()
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		difficulty string
		want       BotLevel
	}{
		{"easy", BotLevelEasy},
		{"medium", BotLevelMedium},
		{"hard", BotLevelHard},
		{"", BotLevelMedium},
		{"nightmare", BotLevelMedium},
	}
	for _, tt := range tests {
		if got := LevelFromString(tt.difficulty); got != tt.want {
			t.Errorf("LevelFromString(%q) = %d, want %d", tt.difficulty, got, tt.want)
		}
	}
}

func TestNewAgentUsesIdentityDifficulty(t *testing.T) {
	seedIdentityPool(t, []BotIdentity{
		{UserID: "bot-cautious", DisplayName: "Ling", Difficulty: "easy"},
		{UserID: "bot-fierce", DisplayName: "Wei", Difficulty: "hard"},
	})

	tests := []struct {
		userID     string
		wantName   string
		wantTuning Tuning
	}{
		{"bot-cautious", "Ling", CautiousTuning},
		{"bot-fierce", "Wei", AggressiveTuning},
		// Unknown IDs fall back to the medium preset.
		{"stranger", "stranger", DefaultTuning},
	}
	for _, tt := range tests {
		agent, err := NewAgent(tt.userID, 1)
		if err != nil {
			t.Fatalf("NewAgent(%s) error: %v", tt.userID, err)
		}
		if agent.Name != tt.wantName {
			t.Errorf("NewAgent(%s).Name = %s, want %s", tt.userID, agent.Name, tt.wantName)
		}
		pipeline, ok := agent.Strategy.(*Pipeline)
		if !ok {
			t.Fatalf("NewAgent(%s).Strategy is %T, want *Pipeline", tt.userID, agent.Strategy)
		}
		if !reflect.DeepEqual(pipeline.Tuning, tt.wantTuning) {
			t.Errorf("NewAgent(%s) tuning = %+v, want %+v", tt.userID, pipeline.Tuning, tt.wantTuning)
		}
	}
}

func TestDisplayNameOf(t *testing.T) {
	seedIdentityPool(t, []BotIdentity{
		{UserID: "bot-1", Username: "bot_ling", DisplayName: "Ling"},
		{UserID: "bot-2", Username: "bot_wei"},
	})

	if got := DisplayNameOf("bot-1"); got != "Ling" {
		t.Errorf("DisplayNameOf(bot-1) = %s, want Ling", got)
	}
	// Falls back to the username when no display name is set.
	if got := DisplayNameOf("bot-2"); got != "bot_wei" {
		t.Errorf("DisplayNameOf(bot-2) = %s, want bot_wei", got)
	}
	if got := DisplayNameOf("human-1"); got != "" {
		t.Errorf("DisplayNameOf(human-1) = %s, want empty", got)
	}
}

func TestIsBotTracksPool(t *testing.T) {
	seedIdentityPool(t, []BotIdentity{{UserID: "bot-1"}})

	if !IsBot("bot-1") {
		t.Error("IsBot(bot-1) = false, want true")
	}
	if IsBot("human-1") {
		t.Error("IsBot(human-1) = true, want false")
	}
}

func TestGetBotIdentityWrapsPool(t *testing.T) {
	seedIdentityPool(t, []BotIdentity{
		{UserID: "bot-1"},
		{UserID: "bot-2"},
	})

	if got := GetBotIdentity(3).UserID; got != "bot-2" {
		t.Errorf("GetBotIdentity(3).UserID = %s, want bot-2", got)
	}

	// An empty pool still yields a playable medium-difficulty seat.
	seedIdentityPool(t, nil)
	fallback := GetBotIdentity(2)
	if fallback.UserID != "bot-2" {
		t.Errorf("fallback UserID = %s, want bot-2", fallback.UserID)
	}
	if fallback.Level() != BotLevelMedium {
		t.Errorf("fallback level = %d, want %d", fallback.Level(), BotLevelMedium)
	}
}
