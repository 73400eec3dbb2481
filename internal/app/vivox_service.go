package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

const (
	VivoxTokenActionLogin = "login"
	VivoxTokenActionJoin  = "join"

	// tableChannelPrefix namespaces voice channels so every game table
	// gets its own positional channel keyed by the Nakama match ID.
	tableChannelPrefix = "sj-table-"

	vivoxTokenLifetime = time.Hour
)

// VivoxService signs Vivox access tokens for table voice chat. Login
// tokens target the user's own URI; join tokens target a table channel.
type VivoxService struct {
	secret string
	issuer string
	domain string
}

func NewVivoxService(secret, issuer, domain string) *VivoxService {
	return &VivoxService{secret: secret, issuer: issuer, domain: domain}
}

// TableChannelName maps a Nakama match ID onto its voice channel name.
func TableChannelName(matchID string) string {
	return tableChannelPrefix + matchID
}

// GenerateTableToken issues a join token for the voice channel of the
// given table.
func (s *VivoxService) GenerateTableToken(user, matchID string) (string, error) {
	if matchID == "" {
		return "", fmt.Errorf("match id is required for table tokens")
	}
	return s.GenerateToken(user, VivoxTokenActionJoin, TableChannelName(matchID))
}

// GenerateToken signs a token for the given action. The vxi claim is a
// per-token nonce; Vivox rejects token reuse.
func (s *VivoxService) GenerateToken(user, action, channelName string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("vivox service is nil")
	}
	if user == "" {
		return "", fmt.Errorf("user is required")
	}
	if s.secret == "" || s.issuer == "" || s.domain == "" {
		return "", fmt.Errorf("vivox config is incomplete")
	}

	userURI := s.userURI(user)
	targetURI, err := s.targetURI(action, channelName, userURI)
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": user,
		"exp": time.Now().Add(vivoxTokenLifetime).Unix(),
		"vxa": action,
		"vxi": fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Int63()),
		"f":   userURI,
		"t":   targetURI,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *VivoxService) userURI(user string) string {
	return "sip:." + s.issuer + "." + user + ".@" + s.domain
}

func (s *VivoxService) channelURI(channelName string) string {
	return "sip:confctl-g-" + channelName + "@" + s.domain
}

func (s *VivoxService) targetURI(action, channelName, userURI string) (string, error) {
	switch action {
	case VivoxTokenActionLogin:
		return userURI, nil
	case VivoxTokenActionJoin:
		if channelName == "" {
			return "", fmt.Errorf("channel name is required for join tokens")
		}
		return s.channelURI(channelName), nil
	default:
		return "", fmt.Errorf("unsupported vivox action: %s", action)
	}
}
