package app

import (
	"fmt"
	"testing"

	"github.com/form3tech-oss/jwt-go"
)

const (
	vivoxTestSecret = "test-secret"
	vivoxTestIssuer = "issuer"
	vivoxTestDomain = "example.com"
)

func TestVivoxServiceLoginToken(t *testing.T) {
	user := "user123"
	svc := NewVivoxService(vivoxTestSecret, vivoxTestIssuer, vivoxTestDomain)

	tokenString, err := svc.GenerateToken(user, VivoxTokenActionLogin, "")
	if err != nil {
		t.Fatalf("generate login token error: %v", err)
	}

	claims := parseVivoxClaims(t, tokenString, vivoxTestSecret)
	userURI := fmt.Sprintf("sip:.%s.%s.@%s", vivoxTestIssuer, user, vivoxTestDomain)

	if got := stringClaim(t, claims, "vxa"); got != VivoxTokenActionLogin {
		t.Fatalf("vxa = %s, want %s", got, VivoxTokenActionLogin)
	}
	if got := stringClaim(t, claims, "f"); got != userURI {
		t.Fatalf("f = %s, want %s", got, userURI)
	}
	// Login tokens target the user's own URI.
	if got := stringClaim(t, claims, "t"); got != userURI {
		t.Fatalf("t = %s, want %s", got, userURI)
	}
	if got := stringClaim(t, claims, "sub"); got != user {
		t.Fatalf("sub = %s, want %s", got, user)
	}
	if _, ok := claims["from"]; ok {
		t.Fatal("token must not carry the legacy from claim")
	}
}

func TestVivoxServiceTableToken(t *testing.T) {
	user := "user123"
	matchID := "match-456.node-1"
	svc := NewVivoxService(vivoxTestSecret, vivoxTestIssuer, vivoxTestDomain)

	tokenString, err := svc.GenerateTableToken(user, matchID)
	if err != nil {
		t.Fatalf("generate table token error: %v", err)
	}

	claims := parseVivoxClaims(t, tokenString, vivoxTestSecret)
	channelURI := fmt.Sprintf("sip:confctl-g-sj-table-%s@%s", matchID, vivoxTestDomain)

	if got := stringClaim(t, claims, "vxa"); got != VivoxTokenActionJoin {
		t.Fatalf("vxa = %s, want %s", got, VivoxTokenActionJoin)
	}
	if got := stringClaim(t, claims, "t"); got != channelURI {
		t.Fatalf("t = %s, want %s", got, channelURI)
	}
}

func TestVivoxServiceTokenNoncesDiffer(t *testing.T) {
	svc := NewVivoxService(vivoxTestSecret, vivoxTestIssuer, vivoxTestDomain)

	first, err := svc.GenerateToken("user123", VivoxTokenActionLogin, "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.GenerateToken("user123", VivoxTokenActionLogin, "")
	if err != nil {
		t.Fatal(err)
	}

	vxi1 := stringClaim(t, parseVivoxClaims(t, first, vivoxTestSecret), "vxi")
	vxi2 := stringClaim(t, parseVivoxClaims(t, second, vivoxTestSecret), "vxi")
	if vxi1 == vxi2 {
		t.Fatalf("vxi must be unique per token, got %s twice", vxi1)
	}
}

func TestVivoxServiceRejections(t *testing.T) {
	svc := NewVivoxService(vivoxTestSecret, vivoxTestIssuer, vivoxTestDomain)

	tests := []struct {
		name string
		call func() (string, error)
	}{
		{"unknown action", func() (string, error) {
			return svc.GenerateToken("user", "broadcast", "")
		}},
		{"join without channel", func() (string, error) {
			return svc.GenerateToken("user", VivoxTokenActionJoin, "")
		}},
		{"table token without match id", func() (string, error) {
			return svc.GenerateTableToken("user", "")
		}},
		{"missing user", func() (string, error) {
			return svc.GenerateToken("", VivoxTokenActionLogin, "")
		}},
		{"incomplete config", func() (string, error) {
			return NewVivoxService("", vivoxTestIssuer, vivoxTestDomain).GenerateToken("user", VivoxTokenActionLogin, "")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.call(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func parseVivoxClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if !token.Valid {
		t.Fatal("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not map claims")
	}
	return claims
}

func stringClaim(t *testing.T, claims jwt.MapClaims, name string) string {
	t.Helper()
	value, ok := claims[name]
	if !ok {
		t.Fatalf("missing %s claim", name)
	}
	str, ok := value.(string)
	if !ok {
		t.Fatalf("%s claim is not a string", name)
	}
	return str
}
