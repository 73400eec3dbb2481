package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"shengji/internal/app"

	"github.com/form3tech-oss/jwt-go"
	"github.com/heroiclabs/nakama-common/runtime"
)

func vivoxTestContext(userID string) context.Context {
	return context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, userID)
}

func vivoxTokenFromResponse(t *testing.T, raw string) string {
	t.Helper()
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected token in response")
	}
	return resp.Token
}

func decodeVivoxClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
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

func TestRpcGetVivoxTokenLogin(t *testing.T) {
	t.Cleanup(func() { vivoxService = nil })
	vivoxService = app.NewVivoxService("test-secret", "issuer", "example.com")

	raw, err := RpcGetVivoxToken(vivoxTestContext("user123"), noopLogger{}, nil, nil, `{"action":"login"}`)
	if err != nil {
		t.Fatalf("RpcGetVivoxToken error: %v", err)
	}
	claims := decodeVivoxClaims(t, vivoxTokenFromResponse(t, raw), "test-secret")

	if got := claims["iss"]; got != "issuer" {
		t.Fatalf("iss = %v, want issuer", got)
	}
	if got := claims["sub"]; got != "user123" {
		t.Fatalf("sub = %v, want user123", got)
	}
	if got := claims["vxa"]; got != app.VivoxTokenActionLogin {
		t.Fatalf("vxa = %v, want %s", got, app.VivoxTokenActionLogin)
	}
	if got := claims["f"]; got != "sip:.issuer.user123.@example.com" {
		t.Fatalf("f = %v", got)
	}
	if _, ok := claims["from"]; ok {
		t.Error("token contains deprecated 'from' claim")
	}
}

func TestRpcGetVivoxTokenJoinDerivesTableChannel(t *testing.T) {
	t.Cleanup(func() { vivoxService = nil })
	vivoxService = app.NewVivoxService("test-secret", "issuer", "example.com")

	matchID := "3ea4f3c6.nakama-node-1"
	payload := fmt.Sprintf(`{"action":"join","matchId":%q}`, matchID)

	raw, err := RpcGetVivoxToken(vivoxTestContext("user123"), noopLogger{}, nil, nil, payload)
	if err != nil {
		t.Fatalf("RpcGetVivoxToken error: %v", err)
	}
	claims := decodeVivoxClaims(t, vivoxTokenFromResponse(t, raw), "test-secret")

	wantChannel := fmt.Sprintf("sip:confctl-g-%s@example.com", app.TableChannelName(matchID))
	if got := claims["t"]; got != wantChannel {
		t.Fatalf("t = %v, want %s", got, wantChannel)
	}
	if got := claims["vxa"]; got != app.VivoxTokenActionJoin {
		t.Fatalf("vxa = %v, want %s", got, app.VivoxTokenActionJoin)
	}
}

func TestRpcGetVivoxTokenRejectsBadRequests(t *testing.T) {
	t.Cleanup(func() { vivoxService = nil })
	vivoxService = app.NewVivoxService("test-secret", "issuer", "example.com")

	tests := []struct {
		name    string
		ctx     context.Context
		payload string
	}{
		{"unauthenticated", context.Background(), `{"action":"login"}`},
		{"malformed payload", vivoxTestContext("user123"), `{"action":`},
		{"join without match", vivoxTestContext("user123"), `{"action":"join"}`},
		{"unknown action", vivoxTestContext("user123"), `{"action":"broadcast"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RpcGetVivoxToken(tt.ctx, noopLogger{}, nil, nil, tt.payload); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
