package onboarding

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

type profileUpdate struct {
	userID      string
	username    string
	displayName string
}

type stubAccounts struct {
	updateErr error
	updates   []profileUpdate
}

func (s *stubAccounts) UpdateProfile(ctx context.Context, userID, username, displayName string) error {
	s.updates = append(s.updates, profileUpdate{userID: userID, username: username, displayName: displayName})
	return s.updateErr
}

type bonusGrant struct {
	userID   string
	amount   int64
	metadata map[string]interface{}
}

type stubBonuses struct {
	grantErr error
	granted  bool
	grants   []bonusGrant
}

func (s *stubBonuses) GrantWelcomeBonusOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error) {
	s.grants = append(s.grants, bonusGrant{userID: userID, amount: amount, metadata: metadata})
	if s.grantErr != nil {
		return false, s.grantErr
	}
	return s.granted, nil
}

func newTestService(accounts *stubAccounts, bonuses *stubBonuses) *Service {
	return NewService(accounts, bonuses, rand.New(rand.NewSource(7)))
}

func TestOnboardNewUserGrantsStartingGold(t *testing.T) {
	accounts := &stubAccounts{}
	bonuses := &stubBonuses{granted: true}
	service := newTestService(accounts, bonuses)

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if result.ProfileUpdateErr != nil {
		t.Fatalf("expected no profile update error, got %v", result.ProfileUpdateErr)
	}
	if !result.WelcomeBonusGranted {
		t.Fatal("expected welcome bonus to be marked as granted")
	}

	if len(bonuses.grants) != 1 {
		t.Fatalf("expected 1 welcome bonus grant, got %d", len(bonuses.grants))
	}
	grant := bonuses.grants[0]
	if grant.userID != "user-1" {
		t.Fatalf("grant user = %s, want user-1", grant.userID)
	}
	if grant.amount != defaultWelcomeBonusGold {
		t.Fatalf("grant amount = %d, want %d", grant.amount, defaultWelcomeBonusGold)
	}
	if grant.metadata["reason"] != "welcome_bonus" {
		t.Fatalf("grant reason = %v, want welcome_bonus", grant.metadata["reason"])
	}
}

func TestOnboardNewUserAssignsFriendlyName(t *testing.T) {
	accounts := &stubAccounts{}
	service := newTestService(accounts, &stubBonuses{granted: true})

	if _, err := service.OnboardNewUser(context.Background(), "user-1"); err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}

	if len(accounts.updates) != 1 {
		t.Fatalf("expected 1 profile update, got %d", len(accounts.updates))
	}
	update := accounts.updates[0]
	if update.userID != "user-1" {
		t.Fatalf("update user = %s, want user-1", update.userID)
	}
	if update.displayName == "" {
		t.Fatal("expected a generated display name")
	}
	// New accounts log in as their display name until they pick a handle.
	if update.username != update.displayName {
		t.Fatalf("username %s must match display name %s", update.username, update.displayName)
	}
}

func TestOnboardNewUserProfileFailureStillGrantsBonus(t *testing.T) {
	bonuses := &stubBonuses{granted: true}
	service := newTestService(&stubAccounts{updateErr: errors.New("update failed")}, bonuses)

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if result.ProfileUpdateErr == nil {
		t.Fatal("expected profile update error to be captured")
	}
	if len(bonuses.grants) != 1 {
		t.Fatalf("expected 1 welcome bonus grant, got %d", len(bonuses.grants))
	}
	if !result.WelcomeBonusGranted {
		t.Fatal("expected welcome bonus to be marked as granted")
	}
}

func TestOnboardNewUserBonusFailureReturnsError(t *testing.T) {
	service := newTestService(&stubAccounts{}, &stubBonuses{grantErr: errors.New("wallet failed")})

	if _, err := service.OnboardNewUser(context.Background(), "user-1"); err == nil {
		t.Fatal("expected error when welcome bonus fails")
	}
}

func TestOnboardNewUserBonusAlreadyGranted(t *testing.T) {
	bonuses := &stubBonuses{granted: false}
	service := newTestService(&stubAccounts{}, bonuses)

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if result.WelcomeBonusGranted {
		t.Fatal("expected welcome bonus to be marked as already granted")
	}
}
