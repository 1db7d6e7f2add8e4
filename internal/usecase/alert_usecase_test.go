package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/oddsline/backend/internal/domain"
)

func TestCreateAlertValidation(t *testing.T) {
	oracle := newFakeOracle()
	oracle.setPrice("m1", "0.55")
	oracle.question["m1"] = "Will it rain tomorrow?"
	users := newFakeUserStore(verifiedUser("0xabc"))
	store := newFakeAlertStore()
	uc := NewAlertUsecase(users, store, oracle)

	cases := []struct {
		name      string
		wallet    string
		marketID  string
		condition domain.AlertCondition
		target    string
		wantErr   error
	}{
		{"unregistered user", "0xnobody", "m1", domain.ConditionAbove, "0.50", ErrUserNotRegistered},
		{"unknown condition", "0xabc", "m1", domain.AlertCondition("crosses"), "0.50", ErrInvalidCondition},
		{"price above one", "0xabc", "m1", domain.ConditionAbove, "1.5", ErrInvalidPrice},
		{"negative price", "0xabc", "m1", domain.ConditionBelow, "-0.1", ErrInvalidPrice},
		{"unknown market", "0xabc", "nope", domain.ConditionAbove, "0.50", ErrMarketNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateAlert(context.Background(), tc.wallet, tc.marketID, tc.condition, dec(t, tc.target), "")
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("CreateAlert error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreateAlertSnapshotsQuestion(t *testing.T) {
	oracle := newFakeOracle()
	oracle.setPrice("m1", "0.55")
	oracle.question["m1"] = "Will it rain tomorrow?"
	users := newFakeUserStore(verifiedUser("0xabc"))
	store := newFakeAlertStore()
	uc := NewAlertUsecase(users, store, oracle)

	alert, err := uc.CreateAlert(context.Background(), "0xabc", "m1", domain.ConditionAbove, dec(t, "0.60"), "rain watch")
	if err != nil {
		t.Fatalf("CreateAlert failed: %v", err)
	}
	if alert.Status != domain.StatusActive {
		t.Errorf("status = %s, want active", alert.Status)
	}
	if alert.MarketQuestion != "Will it rain tomorrow?" {
		t.Errorf("question snapshot = %q", alert.MarketQuestion)
	}
	if alert.Note != "rain watch" {
		t.Errorf("note = %q", alert.Note)
	}

	// Boundary values are legal targets.
	for _, target := range []string{"0", "1"} {
		if _, err := uc.CreateAlert(context.Background(), "0xabc", "m1", domain.ConditionAbove, dec(t, target), ""); err != nil {
			t.Errorf("CreateAlert(target=%s) failed: %v", target, err)
		}
	}
}

func TestCancelAlertIsTerminal(t *testing.T) {
	oracle := newFakeOracle()
	users := newFakeUserStore(verifiedUser("0xabc"))
	store := newFakeAlertStore(activeAlert("a1", "0xabc", "m1", "0.50", domain.ConditionAbove))
	uc := NewAlertUsecase(users, store, oracle)

	cancelled, err := uc.CancelAlert(context.Background(), "0xabc", "a1")
	if err != nil {
		t.Fatalf("CancelAlert failed: %v", err)
	}
	if cancelled.Status != domain.StatusCancelled {
		t.Fatalf("status = %s, want cancelled", cancelled.Status)
	}

	if _, err := uc.CancelAlert(context.Background(), "0xabc", "a1"); !errors.Is(err, ErrAlertFinalized) {
		t.Errorf("second cancel error = %v, want ErrAlertFinalized", err)
	}
	condition := domain.ConditionBelow
	if _, err := uc.UpdateAlert(context.Background(), "0xabc", "a1", nil, &condition, nil); !errors.Is(err, ErrAlertFinalized) {
		t.Errorf("update after cancel error = %v, want ErrAlertFinalized", err)
	}
}

func TestAlertOwnershipEnforced(t *testing.T) {
	oracle := newFakeOracle()
	users := newFakeUserStore(verifiedUser("0xabc"), verifiedUser("0xother"))
	store := newFakeAlertStore(activeAlert("a1", "0xabc", "m1", "0.50", domain.ConditionAbove))
	uc := NewAlertUsecase(users, store, oracle)

	if _, err := uc.GetAlert(context.Background(), "0xother", "a1"); !errors.Is(err, ErrAlertNotFound) {
		t.Errorf("cross-wallet get error = %v, want ErrAlertNotFound", err)
	}
	if _, err := uc.CancelAlert(context.Background(), "0xother", "a1"); !errors.Is(err, ErrAlertNotFound) {
		t.Errorf("cross-wallet cancel error = %v, want ErrAlertNotFound", err)
	}
	if err := uc.DeleteAlert(context.Background(), "0xother", "a1"); !errors.Is(err, ErrAlertNotFound) {
		t.Errorf("cross-wallet delete error = %v, want ErrAlertNotFound", err)
	}
}

func TestUpdateAlertValidatesFields(t *testing.T) {
	oracle := newFakeOracle()
	users := newFakeUserStore(verifiedUser("0xabc"))
	store := newFakeAlertStore(activeAlert("a1", "0xabc", "m1", "0.50", domain.ConditionAbove))
	uc := NewAlertUsecase(users, store, oracle)

	bad := domain.AlertCondition("sideways")
	if _, err := uc.UpdateAlert(context.Background(), "0xabc", "a1", nil, &bad, nil); !errors.Is(err, ErrInvalidCondition) {
		t.Errorf("bad condition error = %v, want ErrInvalidCondition", err)
	}

	over := dec(t, "2")
	if _, err := uc.UpdateAlert(context.Background(), "0xabc", "a1", &over, nil, nil); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("bad price error = %v, want ErrInvalidPrice", err)
	}

	target := dec(t, "0.75")
	note := "moved the goalposts"
	updated, err := uc.UpdateAlert(context.Background(), "0xabc", "a1", &target, nil, &note)
	if err != nil {
		t.Fatalf("UpdateAlert failed: %v", err)
	}
	if !updated.TargetPrice.Equal(target) {
		t.Errorf("target = %s, want 0.75", updated.TargetPrice)
	}
	if updated.Note != note {
		t.Errorf("note = %q", updated.Note)
	}
	if updated.Status != domain.StatusActive {
		t.Errorf("status changed to %s on field update", updated.Status)
	}
}
