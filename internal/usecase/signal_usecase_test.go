package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/oddsline/backend/internal/domain"
	"github.com/shopspring/decimal"
)

type fakeSignalStore struct {
	signals []domain.Signal
}

func (s *fakeSignalStore) Create(ctx context.Context, signal *domain.Signal) error {
	if signal.ID == "" {
		signal.ID = "sig-1"
	}
	s.signals = append(s.signals, *signal)
	return nil
}

func (s *fakeSignalStore) ListByWallet(ctx context.Context, wallet string) ([]domain.Signal, error) {
	var out []domain.Signal
	for _, signal := range s.signals {
		if signal.WalletAddress == wallet {
			out = append(out, signal)
		}
	}
	return out, nil
}

type fakeSignalProvider struct {
	calls  int
	result *domain.SignalResult
	err    error
}

func (p *fakeSignalProvider) GenerateSignal(ctx context.Context, req domain.SignalRequest) (*domain.SignalResult, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

type fakeFacilitator struct {
	calls int
	tx    string
	err   error
}

func (f *fakeFacilitator) Settle(ctx context.Context, payload string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.tx, nil
}

func TestPurchaseSignalRecordsSettlement(t *testing.T) {
	oracle := newFakeOracle()
	oracle.setPrice("m1", "0.55")
	oracle.question["m1"] = "Will it rain tomorrow?"
	users := newFakeUserStore(verifiedUser("0xabc"))
	store := &fakeSignalStore{}
	provider := &fakeSignalProvider{result: &domain.SignalResult{
		Recommendation: domain.RecommendBuyYes,
		Confidence:     decimal.RequireFromString("0.8"),
		Reasoning:      "momentum",
	}}
	facilitator := &fakeFacilitator{tx: "0xdeadbeef"}

	uc := NewSignalUsecase(users, store, oracle, provider, facilitator)
	signal, err := uc.PurchaseSignal(context.Background(), "0xabc", "m1", "payment-blob")
	if err != nil {
		t.Fatalf("PurchaseSignal failed: %v", err)
	}
	if signal.PaymentTx != "0xdeadbeef" {
		t.Errorf("payment tx = %q", signal.PaymentTx)
	}
	if signal.Recommendation != domain.RecommendBuyYes {
		t.Errorf("recommendation = %s", signal.Recommendation)
	}
	if !signal.PriceAtGen.Equal(decimal.RequireFromString("0.55")) {
		t.Errorf("price at generation = %s, want 0.55", signal.PriceAtGen)
	}
	if len(store.signals) != 1 {
		t.Errorf("stored %d signals, want 1", len(store.signals))
	}
}

func TestPurchaseSignalRequiresPayment(t *testing.T) {
	oracle := newFakeOracle()
	oracle.setPrice("m1", "0.55")
	users := newFakeUserStore(verifiedUser("0xabc"))
	store := &fakeSignalStore{}
	provider := &fakeSignalProvider{}
	facilitator := &fakeFacilitator{tx: "0x1"}
	uc := NewSignalUsecase(users, store, oracle, provider, facilitator)

	if _, err := uc.PurchaseSignal(context.Background(), "0xabc", "m1", ""); !errors.Is(err, ErrPaymentRequired) {
		t.Errorf("empty payload error = %v, want ErrPaymentRequired", err)
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times without payment, want 0", provider.calls)
	}
}

func TestPurchaseSignalSettlesBeforeGeneration(t *testing.T) {
	oracle := newFakeOracle()
	oracle.setPrice("m1", "0.55")
	users := newFakeUserStore(verifiedUser("0xabc"))
	store := &fakeSignalStore{}
	provider := &fakeSignalProvider{}
	facilitator := &fakeFacilitator{err: errors.New("insufficient funds")}
	uc := NewSignalUsecase(users, store, oracle, provider, facilitator)

	if _, err := uc.PurchaseSignal(context.Background(), "0xabc", "m1", "payment-blob"); err == nil {
		t.Fatal("expected settlement failure to surface")
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times after failed settlement, want 0", provider.calls)
	}
	if len(store.signals) != 0 {
		t.Errorf("stored %d signals after failed settlement, want 0", len(store.signals))
	}
}
