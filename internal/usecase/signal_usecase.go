package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/oddsline/backend/internal/domain"
)

var ErrPaymentRequired = errors.New("payment payload missing")

type SignalUsecase struct {
	users    domain.UserRepository
	signals  domain.SignalRepository
	market   domain.MarketClient
	provider domain.SignalClient
	payments domain.PaymentClient
}

func NewSignalUsecase(users domain.UserRepository, signals domain.SignalRepository, market domain.MarketClient, provider domain.SignalClient, payments domain.PaymentClient) *SignalUsecase {
	return &SignalUsecase{users: users, signals: signals, market: market, provider: provider, payments: payments}
}

// PurchaseSignal settles the client's payment with the facilitator, then
// generates the signal from a fresh quote and records it together with the
// settlement transaction. Settlement runs first: no payment, no signal.
func (u *SignalUsecase) PurchaseSignal(ctx context.Context, wallet, marketID, paymentPayload string) (*domain.Signal, error) {
	if _, err := u.users.GetByWallet(ctx, wallet); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotRegistered
		}
		return nil, err
	}
	if paymentPayload == "" {
		return nil, ErrPaymentRequired
	}

	quote, err := u.market.GetMarket(ctx, marketID)
	if err != nil {
		if errors.Is(err, domain.ErrMarketNotFound) {
			return nil, ErrMarketNotFound
		}
		return nil, err
	}

	tx, err := u.payments.Settle(ctx, paymentPayload)
	if err != nil {
		return nil, fmt.Errorf("settle payment: %w", err)
	}

	result, err := u.provider.GenerateSignal(ctx, domain.SignalRequest{
		MarketID:     marketID,
		Question:     quote.Question,
		CurrentPrice: quote.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("generate signal: %w", err)
	}

	signal := &domain.Signal{
		WalletAddress:  wallet,
		MarketID:       marketID,
		MarketQuestion: quote.Question,
		Recommendation: result.Recommendation,
		Confidence:     result.Confidence,
		Reasoning:      result.Reasoning,
		PriceAtGen:     quote.Price,
		PaymentTx:      tx,
	}
	if err := u.signals.Create(ctx, signal); err != nil {
		return nil, err
	}
	return signal, nil
}

func (u *SignalUsecase) ListSignals(ctx context.Context, wallet string) ([]domain.Signal, error) {
	return u.signals.ListByWallet(ctx, wallet)
}
