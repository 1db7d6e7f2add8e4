package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type SignalRecommendation string

const (
	RecommendBuyYes SignalRecommendation = "buy_yes"
	RecommendBuyNo  SignalRecommendation = "buy_no"
	RecommendHold   SignalRecommendation = "hold"
)

// Signal is a purchased AI-generated trading signal for one market,
// recorded with the settlement transaction that paid for it.
type Signal struct {
	ID             string
	WalletAddress  string
	MarketID       string
	MarketQuestion string
	Recommendation SignalRecommendation
	Confidence     decimal.Decimal
	Reasoning      string
	PriceAtGen     decimal.Decimal
	PaymentTx      string
	CreatedAt      time.Time
}

// SignalRequest is the market context handed to the signal provider.
type SignalRequest struct {
	MarketID     string
	Question     string
	CurrentPrice decimal.Decimal
}

type SignalResult struct {
	Recommendation SignalRecommendation
	Confidence     decimal.Decimal
	Reasoning      string
}

type SignalClient interface {
	GenerateSignal(ctx context.Context, req SignalRequest) (*SignalResult, error)
}

// PaymentClient settles a client-supplied payment payload with the
// facilitator and returns the settlement transaction hash.
type PaymentClient interface {
	Settle(ctx context.Context, payload string) (string, error)
}
