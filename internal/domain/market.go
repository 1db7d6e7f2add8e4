package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrMarketNotFound = errors.New("market not found")

// PriceQuote is an ephemeral snapshot of a market's current price. Prices
// are normalized probabilities in [0,1]. Quotes are fetched fresh every
// check cycle and never cached.
type PriceQuote struct {
	MarketID string
	Question string
	Price    decimal.Decimal
	BestBid  *decimal.Decimal
	BestAsk  *decimal.Decimal
}

type MarketSummary struct {
	MarketID      string
	Slug          string
	Question      string
	OutcomePrices []string
	Volume        *decimal.Decimal
	Active        bool
}

type MarketFilter struct {
	Search string
	Limit  int
	Offset int
}

type MarketClient interface {
	GetMarket(ctx context.Context, marketID string) (*PriceQuote, error)
	ListMarkets(ctx context.Context, filter MarketFilter) ([]MarketSummary, error)
}
