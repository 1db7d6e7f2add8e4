package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/oddsline/backend/internal/domain"
	"go.uber.org/zap"
)

type GammaClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewGammaClient(baseURL string, timeout time.Duration, logger *zap.Logger) *GammaClient {
	return &GammaClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// GetMarket resolves a market by condition id and returns its current price
// quote. Returns domain.ErrMarketNotFound when the id no longer resolves.
func (c *GammaClient) GetMarket(ctx context.Context, marketID string) (*domain.PriceQuote, error) {
	endpoint := fmt.Sprintf("%s/markets?condition_ids=%s", c.baseURL, url.QueryEscape(marketID))

	var markets []gammaMarket
	if err := c.getJSON(ctx, endpoint, &markets); err != nil {
		return nil, err
	}
	if len(markets) == 0 {
		return nil, domain.ErrMarketNotFound
	}

	market := markets[0]
	price, ok := market.currentPrice()
	if !ok {
		return nil, fmt.Errorf("market %s has no usable price", marketID)
	}

	quote := &domain.PriceQuote{
		MarketID: marketID,
		Question: market.Question,
		Price:    price,
	}
	if market.BestBid.Valid {
		value := market.BestBid.Decimal
		quote.BestBid = &value
	}
	if market.BestAsk.Valid {
		value := market.BestAsk.Decimal
		quote.BestAsk = &value
	}
	return quote, nil
}

func (c *GammaClient) ListMarkets(ctx context.Context, filter domain.MarketFilter) ([]domain.MarketSummary, error) {
	params := url.Values{}
	params.Set("active", "true")
	params.Set("closed", "false")
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	params.Set("limit", strconv.Itoa(limit))
	if filter.Offset > 0 {
		params.Set("offset", strconv.Itoa(filter.Offset))
	}
	if filter.Search != "" {
		params.Set("slug", filter.Search)
	}
	endpoint := fmt.Sprintf("%s/markets?%s", c.baseURL, params.Encode())

	var markets []gammaMarket
	if err := c.getJSON(ctx, endpoint, &markets); err != nil {
		return nil, err
	}

	summaries := make([]domain.MarketSummary, 0, len(markets))
	for _, market := range markets {
		summary := domain.MarketSummary{
			MarketID:      market.ConditionID,
			Slug:          market.Slug,
			Question:      market.Question,
			OutcomePrices: []string(market.OutcomePrices),
			Active:        market.Active,
		}
		if market.Volume.Valid {
			value := market.Volume.Decimal
			summary.Volume = &value
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (c *GammaClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	start := time.Now()
	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Warn("gamma request failed", zap.String("url", endpoint), zap.Error(err))
		return err
	}
	defer response.Body.Close()

	c.logger.Debug(
		"gamma request complete",
		zap.String("url", endpoint),
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if response.StatusCode == http.StatusNotFound {
		return domain.ErrMarketNotFound
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("gamma error: status %d", response.StatusCode)
	}

	return json.NewDecoder(response.Body).Decode(out)
}
