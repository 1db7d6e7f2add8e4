package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/oddsline/backend/internal/domain"
	"go.uber.org/zap"
)

// MarketHandler is a thin pass-through over the market data provider, plus
// a websocket endpoint that streams fresh quotes to the client app.
type MarketHandler struct {
	market         domain.MarketClient
	streamInterval time.Duration
	upgrader       websocket.Upgrader
	logger         *zap.Logger
}

func NewMarketHandler(market domain.MarketClient, streamInterval time.Duration, logger *zap.Logger) *MarketHandler {
	return &MarketHandler{
		market:         market,
		streamInterval: streamInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

func (h *MarketHandler) ListMarkets(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	filter := domain.MarketFilter{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}

	markets, err := h.market.ListMarkets(c.Request.Context(), filter)
	if err != nil {
		h.logger.Warn("market list failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "market data unavailable"})
		return
	}

	out := make([]marketSummaryResponse, 0, len(markets))
	for _, market := range markets {
		out = append(out, mapMarketSummary(market))
	}
	c.JSON(http.StatusOK, gin.H{"markets": out})
}

type marketSummaryResponse struct {
	MarketID      string   `json:"market_id"`
	Slug          string   `json:"slug"`
	Question      string   `json:"question"`
	OutcomePrices []string `json:"outcome_prices,omitempty"`
	Volume        *string  `json:"volume,omitempty"`
	Active        bool     `json:"active"`
}

func mapMarketSummary(market domain.MarketSummary) marketSummaryResponse {
	out := marketSummaryResponse{
		MarketID:      market.MarketID,
		Slug:          market.Slug,
		Question:      market.Question,
		OutcomePrices: market.OutcomePrices,
		Active:        market.Active,
	}
	if market.Volume != nil {
		value := market.Volume.String()
		out.Volume = &value
	}
	return out
}

func (h *MarketHandler) GetMarket(c *gin.Context) {
	quote, err := h.market.GetMarket(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrMarketNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "market not found"})
			return
		}
		h.logger.Warn("market quote failed", zap.String("market_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "market data unavailable"})
		return
	}
	c.JSON(http.StatusOK, mapQuote(quote))
}

type quoteMessage struct {
	MarketID string  `json:"market_id"`
	Question string  `json:"question"`
	Price    string  `json:"price"`
	BestBid  *string `json:"best_bid,omitempty"`
	BestAsk  *string `json:"best_ask,omitempty"`
	At       string  `json:"at"`
}

func mapQuote(quote *domain.PriceQuote) quoteMessage {
	msg := quoteMessage{
		MarketID: quote.MarketID,
		Question: quote.Question,
		Price:    quote.Price.String(),
		At:       time.Now().UTC().Format(time.RFC3339),
	}
	if quote.BestBid != nil {
		value := quote.BestBid.String()
		msg.BestBid = &value
	}
	if quote.BestAsk != nil {
		value := quote.BestAsk.String()
		msg.BestAsk = &value
	}
	return msg
}

// StreamPrices upgrades the connection and pushes a quote for one market at
// a fixed period until the client disconnects.
func (h *MarketHandler) StreamPrices(c *gin.Context) {
	marketID := c.Param("id")
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.logger.Info("price stream opened", zap.String("market_id", marketID))
	ctx := c.Request.Context()

	// Drain client frames so close/ping handling keeps working.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.streamInterval)
	defer ticker.Stop()

	for {
		quote, err := h.market.GetMarket(ctx, marketID)
		if err != nil {
			h.logger.Warn("price stream fetch failed", zap.String("market_id", marketID), zap.Error(err))
		} else if err := conn.WriteJSON(mapQuote(quote)); err != nil {
			h.logger.Info("price stream closed", zap.String("market_id", marketID))
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
