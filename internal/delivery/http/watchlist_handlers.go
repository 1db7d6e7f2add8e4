package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oddsline/backend/internal/domain"
	"github.com/oddsline/backend/internal/usecase"
	"go.uber.org/zap"
)

type addWatchlistRequest struct {
	MarketID string `json:"market_id" binding:"required"`
}

type watchlistEntryResponse struct {
	ID             string    `json:"id"`
	MarketID       string    `json:"market_id"`
	MarketQuestion string    `json:"market_question"`
	CreatedAt      time.Time `json:"created_at"`
}

func mapWatchlistEntry(entry domain.WatchlistEntry) watchlistEntryResponse {
	return watchlistEntryResponse{
		ID:             entry.ID,
		MarketID:       entry.MarketID,
		MarketQuestion: entry.MarketQuestion,
		CreatedAt:      entry.CreatedAt,
	}
}

func (h Handlers) addWatchlistEntry(c *gin.Context) {
	var req addWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.Watchlist.AddMarket(c.Request.Context(), wallet(c), req.MarketID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotRegistered):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "register first"})
		case errors.Is(err, usecase.ErrMarketNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "market not found"})
		case errors.Is(err, usecase.ErrAlreadyWatching):
			c.JSON(http.StatusConflict, gin.H{"error": "market already on watchlist"})
		default:
			h.Logger.Warn("watchlist add failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusCreated, mapWatchlistEntry(*entry))
}

func (h Handlers) listWatchlist(c *gin.Context) {
	entries, err := h.Watchlist.ListMarkets(c.Request.Context(), wallet(c))
	if err != nil {
		h.Logger.Warn("watchlist list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	out := make([]watchlistEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, mapWatchlistEntry(entry))
	}
	c.JSON(http.StatusOK, gin.H{"watchlist": out})
}

func (h Handlers) removeWatchlistEntry(c *gin.Context) {
	if err := h.Watchlist.RemoveMarket(c.Request.Context(), wallet(c), c.Param("marketId")); err != nil {
		if errors.Is(err, usecase.ErrNotWatching) {
			c.JSON(http.StatusNotFound, gin.H{"error": "market not on watchlist"})
			return
		}
		h.Logger.Warn("watchlist remove failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
