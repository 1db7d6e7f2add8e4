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

type purchaseSignalRequest struct {
	MarketID       string `json:"market_id" binding:"required"`
	PaymentPayload string `json:"payment_payload" binding:"required"`
}

type signalResponse struct {
	ID             string    `json:"id"`
	MarketID       string    `json:"market_id"`
	MarketQuestion string    `json:"market_question"`
	Recommendation string    `json:"recommendation"`
	Confidence     string    `json:"confidence"`
	Reasoning      string    `json:"reasoning"`
	PriceAtGen     string    `json:"price_at_generation"`
	PaymentTx      string    `json:"payment_tx"`
	CreatedAt      time.Time `json:"created_at"`
}

func mapSignalResponse(signal domain.Signal) signalResponse {
	return signalResponse{
		ID:             signal.ID,
		MarketID:       signal.MarketID,
		MarketQuestion: signal.MarketQuestion,
		Recommendation: string(signal.Recommendation),
		Confidence:     signal.Confidence.String(),
		Reasoning:      signal.Reasoning,
		PriceAtGen:     signal.PriceAtGen.String(),
		PaymentTx:      signal.PaymentTx,
		CreatedAt:      signal.CreatedAt,
	}
}

func (h Handlers) purchaseSignal(c *gin.Context) {
	var req purchaseSignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	signal, err := h.Signals.PurchaseSignal(c.Request.Context(), wallet(c), req.MarketID, req.PaymentPayload)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotRegistered):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "register first"})
		case errors.Is(err, usecase.ErrMarketNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "market not found"})
		case errors.Is(err, usecase.ErrPaymentRequired):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "payment payload required"})
		default:
			h.Logger.Warn("signal purchase failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "signal purchase failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, mapSignalResponse(*signal))
}

func (h Handlers) listSignals(c *gin.Context) {
	signals, err := h.Signals.ListSignals(c.Request.Context(), wallet(c))
	if err != nil {
		h.Logger.Warn("signal list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	out := make([]signalResponse, 0, len(signals))
	for _, signal := range signals {
		out = append(out, mapSignalResponse(signal))
	}
	c.JSON(http.StatusOK, gin.H{"signals": out})
}
