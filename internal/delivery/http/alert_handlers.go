package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oddsline/backend/internal/domain"
	"github.com/oddsline/backend/internal/usecase"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type createAlertRequest struct {
	MarketID    string `json:"market_id" binding:"required"`
	Condition   string `json:"condition" binding:"required"`
	TargetPrice string `json:"target_price" binding:"required"`
	Note        string `json:"note"`
}

type updateAlertRequest struct {
	Condition   *string `json:"condition"`
	TargetPrice *string `json:"target_price"`
	Note        *string `json:"note"`
}

type alertResponse struct {
	ID               string     `json:"id"`
	MarketID         string     `json:"market_id"`
	MarketQuestion   string     `json:"market_question"`
	TargetPrice      string     `json:"target_price"`
	Condition        string     `json:"condition"`
	Status           string     `json:"status"`
	Note             string     `json:"note,omitempty"`
	NotificationSent bool       `json:"notification_sent"`
	CreatedAt        time.Time  `json:"created_at"`
	TriggeredAt      *time.Time `json:"triggered_at,omitempty"`
	LastCheckedAt    *time.Time `json:"last_checked_at,omitempty"`
}

func mapAlertResponse(alert domain.Alert) alertResponse {
	return alertResponse{
		ID:               alert.ID,
		MarketID:         alert.MarketID,
		MarketQuestion:   alert.MarketQuestion,
		TargetPrice:      alert.TargetPrice.String(),
		Condition:        string(alert.Condition),
		Status:           string(alert.Status),
		Note:             alert.Note,
		NotificationSent: alert.NotificationSent,
		CreatedAt:        alert.CreatedAt,
		TriggeredAt:      alert.TriggeredAt,
		LastCheckedAt:    alert.LastCheckedAt,
	}
}

func (h Handlers) createAlert(c *gin.Context) {
	var req createAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	target, err := decimal.NewFromString(req.TargetPrice)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_price must be a decimal"})
		return
	}

	alert, err := h.Alerts.CreateAlert(c.Request.Context(), wallet(c), req.MarketID, domain.AlertCondition(req.Condition), target, req.Note)
	if err != nil {
		h.alertError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapAlertResponse(*alert))
}

func (h Handlers) listAlerts(c *gin.Context) {
	alerts, err := h.Alerts.ListAlerts(c.Request.Context(), wallet(c))
	if err != nil {
		h.alertError(c, err)
		return
	}
	out := make([]alertResponse, 0, len(alerts))
	for _, alert := range alerts {
		out = append(out, mapAlertResponse(alert))
	}
	c.JSON(http.StatusOK, gin.H{"alerts": out})
}

func (h Handlers) getAlert(c *gin.Context) {
	alert, err := h.Alerts.GetAlert(c.Request.Context(), wallet(c), c.Param("id"))
	if err != nil {
		h.alertError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapAlertResponse(*alert))
}

func (h Handlers) updateAlert(c *gin.Context) {
	var req updateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var target *decimal.Decimal
	if req.TargetPrice != nil {
		parsed, err := decimal.NewFromString(*req.TargetPrice)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "target_price must be a decimal"})
			return
		}
		target = &parsed
	}
	var condition *domain.AlertCondition
	if req.Condition != nil {
		value := domain.AlertCondition(*req.Condition)
		condition = &value
	}

	alert, err := h.Alerts.UpdateAlert(c.Request.Context(), wallet(c), c.Param("id"), target, condition, req.Note)
	if err != nil {
		h.alertError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapAlertResponse(*alert))
}

func (h Handlers) cancelAlert(c *gin.Context) {
	alert, err := h.Alerts.CancelAlert(c.Request.Context(), wallet(c), c.Param("id"))
	if err != nil {
		h.alertError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapAlertResponse(*alert))
}

func (h Handlers) deleteAlert(c *gin.Context) {
	if err := h.Alerts.DeleteAlert(c.Request.Context(), wallet(c), c.Param("id")); err != nil {
		h.alertError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h Handlers) checkerStatus(c *gin.Context) {
	status := h.Checker.Status()
	c.JSON(http.StatusOK, gin.H{
		"running":     status.Running,
		"interval_ms": status.Interval.Milliseconds(),
		"description": status.Description,
	})
}

func (h Handlers) startChecker(c *gin.Context) {
	h.Checker.Start(h.RunCtx)
	c.JSON(http.StatusOK, gin.H{"status": "started"})
}

func (h Handlers) stopChecker(c *gin.Context) {
	h.Checker.Stop()
	c.JSON(http.StatusOK, gin.H{"status": "stopped"})
}

func (h Handlers) alertError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrUserNotRegistered):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "register first"})
	case errors.Is(err, usecase.ErrInvalidCondition):
		c.JSON(http.StatusBadRequest, gin.H{"error": "condition must be above, below or equals"})
	case errors.Is(err, usecase.ErrInvalidPrice):
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_price must be between 0 and 1"})
	case errors.Is(err, usecase.ErrMarketNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "market not found"})
	case errors.Is(err, usecase.ErrAlertNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
	case errors.Is(err, usecase.ErrAlertFinalized):
		c.JSON(http.StatusConflict, gin.H{"error": "alert already triggered or cancelled"})
	default:
		h.Logger.Warn("unhandled alert error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
