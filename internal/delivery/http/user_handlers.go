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

type registerUserRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required"`
	DisplayName   string `json:"display_name"`
}

type linkContactRequest struct {
	ChatID string `json:"chat_id" binding:"required"`
}

type userResponse struct {
	WalletAddress  string    `json:"wallet_address"`
	DisplayName    string    `json:"display_name,omitempty"`
	NotifyChatID   string    `json:"notify_chat_id,omitempty"`
	NotifyVerified bool      `json:"notify_verified"`
	CreatedAt      time.Time `json:"created_at"`
}

func mapUserResponse(user *domain.User) userResponse {
	return userResponse{
		WalletAddress:  user.WalletAddress,
		DisplayName:    user.DisplayName,
		NotifyChatID:   user.NotifyChatID,
		NotifyVerified: user.NotifyVerified,
		CreatedAt:      user.CreatedAt,
	}
}

func (h Handlers) registerUser(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.Users.RegisterOrGet(c.Request.Context(), req.WalletAddress, req.DisplayName)
	if err != nil {
		h.Logger.Warn("user registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, mapUserResponse(user))
}

func (h Handlers) getProfile(c *gin.Context) {
	user, err := h.Users.GetProfile(c.Request.Context(), wallet(c))
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotRegistered) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not registered"})
			return
		}
		h.Logger.Warn("profile lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, mapUserResponse(user))
}

func (h Handlers) linkContact(c *gin.Context) {
	var req linkContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.Users.LinkContact(c.Request.Context(), wallet(c), req.ChatID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotRegistered) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not registered"})
			return
		}
		h.Logger.Warn("link contact failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, mapUserResponse(user))
}

func (h Handlers) confirmContact(c *gin.Context) {
	user, err := h.Users.ConfirmContact(c.Request.Context(), wallet(c))
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotRegistered) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not registered"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, mapUserResponse(user))
}
