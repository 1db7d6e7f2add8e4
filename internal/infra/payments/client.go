package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client talks to the payment facilitator. Settlement is fully delegated:
// this service only records the returned transaction hash.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type settleRequest struct {
	Payload string `json:"payload"`
}

type settleResponse struct {
	Success     bool   `json:"success"`
	Transaction string `json:"transaction"`
	Error       string `json:"error"`
}

func (c *Client) Settle(ctx context.Context, payload string) (string, error) {
	encoded, err := json.Marshal(settleRequest{Payload: payload})
	if err != nil {
		return "", err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/settle", bytes.NewReader(encoded))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Warn("settle request failed", zap.Error(err))
		return "", err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", fmt.Errorf("facilitator error: status %d", response.StatusCode)
	}

	var result settleResponse
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return "", err
	}
	if !result.Success {
		return "", fmt.Errorf("settlement rejected: %s", result.Error)
	}

	c.logger.Info("payment settled", zap.String("transaction", result.Transaction))
	return result.Transaction, nil
}
