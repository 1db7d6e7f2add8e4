package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/oddsline/backend/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Client generates trading signals through an OpenAI-compatible
// chat-completions endpoint. The model is asked for a strict JSON object so
// the response can be decoded directly.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat *jsonFormat   `json:"response_format,omitempty"`
}

type jsonFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type signalPayload struct {
	Recommendation string          `json:"recommendation"`
	Confidence     decimal.Decimal `json:"confidence"`
	Reasoning      string          `json:"reasoning"`
}

func (c *Client) GenerateSignal(ctx context.Context, req domain.SignalRequest) (*domain.SignalResult, error) {
	prompt := fmt.Sprintf(
		"Market: %s\nMarket ID: %s\nCurrent YES price: %s\n\nRespond with a JSON object: {\"recommendation\": \"buy_yes\"|\"buy_no\"|\"hold\", \"confidence\": 0.0-1.0, \"reasoning\": \"...\"}",
		req.Question, req.MarketID, req.CurrentPrice.String(),
	)
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You analyze prediction markets and answer only with the requested JSON."},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &jsonFormat{Type: "json_object"},
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Warn("llm request failed", zap.String("market_id", req.MarketID), zap.Error(err))
		return nil, err
	}
	defer response.Body.Close()

	c.logger.Debug(
		"llm request complete",
		zap.String("market_id", req.MarketID),
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("llm error: status %d", response.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(response.Body).Decode(&chat); err != nil {
		return nil, err
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("llm returned no choices")
	}

	var payload signalPayload
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("decode signal payload: %w", err)
	}

	recommendation := domain.SignalRecommendation(strings.ToLower(strings.TrimSpace(payload.Recommendation)))
	switch recommendation {
	case domain.RecommendBuyYes, domain.RecommendBuyNo, domain.RecommendHold:
	default:
		return nil, fmt.Errorf("llm returned unknown recommendation %q", payload.Recommendation)
	}

	return &domain.SignalResult{
		Recommendation: recommendation,
		Confidence:     payload.Confidence,
		Reasoning:      payload.Reasoning,
	}, nil
}
