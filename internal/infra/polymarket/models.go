package polymarket

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type gammaMarket struct {
	ID             string          `json:"id"`
	ConditionID    string          `json:"conditionId"`
	Slug           string          `json:"slug"`
	Question       string          `json:"question"`
	Active         bool            `json:"active"`
	Outcomes       StringList      `json:"outcomes"`
	OutcomePrices  StringList      `json:"outcomePrices"`
	Volume         NullableDecimal `json:"volumeNum"`
	BestBid        NullableDecimal `json:"bestBid"`
	BestAsk        NullableDecimal `json:"bestAsk"`
	LastTradePrice NullableDecimal `json:"lastTradePrice"`
}

// currentPrice picks the freshest price for the market's YES outcome:
// last trade when present, then the first outcome price, then the bid/ask
// midpoint.
func (m gammaMarket) currentPrice() (decimal.Decimal, bool) {
	if m.LastTradePrice.Valid {
		return m.LastTradePrice.Decimal, true
	}
	if len(m.OutcomePrices) > 0 {
		if price, err := decimal.NewFromString(strings.TrimSpace(m.OutcomePrices[0])); err == nil {
			return price, true
		}
	}
	if m.BestBid.Valid && m.BestAsk.Valid {
		two := decimal.NewFromInt(2)
		return m.BestBid.Decimal.Add(m.BestAsk.Decimal).Div(two), true
	}
	return decimal.Decimal{}, false
}

// NullableDecimal tolerates Gamma's habit of returning prices as numbers,
// strings, or null depending on the endpoint.
type NullableDecimal struct {
	Decimal decimal.Decimal
	Valid   bool
}

// StringList tolerates Gamma fields that are either a JSON array or a
// JSON-encoded array inside a string.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		*s = nil
		return nil
	}
	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return err
		}
		inner = strings.TrimSpace(inner)
		if inner == "" {
			*s = nil
			return nil
		}
		var values []string
		if err := json.Unmarshal([]byte(inner), &values); err == nil {
			*s = values
			return nil
		}
		*s = []string{inner}
		return nil
	}

	if trimmed[0] == '[' {
		var values []string
		if err := json.Unmarshal(data, &values); err != nil {
			return err
		}
		*s = values
		return nil
	}

	return fmt.Errorf("unexpected string list format: %s", trimmed)
}

func (n *NullableDecimal) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		n.Valid = false
		return nil
	}
	trimmed := strings.TrimSpace(string(data))
	if len(trimmed) == 0 {
		n.Valid = false
		return nil
	}
	if trimmed[0] == '"' && trimmed[len(trimmed)-1] == '"' {
		trimmed = strings.Trim(trimmed, "\"")
	}
	dec, err := decimal.NewFromString(trimmed)
	if err != nil {
		n.Valid = false
		return err
	}
	n.Decimal = dec
	n.Valid = true
	return nil
}

func (n NullableDecimal) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Decimal.String())
}
