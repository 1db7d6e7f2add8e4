package polymarket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oddsline/backend/internal/domain"
	"go.uber.org/zap"
)

func TestGetMarket(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("condition_ids") != "0xcond" {
			w.Write([]byte("[]"))
			return
		}
		w.Write([]byte(`[{
			"id": "123",
			"conditionId": "0xcond",
			"slug": "will-it-rain",
			"question": "Will it rain tomorrow?",
			"active": true,
			"outcomes": "[\"Yes\", \"No\"]",
			"outcomePrices": "[\"0.62\", \"0.38\"]",
			"bestBid": "0.61",
			"bestAsk": "0.63",
			"lastTradePrice": 0.62
		}]`))
	}))
	defer server.Close()

	client := NewGammaClient(server.URL, 5*time.Second, zap.NewNop())

	quote, err := client.GetMarket(context.Background(), "0xcond")
	if err != nil {
		t.Fatalf("GetMarket failed: %v", err)
	}
	if quote.Question != "Will it rain tomorrow?" {
		t.Errorf("question = %q", quote.Question)
	}
	if quote.Price.String() != "0.62" {
		t.Errorf("price = %s, want 0.62", quote.Price)
	}
	if quote.BestBid == nil || quote.BestBid.String() != "0.61" {
		t.Errorf("best bid = %v, want 0.61", quote.BestBid)
	}

	if _, err := client.GetMarket(context.Background(), "0xmissing"); !errors.Is(err, domain.ErrMarketNotFound) {
		t.Errorf("missing market error = %v, want ErrMarketNotFound", err)
	}
}

func TestCurrentPriceFallbacks(t *testing.T) {
	var withOutcomesOnly gammaMarket
	if err := json.Unmarshal([]byte(`{"outcomePrices": "[\"0.25\", \"0.75\"]"}`), &withOutcomesOnly); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	price, ok := withOutcomesOnly.currentPrice()
	if !ok || price.String() != "0.25" {
		t.Errorf("outcome fallback price = %s ok=%v, want 0.25", price, ok)
	}

	var withBidAsk gammaMarket
	if err := json.Unmarshal([]byte(`{"bestBid": "0.40", "bestAsk": "0.50"}`), &withBidAsk); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	price, ok = withBidAsk.currentPrice()
	if !ok || price.String() != "0.45" {
		t.Errorf("midpoint price = %s ok=%v, want 0.45", price, ok)
	}

	var empty gammaMarket
	if err := json.Unmarshal([]byte(`{"question": "no prices here"}`), &empty); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if _, ok := empty.currentPrice(); ok {
		t.Error("market without prices should have no usable price")
	}
}

func TestStringListDecoding(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int
	}{
		{"plain array", `["Yes","No"]`, 2},
		{"stringified array", `"[\"Yes\", \"No\"]"`, 2},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var list StringList
			if err := json.Unmarshal([]byte(tc.in), &list); err != nil {
				t.Fatalf("decode %s failed: %v", tc.in, err)
			}
			if len(list) != tc.want {
				t.Errorf("len = %d, want %d", len(list), tc.want)
			}
		})
	}
}
