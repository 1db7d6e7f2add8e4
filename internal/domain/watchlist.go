package domain

import "time"

// WatchlistEntry pins a market to a user's watchlist. The question is a
// denormalized snapshot, same as on Alert.
type WatchlistEntry struct {
	ID             string
	WalletAddress  string
	MarketID       string
	MarketQuestion string
	CreatedAt      time.Time
}
