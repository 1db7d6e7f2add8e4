package usecase

import (
	"context"
	"errors"

	"github.com/oddsline/backend/internal/domain"
)

var ErrAlreadyWatching = errors.New("market already on watchlist")
var ErrNotWatching = errors.New("market not on watchlist")

type WatchlistUsecase struct {
	users     domain.UserRepository
	watchlist domain.WatchlistRepository
	market    domain.MarketClient
}

func NewWatchlistUsecase(users domain.UserRepository, watchlist domain.WatchlistRepository, market domain.MarketClient) *WatchlistUsecase {
	return &WatchlistUsecase{users: users, watchlist: watchlist, market: market}
}

func (u *WatchlistUsecase) AddMarket(ctx context.Context, wallet, marketID string) (*domain.WatchlistEntry, error) {
	if _, err := u.users.GetByWallet(ctx, wallet); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotRegistered
		}
		return nil, err
	}

	quote, err := u.market.GetMarket(ctx, marketID)
	if err != nil {
		if errors.Is(err, domain.ErrMarketNotFound) {
			return nil, ErrMarketNotFound
		}
		return nil, err
	}

	entry := &domain.WatchlistEntry{
		WalletAddress:  wallet,
		MarketID:       marketID,
		MarketQuestion: quote.Question,
	}
	if err := u.watchlist.Add(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, ErrAlreadyWatching
		}
		return nil, err
	}
	return entry, nil
}

func (u *WatchlistUsecase) ListMarkets(ctx context.Context, wallet string) ([]domain.WatchlistEntry, error) {
	return u.watchlist.ListByWallet(ctx, wallet)
}

func (u *WatchlistUsecase) RemoveMarket(ctx context.Context, wallet, marketID string) error {
	if err := u.watchlist.Remove(ctx, wallet, marketID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrNotWatching
		}
		return err
	}
	return nil
}
