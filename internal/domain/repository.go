package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")
var ErrAlreadyExists = errors.New("already exists")

type AlertRepository interface {
	Create(ctx context.Context, alert *Alert) error
	GetByID(ctx context.Context, id string) (*Alert, error)
	ListByWallet(ctx context.Context, wallet string) ([]Alert, error)
	ListActive(ctx context.Context) ([]Alert, error)
	Update(ctx context.Context, id string, update AlertUpdate) (*Alert, error)
	Delete(ctx context.Context, wallet string, id string) error
}

type UserRepository interface {
	GetByWallet(ctx context.Context, wallet string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}

type WatchlistRepository interface {
	Add(ctx context.Context, entry *WatchlistEntry) error
	ListByWallet(ctx context.Context, wallet string) ([]WatchlistEntry, error)
	Remove(ctx context.Context, wallet string, marketID string) error
}

type SignalRepository interface {
	Create(ctx context.Context, signal *Signal) error
	ListByWallet(ctx context.Context, wallet string) ([]Signal, error)
}
