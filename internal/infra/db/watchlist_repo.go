package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/oddsline/backend/internal/domain"
	"gorm.io/gorm"
)

type WatchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

func (r *WatchlistRepository) Add(ctx context.Context, entry *domain.WatchlistEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	model := watchlistModel{
		ID:             entry.ID,
		WalletAddress:  entry.WalletAddress,
		MarketID:       entry.MarketID,
		MarketQuestion: entry.MarketQuestion,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	entry.CreatedAt = model.CreatedAt
	return nil
}

func (r *WatchlistRepository) ListByWallet(ctx context.Context, wallet string) ([]domain.WatchlistEntry, error) {
	var models []watchlistModel
	if err := r.db.WithContext(ctx).Where("wallet_address = ?", wallet).Order("created_at").Find(&models).Error; err != nil {
		return nil, err
	}
	entries := make([]domain.WatchlistEntry, 0, len(models))
	for _, model := range models {
		entries = append(entries, domain.WatchlistEntry{
			ID:             model.ID,
			WalletAddress:  model.WalletAddress,
			MarketID:       model.MarketID,
			MarketQuestion: model.MarketQuestion,
			CreatedAt:      model.CreatedAt,
		})
	}
	return entries, nil
}

func (r *WatchlistRepository) Remove(ctx context.Context, wallet string, marketID string) error {
	result := r.db.WithContext(ctx).Where("wallet_address = ? AND market_id = ?", wallet, marketID).Delete(&watchlistModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
