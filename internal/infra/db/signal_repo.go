package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/oddsline/backend/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SignalRepository struct {
	db *gorm.DB
}

func NewSignalRepository(db *gorm.DB) *SignalRepository {
	return &SignalRepository{db: db}
}

func (r *SignalRepository) Create(ctx context.Context, signal *domain.Signal) error {
	if signal.ID == "" {
		signal.ID = uuid.NewString()
	}
	model := signalModel{
		ID:             signal.ID,
		WalletAddress:  signal.WalletAddress,
		MarketID:       signal.MarketID,
		MarketQuestion: signal.MarketQuestion,
		Recommendation: string(signal.Recommendation),
		Confidence:     signal.Confidence.String(),
		Reasoning:      signal.Reasoning,
		PriceAtGen:     signal.PriceAtGen.String(),
		PaymentTx:      signal.PaymentTx,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	signal.CreatedAt = model.CreatedAt
	return nil
}

func (r *SignalRepository) ListByWallet(ctx context.Context, wallet string) ([]domain.Signal, error) {
	var models []signalModel
	if err := r.db.WithContext(ctx).Where("wallet_address = ?", wallet).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	signals := make([]domain.Signal, 0, len(models))
	for _, model := range models {
		confidence, err := decimal.NewFromString(model.Confidence)
		if err != nil {
			return nil, fmt.Errorf("signal %s has bad confidence %q: %w", model.ID, model.Confidence, err)
		}
		price, err := decimal.NewFromString(model.PriceAtGen)
		if err != nil {
			return nil, fmt.Errorf("signal %s has bad price %q: %w", model.ID, model.PriceAtGen, err)
		}
		signals = append(signals, domain.Signal{
			ID:             model.ID,
			WalletAddress:  model.WalletAddress,
			MarketID:       model.MarketID,
			MarketQuestion: model.MarketQuestion,
			Recommendation: domain.SignalRecommendation(model.Recommendation),
			Confidence:     confidence,
			Reasoning:      model.Reasoning,
			PriceAtGen:     price,
			PaymentTx:      model.PaymentTx,
			CreatedAt:      model.CreatedAt,
		})
	}
	return signals, nil
}
