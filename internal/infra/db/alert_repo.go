package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oddsline/backend/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	model := mapAlertToModel(*alert)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	alert.CreatedAt = model.CreatedAt
	alert.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *AlertRepository) GetByID(ctx context.Context, id string) (*domain.Alert, error) {
	var model alertModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mapAlertToDomain(model)
}

func (r *AlertRepository) ListByWallet(ctx context.Context, wallet string) ([]domain.Alert, error) {
	var models []alertModel
	if err := r.db.WithContext(ctx).Where("wallet_address = ?", wallet).Order("created_at").Find(&models).Error; err != nil {
		return nil, err
	}
	return mapAlertsToDomain(models)
}

// ListActive backs the check cycle: terminal alerts never come back from
// here, so a triggered alert is never evaluated again.
func (r *AlertRepository) ListActive(ctx context.Context) ([]domain.Alert, error) {
	var models []alertModel
	if err := r.db.WithContext(ctx).Where("status = ?", string(domain.StatusActive)).Order("created_at").Find(&models).Error; err != nil {
		return nil, err
	}
	return mapAlertsToDomain(models)
}

func (r *AlertRepository) Update(ctx context.Context, id string, update domain.AlertUpdate) (*domain.Alert, error) {
	fields := map[string]interface{}{}
	if update.Status != nil {
		fields["status"] = string(*update.Status)
	}
	if update.TargetPrice != nil {
		fields["target_price"] = update.TargetPrice.String()
	}
	if update.Condition != nil {
		fields["condition"] = string(*update.Condition)
	}
	if update.Note != nil {
		fields["note"] = *update.Note
	}
	if update.NotificationSent != nil {
		fields["notification_sent"] = *update.NotificationSent
	}
	if update.TriggeredAt != nil {
		fields["triggered_at"] = *update.TriggeredAt
	}
	if update.LastCheckedAt != nil {
		fields["last_checked_at"] = *update.LastCheckedAt
	}
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	result := r.db.WithContext(ctx).Model(&alertModel{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *AlertRepository) Delete(ctx context.Context, wallet string, id string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND wallet_address = ?", id, wallet).Delete(&alertModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapAlertsToDomain(models []alertModel) ([]domain.Alert, error) {
	alerts := make([]domain.Alert, 0, len(models))
	for _, model := range models {
		alert, err := mapAlertToDomain(model)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, *alert)
	}
	return alerts, nil
}

func mapAlertToDomain(model alertModel) (*domain.Alert, error) {
	target, err := decimal.NewFromString(model.TargetPrice)
	if err != nil {
		return nil, fmt.Errorf("alert %s has bad target price %q: %w", model.ID, model.TargetPrice, err)
	}
	var deleted *time.Time
	if model.DeletedAt.Valid {
		t := model.DeletedAt.Time
		deleted = &t
	}
	return &domain.Alert{
		ID:               model.ID,
		WalletAddress:    model.WalletAddress,
		MarketID:         model.MarketID,
		MarketQuestion:   model.MarketQuestion,
		TargetPrice:      target,
		Condition:        domain.AlertCondition(model.Condition),
		Status:           domain.AlertStatus(model.Status),
		Note:             model.Note,
		NotificationSent: model.NotificationSent,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
		TriggeredAt:      model.TriggeredAt,
		LastCheckedAt:    model.LastCheckedAt,
		DeletedAt:        deleted,
	}, nil
}

func mapAlertToModel(alert domain.Alert) alertModel {
	return alertModel{
		ID:               alert.ID,
		WalletAddress:    alert.WalletAddress,
		MarketID:         alert.MarketID,
		MarketQuestion:   alert.MarketQuestion,
		TargetPrice:      alert.TargetPrice.String(),
		Condition:        string(alert.Condition),
		Status:           string(alert.Status),
		Note:             alert.Note,
		NotificationSent: alert.NotificationSent,
		CreatedAt:        alert.CreatedAt,
		UpdatedAt:        alert.UpdatedAt,
		TriggeredAt:      alert.TriggeredAt,
		LastCheckedAt:    alert.LastCheckedAt,
	}
}
