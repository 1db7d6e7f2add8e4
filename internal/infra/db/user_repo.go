package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/oddsline/backend/internal/domain"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByWallet(ctx context.Context, wallet string) (*domain.User, error) {
	var model userModel
	if err := r.db.WithContext(ctx).Where("wallet_address = ?", wallet).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mapUserToDomain(model), nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	model := mapUserToModel(*user)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	model := mapUserToModel(*user)
	result := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"display_name":    model.DisplayName,
		"notify_chat_id":  model.NotifyChatID,
		"notify_verified": model.NotifyVerified,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapUserToDomain(model userModel) *domain.User {
	var deleted *time.Time
	if model.DeletedAt.Valid {
		t := model.DeletedAt.Time
		deleted = &t
	}
	return &domain.User{
		ID:             model.ID,
		WalletAddress:  model.WalletAddress,
		DisplayName:    model.DisplayName,
		NotifyChatID:   model.NotifyChatID,
		NotifyVerified: model.NotifyVerified,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
		DeletedAt:      deleted,
	}
}

func mapUserToModel(user domain.User) userModel {
	return userModel{
		ID:             user.ID,
		WalletAddress:  user.WalletAddress,
		DisplayName:    user.DisplayName,
		NotifyChatID:   user.NotifyChatID,
		NotifyVerified: user.NotifyVerified,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}
