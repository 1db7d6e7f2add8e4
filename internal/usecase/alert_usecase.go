package usecase

import (
	"context"
	"errors"

	"github.com/oddsline/backend/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrUserNotRegistered = errors.New("user not registered")
	ErrInvalidCondition  = errors.New("invalid condition")
	ErrInvalidPrice      = errors.New("invalid target price")
	ErrAlertNotFound     = errors.New("alert not found")
	ErrAlertFinalized    = errors.New("alert already triggered or cancelled")
	ErrMarketNotFound    = errors.New("market not found")
)

var (
	priceFloor   = decimal.Zero
	priceCeiling = decimal.NewFromInt(1)
)

type AlertUsecase struct {
	users  domain.UserRepository
	alerts domain.AlertRepository
	market domain.MarketClient
}

func NewAlertUsecase(users domain.UserRepository, alerts domain.AlertRepository, market domain.MarketClient) *AlertUsecase {
	return &AlertUsecase{users: users, alerts: alerts, market: market}
}

// CreateAlert validates the condition and price bounds up front, so
// malformed alerts never reach the checker, and snapshots the market
// question at creation time.
func (u *AlertUsecase) CreateAlert(ctx context.Context, wallet, marketID string, condition domain.AlertCondition, target decimal.Decimal, note string) (*domain.Alert, error) {
	if _, err := u.users.GetByWallet(ctx, wallet); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotRegistered
		}
		return nil, err
	}

	if !domain.ValidCondition(condition) {
		return nil, ErrInvalidCondition
	}
	if target.Cmp(priceFloor) < 0 || target.Cmp(priceCeiling) > 0 {
		return nil, ErrInvalidPrice
	}

	quote, err := u.market.GetMarket(ctx, marketID)
	if err != nil {
		if errors.Is(err, domain.ErrMarketNotFound) {
			return nil, ErrMarketNotFound
		}
		return nil, err
	}

	alert := &domain.Alert{
		WalletAddress:  wallet,
		MarketID:       marketID,
		MarketQuestion: quote.Question,
		TargetPrice:    target,
		Condition:      condition,
		Status:         domain.StatusActive,
		Note:           note,
	}
	if err := u.alerts.Create(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (u *AlertUsecase) ListAlerts(ctx context.Context, wallet string) ([]domain.Alert, error) {
	return u.alerts.ListByWallet(ctx, wallet)
}

func (u *AlertUsecase) GetAlert(ctx context.Context, wallet, alertID string) (*domain.Alert, error) {
	alert, err := u.alerts.GetByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	if alert.WalletAddress != wallet {
		return nil, ErrAlertNotFound
	}
	return alert, nil
}

// UpdateAlert edits the non-status fields of an active alert. Terminal
// alerts are immutable.
func (u *AlertUsecase) UpdateAlert(ctx context.Context, wallet, alertID string, target *decimal.Decimal, condition *domain.AlertCondition, note *string) (*domain.Alert, error) {
	alert, err := u.GetAlert(ctx, wallet, alertID)
	if err != nil {
		return nil, err
	}
	if alert.Status.Terminal() {
		return nil, ErrAlertFinalized
	}

	if condition != nil && !domain.ValidCondition(*condition) {
		return nil, ErrInvalidCondition
	}
	if target != nil && (target.Cmp(priceFloor) < 0 || target.Cmp(priceCeiling) > 0) {
		return nil, ErrInvalidPrice
	}

	updated, err := u.alerts.Update(ctx, alertID, domain.AlertUpdate{
		TargetPrice: target,
		Condition:   condition,
		Note:        note,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	return updated, nil
}

// CancelAlert moves an active alert to the cancelled terminal state.
func (u *AlertUsecase) CancelAlert(ctx context.Context, wallet, alertID string) (*domain.Alert, error) {
	alert, err := u.GetAlert(ctx, wallet, alertID)
	if err != nil {
		return nil, err
	}
	if alert.Status.Terminal() {
		return nil, ErrAlertFinalized
	}

	cancelled := domain.StatusCancelled
	updated, err := u.alerts.Update(ctx, alertID, domain.AlertUpdate{Status: &cancelled})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (u *AlertUsecase) DeleteAlert(ctx context.Context, wallet, alertID string) error {
	if err := u.alerts.Delete(ctx, wallet, alertID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrAlertNotFound
		}
		return err
	}
	return nil
}
