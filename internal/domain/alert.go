package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AlertCondition string

const (
	ConditionAbove  AlertCondition = "above"
	ConditionBelow  AlertCondition = "below"
	ConditionEquals AlertCondition = "equals"
)

type AlertStatus string

const (
	StatusActive    AlertStatus = "active"
	StatusTriggered AlertStatus = "triggered"
	StatusCancelled AlertStatus = "cancelled"
)

// Alert is a user request to be notified when a market's price crosses a
// threshold. MarketQuestion is a snapshot taken at creation and never
// re-synced. Triggered and cancelled are terminal: an alert never goes back
// to active.
type Alert struct {
	ID               string
	WalletAddress    string
	MarketID         string
	MarketQuestion   string
	TargetPrice      decimal.Decimal
	Condition        AlertCondition
	Status           AlertStatus
	Note             string
	NotificationSent bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
	TriggeredAt      *time.Time
	LastCheckedAt    *time.Time
	DeletedAt        *time.Time
}

// AlertUpdate carries a partial update; nil fields are left untouched.
type AlertUpdate struct {
	Status           *AlertStatus
	TargetPrice      *decimal.Decimal
	Condition        *AlertCondition
	Note             *string
	NotificationSent *bool
	TriggeredAt      *time.Time
	LastCheckedAt    *time.Time
}

func (s AlertStatus) Terminal() bool {
	return s == StatusTriggered || s == StatusCancelled
}

func ValidCondition(c AlertCondition) bool {
	switch c {
	case ConditionAbove, ConditionBelow, ConditionEquals:
		return true
	}
	return false
}
