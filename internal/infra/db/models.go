package db

import (
	"time"

	"gorm.io/gorm"
)

type userModel struct {
	ID             string `gorm:"primaryKey"`
	WalletAddress  string `gorm:"uniqueIndex;not null"`
	DisplayName    string `gorm:""`
	NotifyChatID   string `gorm:""`
	NotifyVerified bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

type alertModel struct {
	ID               string `gorm:"primaryKey"`
	WalletAddress    string `gorm:"index;not null"`
	MarketID         string `gorm:"index;not null"`
	MarketQuestion   string `gorm:"not null"`
	TargetPrice      string `gorm:"not null"`
	Condition        string `gorm:"not null"`
	Status           string `gorm:"index:idx_alerts_status_deleted,priority:1;not null"`
	Note             string `gorm:""`
	NotificationSent bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
	TriggeredAt      *time.Time
	LastCheckedAt    *time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index:idx_alerts_status_deleted,priority:2"`
}

// watchlistModel is hard-deleted on removal so the unique index never
// collides with a previously removed entry.
type watchlistModel struct {
	ID             string `gorm:"primaryKey"`
	WalletAddress  string `gorm:"uniqueIndex:idx_watchlist_wallet_market,priority:1;not null"`
	MarketID       string `gorm:"uniqueIndex:idx_watchlist_wallet_market,priority:2;not null"`
	MarketQuestion string `gorm:"not null"`
	CreatedAt      time.Time
}

type signalModel struct {
	ID             string `gorm:"primaryKey"`
	WalletAddress  string `gorm:"index;not null"`
	MarketID       string `gorm:"not null"`
	MarketQuestion string `gorm:"not null"`
	Recommendation string `gorm:"not null"`
	Confidence     string `gorm:"not null"`
	Reasoning      string `gorm:"type:text"`
	PriceAtGen     string `gorm:"not null"`
	PaymentTx      string `gorm:"not null"`
	CreatedAt      time.Time
}
