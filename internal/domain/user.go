package domain

import "time"

// User is keyed by wallet address; NotifyChatID is the telegram chat the
// user linked for alert delivery. Alerts are only delivered once the
// contact has been verified.
type User struct {
	ID             string
	WalletAddress  string
	DisplayName    string
	NotifyChatID   string
	NotifyVerified bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}
