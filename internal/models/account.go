package models

import (
	"time"

	"gorm.io/gorm"

	"opal/internal/money"
)

// Account statuses
const (
	AccountStatusActive = "active"
	AccountStatusClosed = "closed"
)

// Account is a custodial wallet account. The balance is held in integer minor
// units and is only ever mutated through the movement engine's conditional
// updates; it must never be observed below zero.
type Account struct {
	ID                uint         `gorm:"primarykey"`
	WalletNumber      string       `gorm:"type:varchar(36);uniqueIndex;not null"`
	Name              string       `gorm:"not null"`
	Phone             string       `gorm:"uniqueIndex;not null"`
	Email             *string      `gorm:"uniqueIndex"` // NULL when not provided, so email-less accounts never collide
	PINHash           string       `gorm:"not null"`
	Balance           money.Amount `gorm:"not null;default:0"`
	Status            string       `gorm:"default:'active'"`
	FailedPINAttempts int          `gorm:"default:0"`
	LockedUntil       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"` // accounts are soft-retained for audit
}

// Locked reports whether the account is under a failed-PIN lockout at now.
func (a *Account) Locked(now time.Time) bool {
	return a.LockedUntil != nil && now.Before(*a.LockedUntil)
}
