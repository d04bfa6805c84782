package repositories

import (
	"time"

	"opal/internal/models"
	"opal/internal/money"
)

// AccountRepository owns all reads and mutations of account records. Debit
// and Credit are the only balance mutators and both are single conditional
// UPDATE statements, so concurrent movements against one account serialize in
// the database without any application-level locking.
type AccountRepository interface {
	Create(account *models.Account) error
	GetByID(id uint) (*models.Account, error)
	GetByPhone(phone string) (*models.Account, error)
	// GetByIdentifier resolves a wallet number, phone or email.
	GetByIdentifier(identifier string) (*models.Account, error)
	GetBalance(id uint) (money.Amount, error)

	// Debit atomically checks balance >= amount and decrements. Returns
	// ErrInsufficientFunds when the guard fails and ErrAccountNotFound when
	// the account does not exist.
	Debit(id uint, amount money.Amount) error
	// Credit atomically increments; it succeeds whenever the account exists.
	Credit(id uint, amount money.Amount) error

	// RecordFailedPIN increments the consecutive-failure counter and, once it
	// reaches lockAfter, sets a lock expiring lockFor from now. Returns the
	// new counter value.
	RecordFailedPIN(id uint, lockAfter int, lockFor time.Duration, now time.Time) (int, error)
	// ResetFailedPIN clears the counter and any lock after a successful login.
	ResetFailedPIN(id uint) error
}
