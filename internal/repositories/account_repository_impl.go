package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	appErrors "opal/internal/errors"
	"opal/internal/models"
	"opal/internal/money"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an AccountRepository backed by gorm.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(account *models.Account) error {
	if result := r.db.Create(account); result.Error != nil {
		return fmt.Errorf("failed to create account: %w", result.Error)
	}
	return nil
}

func (r *accountRepository) GetByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByPhone(phone string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("phone = ?", phone).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByIdentifier(identifier string) (*models.Account, error) {
	var account models.Account
	err := r.db.
		Where("wallet_number = ? OR phone = ? OR email = ?", identifier, identifier, identifier).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetBalance(id uint) (money.Amount, error) {
	account, err := r.GetByID(id)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

// Debit is a single conditional UPDATE. The balance >= amount guard makes the
// check-and-decrement indivisible; a read-then-write here would lose updates
// under concurrency.
func (r *accountRepository) Debit(id uint, amount money.Amount) error {
	if amount <= 0 {
		return appErrors.ErrInvalidAmount
	}

	result := r.db.Model(&models.Account{}).
		Where("id = ? AND balance >= ?", id, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to debit account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Either the account is missing or the guard failed.
		if _, err := r.GetByID(id); err != nil {
			return err
		}
		return appErrors.ErrInsufficientFunds
	}
	return nil
}

func (r *accountRepository) Credit(id uint, amount money.Amount) error {
	if amount <= 0 {
		return appErrors.ErrInvalidAmount
	}

	result := r.db.Model(&models.Account{}).
		Where("id = ?", id).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to credit account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) RecordFailedPIN(id uint, lockAfter int, lockFor time.Duration, now time.Time) (int, error) {
	var attempts int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Account{}).
			Where("id = ?", id).
			UpdateColumn("failed_pin_attempts", gorm.Expr("failed_pin_attempts + 1"))
		if result.Error != nil {
			return fmt.Errorf("failed to record failed attempt: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return appErrors.ErrAccountNotFound
		}

		var account models.Account
		if err := tx.First(&account, id).Error; err != nil {
			return fmt.Errorf("failed to reload account: %w", err)
		}
		attempts = account.FailedPINAttempts

		if attempts >= lockAfter {
			until := now.Add(lockFor)
			if err := tx.Model(&models.Account{}).
				Where("id = ?", id).
				UpdateColumn("locked_until", until).Error; err != nil {
				return fmt.Errorf("failed to lock account: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return attempts, nil
}

func (r *accountRepository) ResetFailedPIN(id uint) error {
	result := r.db.Model(&models.Account{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"failed_pin_attempts": 0,
			"locked_until":        nil,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to reset failed attempts: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrAccountNotFound
	}
	return nil
}
