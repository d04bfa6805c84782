package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"opal/internal/models"
	"opal/internal/money"
)

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a LedgerRepository backed by gorm.
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Append(entry *models.LedgerEntry) error {
	if result := r.db.Create(entry); result.Error != nil {
		return fmt.Errorf("failed to append ledger entry: %w", result.Error)
	}
	return nil
}

func (r *ledgerRepository) ListRecent(accountID uint, limit int) ([]models.LedgerEntry, error) {
	if limit <= 0 {
		limit = DefaultStatementLimit
	}

	var entries []models.LedgerEntry
	err := r.db.
		Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}

func (r *ledgerRepository) SumByKindSince(accountID uint, kind string, since time.Time) (money.Amount, error) {
	var total int64
	err := r.db.Model(&models.LedgerEntry{}).
		Where("account_id = ? AND kind = ? AND created_at >= ?", accountID, kind, since).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum ledger entries: %w", err)
	}
	return money.Amount(total), nil
}
